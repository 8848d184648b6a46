package asteroids

import (
	"runtime"

	"github.com/plus3/asteroids/pulse"
)

// DefaultBaseScale is the asteroid size at pulse 1.
const DefaultBaseScale = 30

var (
	PredictedTint = Color{0, 1, 0, 1}
	NeutralTint   = Color{1, 1, 1, 1}
)

// Tints are the two colors the render pass chooses between.
type Tints struct {
	Predicted Color
	Neutral   Color
}

// PulseConfig bounds and paces the oscillator.
type PulseConfig struct {
	Min  float64
	Max  float64
	Rate float64
}

// Config is fixed at construction time.
type Config struct {
	BaseScale float64
	// Workers caps the goroutines used for one pass; values below 2 run
	// on the scheduler goroutine.
	Workers int
	Pulse   PulseConfig
	Tints   Tints
}

// DefaultConfig returns base scale 30, pulse [0.8, 1.2] at rate 1, green for
// predicted asteroids, white otherwise, and one worker per P.
func DefaultConfig() Config {
	return Config{
		BaseScale: DefaultBaseScale,
		Workers:   runtime.GOMAXPROCS(0),
		Pulse: PulseConfig{
			Min:  pulse.DefaultMin,
			Max:  pulse.DefaultMax,
			Rate: pulse.DefaultRate,
		},
		Tints: Tints{
			Predicted: PredictedTint,
			Neutral:   NeutralTint,
		},
	}
}
