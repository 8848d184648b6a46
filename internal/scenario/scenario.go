// Package scenario describes a starting asteroid population in YAML and
// spawns it into a storage.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/transform"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Scenario is the top level of a scenario file.
type Scenario struct {
	Seed uint64 `yaml:"seed"`

	Field Field `yaml:"field"`

	// Asteroids is how many asteroid entities to spawn.
	Asteroids int `yaml:"asteroids"`

	// ColoredRatio is the fraction of asteroids spawned with a BaseColor.
	ColoredRatio float64 `yaml:"colored_ratio"`

	Ownership Ownership `yaml:"ownership"`
}

// Field is the play area in world units.
type Field struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Ownership controls which asteroids are locally predicted.
type Ownership struct {
	// PredictedRatio is the fraction of asteroids carrying PredictedGhost.
	PredictedRatio float64 `yaml:"predicted_ratio"`

	// Interval is how often, in seconds, the predicted set is redrawn.
	// Zero keeps the initial assignment.
	Interval float64 `yaml:"interval"`
}

// Default is a small field with a quarter of asteroids predicted.
func Default() *Scenario {
	return &Scenario{
		Seed:         1,
		Field:        Field{Width: 1280, Height: 720},
		Asteroids:    64,
		ColoredRatio: 1,
		Ownership: Ownership{
			PredictedRatio: 0.25,
			Interval:       2,
		},
	}
}

// Load reads a YAML scenario over Default.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	switch {
	case s.Asteroids < 0:
		return fmt.Errorf("%w: asteroids must not be negative, got %d", ErrInvalid, s.Asteroids)
	case s.Field.Width <= 0 || s.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size, got %gx%g", ErrInvalid, s.Field.Width, s.Field.Height)
	case s.ColoredRatio < 0 || s.ColoredRatio > 1:
		return fmt.Errorf("%w: colored_ratio must be within [0, 1], got %g", ErrInvalid, s.ColoredRatio)
	case s.Ownership.PredictedRatio < 0 || s.Ownership.PredictedRatio > 1:
		return fmt.Errorf("%w: ownership.predicted_ratio must be within [0, 1], got %g", ErrInvalid, s.Ownership.PredictedRatio)
	case s.Ownership.Interval < 0:
		return fmt.Errorf("%w: ownership.interval must not be negative, got %g", ErrInvalid, s.Ownership.Interval)
	}
	return nil
}

// Rand returns the scenario's deterministic random source.
func (s *Scenario) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
}

// Spawn adds the scenario's asteroids to storage at the given base scale and
// returns their ids. Colored asteroids start with the neutral tint.
func (s *Scenario) Spawn(storage *ecs.Storage, baseScale float64) []ecs.EntityId {
	rng := s.Rand()
	ids := make([]ecs.EntityId, 0, s.Asteroids)

	for range s.Asteroids {
		components := []any{
			asteroids.AsteroidTag{},
			transform.LocalTransform{
				X:        float32(rng.Float64() * s.Field.Width),
				Y:        float32(rng.Float64() * s.Field.Height),
				Rotation: float32(rng.Float64() * 2 * math.Pi),
				Scale:    float32(baseScale),
			},
			transform.LocalToWorld{},
		}
		if rng.Float64() < s.ColoredRatio {
			components = append(components, asteroids.BaseColor{Value: asteroids.NeutralTint})
		}
		if rng.Float64() < s.Ownership.PredictedRatio {
			components = append(components, asteroids.PredictedGhost{})
		}
		ids = append(ids, storage.Spawn(components...))
	}

	return ids
}
