package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/pulse"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Render  RenderConfig  `toml:"render"`
	Pulse   PulseConfig   `toml:"pulse"`
	Frame   FrameConfig   `toml:"frame"`
	Logging LoggingConfig `toml:"logging"`
}

type RenderConfig struct {
	BaseScale     float64 `toml:"base_scale"`
	Workers       int     `toml:"workers"`        // 0 = GOMAXPROCS
	PredictedTint string  `toml:"predicted_tint"` // hex, "#rgb" or "#rrggbb"
	NeutralTint   string  `toml:"neutral_tint"`
}

type PulseConfig struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Rate float64 `toml:"rate"` // units per second
}

type FrameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data over the defaults. name is only used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Render: RenderConfig{
			BaseScale:     asteroids.DefaultBaseScale,
			PredictedTint: "#00ff00",
			NeutralTint:   "#ffffff",
		},
		Pulse: PulseConfig{
			Min:  pulse.DefaultMin,
			Max:  pulse.DefaultMax,
			Rate: pulse.DefaultRate,
		},
		Frame: FrameConfig{
			TickRate: time.Second / 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Render.BaseScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: render.base_scale must be positive, got %g", ErrInvalid, c.Render.BaseScale))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalid, c.Render.Workers))
	}
	if c.Pulse.Min >= c.Pulse.Max {
		errs = append(errs, fmt.Errorf("%w: pulse.min (%g) must be below pulse.max (%g)", ErrInvalid, c.Pulse.Min, c.Pulse.Max))
	}
	if c.Pulse.Rate < 0 {
		errs = append(errs, fmt.Errorf("%w: pulse.rate must not be negative, got %g", ErrInvalid, c.Pulse.Rate))
	}
	if c.Frame.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: frame.tick_rate must be positive, got %s", ErrInvalid, c.Frame.TickRate))
	}
	for key, hex := range map[string]string{
		"render.predicted_tint": c.Render.PredictedTint,
		"render.neutral_tint":   c.Render.NeutralTint,
	} {
		if _, err := ParseTint(hex); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format must be json or console, got %q", ErrInvalid, c.Logging.Format))
	}
	return errors.Join(errs...)
}

// ParseTint converts a hex color into an opaque asteroid tint.
func ParseTint(hex string) (asteroids.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return asteroids.Color{}, fmt.Errorf("parse tint %q: %w", hex, err)
	}
	return asteroids.Color{float32(c.R), float32(c.G), float32(c.B), 1}, nil
}

// RenderSystem converts the validated file config into the render system's
// construction-time config. workers is used when render.workers is 0.
func (c *Config) RenderSystem(workers int) asteroids.Config {
	out := asteroids.DefaultConfig()
	out.BaseScale = c.Render.BaseScale
	if c.Render.Workers > 0 {
		out.Workers = c.Render.Workers
	} else if workers > 0 {
		out.Workers = workers
	}
	out.Pulse = asteroids.PulseConfig{Min: c.Pulse.Min, Max: c.Pulse.Max, Rate: c.Pulse.Rate}
	// Both tints were checked by Validate.
	out.Tints.Predicted, _ = ParseTint(c.Render.PredictedTint)
	out.Tints.Neutral, _ = ParseTint(c.Render.NeutralTint)
	return out
}
