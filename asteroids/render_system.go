// Package asteroids contains the client presentation pass that pulses
// asteroid scale and tints asteroids by prediction state.
package asteroids

import (
	"go.uber.org/zap"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/pulse"
	"github.com/plus3/asteroids/transform"
)

type asteroidView struct {
	ecs.EntityId
	*AsteroidTag
	*transform.LocalTransform
}

// RenderSystem advances the pulse once per frame and applies it to every
// asteroid. It runs in the presentation phase so transform propagation sees
// the new scale in the same frame, and is skipped on frames with no
// asteroids.
type RenderSystem struct {
	Asteroids ecs.Query[asteroidView]    `ecs:"required"`
	Predicted ecs.Lookup[PredictedGhost] `ecs:"readonly"`
	Colors    ecs.Lookup[BaseColor]

	config Config
	pulse  *pulse.Oscillator
	log    *zap.Logger
}

// NewRenderSystem builds a render system that owns a fresh oscillator.
// A nil logger disables logging.
func NewRenderSystem(config Config, log *zap.Logger) *RenderSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RenderSystem{
		config: config,
		pulse:  pulse.NewOscillator(pulse.NewState(config.Pulse.Min, config.Pulse.Max, config.Pulse.Rate)),
		log:    log.Named("asteroid-render"),
	}
}

func (s *RenderSystem) Phase() ecs.Phase {
	return ecs.PhasePresentation
}

// Pulse returns the oscillator state after the last frame.
func (s *RenderSystem) Pulse() pulse.State {
	return s.pulse.State()
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	value := s.pulse.Advance(frame.DeltaTime)
	if s.pulse.Flipped() {
		s.log.Debug("pulse reversed",
			zap.Float64("value", value),
			zap.Bool("rising", s.pulse.State().Rising()),
			zap.Int("asteroids", s.Asteroids.Len()),
		)
	}
	s.Apply(value)
}

// Apply writes the scale and tint for pulse value p to every asteroid matched
// this frame. It reads no other per-frame state, so repeating it with the
// same p and the same predicted markers rewrites identical values.
// The Asteroids query must have been executed.
func (s *RenderSystem) Apply(p float64) {
	baseScale, tints := s.config.BaseScale, s.config.Tints

	s.Asteroids.ParallelEach(s.config.Workers, func(a asteroidView) {
		hasColor := s.Colors.Has(a.EntityId)
		predicted := hasColor && s.Predicted.Has(a.EntityId)

		scale, color, write := Shade(p, baseScale, hasColor, predicted, tints)
		a.LocalTransform.Scale = scale
		if write {
			s.Colors.Set(a.EntityId, BaseColor{Value: color})
		}
	})
}
