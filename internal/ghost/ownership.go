// Package ghost stands in for the replication layer on a client: it decides
// which asteroids are predicted locally by adding and removing the
// PredictedGhost marker. The render pass only reacts to the marker.
package ghost

import (
	"math/rand/v2"
	"reflect"

	"go.uber.org/zap"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/ecs"
)

type ghostView struct {
	ecs.EntityId
	*asteroids.AsteroidTag
	Predicted *asteroids.PredictedGhost `ecs:"optional"`
}

// OwnershipSystem redraws the predicted set every Interval seconds.
type OwnershipSystem struct {
	Asteroids ecs.Query[ghostView]

	ratio    float64
	interval float64
	rng      *rand.Rand
	log      *zap.Logger

	elapsed float64
	tick    uint32
}

// NewOwnershipSystem predicts each asteroid with probability ratio on every
// redraw. An interval of zero disables redraws.
func NewOwnershipSystem(ratio, interval float64, rng *rand.Rand, log *zap.Logger) *OwnershipSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &OwnershipSystem{
		ratio:    ratio,
		interval: interval,
		rng:      rng,
		log:      log.Named("ghost"),
	}
}

func (s *OwnershipSystem) Phase() ecs.Phase {
	return ecs.PhaseSimulation
}

func (s *OwnershipSystem) Execute(frame *ecs.UpdateFrame) {
	s.tick++
	if s.interval <= 0 {
		return
	}

	s.elapsed += frame.DeltaTime
	if s.elapsed < s.interval {
		return
	}
	s.elapsed -= s.interval

	gained, lost := 0, 0
	for a := range s.Asteroids.Iter() {
		want := s.rng.Float64() < s.ratio
		switch {
		case want && a.Predicted == nil:
			frame.Commands.AddComponent(a.EntityId, asteroids.PredictedGhost{SpawnTick: s.tick})
			gained++
		case !want && a.Predicted != nil:
			frame.Commands.RemoveComponent(a.EntityId, reflect.TypeFor[asteroids.PredictedGhost]())
			lost++
		}
	}

	s.log.Debug("prediction set redrawn",
		zap.Uint32("tick", s.tick),
		zap.Int("gained", gained),
		zap.Int("lost", lost),
	)
}
