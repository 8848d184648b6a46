package asteroids

import (
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/transform"
)

// AsteroidTag marks entities the render pass scales and tints.
type AsteroidTag struct{}

// PredictedGhost marks an entity whose state is simulated locally ahead of
// the server. Only its presence matters to the render pass.
type PredictedGhost struct {
	SpawnTick uint32
}

// Color is linear RGBA in [0, 1].
type Color [4]float32

// BaseColor is the per-entity material tint consumed by renderers.
type BaseColor struct {
	Value Color
}

// RegisterComponents registers every component an asteroid world uses,
// including the transform components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[AsteroidTag](registry)
	ecs.RegisterComponent[PredictedGhost](registry)
	ecs.RegisterComponent[BaseColor](registry)
	ecs.RegisterComponent[transform.LocalTransform](registry)
	ecs.RegisterComponent[transform.LocalToWorld](registry)
}
