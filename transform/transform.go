// Package transform holds the 2D transform components and the system that
// turns local transforms into world matrices once presentation systems
// have finished writing them.
package transform

import (
	"math"

	"github.com/plus3/asteroids/ecs"
)

// LocalTransform is an entity's position, rotation (radians) and uniform scale.
type LocalTransform struct {
	X, Y     float32
	Rotation float32
	Scale    float32
}

// LocalToWorld is a row-major 3x3 affine matrix.
type LocalToWorld struct {
	Matrix [9]float32
}

// Origin returns the translation part of the matrix.
func (m LocalToWorld) Origin() (float32, float32) {
	return m.Matrix[2], m.Matrix[5]
}

// UniformScale returns the length of the matrix's x basis vector.
func (m LocalToWorld) UniformScale() float32 {
	return float32(math.Hypot(float64(m.Matrix[0]), float64(m.Matrix[3])))
}

// Compose builds the translate * rotate * scale matrix for t.
func Compose(t LocalTransform) LocalToWorld {
	sin, cos := math.Sincos(float64(t.Rotation))
	c := float32(cos) * t.Scale
	s := float32(sin) * t.Scale
	return LocalToWorld{Matrix: [9]float32{
		c, -s, t.X,
		s, c, t.Y,
		0, 0, 1,
	}}
}

// PropagationSystem writes LocalToWorld from LocalTransform for every entity
// carrying both.
type PropagationSystem struct {
	Entities ecs.Query[struct {
		*LocalTransform
		*LocalToWorld
	}]
	Workers int
}

func (s *PropagationSystem) Phase() ecs.Phase {
	return ecs.PhaseTransform
}

func (s *PropagationSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.ParallelEach(s.Workers, func(item struct {
		*LocalTransform
		*LocalToWorld
	}) {
		*item.LocalToWorld = Compose(*item.LocalTransform)
	})
}
