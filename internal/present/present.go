// Package present turns final asteroid transforms and colors into a flat
// draw list that viewers can render without touching the ECS.
package present

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/transform"
)

// Uncolored is drawn for asteroids without a BaseColor.
var Uncolored = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Sprite is one asteroid ready to draw.
type Sprite struct {
	X, Y   float32
	Radius float32
	Scale  float32
	Color  color.RGBA
}

// RGBA converts a linear tint into 8-bit color.
func RGBA(c asteroids.Color) color.RGBA {
	r, g, b := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().RGB255()
	a := min(max(c[3], 0), 1)
	return color.RGBA{R: r, G: g, B: b, A: uint8(a * 255)}
}

type spriteView struct {
	*asteroids.AsteroidTag
	*transform.LocalToWorld
	Color *asteroids.BaseColor `ecs:"optional"`
}

// DrawList collects sprites after transform propagation.
type DrawList struct {
	Asteroids ecs.Query[spriteView]

	sprites []Sprite
}

func (d *DrawList) Phase() ecs.Phase {
	return ecs.PhaseRender
}

func (d *DrawList) Execute(frame *ecs.UpdateFrame) {
	d.sprites = d.sprites[:0]
	for a := range d.Asteroids.Iter() {
		x, y := a.LocalToWorld.Origin()
		scale := a.LocalToWorld.UniformScale()

		c := Uncolored
		if a.Color != nil {
			c = RGBA(a.Color.Value)
		}
		d.sprites = append(d.sprites, Sprite{X: x, Y: y, Radius: scale / 2, Scale: scale, Color: c})
	}
}

// Sprites returns the list built by the last frame. The slice is reused.
func (d *DrawList) Sprites() []Sprite {
	return d.sprites
}
