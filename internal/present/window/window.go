// Package window shows the asteroid field in an ebiten window.
package window

import (
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/internal/present"
)

// Game implements ebiten.Game over a scheduler whose last phase fills List.
type Game struct {
	Scheduler *ecs.Scheduler
	List      *present.DrawList
	Width     int
	Height    int

	// HUD, when set, is printed in the top-left corner using Storage.
	HUD     *present.HUD
	Storage *ecs.Storage
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())
	g.Scheduler.Once(dt)
	if g.HUD != nil {
		g.HUD.Record(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	for _, s := range g.List.Sprites() {
		vector.DrawFilledCircle(screen, s.X, s.Y, s.Radius, s.Color, true)
	}
	if g.HUD != nil && g.Storage != nil {
		ebitenutil.DebugPrint(screen, strings.Join(g.HUD.Lines(g.Storage, g.List.Sprites()), "\n"))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, tick time.Duration) error {
	ebiten.SetWindowSize(g.Width, g.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, int(time.Second/tick)))

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
