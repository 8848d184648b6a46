// Package term shows the asteroid field in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/internal/present"
)

// Viewer maps world coordinates in a width x height field onto the terminal.
type Viewer struct {
	Scheduler *ecs.Scheduler
	List      *present.DrawList
	Width     float64
	Height    float64
	BaseScale float64

	// HUD, when set, is drawn over the top rows using Storage.
	HUD     *present.HUD
	Storage *ecs.Storage

	screen tcell.Screen
}

// Glyph picks a character by how far scale is from baseScale.
func Glyph(scale float32, baseScale float64) rune {
	ratio := float64(scale) / baseScale
	switch {
	case ratio < 0.9:
		return '.'
	case ratio < 1.1:
		return 'o'
	default:
		return 'O'
	}
}

// Cell maps a world position to a terminal cell.
func Cell(x, y float32, fieldW, fieldH float64, cols, rows int) (int, int) {
	cx := int(float64(x) / fieldW * float64(cols))
	cy := int(float64(y) / fieldH * float64(rows))
	return min(max(cx, 0), cols-1), min(max(cy, 0), rows-1)
}

// Run takes over the terminal and ticks the scheduler every tick until ctx
// is cancelled or the user presses q, Esc or Ctrl-C.
func (v *Viewer) Run(ctx context.Context, tick time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	v.screen = screen
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			v.Scheduler.Once(dt)
			last = now
			if v.HUD != nil {
				v.HUD.Record(dt)
			}
			v.draw()
		}
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if cols == 0 || rows == 0 {
		return
	}

	for _, s := range v.List.Sprites() {
		x, y := Cell(s.X, s.Y, v.Width, v.Height, cols, rows)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(s.Color.R), int32(s.Color.G), int32(s.Color.B)))
		v.screen.SetContent(x, y, Glyph(s.Scale, v.BaseScale), nil, style)
	}

	if v.HUD != nil && v.Storage != nil {
		for row, line := range v.HUD.Lines(v.Storage, v.List.Sprites()) {
			if row >= rows {
				break
			}
			for col, r := range []rune(line) {
				if col >= cols {
					break
				}
				v.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Reverse(true))
			}
		}
	}
	v.screen.Show()
}
