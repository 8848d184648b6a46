package present

import (
	"fmt"

	"github.com/plus3/asteroids/ecs"
)

// HUD keeps a ring of recent frame times and formats a short status block
// from storage stats and the last draw list.
type HUD struct {
	history []float64
	next    int
	filled  int
}

// NewHUD averages frame time over the last historyFrames frames.
func NewHUD(historyFrames int) *HUD {
	return &HUD{history: make([]float64, max(historyFrames, 1))}
}

// Record adds one frame's delta time in seconds.
func (h *HUD) Record(dt float64) {
	h.history[h.next] = dt * 1000
	h.next = (h.next + 1) % len(h.history)
	h.filled = min(h.filled+1, len(h.history))
}

// AvgFrameMillis is the mean of the recorded frames, or 0 before the first.
func (h *HUD) AvgFrameMillis() float64 {
	if h.filled == 0 {
		return 0
	}
	var total float64
	for _, ms := range h.history[:h.filled] {
		total += ms
	}
	return total / float64(h.filled)
}

// Lines formats the status block.
func (h *HUD) Lines(storage *ecs.Storage, sprites []Sprite) []string {
	stats := storage.CollectStats()

	fps := 0.0
	if avg := h.AvgFrameMillis(); avg > 0 {
		fps = 1000 / avg
	}

	var scale float32
	if len(sprites) > 0 {
		scale = sprites[0].Scale
	}

	return []string{
		fmt.Sprintf("entities %d  archetypes %d", stats.TotalEntityCount, stats.ArchetypeCount),
		fmt.Sprintf("frame %.2f ms (%.0f fps)", h.AvgFrameMillis(), fps),
		fmt.Sprintf("asteroids %d  scale %.2f", len(sprites), scale),
	}
}
