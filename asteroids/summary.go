package asteroids

import (
	"math"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/transform"
)

// Summary counts asteroids by what the last render pass wrote to them.
type Summary struct {
	Asteroids int
	Predicted int
	// PredictedTinted and NeutralTinted count colored asteroids whose
	// color currently equals the respective tint.
	PredictedTinted int
	NeutralTinted   int
	Uncolored       int
	MinScale        float32
	MaxScale        float32
}

type summaryView struct {
	*AsteroidTag
	*transform.LocalTransform
	Color     *BaseColor      `ecs:"optional"`
	Predicted *PredictedGhost `ecs:"optional"`
}

// Summarize walks every asteroid in storage.
func Summarize(storage *ecs.Storage, tints Tints) Summary {
	sum := Summary{MinScale: math.MaxFloat32}

	for _, a := range ecs.NewView[summaryView](storage).Iter() {
		sum.Asteroids++
		if a.Predicted != nil {
			sum.Predicted++
		}
		sum.MinScale = min(sum.MinScale, a.LocalTransform.Scale)
		sum.MaxScale = max(sum.MaxScale, a.LocalTransform.Scale)

		switch {
		case a.Color == nil:
			sum.Uncolored++
		case a.Color.Value == tints.Predicted:
			sum.PredictedTinted++
		case a.Color.Value == tints.Neutral:
			sum.NeutralTinted++
		}
	}

	if sum.Asteroids == 0 {
		sum.MinScale = 0
	}
	return sum
}
