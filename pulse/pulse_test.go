package pulse_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/asteroids/pulse"
)

func TestDefaultState(t *testing.T) {
	s := pulse.DefaultState()
	assert.Equal(t, 1.0, s.Value)
	assert.Equal(t, 1.0, s.Direction)
	assert.Equal(t, 0.8, s.Min)
	assert.Equal(t, 1.2, s.Max)
	assert.True(t, s.Rising())
}

func TestAdvanceClampsAndReverses(t *testing.T) {
	s := pulse.DefaultState()

	s, v := pulse.Advance(s, 0.3)
	assert.Equal(t, 1.2, v)
	assert.Equal(t, -1.0, s.Direction)

	s, v = pulse.Advance(s, 0.5)
	assert.Equal(t, 0.8, v)
	assert.Equal(t, 1.0, s.Direction)
}

func TestAdvanceWithinBounds(t *testing.T) {
	s, v := pulse.Advance(pulse.DefaultState(), 0.1)
	assert.InDelta(t, 1.1, v, 1e-12)
	assert.True(t, s.Rising())

	s, v = pulse.Advance(pulse.State{Value: 1, Direction: -1, Min: 0.8, Max: 1.2}, 0.1)
	assert.InDelta(t, 0.9, v, 1e-12)
	assert.False(t, s.Rising())
}

func TestAdvanceZeroElapsed(t *testing.T) {
	before := pulse.DefaultState()
	after, v := pulse.Advance(before, 0)
	assert.Equal(t, before, after)
	assert.Equal(t, 1.0, v)
}

func TestAdvanceStaysInBounds(t *testing.T) {
	s := pulse.DefaultState()
	for i := range 10_000 {
		var v float64
		prev := s
		s, v = pulse.Advance(s, 0.016)
		require.GreaterOrEqual(t, v, s.Min, "step %d", i)
		require.LessOrEqual(t, v, s.Max, "step %d", i)

		// Direction only changes on the step that lands on a bound.
		if prev.Rising() != s.Rising() {
			require.Truef(t, v == s.Min || v == s.Max, "flip at %v on step %d", v, i)
		}
	}
}

func TestAdvanceOvershootingBothBounds(t *testing.T) {
	s, v := pulse.Advance(pulse.DefaultState(), 10)
	assert.Equal(t, 1.2, v)
	assert.False(t, s.Rising())

	s, v = pulse.Advance(pulse.State{Value: 1, Direction: -1, Min: 0.8, Max: 1.2}, 10)
	assert.Equal(t, 0.8, v)
	assert.True(t, s.Rising())
}

func TestAdvanceRate(t *testing.T) {
	s, v := pulse.Advance(pulse.NewState(0.5, 1.5, 2), 0.1)
	assert.InDelta(t, 1.2, v, 1e-12)
	assert.Equal(t, 2.0, s.Direction)

	s, v = pulse.Advance(s, 1)
	assert.Equal(t, 1.5, v)
	assert.Equal(t, -2.0, s.Direction)
}

func TestAdvanceDeterministic(t *testing.T) {
	steps := []float64{0.016, 0.033, 0.25, 0.001, 0.4, 0.016, 0.7}

	run := func() []float64 {
		var out []float64
		s := pulse.DefaultState()
		for _, dt := range steps {
			var v float64
			s, v = pulse.Advance(s, dt)
			out = append(out, v)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestOscillator(t *testing.T) {
	osc := pulse.NewOscillator(pulse.DefaultState())
	assert.Equal(t, 1.0, osc.Value())
	assert.False(t, osc.Flipped())

	assert.InDelta(t, 1.1, osc.Advance(0.1), 1e-12)
	assert.False(t, osc.Flipped())

	assert.Equal(t, 1.2, osc.Advance(0.3))
	assert.True(t, osc.Flipped())
	assert.False(t, osc.State().Rising())

	osc.Advance(0.1)
	assert.False(t, osc.Flipped())
	assert.InDelta(t, 1.1, osc.Value(), 1e-12)
}

func ExampleAdvance() {
	s := pulse.DefaultState()
	for _, dt := range []float64{0.3, 0.5} {
		var v float64
		s, v = pulse.Advance(s, dt)
		fmt.Printf("%.1f rising=%v\n", v, s.Rising())
	}
	// Output:
	// 1.2 rising=false
	// 0.8 rising=true
}
