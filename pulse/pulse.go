// Package pulse implements the triangular oscillator that drives asteroid
// scale. The oscillator is advanced by accumulated frame time, not wall
// clock, so a fixed sequence of elapsed times always yields the same values.
package pulse

const (
	DefaultMin  = 0.8
	DefaultMax  = 1.2
	DefaultRate = 1.0
)

// State is the complete oscillator state. Direction carries both the sign
// of travel and the rate in units per second.
type State struct {
	Value     float64
	Direction float64
	Min       float64
	Max       float64
}

// NewState returns a state at Value 1 heading up at rate.
func NewState(min, max, rate float64) State {
	return State{
		Value:     1,
		Direction: rate,
		Min:       min,
		Max:       max,
	}
}

// DefaultState is NewState(DefaultMin, DefaultMax, DefaultRate).
func DefaultState() State {
	return NewState(DefaultMin, DefaultMax, DefaultRate)
}

// Rising reports whether the next step moves the value up.
func (s State) Rising() bool {
	return s.Direction > 0
}

// Advance moves s by elapsed seconds and returns the new state and value.
// Crossing Max clamps to Max and reverses; otherwise crossing Min clamps to
// Min and reverses. A step long enough to overshoot both bounds only
// triggers the first check. elapsed must not be negative.
func Advance(s State, elapsed float64) (State, float64) {
	s.Value += s.Direction * elapsed
	if s.Value > s.Max {
		s.Value = s.Max
		s.Direction = -s.Direction
	} else if s.Value < s.Min {
		s.Value = s.Min
		s.Direction = -s.Direction
	}
	return s, s.Value
}

// Oscillator owns a State across frames.
type Oscillator struct {
	state   State
	flipped bool
}

// NewOscillator wraps an initial state.
func NewOscillator(initial State) *Oscillator {
	return &Oscillator{state: initial}
}

// Advance steps the owned state and returns the new value.
func (o *Oscillator) Advance(elapsed float64) float64 {
	before := o.state.Rising()
	var value float64
	o.state, value = Advance(o.state, elapsed)
	o.flipped = before != o.state.Rising()
	return value
}

// Value returns the current value without advancing.
func (o *Oscillator) Value() float64 {
	return o.state.Value
}

// State returns a copy of the current state.
func (o *Oscillator) State() State {
	return o.state
}

// Flipped reports whether the last Advance reversed direction.
func (o *Oscillator) Flipped() bool {
	return o.flipped
}
