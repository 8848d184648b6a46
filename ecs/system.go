package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query,
// Lookup and Singleton fields for accessing entities, as well as custom state
// fields that persist between frames.
//
// A Query field tagged `ecs:"required"` makes the system run only on frames
// where that query matches at least one entity. A Lookup field tagged
// `ecs:"readonly"` rejects writes.
type System interface {
	Execute(frame *UpdateFrame)
}

// Phase groups systems within a frame. The Scheduler runs phases in
// ascending order and keeps registration order inside a phase.
type Phase int

const (
	PhaseSimulation   Phase = iota // gameplay, prediction, ownership changes
	PhasePresentation              // per-frame visual state derived from simulation
	PhaseTransform                 // local to world propagation
	PhaseRender                    // consumers of final transforms and colors
)

func (p Phase) String() string {
	switch p {
	case PhaseSimulation:
		return "simulation"
	case PhasePresentation:
		return "presentation"
	case PhaseTransform:
		return "transform"
	case PhaseRender:
		return "render"
	default:
		return "unknown"
	}
}

// Phased is implemented by systems that need to run outside PhaseSimulation.
type Phased interface {
	Phase() Phase
}
