package engine

// State is the engine's lifecycle phase. Transitions only move forward:
// Uninitialized → Initializing → Ready ⇄ Rendering → TornDown.
type State int

const (
	// StateUninitialized is the phase before Run is called. No GPU resources exist.
	StateUninitialized State = iota

	// StateInitializing covers asynchronous GPU device acquisition. The
	// window is live and pumping events but frames cannot be rendered yet.
	StateInitializing

	// StateReady means the device, surface, and pipelines exist and the
	// engine is between frames.
	StateReady

	// StateRendering is the transient phase while a frame is being recorded
	// and submitted.
	StateRendering

	// StateTornDown is terminal: GPU resources have been released.
	StateTornDown
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateRendering:
		return "rendering"
	case StateTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}
