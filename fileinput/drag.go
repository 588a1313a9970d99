package fileinput

// DragState is the hover state of a drop target.
type DragState int

const (
	// Idle means nothing is being dragged over the target.
	Idle DragState = iota
	// Hovering means a drag payload is over the target.
	Hovering
)

func (s DragState) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

// dragMachine moves between Idle and Hovering. There is no timeout: a
// target that never sees a leave or drop stays Hovering.
type dragMachine struct {
	state DragState
}

// over enters Hovering. It reports whether the state changed.
func (m *dragMachine) over() bool {
	return m.set(Hovering)
}

// leave returns to Idle. It reports whether the state changed.
func (m *dragMachine) leave() bool {
	return m.set(Idle)
}

// drop ends the gesture.
func (m *dragMachine) drop() bool {
	return m.set(Idle)
}

func (m *dragMachine) set(s DragState) bool {
	if m.state == s {
		return false
	}
	m.state = s
	return true
}
