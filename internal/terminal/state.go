package terminal

import (
	"fmt"
)

// State is the lifecycle of a single run.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

var stateNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Completed: "completed",
	Cancelled: "cancelled",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("unknown terminal state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown terminal state %q", text)
}

// Done reports whether the run has reached a terminal state.
func (s State) Done() bool {
	return s == Completed || s == Cancelled
}

// Snapshot is the render state of a run at one instant.
//
// Transcript is shared with later snapshots of the same run and must not be
// modified by the receiver.
type Snapshot struct {
	Transcript []string `json:"transcript"`
	InProgress string   `json:"in_progress"`
	State      State    `json:"state"`
}

// CursorVisible reports whether the blinking prompt cursor is shown: while a
// run idles between lines, and after it completes.
func (s Snapshot) CursorVisible() bool {
	switch s.State {
	case Running:
		return s.InProgress == ""
	case Completed:
		return true
	default:
		return false
	}
}
