package trafficfsm

import (
	"fmt"
	"time"
)

// StateID identifies one row of the state table
type StateID uint8

const (
	// GoWest shows east-west green, north-south red and don't-walk
	GoWest StateID = iota
	// WaitWest shows east-west yellow
	WaitWest
	// GoSouth shows north-south green, east-west red and don't-walk
	GoSouth
	// WaitSouth shows north-south yellow
	WaitSouth
	// GoPed holds both vehicle groups red and lights walk
	GoPed
	// PedFlashOff1 to PedFlashOn2 blink don't-walk twice and ignore inputs
	PedFlashOff1
	PedFlashOn1
	PedFlashOff2
	PedFlashOn2
)

// NumStates is the number of rows in a table
const NumStates = 9

var stateNames = [NumStates]string{
	GoWest:       "GoWest",
	WaitWest:     "WaitWest",
	GoSouth:      "GoSouth",
	WaitSouth:    "WaitSouth",
	GoPed:        "GoPed",
	PedFlashOff1: "PedFlashOff1",
	PedFlashOn1:  "PedFlashOn1",
	PedFlashOff2: "PedFlashOff2",
	PedFlashOn2:  "PedFlashOn2",
}

// AllStates lists every state in table order
func AllStates() []StateID {
	ids := make([]StateID, NumStates)
	for i := range ids {
		ids[i] = StateID(i)
	}
	return ids
}

// IsValid reports whether the identifier indexes a table row
func (s StateID) IsValid() bool {
	return s < NumStates
}

func (s StateID) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("StateID(%d)", uint8(s))
	}
	return stateNames[s]
}

// ParseStateID resolves a state name as produced by String
func ParseStateID(name string) (StateID, error) {
	for i, n := range stateNames {
		if n == name {
			return StateID(i), nil
		}
	}
	return 0, NewStateNotFoundError(name)
}

// State is one Moore table row: the outputs asserted while the state is
// active, how long they are held, and the successor for every input code.
type State struct {
	MainOutput LampPattern
	PedOutput  PedPattern
	HoldTicks  uint32
	Next       [NumInputs]StateID
}

// Hold converts the hold ticks into wall time for the given quantum
func (s State) Hold(tick time.Duration) time.Duration {
	return time.Duration(s.HoldTicks) * tick
}

// IgnoresInput reports whether every input code selects the same successor
func (s State) IgnoresInput() bool {
	for _, next := range s.Next[1:] {
		if next != s.Next[0] {
			return false
		}
	}
	return true
}

// always builds a transition row that ignores the input vector
func always(next StateID) [NumInputs]StateID {
	var row [NumInputs]StateID
	for i := range row {
		row[i] = next
	}
	return row
}
