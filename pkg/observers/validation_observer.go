package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/trafficfsm"
)

// ValidationObserver checks observed engine behaviour against a reference
// table: every emission must match the state's row and be safe, and every
// transition must be the one the row selects for the sampled input.
type ValidationObserver struct {
	trafficfsm.BaseObserver

	table         trafficfsm.Table
	visitedStates map[trafficfsm.StateID]bool
	violations    []string
	mutex         sync.RWMutex
}

// NewValidationObserver creates a validation observer for table
func NewValidationObserver(table trafficfsm.Table) *ValidationObserver {
	return &ValidationObserver{
		table:         table,
		visitedStates: make(map[trafficfsm.StateID]bool),
		violations:    make([]string, 0),
	}
}

// addViolation adds a violation; the caller holds the mutex
func (o *ValidationObserver) addViolation(format string, args ...interface{}) {
	o.violations = append(o.violations, fmt.Sprintf(format, args...))
}

// OnStateEnter validates the emitted outputs
func (o *ValidationObserver) OnStateEnter(state trafficfsm.StateID, main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !state.IsValid() {
		o.addViolation("Emit from invalid state %s", state)
		return
	}
	o.visitedStates[state] = true

	row := o.table[state]
	if row.MainOutput != main || row.PedOutput != ped {
		o.addViolation("State '%s' emitted %s ped=%s, table says %s ped=%s", state, main, ped, row.MainOutput, row.PedOutput)
	}
	if reason := main.Conflicts(); reason != "" {
		o.addViolation("State '%s' emitted unsafe lamps: %s", state, reason)
	}
	if ped.Walk() && !main.AllRed() {
		o.addViolation("State '%s' showed walk with %s", state, main)
	}
}

// OnTransition validates the chosen successor
func (o *ValidationObserver) OnTransition(from, to trafficfsm.StateID, input trafficfsm.InputVector) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !from.IsValid() || !to.IsValid() {
		o.addViolation("Transition outside the table: %s -> %s", from, to)
		return
	}
	if input != input.Mask() {
		o.addViolation("Unmasked input %d used from '%s'", uint8(input), from)
	}
	if want := o.table.Lookup(from, input); want != to {
		o.addViolation("Invalid transition from '%s' to '%s' on input %s, expected '%s'", from, to, input, want)
	}
}

// OnError records errors as violations
func (o *ValidationObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.addViolation("Error occurred: %v", err)
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetUnvisitedStates returns table states that were never emitted, in table order
func (o *ValidationObserver) GetUnvisitedStates() []trafficfsm.StateID {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var unvisited []trafficfsm.StateID
	for _, state := range trafficfsm.AllStates() {
		if !o.visitedStates[state] {
			unvisited = append(unvisited, state)
		}
	}

	return unvisited
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates = make(map[trafficfsm.StateID]bool)
	o.violations = make([]string, 0)
}
