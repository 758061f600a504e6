package trafficfsm

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex       sync.RWMutex
	Transitions []TransitionEvent
	StateEnters []StateEvent
	Cycles      []*CycleResult
	Errors      []error
	Started     []StateID
	Stopped     []error
}

type TransitionEvent struct {
	From  StateID
	To    StateID
	Input InputVector
}

type StateEvent struct {
	State StateID
	Main  LampPattern
	Ped   PedPattern
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		Transitions: make([]TransitionEvent, 0),
		StateEnters: make([]StateEvent, 0),
		Cycles:      make([]*CycleResult, 0),
		Errors:      make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnTransition(from StateID, to StateID, input InputVector) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, TransitionEvent{From: from, To: to, Input: input})
}

func (o *TestObserver) OnStateEnter(state StateID, main LampPattern, ped PedPattern) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateEnters = append(o.StateEnters, StateEvent{State: state, Main: main, Ped: ped})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnCycle(result *CycleResult) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Cycles = append(o.Cycles, result)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

func (o *TestObserver) OnEngineStarted(engineID string, initial StateID) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, initial)
}

func (o *TestObserver) OnEngineStopped(engineID string, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = nil
	o.StateEnters = nil
	o.Cycles = nil
	o.Errors = nil
	o.Started = nil
	o.Stopped = nil
}

func (o *TestObserver) TransitionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Transitions)
}

func (o *TestObserver) StateEnterCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.StateEnters)
}

// VisitedStates returns the states whose outputs were emitted, in order
func (o *TestObserver) VisitedStates() []StateID {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	states := make([]StateID, len(o.StateEnters))
	for i, e := range o.StateEnters {
		states[i] = e.State
	}
	return states
}

func (o *TestObserver) LastTransition() *TransitionEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Transitions) == 0 {
		return nil
	}
	return &o.Transitions[len(o.Transitions)-1]
}

// Test assertions and utilities

// AssertState checks if the engine is in the expected state
func AssertState(t *testing.T, engine *Engine, expected StateID) {
	t.Helper()
	if current := engine.Current(); current != expected {
		t.Errorf("Expected state %s, got %s", expected, current)
	}
}

// AssertWalkIsSafe checks that every recorded emit with walk lit held all
// vehicle groups red
func AssertWalkIsSafe(t *testing.T, observer *TestObserver) {
	t.Helper()
	observer.mutex.RLock()
	defer observer.mutex.RUnlock()
	for i, e := range observer.StateEnters {
		if e.Ped.Walk() && !e.Main.AllRed() {
			t.Errorf("emit %d in %s shows walk with %s", i, e.State, e.Main)
		}
	}
}

// WalkTable follows the table from start over the inputs and returns the
// successor after each lookup
func WalkTable(table Table, start StateID, inputs []InputVector) []StateID {
	path := make([]StateID, 0, len(inputs))
	current := start
	for _, in := range inputs {
		current = table.Lookup(current, in)
		path = append(path, current)
	}
	return path
}
