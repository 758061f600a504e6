package trafficfsm

import "fmt"

// Observer represents an entity that observes the engine cycle
type Observer interface {
	// OnTransition is called once per cycle after the successor is chosen,
	// including self-transitions
	OnTransition(from StateID, to StateID, input InputVector)

	// OnStateEnter is called when a state's outputs have been emitted
	OnStateEnter(state StateID, main LampPattern, ped PedPattern)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnCycle is called with the full record of a completed cycle
	OnCycle(result *CycleResult)

	// OnError is called when an error occurs during a cycle
	OnError(err error)

	// OnEngineStarted is called when Run begins
	OnEngineStarted(engineID string, initial StateID)

	// OnEngineStopped is called when Run returns
	OnEngineStopped(engineID string, err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(from StateID, to StateID, input InputVector) {}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(state StateID, main LampPattern, ped PedPattern) {}

// OnCycle implements the optional ExtendedObserver method
func (o *BaseObserver) OnCycle(result *CycleResult) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// OnEngineStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnEngineStarted(engineID string, initial StateID) {}

// OnEngineStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnEngineStopped(engineID string, err error) {}

// ObserverManager manages a collection of observers. A panicking observer
// never stops the engine; the panic is reported through OnError.
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

func (om *ObserverManager) guard(observer Observer, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", hook, r))
				}()
			}
		}
	}()
	fn()
}

// NotifyTransition notifies all observers of a table lookup
func (om *ObserverManager) NotifyTransition(from StateID, to StateID, input InputVector) {
	for _, observer := range om.observers {
		observer := observer
		om.guard(observer, "OnTransition", func() {
			observer.OnTransition(from, to, input)
		})
	}
}

// NotifyStateEnter notifies all observers of emitted outputs
func (om *ObserverManager) NotifyStateEnter(state StateID, main LampPattern, ped PedPattern) {
	for _, observer := range om.observers {
		observer := observer
		om.guard(observer, "OnStateEnter", func() {
			observer.OnStateEnter(state, main, ped)
		})
	}
}

// NotifyCycle notifies all observers of a completed cycle
func (om *ObserverManager) NotifyCycle(result *CycleResult) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard(observer, "OnCycle", func() {
				extObs.OnCycle(result)
			})
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}

// NotifyEngineStarted notifies all observers that Run has begun
func (om *ObserverManager) NotifyEngineStarted(engineID string, initial StateID) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard(observer, "OnEngineStarted", func() {
				extObs.OnEngineStarted(engineID, initial)
			})
		}
	}
}

// NotifyEngineStopped notifies all observers that Run has returned
func (om *ObserverManager) NotifyEngineStopped(engineID string, err error) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard(observer, "OnEngineStopped", func() {
				extObs.OnEngineStopped(engineID, err)
			})
		}
	}
}
