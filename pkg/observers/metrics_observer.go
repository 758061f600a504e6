package observers

import (
	"sync"
	"time"

	"github.com/anggasct/trafficfsm"
)

// MetricsObserver collects metrics about engine execution
type MetricsObserver struct {
	trafficfsm.BaseObserver

	stateVisits      map[trafficfsm.StateID]int
	stateTimeSpent   map[trafficfsm.StateID]time.Duration
	inputCounts      [trafficfsm.NumInputs]int
	transitionCounts map[string]int
	cycles           uint64
	errorCount       int
	mutex            sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		stateVisits:      make(map[trafficfsm.StateID]int),
		stateTimeSpent:   make(map[trafficfsm.StateID]time.Duration),
		transitionCounts: make(map[string]int),
	}
}

// OnStateEnter records a visit
func (o *MetricsObserver) OnStateEnter(state trafficfsm.StateID, main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateVisits[state]++
}

// OnTransition records the transition and the input that chose it
func (o *MetricsObserver) OnTransition(from, to trafficfsm.StateID, input trafficfsm.InputVector) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transitionCounts[from.String()+"->"+to.String()]++
	o.inputCounts[input.Mask()]++
}

// OnCycle records the time spent holding the state
func (o *MetricsObserver) OnCycle(result *trafficfsm.CycleResult) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.cycles++
	if !result.SampledAt.IsZero() && !result.StartedAt.IsZero() {
		o.stateTimeSpent[result.From] += result.SampledAt.Sub(result.StartedAt)
	} else {
		o.stateTimeSpent[result.From] += result.Hold
	}
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetStateVisitCounts returns the number of times each state was emitted
func (o *MetricsObserver) GetStateVisitCounts() map[trafficfsm.StateID]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficfsm.StateID]int)
	for state, count := range o.stateVisits {
		result[state] = count
	}
	return result
}

// GetStateTimeSpent returns the time spent in each state
func (o *MetricsObserver) GetStateTimeSpent() map[trafficfsm.StateID]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficfsm.StateID]time.Duration)
	for state, duration := range o.stateTimeSpent {
		result[state] = duration
	}
	return result
}

// GetInputCounts returns how often each input code was sampled
func (o *MetricsObserver) GetInputCounts() [trafficfsm.NumInputs]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.inputCounts
}

// GetTransitionCounts returns the number of times each transition occurred,
// keyed "From->To"
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for transition, count := range o.transitionCounts {
		result[transition] = count
	}
	return result
}

// GetCycleCount returns the number of completed cycles
func (o *MetricsObserver) GetCycleCount() uint64 {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.cycles
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateVisits = make(map[trafficfsm.StateID]int)
	o.stateTimeSpent = make(map[trafficfsm.StateID]time.Duration)
	o.inputCounts = [trafficfsm.NumInputs]int{}
	o.transitionCounts = make(map[string]int)
	o.cycles = 0
	o.errorCount = 0
}
