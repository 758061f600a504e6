package trafficfsm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LampDriver receives the outputs of the active state. Emit is fire and
// forget and must return promptly.
type LampDriver interface {
	Emit(main LampPattern, ped PedPattern)
}

// SensorReader returns a snapshot of the sensor inputs. Debouncing, if any,
// belongs to the implementation.
type SensorReader interface {
	Sample() InputVector
}

// Timer blocks for a whole number of ticks of its quantum. It returns early
// with ctx.Err() when the context is cancelled.
type Timer interface {
	Wait(ctx context.Context, ticks uint32) error
}

// DefaultTickDuration is the tick quantum of the intersection controller
const DefaultTickDuration = 5 * time.Millisecond

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithInitialState sets the state Initialize resets to
func WithInitialState(state StateID) EngineOption {
	return func(e *Engine) {
		e.initial = state
	}
}

// WithObserver registers an observer before the engine starts
func WithObserver(observer Observer) EngineOption {
	return func(e *Engine) {
		e.observers.AddObserver(observer)
	}
}

// WithTickDuration records the quantum of the engine's Timer so cycle
// records carry wall-clock hold times
func WithTickDuration(tick time.Duration) EngineOption {
	return func(e *Engine) {
		e.tick = tick
	}
}

// WithID overrides the generated engine ID
func WithID(id string) EngineOption {
	return func(e *Engine) {
		e.id = id
	}
}

// WithClock replaces time.Now for cycle timestamps
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine drives a Table: each cycle it emits the outputs of the current
// state, waits the state's hold time, samples the sensors once and moves the
// cursor to the successor chosen by the sampled input.
type Engine struct {
	id        string
	table     Table
	initial   StateID
	tick      time.Duration
	lamps     LampDriver
	sensors   SensorReader
	timer     Timer
	observers *ObserverManager
	now       func() time.Time

	mutex   sync.RWMutex
	current StateID
	cycles  uint64
}

// NewEngine validates the table and collaborators and returns an engine
// positioned at the initial state. An invalid table is rejected here so the
// lamps are never driven from a defective row.
func NewEngine(table Table, lamps LampDriver, sensors SensorReader, timer Timer, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		id:        uuid.NewString(),
		table:     table,
		initial:   GoWest,
		tick:      DefaultTickDuration,
		lamps:     lamps,
		sensors:   sensors,
		timer:     timer,
		observers: NewObserverManager(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	switch {
	case lamps == nil:
		return nil, NewConfigurationError("Engine", "no lamp driver")
	case sensors == nil:
		return nil, NewConfigurationError("Engine", "no sensor reader")
	case timer == nil:
		return nil, NewConfigurationError("Engine", "no timer")
	case !e.initial.IsValid():
		return nil, NewConfigurationError("Engine", "initial state "+e.initial.String()+" is not a table row")
	case e.tick <= 0:
		return nil, NewConfigurationError("Engine", "tick duration must be positive")
	}

	if err := e.table.Validate(); err != nil {
		return nil, err
	}

	e.Initialize()
	return e, nil
}

// ID returns the engine instance identifier
func (e *Engine) ID() string {
	return e.id
}

// Table returns a copy of the engine's table
func (e *Engine) Table() Table {
	return e.table
}

// Initialize resets the cursor to the initial state
func (e *Engine) Initialize() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.current = e.initial
	e.cycles = 0
}

// Current returns the active state
func (e *Engine) Current() StateID {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.current
}

// Cycles returns the number of completed cycles since Initialize
func (e *Engine) Cycles() uint64 {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.cycles
}

// AddObserver registers an observer. It must not be called while Run is
// active.
func (e *Engine) AddObserver(observer Observer) {
	e.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer. It must not be called while Run is
// active.
func (e *Engine) RemoveObserver(observer Observer) {
	e.observers.RemoveObserver(observer)
}

// Step runs one complete cycle. If the wait is interrupted the cursor is left
// untouched and the timer's error is returned. Timer failures other than
// cancellation are also reported to observers through OnError.
func (e *Engine) Step(ctx context.Context) (*CycleResult, error) {
	from := e.Current()
	row := e.table[from]

	result := &CycleResult{
		From:       from,
		MainOutput: row.MainOutput,
		PedOutput:  row.PedOutput,
		HoldTicks:  row.HoldTicks,
		Hold:       row.Hold(e.tick),
		StartedAt:  e.now(),
	}

	e.lamps.Emit(row.MainOutput, row.PedOutput)
	e.observers.NotifyStateEnter(from, row.MainOutput, row.PedOutput)

	if err := e.timer.Wait(ctx, row.HoldTicks); err != nil {
		if ctx.Err() == nil {
			e.observers.NotifyError(err)
		}
		return nil, err
	}

	input := e.sensors.Sample().Mask()
	next := e.table.Lookup(from, input)

	e.mutex.Lock()
	e.current = next
	e.cycles++
	result.Seq = e.cycles
	e.mutex.Unlock()

	result.Input = input
	result.To = next
	result.SampledAt = e.now()

	e.observers.NotifyTransition(from, next, input)
	e.observers.NotifyCycle(result)

	return result, nil
}

// Run cycles until the timer fails, normally because ctx was cancelled, and
// returns that error. On a controller that is never cancelled it does not
// return.
func (e *Engine) Run(ctx context.Context) error {
	e.observers.NotifyEngineStarted(e.id, e.Current())

	var err error
	for err == nil {
		_, err = e.Step(ctx)
	}

	e.observers.NotifyEngineStopped(e.id, err)
	return err
}

// RunForever cycles for the lifetime of the process
func (e *Engine) RunForever() {
	_ = e.Run(context.Background())
}
