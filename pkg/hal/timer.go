// Package hal provides the host-side collaborators of the traffic light
// engine: a tick timer, register-backed GPIO lamps and sensors, and
// scripted or recording stand-ins for tests and simulations.
package hal

import (
	"context"
	"sync"
	"time"
)

// SleepTimer waits ticks × Quantum on the monotonic clock
type SleepTimer struct {
	Quantum time.Duration
}

// NewSleepTimer creates a timer with the given tick quantum
func NewSleepTimer(quantum time.Duration) *SleepTimer {
	return &SleepTimer{Quantum: quantum}
}

// Wait blocks for ticks quanta or until ctx is done
func (t *SleepTimer) Wait(ctx context.Context, ticks uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ticks == 0 {
		return nil
	}

	timer := time.NewTimer(time.Duration(ticks) * t.Quantum)
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	}
}

// FakeTimer returns immediately and records every requested wait
type FakeTimer struct {
	mutex sync.Mutex
	waits []uint32

	// Err, when set, is returned by every Wait
	Err error
}

// Wait records ticks and honours ctx cancellation
func (t *FakeTimer) Wait(ctx context.Context, ticks uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.waits = append(t.waits, ticks)
	return t.Err
}

// Waits returns the recorded tick counts
func (t *FakeTimer) Waits() []uint32 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	out := make([]uint32, len(t.waits))
	copy(out, t.waits)
	return out
}

// TotalTicks sums the recorded waits
func (t *FakeTimer) TotalTicks() uint64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	var total uint64
	for _, w := range t.waits {
		total += uint64(w)
	}
	return total
}
