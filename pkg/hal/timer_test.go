package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepTimer_Waits(t *testing.T) {
	timer := NewSleepTimer(2 * time.Millisecond)

	start := time.Now()
	err := timer.Wait(context.Background(), 5)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSleepTimer_ZeroTicks(t *testing.T) {
	timer := NewSleepTimer(time.Hour)
	assert.NoError(t, timer.Wait(context.Background(), 0))
}

func TestSleepTimer_Cancelled(t *testing.T) {
	timer := NewSleepTimer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := timer.Wait(ctx, 1)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepTimer_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewSleepTimer(time.Millisecond).Wait(ctx, 0), context.Canceled)
}

func TestFakeTimer(t *testing.T) {
	timer := &FakeTimer{}

	assert.NoError(t, timer.Wait(context.Background(), 5))
	assert.NoError(t, timer.Wait(context.Background(), 200))
	assert.Equal(t, []uint32{5, 200}, timer.Waits())
	assert.Equal(t, uint64(205), timer.TotalTicks())

	stalled := errors.New("stalled")
	timer.Err = stalled
	assert.ErrorIs(t, timer.Wait(context.Background(), 1), stalled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, timer.Wait(ctx, 1), context.Canceled)
	assert.Len(t, timer.Waits(), 3)
}
