package hal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pe0 = 0x01
	pe1 = 0x02
)

func newSwitchLED(port *MemoryRegister, timer *FakeTimer) *SwitchLED {
	return &SwitchLED{
		Port:        port,
		Switch:      pe0,
		LED:         pe1,
		Timer:       timer,
		PeriodTicks: 100,
	}
}

func TestSwitchLED_TogglesWhilePressed(t *testing.T) {
	var port MemoryRegister
	timer := &FakeTimer{}
	s := newSwitchLED(&port, timer)
	port.Store(pe0 | pe1)

	require.NoError(t, s.Poll(context.Background()))
	assert.Equal(t, uint32(pe0), port.Load())

	require.NoError(t, s.Poll(context.Background()))
	assert.Equal(t, uint32(pe0|pe1), port.Load())
	assert.Equal(t, []uint32{100, 100}, timer.Waits())
}

func TestSwitchLED_HoldsOnWhenReleased(t *testing.T) {
	var port MemoryRegister
	timer := &FakeTimer{}
	s := newSwitchLED(&port, timer)

	require.NoError(t, s.Poll(context.Background()))
	assert.Equal(t, uint32(pe1), port.Load())
	assert.Empty(t, timer.Waits())

	s.IdleTicks = 2
	require.NoError(t, s.Poll(context.Background()))
	assert.Equal(t, []uint32{2}, timer.Waits())
}

func TestSwitchLED_ActiveLowAndSeparateInput(t *testing.T) {
	var port, input MemoryRegister
	s := newSwitchLED(&port, &FakeTimer{})
	s.Input = &input
	s.ActiveLow = true

	input.Store(pe0)
	assert.False(t, s.Pressed())

	input.Store(0)
	assert.True(t, s.Pressed())
}

func TestSwitchLED_RunStopsOnCancel(t *testing.T) {
	var port MemoryRegister
	timer := &FakeTimer{}
	s := newSwitchLED(&port, timer)
	port.Store(pe0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint32(pe0|pe1), port.Load(), "LED starts on")
}
