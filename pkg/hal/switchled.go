package hal

import (
	"context"

	"github.com/anggasct/trafficfsm"
)

// SwitchLED is the button/LED loop: while the switch reads active the LED
// toggles once per period, otherwise the LED is held on.
type SwitchLED struct {
	// Port holds the LED pin, and the switch pin unless Input is set
	Port Register
	// Input, when set, is read for the switch instead of Port
	Input Register
	// Switch is the input pin mask
	Switch uint32
	// LED is the output pin mask
	LED uint32
	// ActiveLow inverts the switch, for pull-up wiring
	ActiveLow bool
	Timer     trafficfsm.Timer
	// PeriodTicks is the toggle period in timer ticks
	PeriodTicks uint32
	// IdleTicks is waited between polls while the switch is released; zero
	// polls back to back
	IdleTicks uint32
}

// Pressed reports whether the switch is active
func (s *SwitchLED) Pressed() bool {
	in := s.Input
	if in == nil {
		in = s.Port
	}
	pressed := in.Load()&s.Switch != 0
	if s.ActiveLow {
		return !pressed
	}
	return pressed
}

// Poll runs one iteration of the loop
func (s *SwitchLED) Poll(ctx context.Context) error {
	pressed := s.Pressed()
	v := s.Port.Load()
	if !pressed {
		s.Port.Store(v | s.LED)
		if s.IdleTicks == 0 {
			return nil
		}
		return s.Timer.Wait(ctx, s.IdleTicks)
	}
	s.Port.Store(v ^ s.LED)
	return s.Timer.Wait(ctx, s.PeriodTicks)
}

// Run polls until ctx is done. The LED starts on.
func (s *SwitchLED) Run(ctx context.Context) error {
	s.Port.Store(s.Port.Load() | s.LED)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Poll(ctx); err != nil {
			return err
		}
	}
}
