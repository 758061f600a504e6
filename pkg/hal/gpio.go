package hal

import (
	"sync/atomic"

	"github.com/anggasct/trafficfsm"
)

// Register is a 32-bit GPIO data register
type Register interface {
	Load() uint32
	Store(value uint32)
}

// MemoryRegister is a Register backed by memory, safe for concurrent use
type MemoryRegister struct {
	value atomic.Uint32
}

// Load returns the register value
func (r *MemoryRegister) Load() uint32 {
	return r.value.Load()
}

// Store replaces the register value
func (r *MemoryRegister) Store(value uint32) {
	r.value.Store(value)
}

// SetBits sets the bits of mask, leaving the others untouched
func (r *MemoryRegister) SetBits(mask uint32) {
	for {
		old := r.value.Load()
		if r.value.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

// ClearBits clears the bits of mask, leaving the others untouched
func (r *MemoryRegister) ClearBits(mask uint32) {
	for {
		old := r.value.Load()
		if r.value.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

// Pin masks of the intersection wiring
const (
	// PortBLampMask covers PB5..PB0: east-west red, yellow, green then
	// north-south red, yellow, green
	PortBLampMask uint32 = 0x3F
	// PortFDontWalk is PF1
	PortFDontWalk uint32 = 0x02
	// PortFWalk is PF3
	PortFWalk uint32 = 0x08
	// PortESensorMask covers PE2..PE0: pedestrian, north-south car, east-west car
	PortESensorMask uint32 = 0x07
)

// GPIOLamps drives the vehicle lamps on port B and the pedestrian lamps on
// port F. Bits outside the lamp pins are preserved.
type GPIOLamps struct {
	PortB Register
	PortF Register
}

// Emit writes both lamp words to their ports
func (l *GPIOLamps) Emit(main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	b := l.PortB.Load()&^PortBLampMask | uint32(main)&PortBLampMask
	l.PortB.Store(b)

	var f uint32
	if ped.DontWalk() {
		f |= PortFDontWalk
	}
	if ped.Walk() {
		f |= PortFWalk
	}
	l.PortF.Store(l.PortF.Load()&^(PortFDontWalk|PortFWalk) | f)
}

// GPIOSensors reads the three sensors from port E
type GPIOSensors struct {
	PortE Register
}

// Sample returns PE2..PE0 as an input vector
func (s *GPIOSensors) Sample() trafficfsm.InputVector {
	return trafficfsm.InputVector(s.PortE.Load() & PortESensorMask)
}
