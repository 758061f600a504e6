// Package trafficfsm implements a table-driven Moore state machine for a
// four-way intersection with a pedestrian crossing. Each state of the table
// fixes the vehicle and pedestrian lamp outputs, how long they are held, and
// the successor for each of the eight sensor input codes.
package trafficfsm

import "time"

// Ticks converts a duration into whole ticks of the quantum, rounding down
func Ticks(d, tick time.Duration) uint32 {
	if tick <= 0 || d <= 0 {
		return 0
	}
	return uint32(d / tick)
}
