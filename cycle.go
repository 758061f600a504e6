package trafficfsm

import (
	"fmt"
	"time"
)

// CycleResult records one pass of emit, wait, sample and transition
type CycleResult struct {
	Seq        uint64
	From       StateID
	To         StateID
	Input      InputVector
	MainOutput LampPattern
	PedOutput  PedPattern
	HoldTicks  uint32
	Hold       time.Duration
	StartedAt  time.Time
	SampledAt  time.Time
}

// StateChanged reports whether the cycle moved the cursor to another state
func (r *CycleResult) StateChanged() bool {
	return r.From != r.To
}

func (r *CycleResult) String() string {
	return fmt.Sprintf("#%d %s [%s | %s] input=%s -> %s", r.Seq, r.From, r.MainOutput, r.PedOutput, r.Input, r.To)
}
