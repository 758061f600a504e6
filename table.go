package trafficfsm

import "fmt"

// DefaultHoldTicks is the hold time of every state in the default table
const DefaultHoldTicks = 5

// Table is the complete controller: one row per StateID
type Table [NumStates]State

// DefaultTable returns the intersection table. Rows for GoWest, WaitWest,
// GoSouth, WaitSouth and GoPed read the input; the four flash rows do not.
func DefaultTable() Table {
	var (
		goWestLamps  = Lamps(Green, Red)
		waitWestLamp = Lamps(Yellow, Red)
		goSouthLamps = Lamps(Red, Green)
		waitSouth    = Lamps(Red, Yellow)
		allRed       = Lamps(Red, Red)
	)

	return Table{
		GoWest: {
			MainOutput: goWestLamps,
			PedOutput:  DontWalk,
			HoldTicks:  DefaultHoldTicks,
			Next:       [NumInputs]StateID{GoWest, GoWest, WaitWest, WaitWest, WaitWest, WaitWest, WaitWest, WaitWest},
		},
		WaitWest: {
			MainOutput: waitWestLamp,
			PedOutput:  DontWalk,
			HoldTicks:  DefaultHoldTicks,
			Next:       [NumInputs]StateID{GoSouth, GoSouth, GoSouth, GoSouth, GoPed, GoPed, GoSouth, GoSouth},
		},
		GoSouth: {
			MainOutput: goSouthLamps,
			PedOutput:  DontWalk,
			HoldTicks:  DefaultHoldTicks,
			Next:       [NumInputs]StateID{GoSouth, WaitSouth, GoSouth, WaitSouth, WaitSouth, WaitSouth, WaitSouth, WaitSouth},
		},
		WaitSouth: {
			MainOutput: waitSouth,
			PedOutput:  DontWalk,
			HoldTicks:  DefaultHoldTicks,
			Next:       [NumInputs]StateID{GoPed, GoWest, GoPed, GoWest, GoPed, GoPed, GoPed, GoPed},
		},
		GoPed: {
			MainOutput: allRed,
			PedOutput:  Walk,
			HoldTicks:  DefaultHoldTicks,
			Next:       [NumInputs]StateID{GoPed, PedFlashOff1, PedFlashOff1, PedFlashOff1, GoPed, PedFlashOff1, PedFlashOff1, PedFlashOff1},
		},
		PedFlashOff1: {MainOutput: allRed, PedOutput: 0, HoldTicks: DefaultHoldTicks, Next: always(PedFlashOn1)},
		PedFlashOn1:  {MainOutput: allRed, PedOutput: DontWalk, HoldTicks: DefaultHoldTicks, Next: always(PedFlashOff2)},
		PedFlashOff2: {MainOutput: allRed, PedOutput: 0, HoldTicks: DefaultHoldTicks, Next: always(PedFlashOn2)},
		PedFlashOn2:  {MainOutput: allRed, PedOutput: DontWalk, HoldTicks: DefaultHoldTicks, Next: always(GoWest)},
	}
}

// Lookup returns the successor of s for the masked input. The table must
// have passed Validate.
func (t *Table) Lookup(s StateID, in InputVector) StateID {
	return t[s].Next[in.Mask()]
}

// Validate checks that the table is closed (every successor is a row), that
// every row holds for at least one tick, and that no row asserts an unsafe
// lamp combination. Totality holds by construction: every row carries exactly
// NumInputs successors.
func (t *Table) Validate() error {
	collector := NewErrorCollector()

	for _, id := range AllStates() {
		row := t[id]

		for in, next := range row.Next {
			if !next.IsValid() {
				collector.Add(NewDanglingTransitionError(id, InputVector(in), next))
			}
		}

		if row.HoldTicks == 0 {
			collector.Add(NewTableError(ErrCodeInvalidHoldTime, id, "hold time must be at least one tick"))
		}

		if reason := row.MainOutput.Conflicts(); reason != "" {
			collector.Add(NewTableError(ErrCodeUnsafeOutput, id, reason))
		}

		if row.PedOutput&^PedMask != 0 {
			collector.Add(NewTableError(ErrCodeUnsafeOutput, id,
				fmt.Sprintf("pedestrian pattern 0x%X drives bits outside the pedestrian mask", uint8(row.PedOutput))))
		}

		if row.PedOutput.Walk() {
			if row.PedOutput.DontWalk() {
				collector.Add(NewTableError(ErrCodeUnsafeOutput, id, "walk and don't-walk lit together"))
			}
			if !row.MainOutput.AllRed() {
				collector.Add(NewTableError(ErrCodeUnsafeOutput, id,
					fmt.Sprintf("walk shown while vehicles see %s", row.MainOutput)))
			}
		}
	}

	return collector.Err()
}

// Successors returns the distinct successors of s with the input codes that
// select each, ordered by the lowest such code.
func (t *Table) Successors(s StateID) []Edge {
	var edges []Edge
	index := make(map[StateID]int)
	for in, next := range t[s].Next {
		i, ok := index[next]
		if !ok {
			i = len(edges)
			index[next] = i
			edges = append(edges, Edge{From: s, To: next})
		}
		edges[i].Inputs = append(edges[i].Inputs, InputVector(in))
	}
	return edges
}

// Edge groups the input codes that move From to To
type Edge struct {
	From   StateID
	To     StateID
	Inputs []InputVector
}

// Unconditional reports whether every input code takes this edge
func (e Edge) Unconditional() bool {
	return len(e.Inputs) == NumInputs
}
