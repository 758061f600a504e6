package trafficfsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIntersection() TableBuilder {
	allRed := Lamps(Red, Red)
	noCars := func(in InputVector) bool { return in&(EastWestCar|NorthSouthCar) == 0 }

	b := NewTableBuilder()
	b.State(GoWest).Outputs(Lamps(Green, Red), DontWalk).
		ToSelf().On(0, EastWestCar).
		To(WaitWest).Otherwise().
		State(WaitWest).Outputs(Lamps(Yellow, Red), DontWalk).
		To(GoPed).On(Pedestrian, Pedestrian|EastWestCar).
		To(GoSouth).Otherwise().
		State(GoSouth).Outputs(Lamps(Red, Green), DontWalk).
		ToSelf().On(0, NorthSouthCar).
		To(WaitSouth).Otherwise().
		State(WaitSouth).Outputs(Lamps(Red, Yellow), DontWalk).
		To(GoWest).On(EastWestCar, EastWestCar|NorthSouthCar).
		To(GoPed).Otherwise().
		State(GoPed).Outputs(allRed, Walk).
		ToSelf().When(noCars).
		To(PedFlashOff1).Otherwise().
		State(PedFlashOff1).Outputs(allRed, 0).Always(PedFlashOn1).
		State(PedFlashOn1).Outputs(allRed, DontWalk).Always(PedFlashOff2).
		State(PedFlashOff2).Outputs(allRed, 0).Always(PedFlashOn2).
		State(PedFlashOn2).Outputs(allRed, DontWalk).Always(GoWest)
	return b
}

func TestTableBuilder_ReproducesDefaultTable(t *testing.T) {
	table, err := buildIntersection().Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultTable(), table)
}

func TestTableBuilder_DeclarationOrderWins(t *testing.T) {
	b := buildIntersection()
	// GoWest already sends input 1 to itself, so the added transition only
	// claims inputs nothing earlier accepted, and there are none left.
	b.State(GoWest).Hold(200).To(GoPed).On(EastWestCar)

	table, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, GoWest, table.Lookup(GoWest, EastWestCar))
	assert.Equal(t, uint32(200), table[GoWest].HoldTicks)
}

func TestTableBuilder_Guards(t *testing.T) {
	table, err := buildIntersection().Build()
	require.NoError(t, err)

	edges := table.Successors(GoPed)
	require.Len(t, edges, 2)
	assert.Equal(t, []InputVector{0, 4}, edges[0].Inputs)
}

func TestTableBuilder_UncoveredInputs(t *testing.T) {
	incomplete := NewTableBuilder()
	incomplete.State(GoWest).Outputs(Lamps(Green, Red), DontWalk).ToSelf().On(0)

	_, err := incomplete.Build()
	require.Error(t, err)

	var tableErr *TableError
	require.True(t, errors.As(err, &tableErr))
	assert.Equal(t, GoWest, tableErr.State)
	assert.Equal(t, InputVector(1), tableErr.Input)
	assert.Equal(t, ErrCodeIncompleteTable, tableErr.Code)
}

func TestTableBuilder_InvalidState(t *testing.T) {
	b := buildIntersection()
	b.State(StateID(15)).Always(GoWest)

	_, err := b.Build()
	assert.True(t, IsStateError(err))
}

func TestTableBuilder_UnsafeRowRejected(t *testing.T) {
	b := buildIntersection()
	b.State(GoSouth).Outputs(Lamps(Green, Green), DontWalk)

	_, err := b.Build()
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnsafeOutput, GetErrorCode(err))
}

func TestDemand(t *testing.T) {
	guard := Demand(EastWestCar | Pedestrian)
	assert.True(t, guard(7))
	assert.True(t, guard(5))
	assert.False(t, guard(4))
}
