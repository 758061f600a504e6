package visualization_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/trafficfsm"
	"github.com/anggasct/trafficfsm/visualization"
)

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator(trafficfsm.DefaultTable(), trafficfsm.GoWest)

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "digraph TrafficLight")
	for _, id := range trafficfsm.AllStates() {
		assert.Contains(t, dotContent, "\""+id.String()+"\" [", "missing node for %s", id)
	}

	assert.Contains(t, dotContent, "GoWest\\n(initial)")
	assert.Contains(t, dotContent, "\"GoWest\" -> \"GoWest\" [style=solid label=\"0,1\"];")
	assert.Contains(t, dotContent, "\"GoWest\" -> \"WaitWest\" [style=solid label=\"2,3,4,5,6,7\"];")
	assert.Contains(t, dotContent, "\"PedFlashOn2\" -> \"GoWest\" [style=solid];")

	t.Logf("Generated DOT content:\n%s", dotContent)
}

func TestDOTGeneration_FlashStatesDashed(t *testing.T) {
	dotContent, err := visualization.NewDOTGenerator(trafficfsm.DefaultTable(), trafficfsm.GoWest).Generate()
	require.NoError(t, err)

	for _, line := range strings.Split(dotContent, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "\"PedFlash") && strings.Contains(line, "fillcolor") {
			assert.Contains(t, line, "filled,dashed")
		}
	}
	assert.Contains(t, dotContent, "\"GoPed\" [style=\"filled\" fillcolor=lightgreen")
}

func TestDOTGeneration_CompactOptions(t *testing.T) {
	opts := visualization.DefaultDOTOptions()
	opts.ShowOutputs = false
	opts.ShowHoldTicks = false
	opts.ShowInputCodes = false
	opts.RankDirection = "TB"

	dotContent, err := visualization.NewDOTGenerator(trafficfsm.DefaultTable(), trafficfsm.GoWest, opts).Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "rankdir=TB;")
	assert.NotContains(t, dotContent, "hold=")
	assert.NotContains(t, dotContent, "label=\"0,1\"")
}

func TestDOTGeneration_RejectsInvalidTable(t *testing.T) {
	table := trafficfsm.DefaultTable()
	table[trafficfsm.GoPed].Next[3] = trafficfsm.StateID(42)

	_, err := visualization.NewDOTGenerator(table, trafficfsm.GoWest).Generate()
	require.Error(t, err)
	assert.True(t, trafficfsm.IsTableError(err))
}

func TestDOTGenerator_GenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.dot")

	err := visualization.NewDOTGenerator(trafficfsm.DefaultTable(), trafficfsm.GoWest).GenerateToFile(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph TrafficLight {"))
}
