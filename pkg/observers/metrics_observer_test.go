package observers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/trafficfsm"
	"github.com/anggasct/trafficfsm/pkg/hal"
)

func TestMetricsObserver_CountsEngineRun(t *testing.T) {
	metrics := NewMetricsObserver()
	ns := trafficfsm.NorthSouthCar
	engine, err := trafficfsm.NewEngine(trafficfsm.DefaultTable(), &hal.RecordingLamps{},
		hal.NewScriptedSensors(0, 0, ns, ns, ns), &hal.FakeTimer{}, trafficfsm.WithObserver(metrics))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := engine.Step(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, uint64(5), metrics.GetCycleCount())
	visits := metrics.GetStateVisitCounts()
	assert.Equal(t, 3, visits[trafficfsm.GoWest])
	assert.Equal(t, 1, visits[trafficfsm.WaitWest])
	assert.Equal(t, 1, visits[trafficfsm.GoSouth])

	assert.Equal(t, map[string]int{
		"GoWest->GoWest":    2,
		"GoWest->WaitWest":  1,
		"WaitWest->GoSouth": 1,
		"GoSouth->GoSouth":  1,
	}, metrics.GetTransitionCounts())

	inputs := metrics.GetInputCounts()
	assert.Equal(t, 2, inputs[0])
	assert.Equal(t, 3, inputs[ns])
}

func TestMetricsObserver_TimeSpent(t *testing.T) {
	metrics := NewMetricsObserver()
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	metrics.OnCycle(&trafficfsm.CycleResult{From: trafficfsm.GoWest, StartedAt: start, SampledAt: start.Add(30 * time.Millisecond)})
	metrics.OnCycle(&trafficfsm.CycleResult{From: trafficfsm.GoWest, Hold: 25 * time.Millisecond})

	assert.Equal(t, 55*time.Millisecond, metrics.GetStateTimeSpent()[trafficfsm.GoWest])
}

func TestMetricsObserver_Reset(t *testing.T) {
	metrics := NewMetricsObserver()
	metrics.OnStateEnter(trafficfsm.GoPed, 0x24, trafficfsm.Walk)
	metrics.OnTransition(trafficfsm.GoPed, trafficfsm.GoPed, trafficfsm.Pedestrian)
	metrics.OnError(errors.New("x"))
	assert.Equal(t, 1, metrics.GetErrorCount())

	metrics.Reset()

	assert.Empty(t, metrics.GetStateVisitCounts())
	assert.Empty(t, metrics.GetTransitionCounts())
	assert.Equal(t, [trafficfsm.NumInputs]int{}, metrics.GetInputCounts())
	assert.Zero(t, metrics.GetErrorCount())
	assert.Zero(t, metrics.GetCycleCount())
}
