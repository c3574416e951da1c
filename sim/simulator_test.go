package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T, cfg SimConfig, feed EventFeed) *Simulator {
	t.Helper()
	src, dst := testTables(
		[]Point{{X: 0.75, Y: 8}, {X: 2.75, Y: 8}},
		[]Point{{X: 0.75, Y: 1}, {X: 2.75, Y: 1}})
	s, err := NewSimulator(cfg, feed, src, dst)
	require.NoError(t, err)
	return s
}

func TestNewSimulator_Horizon_CoversLastEventPlusTail(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.TailFrames = 3
	s := newTestSimulator(t, cfg, sliceFeed{{Time: 0}, {Time: 2}})

	assert.Equal(t, int64(6), s.Horizon())
}

func TestNewSimulator_EmptyFeed_HorizonAtLeastOne(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.TailFrames = 0
	s := newTestSimulator(t, cfg, sliceFeed{})

	assert.Equal(t, int64(1), s.Horizon())
}

func TestNewSimulator_InvalidConfig_Rejected(t *testing.T) {
	src, dst := testTables([]Point{{}}, []Point{{}})
	cfg := DefaultSimConfig()
	cfg.Engine.StepSize = -1

	_, err := NewSimulator(cfg, sliceFeed{}, src, dst)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewSimulator(DefaultSimConfig(), nil, src, dst)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSimulator_Tick_SpawnsThenAdvances(t *testing.T) {
	// GIVEN one event at frame 0
	s := newTestSimulator(t, DefaultSimConfig(), sliceFeed{{Time: 0, SourceID: 1, DestID: 0}})

	// WHEN the first tick runs
	snap, err := s.Tick()
	require.NoError(t, err)

	// THEN the packet was spawned and already moved one step
	require.Equal(t, 1, snap.Len())
	assert.Len(t, snap.Packets[0].Trail, 2)
	assert.Equal(t, Point{X: 2.75, Y: 7.5}, snap.Packets[0].Position)
	assert.Equal(t, int64(0), snap.Frame)
	assert.Equal(t, int64(1), s.Frame())
}

func TestSimulator_Run_LoopsWrapFrames(t *testing.T) {
	// GIVEN a horizon of 6 frames played twice
	cfg := DefaultSimConfig()
	cfg.TailFrames = 3
	cfg.Loops = 2
	cfg.Engine.StepSize = 100
	s := newTestSimulator(t, cfg, sliceFeed{{Time: 0, SourceID: 0, DestID: 1}, {Time: 2, SourceID: 1, DestID: 0}})

	var frames []int64
	err := s.Run(func(snap Snapshot) error {
		frames = append(frames, snap.Frame)
		return nil
	})
	require.NoError(t, err)

	// THEN each loop replays frames 0..5 and each event spawns once per loop
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5}, frames)
	assert.True(t, s.Done())
	assert.Equal(t, 2, s.Loop())
	assert.Equal(t, int64(12), s.Metrics.Ticks)
	assert.Equal(t, 2, s.Metrics.Loops)
	assert.Equal(t, 4, s.Metrics.PacketsSpawned)
	assert.Equal(t, 4, s.Metrics.PacketsRetired)
	assert.Equal(t, 0, s.Metrics.FinalLive)
	assert.Equal(t, 3.0, s.Metrics.MeanLifetime())
}

func TestSimulator_Run_PacketsCarryOverLoopBoundary(t *testing.T) {
	// GIVEN a packet that needs more passes than the loop has frames
	cfg := DefaultSimConfig()
	cfg.TailFrames = 1
	cfg.Loops = 1
	s := newTestSimulator(t, cfg, sliceFeed{{Time: 0}})

	require.NoError(t, s.Run(nil))

	// THEN it is still in flight when the loop wraps
	assert.Equal(t, 1, s.Metrics.FinalLive)
	assert.Equal(t, 1, s.Engine.Len())
	assert.Equal(t, int64(0), s.Frame())
}

func TestSimulator_Tick_UnknownNode_AbortsTick(t *testing.T) {
	s := newTestSimulator(t, DefaultSimConfig(), sliceFeed{{Time: 0, SourceID: 9, DestID: 0}})

	_, err := s.Tick()

	assert.True(t, errors.Is(err, ErrUnknownNodeID))
	// Frame counter and engine clock are untouched
	assert.Equal(t, int64(0), s.Frame())
	assert.Equal(t, int64(0), s.Engine.Tick())
	assert.Equal(t, int64(0), s.Metrics.Ticks)
}

func TestSimulator_Run_ObserverError_Stops(t *testing.T) {
	s := newTestSimulator(t, DefaultSimConfig(), sliceFeed{{Time: 0}})
	stop := errors.New("stop")

	calls := 0
	err := s.Run(func(Snapshot) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
