package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator drives an Engine from an EventFeed, one tick per frame.
// Frames run from 0 to Horizon()-1 and then wrap to 0 for the next loop;
// packets still in flight at the wrap carry over, as in a repeating animation.
type Simulator struct {
	Config  SimConfig
	Engine  *Engine
	Metrics *Metrics

	feed    EventFeed
	horizon int64 // frames per loop
	frame   int64 // next frame to tick
	loop    int   // completed loops
}

// NewSimulator validates the configuration and builds the engine.
// The horizon covers every scheduled frame plus TailFrames, so each event
// time is visited exactly once per loop.
func NewSimulator(config SimConfig, feed EventFeed, sources, dests PositionTable) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, fmt.Errorf("%w: event feed is required", ErrInvalidConfiguration)
	}
	engine, err := NewEngine(config.Engine, sources, dests)
	if err != nil {
		return nil, err
	}

	horizon := feed.LastFrame() + 1 + config.TailFrames
	if horizon < 1 {
		horizon = 1
	}
	return &Simulator{
		Config:  config,
		Engine:  engine,
		Metrics: NewMetrics(),
		feed:    feed,
		horizon: horizon,
	}, nil
}

// Horizon returns the number of frames in one loop.
func (sim *Simulator) Horizon() int64 {
	return sim.horizon
}

// Frame returns the frame the next Tick will spawn for.
func (sim *Simulator) Frame() int64 {
	return sim.frame
}

// Loop returns the number of completed loops.
func (sim *Simulator) Loop() int {
	return sim.loop
}

// Done reports whether all configured loops have been played.
func (sim *Simulator) Done() bool {
	return sim.loop >= sim.Config.Loops
}

// Tick plays one frame: spawn for the frame's events, then advance every packet.
// An unresolvable node id aborts the tick before any motion and leaves the
// frame counter unchanged; the error wraps ErrUnknownNodeID.
func (sim *Simulator) Tick() (Snapshot, error) {
	frame := sim.frame
	spawned, err := sim.Engine.SpawnForFrame(frame, sim.feed.EventsAt(frame))
	if err != nil {
		return Snapshot{}, err
	}
	sim.Metrics.PacketsSpawned += len(spawned)

	for _, pv := range sim.Engine.AdvanceAll() {
		sim.Metrics.recordRetirement(pv)
	}

	snap := sim.Engine.Snapshot()
	sim.Metrics.recordTick(snap.Len())
	logrus.Tracef("tick %d frame %d: spawned=%d live=%d", snap.Tick, frame, len(spawned), snap.Len())

	sim.frame++
	if sim.frame >= sim.horizon {
		sim.frame = 0
		sim.loop++
		sim.Metrics.Loops = sim.loop
		logrus.Infof("loop %d/%d complete at tick %d, %d packets in flight", sim.loop, sim.Config.Loops, snap.Tick, snap.Len())
	}
	return snap, nil
}

// Run ticks until Done, calling observe (if non-nil) with each snapshot.
// Stops at the first tick or observer error.
func (sim *Simulator) Run(observe func(Snapshot) error) error {
	for !sim.Done() {
		snap, err := sim.Tick()
		if err != nil {
			return err
		}
		if observe != nil {
			if err := observe(snap); err != nil {
				return fmt.Errorf("observing tick %d: %w", snap.Tick, err)
			}
		}
	}
	sim.Metrics.FinalLive = sim.Engine.Len()
	return nil
}
