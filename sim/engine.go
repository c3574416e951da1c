package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/packetflow/sim/trace"
)

// Engine owns the live packet set. Each tick the driver calls SpawnForFrame
// followed by AdvanceAll; neither call may overlap another.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Engine struct {
	config  EngineConfig
	sources PositionTable
	dests   PositionTable

	live   []*Packet
	nextID PacketID
	tick   int64 // completed AdvanceAll passes
	frame  int64 // frame of the most recent spawn pass

	trace *trace.LifecycleTrace
}

// NewEngine creates an engine with an empty live set. Fails with
// ErrInvalidConfiguration before any packet can exist.
func NewEngine(config EngineConfig, sources, dests PositionTable) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sources == nil || dests == nil {
		return nil, fmt.Errorf("%w: source and destination tables are required", ErrInvalidConfiguration)
	}
	return &Engine{
		config:  config,
		sources: sources,
		dests:   dests,
		live:    make([]*Packet, 0),
		frame:   -1,
	}, nil
}

// SetTrace attaches a lifecycle trace. A nil trace disables recording.
func (e *Engine) SetTrace(t *trace.LifecycleTrace) {
	e.trace = t
}

// Config returns the engine's motion parameters.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Tick returns the number of completed advance passes.
func (e *Engine) Tick() int64 {
	return e.tick
}

// Len returns the number of live packets.
func (e *Engine) Len() int {
	return len(e.live)
}

// SpawnForFrame creates one packet per event, anchored at the resolved source
// and destination positions. events must be exactly those scheduled for frame.
//
// Every event is resolved before any packet is created: if an id is missing
// from its table the whole spawn pass is aborted, no packet is added, and an
// *UnknownNodeError is returned. Existing packets are never touched.
func (e *Engine) SpawnForFrame(frame int64, events []TransferEvent) ([]PacketID, error) {
	e.frame = frame
	if len(events) == 0 {
		return nil, nil
	}

	type anchors struct{ src, dst Point }
	resolved := make([]anchors, len(events))
	for i, ev := range events {
		src, err := e.sources.PositionOf(ev.SourceID)
		if err != nil {
			return nil, e.abortSpawn(frame, RoleSource, ev.SourceID, err)
		}
		dst, err := e.dests.PositionOf(ev.DestID)
		if err != nil {
			return nil, e.abortSpawn(frame, RoleDestination, ev.DestID, err)
		}
		resolved[i] = anchors{src: src, dst: dst}
	}

	ids := make([]PacketID, 0, len(events))
	for i, ev := range events {
		e.nextID++
		p := newPacket(e.nextID, ev, resolved[i].src, resolved[i].dst, e.config.TurnRatio, e.tick)
		e.live = append(e.live, p)
		ids = append(ids, p.id)

		logrus.Debugf("<< Spawn: packet %d %d→%d at frame %d, turn at %s", p.id, ev.SourceID, ev.DestID, frame, p.turnPoint)
		if e.trace != nil {
			e.trace.RecordSpawn(trace.SpawnRecord{
				PacketID: int64(p.id),
				Tick:     e.tick,
				Frame:    frame,
				SourceID: ev.SourceID,
				DestID:   ev.DestID,
			})
		}
	}
	return ids, nil
}

// abortSpawn normalizes a resolution failure into an *UnknownNodeError carrying the frame.
func (e *Engine) abortSpawn(frame int64, role NodeRole, id int, cause error) error {
	logrus.Warnf("spawn aborted at frame %d: %v", frame, cause)
	if errors.Is(cause, ErrUnknownNodeID) {
		return &UnknownNodeError{Role: role, ID: id, Frame: frame}
	}
	return fmt.Errorf("frame %d: resolving %s %d: %w", frame, role, id, cause)
}

// AdvanceAll moves every live packet one step and retires the packets that
// reached their destination. Returns the final views of the retired packets.
//
// The pass walks the live set as it was at the start of the call; survivors
// are collected into a fresh slice, so removals never shift an unvisited packet.
func (e *Engine) AdvanceAll() []PacketView {
	visiting := e.live
	survivors := make([]*Packet, 0, len(visiting))
	var retired []PacketView

	for _, p := range visiting {
		before := p.phase
		p.advance(e.config.StepSize)

		if e.trace != nil && p.phase != before {
			e.trace.RecordPhase(trace.PhaseRecord{
				PacketID: int64(p.id),
				Tick:     e.tick + 1,
				From:     before.String(),
				To:       p.phase.String(),
			})
		}

		if p.finished {
			retired = append(retired, p.view(e.tick+1))
			e.recordRetire(p)
			continue
		}
		survivors = append(survivors, p)
	}

	e.live = survivors
	e.tick++
	return retired
}

func (e *Engine) recordRetire(p *Packet) {
	lifetime := e.tick + 1 - p.spawnTick
	logrus.Debugf(">> Retire: packet %d at %s after %d ticks", p.id, p.position, lifetime)
	if e.trace == nil {
		return
	}
	e.trace.RecordRetire(trace.RetireRecord{
		PacketID:    int64(p.id),
		Tick:        e.tick + 1,
		Frame:       e.frame,
		SourceID:    p.sourceID,
		DestID:      p.destID,
		Lifetime:    lifetime,
		TrailLength: len(p.trail),
	})
}

// Snapshot copies the live set in spawn order.
func (e *Engine) Snapshot() Snapshot {
	packets := make([]PacketView, 0, len(e.live))
	for _, p := range e.live {
		packets = append(packets, p.view(e.tick))
	}
	return Snapshot{Tick: e.tick, Frame: e.frame, Packets: packets}
}
