package sim

import (
	"fmt"
	"math"
)

// PacketID identifies a packet from spawn until retirement. IDs are assigned
// sequentially per Engine starting at 1 and are never reused.
type PacketID int64

// Phase is the active leg of a packet's elbow path.
type Phase int

const (
	PhaseToTurn        Phase = iota // vertical move toward the turn point's y
	PhaseAcross                     // horizontal move toward the destination's x
	PhaseToDestination              // vertical move toward the destination's y
)

func (ph Phase) String() string {
	switch ph {
	case PhaseToTurn:
		return "to-turn"
	case PhaseAcross:
		return "across"
	case PhaseToDestination:
		return "to-destination"
	default:
		return fmt.Sprintf("phase(%d)", int(ph))
	}
}

// Packet is a single in-flight transfer. Only the owning Engine mutates it;
// readers go through Snapshot.
type Packet struct {
	id         PacketID
	sourceID   int
	destID     int
	spawnFrame int64
	spawnTick  int64

	position    Point
	turnPoint   Point
	destination Point
	phase       Phase
	trail       []Point
	finished    bool
}

func newPacket(id PacketID, ev TransferEvent, src, dst Point, turnRatio float64, tick int64) *Packet {
	return &Packet{
		id:          id,
		sourceID:    ev.SourceID,
		destID:      ev.DestID,
		spawnFrame:  ev.Time,
		spawnTick:   tick,
		position:    src,
		turnPoint:   Point{X: src.X, Y: src.Y + turnRatio*(dst.Y-src.Y)},
		destination: dst,
		phase:       PhaseToTurn,
		trail:       []Point{src},
	}
}

// moveCoordinate advances current one step toward target. Within one step of
// the target it snaps exactly onto it and reports arrival.
func moveCoordinate(current, target, stepSize float64) (float64, bool) {
	if math.Abs(current-target) <= stepSize {
		return target, true
	}
	if target > current {
		return current + stepSize, false
	}
	return current - stepSize, false
}

// advance moves the packet one step along its active leg and appends the new
// position to the trail. Reports whether the active leg completed.
func (p *Packet) advance(stepSize float64) bool {
	var arrived bool
	switch p.phase {
	case PhaseToTurn:
		p.position.Y, arrived = moveCoordinate(p.position.Y, p.turnPoint.Y, stepSize)
	case PhaseAcross:
		p.position.X, arrived = moveCoordinate(p.position.X, p.destination.X, stepSize)
	case PhaseToDestination:
		p.position.Y, arrived = moveCoordinate(p.position.Y, p.destination.Y, stepSize)
	}
	p.trail = append(p.trail, p.position)

	if arrived {
		if p.phase == PhaseToDestination {
			p.finished = true
		} else {
			p.phase++
		}
	}
	return arrived
}

// view copies the packet's observable state as of the given engine tick.
func (p *Packet) view(tick int64) PacketView {
	trail := make([]Point, len(p.trail))
	copy(trail, p.trail)
	return PacketView{
		ID:          p.id,
		SourceID:    p.sourceID,
		DestID:      p.destID,
		SpawnFrame:  p.spawnFrame,
		Position:    p.position,
		TurnPoint:   p.turnPoint,
		Destination: p.destination,
		Phase:       p.phase,
		Trail:       trail,
		Finished:    p.finished,
		Age:         tick - p.spawnTick,
	}
}

func (p *Packet) String() string {
	return fmt.Sprintf("Packet{ID: %d, Phase: %s, Position: %s}", p.id, p.phase, p.position)
}
