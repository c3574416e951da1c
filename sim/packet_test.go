package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveCoordinate_WithinStep_SnapsToTarget(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
	}{
		{"exactly one step below", 5.5, 6},
		{"exactly one step above", 6.5, 6},
		{"less than a step", 6.2, 6},
		{"already there", 6, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, arrived := moveCoordinate(tc.current, tc.target, 0.5)
			assert.True(t, arrived)
			assert.Equal(t, tc.target, got)
		})
	}
}

func TestMoveCoordinate_BeyondStep_MovesTowardTarget(t *testing.T) {
	got, arrived := moveCoordinate(8, 6, 0.5)
	assert.False(t, arrived)
	assert.Equal(t, 7.5, got)

	got, arrived = moveCoordinate(0.75, 4.75, 0.5)
	assert.False(t, arrived)
	assert.Equal(t, 1.25, got)
}

func TestNewPacket_InitialState(t *testing.T) {
	// GIVEN a source above its destination and the default turn ratio
	src := Point{X: 0.75, Y: 8}
	dst := Point{X: 4.75, Y: 1}

	p := newPacket(1, TransferEvent{Time: 3, SourceID: 0, DestID: 2}, src, dst, 0.25, 0)

	// THEN the packet starts at the source in phase 0 with a one-point trail
	assert.Equal(t, src, p.position)
	assert.Equal(t, PhaseToTurn, p.phase)
	assert.Equal(t, []Point{src}, p.trail)
	assert.False(t, p.finished)
	// AND the turn point is a quarter of the way down, directly below the source
	assert.Equal(t, Point{X: 0.75, Y: 6.25}, p.turnPoint)
	assert.Equal(t, dst, p.destination)
}

func TestPacket_Advance_MovesOneAxisPerPhase(t *testing.T) {
	p := newPacket(1, TransferEvent{}, Point{X: 0, Y: 2}, Point{X: 2, Y: 0}, 0.5, 0)
	// turn point (0, 1), step 1: one pass per leg

	p.advance(1)
	assert.Equal(t, Point{X: 0, Y: 1}, p.position, "phase 0 moves only y")
	assert.Equal(t, PhaseAcross, p.phase)

	p.advance(1)
	assert.Equal(t, Point{X: 1, Y: 1}, p.position, "phase 1 moves only x")
	assert.Equal(t, PhaseAcross, p.phase)

	p.advance(1)
	assert.Equal(t, Point{X: 2, Y: 1}, p.position)
	assert.Equal(t, PhaseToDestination, p.phase)

	p.advance(1)
	assert.Equal(t, Point{X: 2, Y: 0}, p.position, "phase 2 moves only y")
	assert.True(t, p.finished)
	assert.Len(t, p.trail, 5)
}

func TestPacket_ZeroLengthFirstLeg_CompletesOnFirstPass(t *testing.T) {
	// GIVEN turn ratio 0 so the turn point coincides with the source
	p := newPacket(1, TransferEvent{}, Point{X: 0, Y: 8}, Point{X: 2, Y: 1}, 0, 0)

	arrived := p.advance(0.5)

	// THEN the first pass completes phase 0 without moving
	assert.True(t, arrived)
	assert.Equal(t, PhaseAcross, p.phase)
	assert.Equal(t, Point{X: 0, Y: 8}, p.position)
	assert.Len(t, p.trail, 2)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "to-turn", PhaseToTurn.String())
	assert.Equal(t, "across", PhaseAcross.String())
	assert.Equal(t, "to-destination", PhaseToDestination.String())
	assert.Equal(t, "phase(7)", Phase(7).String())
}
