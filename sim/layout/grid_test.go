package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/packetflow/sim"
)

func TestBuildGrid_DefaultConfig_AnchorsMatchBoxEdges(t *testing.T) {
	// GIVEN two CPUs and three caches on the default grid
	g, err := BuildGrid(2, 3, GridConfig{})
	require.NoError(t, err)

	// THEN source anchors sit on the bottom-center of the y=8 boxes
	p, err := g.Sources.PositionOf(1)
	require.NoError(t, err)
	assert.Equal(t, sim.Point{X: 2.75, Y: 8}, p)

	// AND destination anchors sit on the top-center of the y=0 boxes
	p, err = g.Destinations.PositionOf(2)
	require.NoError(t, err)
	assert.Equal(t, sim.Point{X: 4.75, Y: 1}, p)

	assert.Equal(t, 2, g.Sources.Len())
	assert.Equal(t, 3, g.Destinations.Len())
	assert.Len(t, g.Boxes, 5)
}

func TestBuildGrid_Labels_AreOneBased(t *testing.T) {
	g, err := BuildGrid(1, 1, GridConfig{})
	require.NoError(t, err)

	assert.Equal(t, "CPU 1", g.Boxes[0].Label)
	assert.Equal(t, "Cache 1", g.Boxes[1].Label)
}

func TestBuildGrid_UnregisteredID_ReturnsUnknownNode(t *testing.T) {
	g, err := BuildGrid(2, 2, GridConfig{})
	require.NoError(t, err)

	_, err = g.Destinations.PositionOf(2)

	assert.True(t, errors.Is(err, sim.ErrUnknownNodeID))
	var une *sim.UnknownNodeError
	require.ErrorAs(t, err, &une)
	assert.Equal(t, sim.RoleDestination, une.Role)
}

func TestBuildGrid_ZeroNodes_ReturnsInvalidConfiguration(t *testing.T) {
	_, err := BuildGrid(0, 4, GridConfig{})
	assert.ErrorIs(t, err, sim.ErrInvalidConfiguration)

	_, err = BuildGrid(4, 0, GridConfig{})
	assert.ErrorIs(t, err, sim.ErrInvalidConfiguration)
}

func TestGrid_Bounds_EnclosesAllBoxes(t *testing.T) {
	// GIVEN four caches but only two CPUs
	g, err := BuildGrid(2, 4, GridConfig{})
	require.NoError(t, err)

	b := g.Bounds()

	// THEN the widest row and the source row define the viewport
	assert.Equal(t, -1.0, b.MinX)
	assert.Equal(t, -1.0, b.MinY)
	assert.InDelta(t, 6+1.5+1, b.MaxX, 1e-9)
	assert.InDelta(t, 8+1+1, b.MaxY, 1e-9)
}
