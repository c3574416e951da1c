// Package layout places source and destination nodes on two horizontal rows
// and builds the position tables the engine resolves events against.
package layout

import (
	"fmt"

	"github.com/inference-sim/packetflow/sim"
)

// GridConfig controls node placement. Zero-valued fields take the defaults below.
type GridConfig struct {
	Spacing     float64 // horizontal distance between neighbouring boxes
	SourceRowY  float64 // y of the source row's lower edge
	DestRowY    float64 // y of the destination row's lower edge
	BoxWidth    float64
	BoxHeight   float64
	SourceLabel string
	DestLabel   string
}

// DefaultGridConfig places CPU boxes on y=8 and cache boxes on y=0,
// two units apart.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Spacing:     2,
		SourceRowY:  8,
		DestRowY:    0,
		BoxWidth:    1.5,
		BoxHeight:   1,
		SourceLabel: "CPU",
		DestLabel:   "Cache",
	}
}

func (c GridConfig) withDefaults() GridConfig {
	d := DefaultGridConfig()
	if c.Spacing == 0 {
		c.Spacing = d.Spacing
	}
	if c.SourceRowY == 0 && c.DestRowY == 0 {
		c.SourceRowY, c.DestRowY = d.SourceRowY, d.DestRowY
	}
	if c.BoxWidth == 0 {
		c.BoxWidth = d.BoxWidth
	}
	if c.BoxHeight == 0 {
		c.BoxHeight = d.BoxHeight
	}
	if c.SourceLabel == "" {
		c.SourceLabel = d.SourceLabel
	}
	if c.DestLabel == "" {
		c.DestLabel = d.DestLabel
	}
	return c
}

// Box is the drawn rectangle of one node.
type Box struct {
	Role   sim.NodeRole
	ID     int
	Label  string
	X, Y   float64 // lower-left corner
	Width  float64
	Height float64
	Anchor sim.Point // where packets leave or arrive
}

// Bounds is the drawing viewport in layout units.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Grid is the immutable result of BuildGrid.
type Grid struct {
	Config       GridConfig
	Sources      *sim.NodeTable
	Destinations *sim.NodeTable
	Boxes        []Box
}

// BuildGrid lays out numSources source boxes and numDestinations destination
// boxes left to right. Source anchors sit on the bottom edge of their box,
// destination anchors on the top edge. Labels are 1-based.
func BuildGrid(numSources, numDestinations int, config GridConfig) (*Grid, error) {
	if numSources < 1 || numDestinations < 1 {
		return nil, fmt.Errorf("%w: need at least one source and one destination, got %d and %d",
			sim.ErrInvalidConfiguration, numSources, numDestinations)
	}
	cfg := config.withDefaults()
	if cfg.Spacing < 0 || cfg.BoxWidth < 0 || cfg.BoxHeight < 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be non-negative", sim.ErrInvalidConfiguration)
	}

	boxes := make([]Box, 0, numSources+numDestinations)
	srcPositions := make(map[int]sim.Point, numSources)
	for i := 0; i < numSources; i++ {
		b := cfg.box(sim.RoleSource, i, cfg.SourceRowY, cfg.SourceLabel)
		b.Anchor = sim.Point{X: b.X + cfg.BoxWidth/2, Y: b.Y}
		srcPositions[i] = b.Anchor
		boxes = append(boxes, b)
	}

	dstPositions := make(map[int]sim.Point, numDestinations)
	for i := 0; i < numDestinations; i++ {
		b := cfg.box(sim.RoleDestination, i, cfg.DestRowY, cfg.DestLabel)
		b.Anchor = sim.Point{X: b.X + cfg.BoxWidth/2, Y: b.Y + cfg.BoxHeight}
		dstPositions[i] = b.Anchor
		boxes = append(boxes, b)
	}

	return &Grid{
		Config:       cfg,
		Sources:      sim.NewNodeTable(sim.RoleSource, srcPositions),
		Destinations: sim.NewNodeTable(sim.RoleDestination, dstPositions),
		Boxes:        boxes,
	}, nil
}

func (c GridConfig) box(role sim.NodeRole, idx int, y float64, label string) Box {
	return Box{
		Role:   role,
		ID:     idx,
		Label:  fmt.Sprintf("%s %d", label, idx+1),
		X:      float64(idx) * c.Spacing,
		Y:      y,
		Width:  c.BoxWidth,
		Height: c.BoxHeight,
	}
}

// Bounds returns a viewport enclosing every box with a one unit margin.
func (g *Grid) Bounds() Bounds {
	b := Bounds{MinX: -1, MinY: -1}
	first := true
	for _, box := range g.Boxes {
		right := box.X + box.Width + 1
		top := box.Y + box.Height + 1
		if first || right > b.MaxX {
			b.MaxX = right
		}
		if first || top > b.MaxY {
			b.MaxY = top
		}
		if box.X-1 < b.MinX {
			b.MinX = box.X - 1
		}
		if box.Y-1 < b.MinY {
			b.MinY = box.Y - 1
		}
		first = false
	}
	return b
}
