package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/inference-sim/packetflow/sim"
	"github.com/inference-sim/packetflow/sim/layout"
)

// DefaultScale is the number of pixels per layout unit.
const DefaultScale = 40

var (
	sourceStyle = "fill:lightblue;stroke:black"
	destStyle   = "fill:lightgreen;stroke:black"
	labelStyle  = "text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:12px"
	pathStyle   = "fill:none;stroke:red;stroke-width:1"
	dotStyle    = "fill:red"
)

// viewport maps layout units to SVG pixels, flipping y so larger y is drawn higher.
type viewport struct {
	bounds layout.Bounds
	scale  float64
}

func (v viewport) x(x float64) int {
	return int(math.Round((x - v.bounds.MinX) * v.scale))
}

func (v viewport) y(y float64) int {
	return int(math.Round((v.bounds.MaxY - y) * v.scale))
}

func (v viewport) size() (int, int) {
	return v.x(v.bounds.MaxX), v.y(v.bounds.MinY)
}

// WriteSVG draws the node boxes of grid and every sprite of scene to w.
// A scale <= 0 selects DefaultScale.
func WriteSVG(w io.Writer, grid *layout.Grid, scene *Scene, tick int64, scale float64) {
	if scale <= 0 {
		scale = DefaultScale
	}
	v := viewport{bounds: grid.Bounds(), scale: scale}
	width, height := v.size()

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("packetflow tick %d", tick))

	canvas.Gid("nodes")
	for _, b := range grid.Boxes {
		style := sourceStyle
		if b.Role == sim.RoleDestination {
			style = destStyle
		}
		// the box's top edge in layout units is its top-left corner in pixels
		canvas.Rect(v.x(b.X), v.y(b.Y+b.Height), int(math.Round(b.Width*scale)), int(math.Round(b.Height*scale)), style)
		canvas.Text(v.x(b.X+b.Width/2), v.y(b.Y+b.Height/2), b.Label, labelStyle)
	}
	canvas.Gend()

	canvas.Gid("packets")
	for _, sp := range scene.Sprites() {
		if len(sp.Path) > 1 {
			xs := make([]int, len(sp.Path))
			ys := make([]int, len(sp.Path))
			for i, p := range sp.Path {
				xs[i], ys[i] = v.x(p.X), v.y(p.Y)
			}
			canvas.Polyline(xs, ys, pathStyle)
		}
		canvas.Circle(v.x(sp.Dot.X), v.y(sp.Dot.Y), 4, dotStyle, fmt.Sprintf(`id="packet-%d"`, sp.ID))
	}
	canvas.Gend()

	canvas.End()
}

// FrameWriter reconciles a Scene on every tick and writes an SVG file every
// Every ticks. Its Observe method plugs into sim.Simulator.Run.
type FrameWriter struct {
	Dir   string
	Every int64 // write cadence in ticks; values < 1 write every tick
	Scale float64
	Grid  *layout.Grid
	Scene *Scene

	written int
}

// NewFrameWriter creates the output directory and an empty scene.
func NewFrameWriter(dir string, every int64, grid *layout.Grid) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	return &FrameWriter{Dir: dir, Every: every, Scale: DefaultScale, Grid: grid, Scene: NewScene()}, nil
}

// Observe reconciles snap and writes a frame when the cadence is due.
func (fw *FrameWriter) Observe(snap sim.Snapshot) error {
	fw.Scene.Reconcile(snap)

	every := fw.Every
	if every < 1 {
		every = 1
	}
	if snap.Tick%every != 0 {
		return nil
	}

	path := filepath.Join(fw.Dir, fmt.Sprintf("frame_%06d.svg", snap.Tick))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	defer func() { _ = file.Close() }()

	WriteSVG(file, fw.Grid, fw.Scene, snap.Tick, fw.Scale)
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing frame file: %w", err)
	}
	fw.written++
	return nil
}

// Written returns the number of frame files produced.
func (fw *FrameWriter) Written() int {
	return fw.written
}
