package sim

import (
	"math"
	"testing"
)

// sliceFeed is a minimal EventFeed over a fixed event list.
type sliceFeed []TransferEvent

func (f sliceFeed) EventsAt(frame int64) []TransferEvent {
	out := []TransferEvent{}
	for _, ev := range f {
		if ev.Time == frame {
			out = append(out, ev)
		}
	}
	return out
}

func (f sliceFeed) LastFrame() int64 {
	last := int64(-1)
	for _, ev := range f {
		if ev.Time > last {
			last = ev.Time
		}
	}
	return last
}

// testTables builds source and destination tables from point lists;
// the id of each node is its index.
func testTables(sources, dests []Point) (*NodeTable, *NodeTable) {
	src := make(map[int]Point, len(sources))
	for i, p := range sources {
		src[i] = p
	}
	dst := make(map[int]Point, len(dests))
	for i, p := range dests {
		dst[i] = p
	}
	return NewNodeTable(RoleSource, src), NewNodeTable(RoleDestination, dst)
}

// mustEngine creates an engine or fails the test.
func mustEngine(t *testing.T, cfg EngineConfig, sources, dests []Point) *Engine {
	t.Helper()
	src, dst := testTables(sources, dests)
	e, err := NewEngine(cfg, src, dst)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// legTicks is the number of advance passes a leg of the given length takes:
// at least one, because a zero-length leg still spends a pass snapping.
func legTicks(distance, step float64) int {
	n := int(math.Ceil(math.Abs(distance) / step))
	if n < 1 {
		return 1
	}
	return n
}
