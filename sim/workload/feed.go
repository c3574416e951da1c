package workload

import (
	"fmt"

	"github.com/inference-sim/packetflow/sim"
)

// FrameFeed is an in-memory sim.EventFeed indexed by frame.
// Event times and frame numbers share unit and origin: the event with
// Time t is delivered exactly when frame t is ticked.
type FrameFeed struct {
	byFrame   map[int64][]sim.TransferEvent
	lastFrame int64
	count     int
}

// NewFrameFeed indexes events by time. Negative times are rejected because
// the tick loop never visits negative frames.
func NewFrameFeed(events []sim.TransferEvent) (*FrameFeed, error) {
	f := &FrameFeed{
		byFrame:   make(map[int64][]sim.TransferEvent),
		lastFrame: -1,
	}
	for i, ev := range events {
		if ev.Time < 0 {
			return nil, fmt.Errorf("event %d: time must be >= 0, got %d", i, ev.Time)
		}
		f.byFrame[ev.Time] = append(f.byFrame[ev.Time], ev)
		if ev.Time > f.lastFrame {
			f.lastFrame = ev.Time
		}
		f.count++
	}
	return f, nil
}

// EventsAt returns a copy of the events scheduled for frame, in input order.
func (f *FrameFeed) EventsAt(frame int64) []sim.TransferEvent {
	scheduled := f.byFrame[frame]
	if len(scheduled) == 0 {
		return []sim.TransferEvent{}
	}
	out := make([]sim.TransferEvent, len(scheduled))
	copy(out, scheduled)
	return out
}

// LastFrame returns the largest scheduled time, or -1 when empty.
func (f *FrameFeed) LastFrame() int64 {
	return f.lastFrame
}

// Len returns the total number of events.
func (f *FrameFeed) Len() int {
	return f.count
}
