package sim

// TransferEvent is one scheduled packet transfer from a source node to a
// destination node. Time is measured in frames.
type TransferEvent struct {
	Time     int64 // frame at which the packet is spawned (>= 0)
	SourceID int   // key into the source PositionTable
	DestID   int   // key into the destination PositionTable
}

// EventFeed lists the transfer events scheduled for a frame.
// Frames with nothing scheduled yield an empty slice. All events for a frame
// must be available before that frame is ticked.
type EventFeed interface {
	EventsAt(frame int64) []TransferEvent
	// LastFrame is the largest scheduled event time, or -1 for an empty feed.
	LastFrame() int64
}
