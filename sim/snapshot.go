package sim

// PacketView is a read-only copy of a packet's state. Trail is owned by the
// view and may be retained by the caller.
type PacketView struct {
	ID          PacketID
	SourceID    int
	DestID      int
	SpawnFrame  int64
	Position    Point
	TurnPoint   Point
	Destination Point
	Phase       Phase
	Trail       []Point
	Finished    bool
	Age         int64 // advance passes applied since spawn
}

// Snapshot is the per-tick view of the live set, in spawn order.
type Snapshot struct {
	Tick    int64 // number of completed advance passes
	Frame   int64 // frame the tick spawned for
	Packets []PacketView
}

// Len returns the number of live packets in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Packets)
}

// Find returns the view with the given id.
func (s Snapshot) Find(id PacketID) (PacketView, bool) {
	for _, pv := range s.Packets {
		if pv.ID == id {
			return pv, true
		}
	}
	return PacketView{}, false
}
