// Package trace provides packet lifecycle recording for post-run analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// SpawnRecord captures a packet entering the live set.
type SpawnRecord struct {
	PacketID int64
	Tick     int64 // completed advance passes when the packet was spawned
	Frame    int64
	SourceID int
	DestID   int
}

// PhaseRecord captures a packet finishing one leg of its path.
type PhaseRecord struct {
	PacketID int64
	Tick     int64
	From     string
	To       string
}

// RetireRecord captures a packet leaving the live set at its destination.
type RetireRecord struct {
	PacketID    int64
	Tick        int64
	Frame       int64 // frame of the tick that retired the packet
	SourceID    int
	DestID      int
	Lifetime    int64 // advance passes from spawn to retirement
	TrailLength int   // points in the trail, source included
}
