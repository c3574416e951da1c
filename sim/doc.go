// Package sim provides the packet motion engine for packetflow.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - packet.go: Packet lifecycle (spawned → phase 0 → 1 → 2 → retired) and the single-axis step rule
//   - engine.go: The live packet set, spawn-for-frame and advance-all
//   - simulator.go: The tick loop that feeds events into the engine and wraps frames on repeat
//
// # Architecture
//
// The sim package defines the engine and the contracts it consumes; collaborators
// live in sub-packages:
//   - sim/layout/: node placement (source and destination anchor tables, box geometry)
//   - sim/workload/: transfer event generation, event file export/load, frame-indexed feeds
//   - sim/trace/: packet lifecycle trace recording
//   - sim/render/: snapshot reconciliation and SVG frame output
//
// # Key Interfaces
//
// The engine depends on two small interfaces:
//   - PositionTable: resolve a node id to its 2-D anchor
//   - EventFeed: list the transfer events scheduled for a frame
//
// The engine never draws. After every tick it exposes a Snapshot keyed by
// PacketID, and a presentation layer reconciles its own visual objects against it.
package sim
