// Package render keeps persistent visual elements in step with engine
// snapshots and draws them as SVG frames.
package render

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/packetflow/sim"
)

// Sprite is the visual state of one packet: a dot and the line behind it.
type Sprite struct {
	ID        sim.PacketID
	Dot       sim.Point
	Path      []sim.Point
	CreatedAt int64 // snapshot tick that first showed the packet
	UpdatedAt int64 // snapshot tick of the latest update
}

// ReconcileStats counts the sprite changes made by one Reconcile call.
type ReconcileStats struct {
	Created int
	Updated int
	Removed int
}

// Scene owns the sprites. It is the only writer of visual state; the engine
// only ever hands it snapshots.
type Scene struct {
	sprites map[sim.PacketID]*Sprite
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{sprites: make(map[sim.PacketID]*Sprite)}
}

// Reconcile brings the scene in line with snap: a sprite is created on first
// sight of a packet id, updated while the id is present, and destroyed once
// the id is absent.
func (s *Scene) Reconcile(snap sim.Snapshot) ReconcileStats {
	var stats ReconcileStats
	present := make(map[sim.PacketID]struct{}, len(snap.Packets))

	for _, pv := range snap.Packets {
		present[pv.ID] = struct{}{}
		sp, ok := s.sprites[pv.ID]
		if !ok {
			sp = &Sprite{ID: pv.ID, CreatedAt: snap.Tick}
			s.sprites[pv.ID] = sp
			stats.Created++
		} else {
			stats.Updated++
		}
		sp.Dot = pv.Position
		sp.Path = pv.Trail
		sp.UpdatedAt = snap.Tick
	}

	for id := range s.sprites {
		if _, ok := present[id]; !ok {
			delete(s.sprites, id)
			stats.Removed++
		}
	}

	logrus.Tracef("reconcile tick %d: created=%d updated=%d removed=%d",
		snap.Tick, stats.Created, stats.Updated, stats.Removed)
	return stats
}

// Len returns the number of sprites on screen.
func (s *Scene) Len() int {
	return len(s.sprites)
}

// Sprite returns the sprite for id.
func (s *Scene) Sprite(id sim.PacketID) (*Sprite, bool) {
	sp, ok := s.sprites[id]
	return sp, ok
}

// Sprites returns every sprite ordered by packet id, oldest first.
func (s *Scene) Sprites() []*Sprite {
	out := make([]*Sprite, 0, len(s.sprites))
	for _, sp := range s.sprites {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
