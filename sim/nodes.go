package sim

import "sort"

// NodeRole distinguishes the two position tables.
type NodeRole string

const (
	RoleSource      NodeRole = "source"
	RoleDestination NodeRole = "destination"
)

// PositionTable resolves a node id to its anchor position.
// Implementations must be immutable for the lifetime of any Engine using them.
type PositionTable interface {
	PositionOf(id int) (Point, error)
}

// NodeTable is the map-backed PositionTable built by layout collaborators.
// The constructor copies its input; the table is read-only afterwards.
type NodeTable struct {
	role      NodeRole
	positions map[int]Point
}

// NewNodeTable creates a table for the given role.
func NewNodeTable(role NodeRole, positions map[int]Point) *NodeTable {
	copied := make(map[int]Point, len(positions))
	for id, p := range positions {
		copied[id] = p
	}
	return &NodeTable{role: role, positions: copied}
}

// Role returns which side of the transfer this table anchors.
func (t *NodeTable) Role() NodeRole {
	return t.role
}

// PositionOf returns the anchor for id, or an *UnknownNodeError.
func (t *NodeTable) PositionOf(id int) (Point, error) {
	p, ok := t.positions[id]
	if !ok {
		return Point{}, &UnknownNodeError{Role: t.role, ID: id, Frame: -1}
	}
	return p, nil
}

// Len returns the number of registered nodes.
func (t *NodeTable) Len() int {
	return len(t.positions)
}

// IDs returns the registered ids in ascending order.
func (t *NodeTable) IDs() []int {
	ids := make([]int, 0, len(t.positions))
	for id := range t.positions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
