// Package topo owns the split-tree topology: which pane was split off
// which, in what direction, and which side of each slit a pane governs.
// The host only exposes a flat list of rectangles; this store carries
// the logical structure the geometry operations need.
package topo

import (
	"sort"

	"github.com/sunbearc22/panewright/internal/model"
)

// Key addresses one pane record: window, tab and pane id together.
type Key struct {
	Window model.WindowID
	Tab    model.TabID
	Pane   model.PaneID
}

// Node is the stored record for one pane.
//
// Children and Directions are parallel: Directions[i] is the direction
// used to create Children[i] from this pane, and the index order is the
// split creation order. Parent is empty for a tab root (or for a pane
// whose common ancestor was closed). VSplit and HSplit tag which side
// of the pane's vertical/horizontal slit the pane itself governs.
type Node struct {
	Parent     model.PaneID
	Children   []model.PaneID
	Directions []model.Direction
	VSplit     model.Edge
	HSplit     model.Edge
}

// AppendChild records a new split event.
func (n *Node) AppendChild(id model.PaneID, dir model.Direction) {
	n.Children = append(n.Children, id)
	n.Directions = append(n.Directions, dir)
}

// IndexOfChild returns the position of id in Children, or -1.
func (n *Node) IndexOfChild(id model.PaneID) int {
	for i, c := range n.Children {
		if c == id {
			return i
		}
	}
	return -1
}

// RemoveChildAt drops the child and its parallel direction entry,
// keeping the arrays dense.
func (n *Node) RemoveChildAt(i int) {
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	n.Directions = append(n.Directions[:i], n.Directions[i+1:]...)
}

// clone returns a deep copy of the node.
func (n *Node) clone() *Node {
	c := &Node{Parent: n.Parent, VSplit: n.VSplit, HSplit: n.HSplit}
	c.Children = append([]model.PaneID(nil), n.Children...)
	c.Directions = append([]model.Direction(nil), n.Directions...)
	return c
}

// Store maps composite keys to pane records. It is plain process
// memory: created empty at startup, mutated by the reconciler and the
// split/close mutators, never persisted.
type Store struct {
	nodes map[Key]*Node
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[Key]*Node)}
}

// Get returns the node for a key, if present.
func (s *Store) Get(k Key) (*Node, bool) {
	n, ok := s.nodes[k]
	return n, ok
}

// Ensure returns the node for a key, creating a blank skeleton if
// missing.
func (s *Store) Ensure(k Key) *Node {
	if n, ok := s.nodes[k]; ok {
		return n
	}
	n := &Node{}
	s.nodes[k] = n
	return n
}

// Put replaces the node for a key.
func (s *Store) Put(k Key, n *Node) {
	s.nodes[k] = n
}

// Delete removes a pane record.
func (s *Store) Delete(k Key) {
	delete(s.nodes, k)
}

// Reset replaces a record with a blank skeleton: no parent, no
// children, no edge tags.
func (s *Store) Reset(k Key) {
	s.nodes[k] = &Node{}
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Keys returns all stored keys in no particular order.
func (s *Store) Keys() []Key {
	out := make([]Key, 0, len(s.nodes))
	for k := range s.nodes {
		out = append(out, k)
	}
	return out
}

// PaneIDs returns the stored pane ids of one tab in creation order
// (numeric id order).
func (s *Store) PaneIDs(w model.WindowID, t model.TabID) []model.PaneID {
	var out []model.PaneID
	for k := range s.nodes {
		if k.Window == w && k.Tab == t {
			out = append(out, k.Pane)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// SplitOrigins returns the panes of one tab that have children, in
// creation order. These are the panes a split was performed from.
func (s *Store) SplitOrigins(w model.WindowID, t model.TabID) []model.PaneID {
	var out []model.PaneID
	for _, id := range s.PaneIDs(w, t) {
		if n, ok := s.nodes[Key{w, t, id}]; ok && len(n.Children) > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := NewStore()
	for k, n := range s.nodes {
		c.nodes[k] = n.clone()
	}
	return c
}

// Equal reports whether two stores hold identical records.
func (s *Store) Equal(other *Store) bool {
	if len(s.nodes) != len(other.nodes) {
		return false
	}
	for k, n := range s.nodes {
		o, ok := other.nodes[k]
		if !ok || o.Parent != n.Parent || o.VSplit != n.VSplit || o.HSplit != n.HSplit {
			return false
		}
		if len(o.Children) != len(n.Children) || len(o.Directions) != len(n.Directions) {
			return false
		}
		for i := range n.Children {
			if o.Children[i] != n.Children[i] || o.Directions[i] != n.Directions[i] {
				return false
			}
		}
	}
	return true
}
