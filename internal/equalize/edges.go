package equalize

import (
	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/topo"
)

// vsplitOf looks up the stored vertical edge tag of a pane, EdgeNone
// when the pane is unknown or untagged.
func vsplitOf(st *topo.Store, w model.WindowID, t model.TabID, id model.PaneID) model.Edge {
	if n, ok := st.Get(topo.Key{Window: w, Tab: t, Pane: id}); ok {
		return n.VSplit
	}
	return model.EdgeNone
}

// LockedBoundaries scans adjacent group pairs and returns the 1-based
// group indices whose left boundary is locked: the pane on the left
// side governs its own left edge and the pane on the right side
// governs its own right edge, so neither of them can move the boundary
// between them through the resize primitive.
func LockedBoundaries(st *topo.Store, w model.WindowID, t model.TabID, groups []Group) []int {
	var locked []int
	for i := 0; i+1 < len(groups); i++ {
		cur := groups[i].RightmostTop()
		next := groups[i+1].LeftmostTop()
		if vsplitOf(st, w, t, cur.ID) == model.EdgeLeft &&
			vsplitOf(st, w, t, next.ID) == model.EdgeRight {
			locked = append(locked, i+2)
		}
	}
	return locked
}
