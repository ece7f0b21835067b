package equalize

import (
	"context"
	"fmt"
	"os"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// seqDecision is how a split origin's group gets scheduled.
type seqDecision int

const (
	seqSkip    seqDecision = iota // no governed vertical edge; nothing to schedule
	seqCurrent                    // the group resizes against a boundary it governs alone
	seqTriple                     // contended boundary; handle current, next and previous together
)

// sequenceDecision is the fixed case table over a group's
// neighborhood. prev is the previous group's top-right edge, cur the
// edge the group itself governs, next the next group's top-left edge.
// A group governing its right edge is safe alone unless the next group
// claims the same boundary from the far side; symmetric on the left.
// Combinations outside the table are skipped so a newly discovered
// configuration degrades to a width discrepancy, never a bad resize.
func sequenceDecision(prev, cur, next model.Edge) seqDecision {
	switch cur {
	case model.EdgeRight:
		if next == model.EdgeLeft {
			return seqTriple
		}
		return seqCurrent
	case model.EdgeLeft:
		if prev == model.EdgeRight {
			return seqTriple
		}
		return seqCurrent
	default:
		return seqSkip
	}
}

// Order determines the sequence in which groups are resized, so that
// each resize is performed against a boundary the primitive can move
// given the changes already made.
//
// Split origins are visited in creation order; each one's group is
// scheduled by the decision table, using live directional-adjacency
// queries (which transiently activate probe panes) to find the
// neighboring groups' edge tags. Groups left unvisited are appended
// afterwards: the first and last group of the tab first, the rest in
// index order.
func Order(ctx context.Context, host mux.Host, st *topo.Store,
	w model.WindowID, t model.TabID, groups []Group) []int {

	visited := make(map[int]bool, len(groups))
	var order []int
	enqueue := func(gi int) {
		if gi >= 0 && gi < len(groups) && !visited[gi] {
			visited[gi] = true
			order = append(order, gi)
		}
	}

	for _, origin := range st.SplitOrigins(w, t) {
		gi := groupOf(groups, origin)
		if gi < 0 || visited[gi] {
			continue
		}
		tl := groups[gi].LeftmostTop()
		tr := groups[gi].RightmostTop()

		prevEdge := adjacentEdge(ctx, host, st, w, t, tl.ID, model.DirLeft)
		nextEdge := adjacentEdge(ctx, host, st, w, t, tr.ID, model.DirRight)

		cur := vsplitOf(st, w, t, tr.ID)
		if cur != model.EdgeRight {
			cur = vsplitOf(st, w, t, tl.ID)
		}

		switch sequenceDecision(prevEdge, cur, nextEdge) {
		case seqCurrent:
			enqueue(gi)
		case seqTriple:
			enqueue(gi)
			enqueue(gi + 1)
			enqueue(gi - 1)
		case seqSkip:
			fmt.Fprintf(os.Stderr, "equalize: no schedulable edge for group %d (prev=%s cur=%s next=%s); deferring\n",
				gi+1, prevEdge, cur, nextEdge)
		}
	}

	// Leftovers: edge groups first, they anchor the layout.
	enqueue(0)
	enqueue(len(groups) - 1)
	for gi := range groups {
		enqueue(gi)
	}
	return order
}

// groupOf returns the index of the group containing the pane, or -1.
func groupOf(groups []Group, id model.PaneID) int {
	for gi, g := range groups {
		for _, p := range g {
			if p.ID == id {
				return gi
			}
		}
	}
	return -1
}

// adjacentEdge resolves the stored vertical edge tag of the live
// neighbor in the given direction, EdgeNone when there is none.
func adjacentEdge(ctx context.Context, host mux.Host, st *topo.Store,
	w model.WindowID, t model.TabID, id model.PaneID, dir model.Direction) model.Edge {

	neighbor, ok, err := host.AdjacentPane(ctx, id, dir)
	if err != nil || !ok {
		return model.EdgeNone
	}
	return vsplitOf(st, w, t, neighbor.ID)
}
