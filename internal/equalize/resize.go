package equalize

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// Resizer applies planned widths through the host's directional resize
// primitive, always against the edge the pane governs: a Left-tagged
// pane adjusts its left edge, a Right-tagged pane its right edge.
// A locked boundary therefore is never the target of a resize.
type Resizer struct {
	Host    mux.Host
	Store   *topo.Store
	Window  model.WindowID
	Tab     model.TabID
	Confirm time.Duration
	Poll    time.Duration
}

// Apply resizes one pane to the target width. Returns whether a resize
// command was issued. The pane's width is re-read from the live set
// first; widths cached from before earlier resizes in the same run are
// stale.
func (r *Resizer) Apply(ctx context.Context, id model.PaneID, target int) (bool, error) {
	if target <= 0 {
		return false, nil
	}
	live, err := r.Host.ListPanes(ctx)
	if err != nil {
		return false, err
	}
	pane, ok := model.FindPane(model.PanesInTab(live, r.Window, r.Tab), id)
	if !ok {
		return false, nil
	}
	edge := vsplitOf(r.Store, r.Window, r.Tab, id)
	var dir model.Direction
	switch edge {
	case model.EdgeLeft:
		dir = model.DirLeft
	case model.EdgeRight:
		dir = model.DirRight
	default:
		fmt.Fprintf(os.Stderr, "equalize: pane %s has no governed vertical edge; leaving width %d\n", id, pane.Width)
		return false, nil
	}

	diff := pane.Width - target
	if diff == 0 {
		return false, nil
	}

	if err := r.Host.ActivatePane(ctx, id); err != nil {
		return false, err
	}
	// Grow toward the governed edge by target-live cells; negative
	// counts shrink.
	if err := r.Host.ResizePane(ctx, id, dir, -diff); err != nil {
		return true, err
	}
	_, settled := mux.Await(ctx, r.Host, r.Confirm, r.Poll, func(panes []model.Pane) bool {
		p, ok := model.FindPane(panes, id)
		return ok && p.Width == target
	})
	if !settled {
		fmt.Fprintf(os.Stderr, "equalize: pane %s did not settle at width %d; continuing on last observed geometry\n", id, target)
	}
	return true, nil
}

// visitOrder orders a subgroup's panes for resizing: the first and
// last pane by creation sequence go first, interior panes after. Edge
// panes pin the subgroup's extent, which keeps interior resizes from
// pushing against boundaries that still have to move.
func visitOrder(sub Subgroup) []model.PaneID {
	ids := make([]model.PaneID, len(sub.Panes))
	for i, p := range sub.Panes {
		ids[i] = p.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	if len(ids) <= 2 {
		return ids
	}
	out := make([]model.PaneID, 0, len(ids))
	out = append(out, ids[0], ids[len(ids)-1])
	out = append(out, ids[1:len(ids)-1]...)
	return out
}
