// Package ops implements the split and close mutations. Both
// reconcile the topology store against the live pane set before
// touching anything, issue the host primitive, and patch the store so
// it reflects the new topology.
package ops

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// Options tune the apply-and-confirm polling around host commands.
type Options struct {
	// Confirm bounds how long to poll for a command's effect to
	// become observable before proceeding on the last snapshot.
	Confirm time.Duration
	// Poll is the interval between geometry queries while confirming.
	Poll time.Duration
}

// Split divides the source pane in the given direction and records the
// new pane in the store: appended to the source's children, edge tags
// derived from the direction and the source.
//
// The host does not report the new pane's id, so it is identified as
// the highest-numbered pane id in the tab that was not present before
// the call (host ids are monotonic and never reused). When no such
// pane appears, the store is left unpatched for it; the next
// reconciliation turns the stray pane into a parentless skeleton.
func Split(ctx context.Context, st *topo.Store, host mux.Host, opts Options,
	w model.WindowID, t model.TabID, pane model.PaneID,
	dir model.Direction, size model.SizeSpec) (model.PaneID, error) {

	live, err := host.ListPanes(ctx)
	if err != nil {
		return "", err
	}
	topo.Reconcile(st, live)

	key := topo.Key{Window: w, Tab: t, Pane: pane}
	node, ok := st.Get(key)
	if !ok {
		return "", fmt.Errorf("split: pane %s is not live in window %s tab %s", pane, w, t)
	}

	before := make(map[model.PaneID]bool)
	for _, p := range model.PanesInTab(live, w, t) {
		before[p.ID] = true
	}

	if err := host.SplitPane(ctx, pane, dir, size); err != nil {
		return "", err
	}

	after, _ := mux.Await(ctx, host, opts.Confirm, opts.Poll, func(panes []model.Pane) bool {
		return identifyNewPane(panes, w, t, before) != ""
	})
	newID := identifyNewPane(after, w, t, before)
	if newID == "" {
		fmt.Fprintf(os.Stderr, "split: no new pane identified after splitting %s %s; topology will self-heal on next reconciliation\n", pane, dir)
		return "", nil
	}

	node.AppendChild(newID, dir)
	if dir.Vertical() {
		node.VSplit = model.EdgeOf(dir)
	} else {
		node.HSplit = model.EdgeOf(dir)
	}

	child := st.Ensure(topo.Key{Window: w, Tab: t, Pane: newID})
	child.Parent = pane
	if dir.Vertical() {
		child.VSplit = model.EdgeOf(dir.Opposite())
		child.HSplit = node.HSplit
	} else {
		child.HSplit = model.EdgeOf(dir.Opposite())
		child.VSplit = node.VSplit
	}
	return newID, nil
}

// identifyNewPane returns the highest-numbered pane id in the tab that
// is not in before, or "" when every live pane was already known.
func identifyNewPane(panes []model.Pane, w model.WindowID, t model.TabID, before map[model.PaneID]bool) model.PaneID {
	var newID model.PaneID
	for _, p := range model.PanesInTab(panes, w, t) {
		if before[p.ID] {
			continue
		}
		if newID == "" || newID.Less(p.ID) {
			newID = p.ID
		}
	}
	return newID
}
