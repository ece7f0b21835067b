package ops

import (
	"context"
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// checkForest walks every stored record: parent chains must terminate
// (no cycles) and the children/directions arrays must stay parallel.
func checkForest(t *testing.T, st *topo.Store) {
	t.Helper()
	for _, k := range st.Keys() {
		n, _ := st.Get(k)
		if len(n.Children) != len(n.Directions) {
			t.Fatalf("pane %s: %d children but %d directions", k.Pane, len(n.Children), len(n.Directions))
		}
		seen := map[model.PaneID]bool{k.Pane: true}
		cur := n
		for cur.Parent != "" {
			if seen[cur.Parent] {
				t.Fatalf("cycle through pane %s", cur.Parent)
			}
			seen[cur.Parent] = true
			next, ok := st.Get(topo.Key{Window: k.Window, Tab: k.Tab, Pane: cur.Parent})
			if !ok {
				t.Fatalf("pane %s has dangling parent %s", k.Pane, cur.Parent)
			}
			cur = next
		}
	}
}

func TestForestInvariantUnderMutation(t *testing.T) {
	host := mux.NewFake(singlePane())
	st := topo.NewStore()
	ctx := context.Background()

	var created []model.PaneID
	split := func(src model.PaneID, dir model.Direction) {
		t.Helper()
		id, err := Split(ctx, st, host, testOpts(), "0", "0", src, dir, model.SizeSpec{Percent: 50})
		if err != nil {
			t.Fatalf("split %s %v: %v", src, dir, err)
		}
		created = append(created, id)
		checkForest(t, st)
	}

	split("0", model.DirRight)
	split(created[0], model.DirRight)
	split("0", model.DirDown)
	split(created[1], model.DirDown)

	// Close in an order that exercises re-homing with and without a
	// parent, checking the forest after each step.
	for _, id := range []model.PaneID{created[0], "0", created[1]} {
		if err := Close(ctx, st, host, testOpts(), "0", "0", id, false); err != nil {
			t.Fatalf("close %s: %v", id, err)
		}
		checkForest(t, st)
	}

	// Reconciliation over the survivors keeps the forest intact too.
	live, _ := host.ListPanes(ctx)
	topo.Reconcile(st, live)
	checkForest(t, st)
}
