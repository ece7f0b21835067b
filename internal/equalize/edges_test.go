package equalize

import (
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/topo"
)

func tagStore(tags map[string]model.Edge) *topo.Store {
	st := topo.NewStore()
	for id, e := range tags {
		n := st.Ensure(topo.Key{Window: "0", Tab: "0", Pane: model.PaneID(id)})
		n.VSplit = e
	}
	return st
}

func TestLockedBoundaries(t *testing.T) {
	groups := []Group{
		{p("0", 0, 0, 100, 40)},
		{p("1", 101, 0, 100, 40)},
		{p("2", 202, 0, 100, 40)},
	}

	// Pane 0 governs its left edge, pane 1 its right edge: neither can
	// move the boundary between them.
	st := tagStore(map[string]model.Edge{
		"0": model.EdgeLeft,
		"1": model.EdgeRight,
		"2": model.EdgeLeft,
	})
	locked := LockedBoundaries(st, "0", "0", groups)
	if len(locked) != 1 || locked[0] != 2 {
		t.Fatalf("locked = %v, want [2]", locked)
	}

	// Ordinary tags: every boundary is movable.
	st = tagStore(map[string]model.Edge{
		"0": model.EdgeRight,
		"1": model.EdgeRight,
		"2": model.EdgeLeft,
	})
	if locked := LockedBoundaries(st, "0", "0", groups); len(locked) != 0 {
		t.Fatalf("locked = %v, want none", locked)
	}

	// Untagged panes never lock anything.
	if locked := LockedBoundaries(topo.NewStore(), "0", "0", groups); len(locked) != 0 {
		t.Fatalf("locked = %v, want none for untagged panes", locked)
	}
}
