package ops

import (
	"context"
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// threeColumns is a tab of three side-by-side full-height panes, as
// produced by splitting 0 right into 1, then 1 right into 2.
func threeColumns() []model.Pane {
	return []model.Pane{
		{Window: "0", Tab: "0", ID: "0", Left: 0, Top: 0, Width: 106, Height: 40},
		{Window: "0", Tab: "0", ID: "1", Left: 107, Top: 0, Width: 106, Height: 40},
		{Window: "0", Tab: "0", ID: "2", Left: 214, Top: 0, Width: 106, Height: 40},
	}
}

func threeColumnStore() *topo.Store {
	st := topo.NewStore()
	n0 := st.Ensure(key("0"))
	n0.AppendChild("1", model.DirRight)
	n0.VSplit = model.EdgeRight
	n1 := st.Ensure(key("1"))
	n1.Parent = "0"
	n1.AppendChild("2", model.DirRight)
	n1.VSplit = model.EdgeRight
	n2 := st.Ensure(key("2"))
	n2.Parent = "1"
	n2.VSplit = model.EdgeLeft
	return st
}

func TestCloseRehomesUnderParent(t *testing.T) {
	host := mux.NewFake(threeColumns())
	st := threeColumnStore()

	if err := Close(context.Background(), st, host, testOpts(), "0", "0", "1", false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, ok := st.Get(key("1")); ok {
		t.Fatalf("closed pane still has a record")
	}
	n2, _ := st.Get(key("2"))
	if n2.Parent != "0" {
		t.Fatalf("orphan parent = %q, want 0", n2.Parent)
	}
	n0, _ := st.Get(key("0"))
	if len(n0.Children) != 1 || n0.Children[0] != "2" || n0.Directions[0] != model.DirRight {
		t.Fatalf("parent splice wrong: %v %v", n0.Children, n0.Directions)
	}
	if len(host.Panes) != 2 {
		t.Fatalf("host still has %d panes", len(host.Panes))
	}
}

func TestCloseChainsChildrenWithoutParent(t *testing.T) {
	// Root 0 was split right into 1 and down into 2.
	host := mux.NewFake([]model.Pane{
		{Window: "0", Tab: "0", ID: "0", Left: 0, Top: 0, Width: 106, Height: 19},
		{Window: "0", Tab: "0", ID: "1", Left: 107, Top: 0, Width: 106, Height: 40},
		{Window: "0", Tab: "0", ID: "2", Left: 0, Top: 21, Width: 106, Height: 19},
	})
	st := topo.NewStore()
	n0 := st.Ensure(key("0"))
	n0.AppendChild("1", model.DirRight)
	n0.AppendChild("2", model.DirDown)
	n0.VSplit = model.EdgeRight
	n0.HSplit = model.EdgeDown
	n1 := st.Ensure(key("1"))
	n1.Parent = "0"
	n1.VSplit = model.EdgeLeft
	n2 := st.Ensure(key("2"))
	n2.Parent = "0"
	n2.VSplit = model.EdgeRight
	n2.HSplit = model.EdgeUp

	if err := Close(context.Background(), st, host, testOpts(), "0", "0", "0", false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// First child takes over as root; the rest chain under it with
	// their original split directions.
	n1, _ = st.Get(key("1"))
	if n1.Parent != "" {
		t.Fatalf("eldest child parent = %q, want root", n1.Parent)
	}
	if len(n1.Children) != 1 || n1.Children[0] != "2" || n1.Directions[0] != model.DirDown {
		t.Fatalf("chain wrong: %v %v", n1.Children, n1.Directions)
	}
	n2, _ = st.Get(key("2"))
	if n2.Parent != "1" {
		t.Fatalf("chained child parent = %q, want 1", n2.Parent)
	}
	// Target governed its right edge; the right neighbor that governed
	// its left edge takes over the tag.
	if n1.VSplit != model.EdgeRight {
		t.Fatalf("right neighbor VSplit = %v, want patched to Right", n1.VSplit)
	}
}

func TestClosePatchesLeftNeighbor(t *testing.T) {
	host := mux.NewFake(threeColumns())
	st := threeColumnStore()

	// Closing the rightmost pane: its left neighbor governs its right
	// edge, there is no right neighbor, so the neighbor inherits the
	// target's left tag.
	if err := Close(context.Background(), st, host, testOpts(), "0", "0", "2", false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	n1, _ := st.Get(key("1"))
	if n1.VSplit != model.EdgeLeft {
		t.Fatalf("left neighbor VSplit = %v, want patched to Left", n1.VSplit)
	}
	if len(n1.Children) != 0 {
		t.Fatalf("parent splice left a child behind: %v", n1.Children)
	}
}

func TestCloseSingleSurvivorReset(t *testing.T) {
	host := mux.NewFake([]model.Pane{
		{Window: "0", Tab: "0", ID: "0", Left: 0, Top: 0, Width: 106, Height: 40},
		{Window: "0", Tab: "0", ID: "1", Left: 107, Top: 0, Width: 106, Height: 40},
	})
	st := topo.NewStore()
	n0 := st.Ensure(key("0"))
	n0.AppendChild("1", model.DirRight)
	n0.VSplit = model.EdgeRight
	n1 := st.Ensure(key("1"))
	n1.Parent = "0"
	n1.VSplit = model.EdgeLeft

	if err := Close(context.Background(), st, host, testOpts(), "0", "0", "1", false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	n, ok := st.Get(key("0"))
	if !ok {
		t.Fatalf("survivor record missing")
	}
	if n.Parent != "" || len(n.Children) != 0 || n.VSplit != model.EdgeNone {
		t.Fatalf("survivor not reset: %+v", n)
	}
}

// declineHost refuses every kill, like a user answering no.
type declineHost struct {
	*mux.Fake
}

func (d *declineHost) KillPane(_ context.Context, id model.PaneID, confirm bool) error {
	return mux.ErrDeclined
}

func TestCloseDeclinedResynchronizes(t *testing.T) {
	host := &declineHost{Fake: mux.NewFake(threeColumns())}
	st := threeColumnStore()

	if err := Close(context.Background(), st, host, testOpts(), "0", "0", "1", true); err != nil {
		t.Fatalf("declined close should not be an error: %v", err)
	}
	if len(host.Panes) != 3 {
		t.Fatalf("pane was killed despite the decline")
	}
	// The target is live again in the store, even if only as a skeleton.
	if _, ok := st.Get(key("1")); !ok {
		t.Fatalf("declined target missing from the store")
	}
}

func TestVsplitPatchTable(t *testing.T) {
	const (
		none  = model.EdgeNone
		left  = model.EdgeLeft
		right = model.EdgeRight
	)
	cases := []struct {
		hasLeft  bool
		left     model.Edge
		target   model.Edge
		hasRight bool
		right    model.Edge
		want     patchSide
	}{
		// Case 1: left neighbor governing right, target governing
		// left, no right neighbor.
		{true, right, left, false, none, patchLeft},
		{true, right, left, true, left, patchNone},
		{true, right, left, true, right, patchNone},
		{true, left, left, false, none, patchNone},
		{true, none, left, false, none, patchNone},

		// Case 2: target governing right, right neighbor governing
		// left, and the left side does not contend.
		{false, none, right, true, left, patchRight},
		{true, left, right, true, left, patchRight},
		{true, right, right, true, left, patchNone},
		{true, none, right, true, left, patchNone},
		{false, none, right, true, right, patchNone},
		{false, none, right, true, none, patchNone},
		{false, none, right, false, none, patchNone},
		{true, left, right, false, none, patchNone},

		// Untagged targets never patch anything.
		{true, right, none, false, none, patchNone},
		{true, left, none, true, left, patchNone},
		{false, none, none, true, right, patchNone},
		{false, none, none, false, none, patchNone},
	}
	for _, tc := range cases {
		got := vsplitPatch(tc.hasLeft, tc.left, tc.target, tc.hasRight, tc.right)
		if got != tc.want {
			t.Errorf("vsplitPatch(%v,%v,%v,%v,%v) = %v, want %v",
				tc.hasLeft, tc.left, tc.target, tc.hasRight, tc.right, got, tc.want)
		}
	}
}
