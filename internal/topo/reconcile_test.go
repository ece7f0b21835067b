package topo

import (
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
)

func pane(id string) model.Pane {
	return model.Pane{Window: "0", Tab: "0", ID: model.PaneID(id)}
}

func TestReconcileAddsSkeletons(t *testing.T) {
	s := NewStore()
	added, pruned := Reconcile(s, []model.Pane{pane("0"), pane("1")})
	if added != 2 || pruned != 0 {
		t.Fatalf("added=%d pruned=%d, want 2/0", added, pruned)
	}
	n, ok := s.Get(key("0"))
	if !ok {
		t.Fatalf("skeleton missing")
	}
	if n.Parent != "" || len(n.Children) != 0 || n.VSplit != model.EdgeNone || n.HSplit != model.EdgeNone {
		t.Fatalf("skeleton not blank: %+v", n)
	}
}

func TestReconcilePrunesDeadPanes(t *testing.T) {
	s := NewStore()
	Reconcile(s, []model.Pane{pane("0"), pane("1"), pane("2")})

	added, pruned := Reconcile(s, []model.Pane{pane("0"), pane("2")})
	if added != 0 || pruned != 1 {
		t.Fatalf("added=%d pruned=%d, want 0/1", added, pruned)
	}
	if _, ok := s.Get(key("1")); ok {
		t.Fatalf("dead pane survived reconciliation")
	}
}

func TestReconcileRepairsDanglingReferences(t *testing.T) {
	s := NewStore()
	root := s.Ensure(key("0"))
	root.AppendChild("1", model.DirRight)
	root.AppendChild("2", model.DirDown)
	s.Ensure(key("1")).Parent = "0"
	s.Ensure(key("2")).Parent = "0"
	s.Ensure(key("3")).Parent = "1"

	// Pane 1 disappears behind our back.
	Reconcile(s, []model.Pane{pane("0"), pane("2"), pane("3")})

	if len(root.Children) != 1 || root.Children[0] != "2" {
		t.Fatalf("dangling child not removed: %v", root.Children)
	}
	if len(root.Directions) != 1 || root.Directions[0] != model.DirDown {
		t.Fatalf("direction array out of step: %v", root.Directions)
	}
	orphan, _ := s.Get(key("3"))
	if orphan.Parent != "" {
		t.Fatalf("dangling parent not cleared: %q", orphan.Parent)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	s := NewStore()
	root := s.Ensure(key("0"))
	root.AppendChild("1", model.DirRight)
	root.VSplit = model.EdgeRight
	s.Ensure(key("1")).Parent = "0"

	live := []model.Pane{pane("0"), pane("1"), pane("5")}
	Reconcile(s, live)

	snapshot := s.Clone()
	added, pruned := Reconcile(s, live)
	if added != 0 || pruned != 0 {
		t.Fatalf("second run reported churn: added=%d pruned=%d", added, pruned)
	}
	if !s.Equal(snapshot) {
		t.Fatalf("second run against the same snapshot changed the store")
	}
}

func TestReconcileScopedByWindowAndTab(t *testing.T) {
	s := NewStore()
	s.Ensure(Key{Window: "0", Tab: "0", Pane: "0"})
	s.Ensure(Key{Window: "1", Tab: "3", Pane: "7"})

	// Only window 0 remains live.
	_, pruned := Reconcile(s, []model.Pane{{Window: "0", Tab: "0", ID: "0"}})
	if pruned != 1 {
		t.Fatalf("pruned=%d, want 1", pruned)
	}
	if _, ok := s.Get(Key{Window: "1", Tab: "3", Pane: "7"}); ok {
		t.Fatalf("record of a closed window survived")
	}
}
