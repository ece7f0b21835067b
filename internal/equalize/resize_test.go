package equalize

import (
	"context"
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
)

func TestVisitOrderEdgesFirst(t *testing.T) {
	sub := Subgroup{Panes: []model.Pane{
		p("3", 200, 0, 50, 40),
		p("1", 0, 0, 50, 40),
		p("2", 100, 0, 50, 40),
		p("4", 300, 0, 50, 40),
	}}
	got := visitOrder(sub)
	want := []model.PaneID{"1", "4", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visitOrder = %v, want %v", got, want)
		}
	}
}

func TestVisitOrderSmallSubgroups(t *testing.T) {
	sub := Subgroup{Panes: []model.Pane{p("7", 0, 0, 50, 40), p("3", 51, 0, 50, 40)}}
	got := visitOrder(sub)
	if len(got) != 2 || got[0] != "3" || got[1] != "7" {
		t.Fatalf("visitOrder = %v, want [3 7]", got)
	}
}

func TestResizerApplySkipsUntagged(t *testing.T) {
	host := mux.NewFake([]model.Pane{p("0", 0, 0, 80, 40), p("1", 81, 0, 106, 40)})
	r := &Resizer{Host: host, Store: tagStore(nil), Window: "0", Tab: "0"}

	changed, err := r.Apply(context.Background(), "0", 100)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if changed || len(host.ResizeCalls) != 0 {
		t.Fatalf("untagged pane was resized")
	}
}

func TestResizerApplyGrowsTowardGovernedEdge(t *testing.T) {
	host := mux.NewFake([]model.Pane{p("0", 0, 0, 80, 40), p("1", 81, 0, 106, 40)})
	st := tagStore(map[string]model.Edge{"0": model.EdgeRight})
	r := &Resizer{Host: host, Store: st, Window: "0", Tab: "0"}

	changed, err := r.Apply(context.Background(), "0", 100)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("expected a resize to be issued")
	}
	if len(host.ResizeCalls) != 1 {
		t.Fatalf("ResizeCalls = %v", host.ResizeCalls)
	}
	rc := host.ResizeCalls[0]
	if rc.Pane != "0" || rc.Dir != model.DirRight || rc.Cells != 20 {
		t.Fatalf("resize = %+v, want pane 0 Right 20", rc)
	}
	pn, _ := model.FindPane(host.Panes, "0")
	if pn.Width != 100 {
		t.Fatalf("width = %d, want 100", pn.Width)
	}
}
