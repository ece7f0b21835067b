package equalize

import (
	"testing"

	"github.com/sunbearc22/panewright/internal/model"
)

func p(id string, left, top, width, height int) model.Pane {
	return model.Pane{Window: "0", Tab: "0", ID: model.PaneID(id), Left: left, Top: top, Width: width, Height: height}
}

func groupIDs(g Group) []model.PaneID {
	ids := make([]model.PaneID, len(g))
	for i, pane := range g {
		ids[i] = pane.ID
	}
	return ids
}

func TestGroupColumnsVerticalStackIsOneGroup(t *testing.T) {
	panes := []model.Pane{
		p("0", 0, 0, 100, 20),
		p("1", 0, 21, 100, 19),
	}
	groups := GroupColumns(panes)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("group size = %d, want 2", len(groups[0]))
	}
}

func TestGroupColumnsFullHeightColumns(t *testing.T) {
	panes := []model.Pane{
		p("0", 0, 0, 100, 40),
		p("1", 101, 0, 100, 40),
		p("2", 202, 0, 100, 40),
	}
	groups := GroupColumns(panes)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	for i, g := range groups {
		if len(g) != 1 {
			t.Fatalf("group %d = %v, want a single pane", i, groupIDs(g))
		}
	}
}

func TestGroupColumnsStackNextToFullHeight(t *testing.T) {
	// Column of two stacked panes, then a full-height column, in host
	// report order (column by column).
	panes := []model.Pane{
		p("0", 0, 0, 100, 20),
		p("2", 0, 21, 100, 19),
		p("1", 101, 0, 100, 40),
	}
	groups := GroupColumns(panes)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0].ID != "0" || groups[0][1].ID != "2" {
		t.Fatalf("first group = %v", groupIDs(groups[0]))
	}
	if len(groups[1]) != 1 || groups[1][0].ID != "1" {
		t.Fatalf("second group = %v", groupIDs(groups[1]))
	}
}

func TestGroupColumnsTopJumpStartsNewGroup(t *testing.T) {
	// Two columns of stacked panes; neither column is full height, so
	// the split point is the jump back to the top row.
	panes := []model.Pane{
		p("0", 0, 0, 100, 20),
		p("2", 0, 21, 100, 19),
		p("1", 101, 0, 100, 20),
		p("3", 101, 21, 100, 19),
	}
	groups := GroupColumns(panes)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[1][0].ID != "1" {
		t.Fatalf("second group starts with %v", groups[1][0].ID)
	}
}

func TestSubgroupsAndSpine(t *testing.T) {
	g := Group{
		p("2", 51, 21, 49, 19),
		p("0", 0, 0, 100, 20),
		p("3", 0, 21, 50, 19),
	}
	subs := g.Subgroups()
	if len(subs) != 2 {
		t.Fatalf("got %d subgroups, want 2", len(subs))
	}
	if subs[0].Top != 0 || subs[1].Top != 21 {
		t.Fatalf("subgroup tops = %d,%d", subs[0].Top, subs[1].Top)
	}
	// Second bucket is ordered left to right.
	if subs[1].Panes[0].ID != "3" || subs[1].Panes[1].ID != "2" {
		t.Fatalf("bucket order wrong: %v", subs[1].Panes)
	}

	spine := g.Spine()
	if len(spine) != 1 || spine[0].ID != "0" {
		t.Fatalf("spine = %v", spine)
	}
	if g.LeftmostTop().ID != "0" || g.RightmostTop().ID != "0" {
		t.Fatalf("single-pane spine should be both boundary panes")
	}
	if g.Left() != 0 {
		t.Fatalf("Left() = %d, want 0", g.Left())
	}
}

func TestTotalDimensions(t *testing.T) {
	panes := []model.Pane{
		p("0", 0, 0, 100, 20),
		p("2", 0, 21, 100, 19),
		p("1", 101, 0, 219, 40),
	}
	if got := totalRows(panes); got != 39 {
		t.Fatalf("totalRows = %d, want 39", got)
	}
	if got := totalCols(panes); got != 320 {
		t.Fatalf("totalCols = %d, want 320", got)
	}
}
