// Package equalize implements the column-width equalization pipeline:
// partition the live panes of a tab into column groups, classify
// boundaries the resize primitive cannot move, plan a per-pane target
// width, order the groups so every resize works against a movable
// boundary, and apply the plan.
package equalize

import (
	"sort"

	"github.com/sunbearc22/panewright/internal/model"
)

// Group is one left-to-right column of panes, in host report order.
type Group []model.Pane

// Subgroup is a top-aligned row bucket within a group, panes ordered
// left to right.
type Subgroup struct {
	Top   int
	Panes []model.Pane
}

// totalRows returns the tab height in rows: the summed heights of the
// leftmost column's panes, which stack top to bottom.
func totalRows(panes []model.Pane) int {
	n := 0
	for _, p := range panes {
		if p.Left == 0 {
			n += p.Height
		}
	}
	return n
}

// GroupColumns partitions a tab's panes into column groups using only
// their rectangles. Scanning in host order, the running group is
// closed when the current pane spans the full tab height (a column by
// itself), when the next pane does, or when the next pane jumps back
// up to the top row (a new column has started).
func GroupColumns(panes []model.Pane) []Group {
	if len(panes) == 0 {
		return nil
	}
	nrows := totalRows(panes)
	var groups []Group
	var cur Group
	for i, p := range panes {
		cur = append(cur, p)
		closeGroup := p.Height >= nrows
		if i+1 < len(panes) {
			next := panes[i+1]
			if next.Height >= nrows {
				closeGroup = true
			}
			if next.Top < p.Top && next.Top == 0 {
				closeGroup = true
			}
		}
		if closeGroup {
			groups = append(groups, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// Subgroups buckets a group's panes by top coordinate, buckets ordered
// top to bottom.
func (g Group) Subgroups() []Subgroup {
	byTop := map[int][]model.Pane{}
	for _, p := range g {
		byTop[p.Top] = append(byTop[p.Top], p)
	}
	tops := make([]int, 0, len(byTop))
	for top := range byTop {
		tops = append(tops, top)
	}
	sort.Ints(tops)
	out := make([]Subgroup, 0, len(tops))
	for _, top := range tops {
		panes := byTop[top]
		sort.Slice(panes, func(i, j int) bool { return panes[i].Left < panes[j].Left })
		out = append(out, Subgroup{Top: top, Panes: panes})
	}
	return out
}

// Spine returns the group's top-row bucket, the one edge
// classification works on.
func (g Group) Spine() []model.Pane {
	subs := g.Subgroups()
	if len(subs) == 0 {
		return nil
	}
	return subs[0].Panes
}

// LeftmostTop and RightmostTop return the spine panes that border the
// group's left and right boundaries. For a single-pane group both are
// that pane.
func (g Group) LeftmostTop() model.Pane {
	spine := g.Spine()
	return spine[0]
}

func (g Group) RightmostTop() model.Pane {
	spine := g.Spine()
	return spine[len(spine)-1]
}

// Left returns the group's left coordinate.
func (g Group) Left() int {
	min := g[0].Left
	for _, p := range g[1:] {
		if p.Left < min {
			min = p.Left
		}
	}
	return min
}

// totalCols returns the tab width in columns: the rightmost occupied
// cell across all panes.
func totalCols(panes []model.Pane) int {
	max := 0
	for _, p := range panes {
		if r := p.Right(); r > max {
			max = r
		}
	}
	return max
}
