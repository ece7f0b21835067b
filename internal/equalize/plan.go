package equalize

import (
	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/topo"
)

// PlanWidths computes the target column width for every pane of the
// tab. With no locked boundaries every group gets an equal share of
// the tab width; with locked boundaries the shares are computed per
// segment, since a locked boundary stays where it is. All divisions
// floor; the remainder physically ends up at the rightmost pane of
// each span, which is why equalization is only exact to within the
// group count.
func PlanWidths(st *topo.Store, w model.WindowID, t model.TabID,
	groups []Group, locked []int, total int) map[model.PaneID]int {

	widths := make(map[model.PaneID]int)
	if len(groups) == 0 {
		return widths
	}

	allot := make([]int, len(groups))
	if len(locked) == 0 {
		gw := total / len(groups)
		for i := range allot {
			allot[i] = gw
		}
	} else {
		segStart, startX := 0, 0
		assign := func(end, endX int) {
			if n := end - segStart; n > 0 {
				gw := (endX - startX) / n
				for i := segStart; i < end; i++ {
					allot[i] = gw
				}
			}
		}
		for _, l := range locked {
			gi := l - 1 // 0-based index of the group right of the boundary
			x := groups[gi].Left()
			// The segment ends at the separator column, one left of
			// the next group's first cell.
			assign(gi, x-1)
			segStart, startX = gi, x
		}
		assign(len(groups), total)
	}

	for gi, g := range groups {
		for _, sub := range g.Subgroups() {
			planSubgroup(st, w, t, sub, allot[gi], widths)
		}
	}
	return widths
}

// planSubgroup divides a group's allotted width across one top-aligned
// bucket. A bucket holding an internal locked boundary is split into
// runs at each such boundary; a run's current span cannot change, so
// its panes share the span instead of the allotment.
func planSubgroup(st *topo.Store, w model.WindowID, t model.TabID,
	sub Subgroup, allot int, widths map[model.PaneID]int) {

	if len(sub.Panes) == 0 {
		return
	}

	runs := [][]model.Pane{{sub.Panes[0]}}
	for i := 1; i < len(sub.Panes); i++ {
		prev, cur := sub.Panes[i-1], sub.Panes[i]
		if vsplitOf(st, w, t, prev.ID) == model.EdgeLeft &&
			vsplitOf(st, w, t, cur.ID) == model.EdgeRight {
			runs = append(runs, nil)
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], cur)
	}

	if len(runs) == 1 {
		per := allot / len(sub.Panes)
		for _, p := range sub.Panes {
			widths[p.ID] = per
		}
		return
	}
	for _, run := range runs {
		span := run[len(run)-1].Right() - run[0].Left
		per := span / len(run)
		for _, p := range run {
			widths[p.ID] = per
		}
	}
}
