package equalize

import (
	"context"
	"time"

	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/topo"
)

// Options tune the apply-and-confirm polling around host commands.
type Options struct {
	Confirm time.Duration
	Poll    time.Duration
}

// Result summarizes one equalization run.
type Result struct {
	Groups  int
	Locked  []int
	Resizes int
}

// Run equalizes the column widths of one tab: reconcile, group the
// live rectangles into columns, classify locked boundaries, plan
// per-pane target widths, order the groups, and resize. Only edge tags
// are read from the store; the parent/children structure is never
// touched here.
func Run(ctx context.Context, st *topo.Store, host mux.Host, opts Options,
	w model.WindowID, t model.TabID) (*Result, error) {

	live, err := host.ListPanes(ctx)
	if err != nil {
		return nil, err
	}
	topo.Reconcile(st, live)

	tab := model.PanesInTab(live, w, t)
	if len(tab) < 2 {
		return &Result{Groups: len(tab)}, nil
	}

	groups := GroupColumns(tab)
	locked := LockedBoundaries(st, w, t, groups)
	widths := PlanWidths(st, w, t, groups, locked, totalCols(tab))
	order := Order(ctx, host, st, w, t, groups)

	r := &Resizer{
		Host:    host,
		Store:   st,
		Window:  w,
		Tab:     t,
		Confirm: opts.Confirm,
		Poll:    opts.Poll,
	}
	res := &Result{Groups: len(groups), Locked: locked}
	for _, gi := range order {
		for _, sub := range groups[gi].Subgroups() {
			for _, id := range visitOrder(sub) {
				changed, err := r.Apply(ctx, id, widths[id])
				if changed {
					res.Resizes++
				}
				if err != nil {
					return res, err
				}
			}
		}
	}
	return res, nil
}
