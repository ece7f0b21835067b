package mux

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sunbearc22/panewright/internal/model"
)

// Fake is an in-memory Host for tests. It keeps a mutable snapshot of
// panes, applies splits/kills/resizes to it with simplified geometry,
// resolves adjacency from the rectangles, and records every command it
// was asked to perform.
type Fake struct {
	Panes []model.Pane

	// NextID is assigned to the next pane created by SplitPane.
	// Host pane ids are monotonically increasing and never reused.
	NextID int

	// SplitNoop makes SplitPane succeed without creating a pane,
	// simulating a host that produced no identifiable new pane.
	SplitNoop bool

	// Calls records every command in issue order, one line each.
	Calls []string

	// ResizeCalls records resize commands with their arguments.
	ResizeCalls []ResizeCall
}

// ResizeCall is one recorded ResizePane invocation.
type ResizeCall struct {
	Pane  model.PaneID
	Dir   model.Direction
	Cells int
}

// NewFake builds a fake host over an initial snapshot. NextID starts
// one past the highest numeric pane id present.
func NewFake(panes []model.Pane) *Fake {
	next := 0
	for _, p := range panes {
		if n := p.ID.Num(); n >= next {
			next = n + 1
		}
	}
	return &Fake{Panes: append([]model.Pane(nil), panes...), NextID: next}
}

// Name returns "fake".
func (f *Fake) Name() string { return "fake" }

// ListPanes returns a copy of the current snapshot.
func (f *Fake) ListPanes(_ context.Context) ([]model.Pane, error) {
	return append([]model.Pane(nil), f.Panes...), nil
}

// ActivatePane records the activation.
func (f *Fake) ActivatePane(_ context.Context, id model.PaneID) error {
	f.Calls = append(f.Calls, fmt.Sprintf("activate %s", id))
	return nil
}

// AdjacentPane resolves the neighbor geometrically: the pane whose far
// edge touches the probe's near edge (allowing a one-cell separator)
// with overlapping extent on the other axis.
func (f *Fake) AdjacentPane(_ context.Context, id model.PaneID, dir model.Direction) (model.Pane, bool, error) {
	f.Calls = append(f.Calls, fmt.Sprintf("activate %s", id))
	f.Calls = append(f.Calls, fmt.Sprintf("adjacent %s %s", id, dir))
	p, ok := model.FindPane(f.Panes, id)
	if !ok {
		return model.Pane{}, false, fmt.Errorf("no pane %s", id)
	}
	for _, q := range f.Panes {
		if q.ID == id || q.Window != p.Window || q.Tab != p.Tab {
			continue
		}
		switch dir {
		case model.DirLeft:
			if (q.Right() == p.Left || q.Right()+1 == p.Left) && overlaps(q.Top, q.Bottom(), p.Top, p.Bottom()) {
				return q, true, nil
			}
		case model.DirRight:
			if (p.Right() == q.Left || p.Right()+1 == q.Left) && overlaps(q.Top, q.Bottom(), p.Top, p.Bottom()) {
				return q, true, nil
			}
		case model.DirUp:
			if (q.Bottom() == p.Top || q.Bottom()+1 == p.Top) && overlaps(q.Left, q.Right(), p.Left, p.Right()) {
				return q, true, nil
			}
		case model.DirDown:
			if (p.Bottom() == q.Top || p.Bottom()+1 == q.Top) && overlaps(q.Left, q.Right(), p.Left, p.Right()) {
				return q, true, nil
			}
		}
	}
	return model.Pane{}, false, nil
}

func overlaps(a1, a2, b1, b2 int) bool {
	return a1 < b2 && b1 < a2
}

// SplitPane halves the source rectangle (or carves off the requested
// percentage) and inserts the new pane with the next id.
func (f *Fake) SplitPane(_ context.Context, id model.PaneID, dir model.Direction, size model.SizeSpec) error {
	f.Calls = append(f.Calls, fmt.Sprintf("split %s %s %s", id, dir, size))
	if f.SplitNoop {
		return nil
	}
	for i, p := range f.Panes {
		if p.ID != id {
			continue
		}
		pct := size.Percent
		if pct <= 0 {
			pct = 50
		}
		np := p
		np.ID = model.PaneID(strconv.Itoa(f.NextID))
		f.NextID++
		np.Active = false
		switch dir {
		case model.DirRight:
			cut := p.Width * pct / 100
			f.Panes[i].Width = p.Width - cut - 1
			np.Left = p.Left + p.Width - cut
			np.Width = cut
		case model.DirLeft:
			cut := p.Width * pct / 100
			np.Width = cut
			f.Panes[i].Left = p.Left + cut + 1
			f.Panes[i].Width = p.Width - cut - 1
		case model.DirDown:
			cut := p.Height * pct / 100
			f.Panes[i].Height = p.Height - cut - 1
			np.Top = p.Top + p.Height - cut
			np.Height = cut
		case model.DirUp:
			cut := p.Height * pct / 100
			np.Height = cut
			f.Panes[i].Top = p.Top + cut + 1
			f.Panes[i].Height = p.Height - cut - 1
		}
		f.Panes = append(f.Panes, np)
		return nil
	}
	return fmt.Errorf("no pane %s", id)
}

// KillPane removes the pane from the snapshot.
func (f *Fake) KillPane(_ context.Context, id model.PaneID, confirm bool) error {
	f.Calls = append(f.Calls, fmt.Sprintf("kill %s confirm=%v", id, confirm))
	for i, p := range f.Panes {
		if p.ID == id {
			f.Panes = append(f.Panes[:i], f.Panes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no pane %s", id)
}

// ResizePane applies the width/height change to the pane itself.
// Neighbor shuffling is not modeled; tests assert on the issued
// commands, not on a full layout simulation.
func (f *Fake) ResizePane(_ context.Context, id model.PaneID, dir model.Direction, cells int) error {
	f.Calls = append(f.Calls, fmt.Sprintf("resize %s %s %d", id, dir, cells))
	f.ResizeCalls = append(f.ResizeCalls, ResizeCall{Pane: id, Dir: dir, Cells: cells})
	for i, p := range f.Panes {
		if p.ID != id {
			continue
		}
		switch dir {
		case model.DirLeft:
			f.Panes[i].Left -= cells
			f.Panes[i].Width += cells
		case model.DirRight:
			f.Panes[i].Width += cells
		case model.DirUp:
			f.Panes[i].Top -= cells
			f.Panes[i].Height += cells
		case model.DirDown:
			f.Panes[i].Height += cells
		}
		return nil
	}
	return fmt.Errorf("no pane %s", id)
}
