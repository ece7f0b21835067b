// Package mux abstracts the host terminal multiplexer.
//
// The host owns the live panes; this package only issues its primitives
// and reads back the flat list of rectangles it exposes. All tree
// inference happens above, in topo and equalize.
package mux

import (
	"context"

	"github.com/sunbearc22/panewright/internal/model"
)

// Host is the capability surface consumed from the multiplexer.
// Implementations exist for wezterm and (future) tmux.
type Host interface {
	// Name returns the multiplexer name (e.g., "wezterm").
	Name() string

	// ListPanes returns every pane of every window and tab, each with
	// a stable id and a geometry rectangle in cell units.
	ListPanes(ctx context.Context) ([]model.Pane, error)

	// ActivatePane makes the pane the active one. Subsequent
	// directional-adjacency queries resolve relative to it.
	ActivatePane(ctx context.Context, id model.PaneID) error

	// AdjacentPane returns the live pane directly in the given
	// direction of the probe pane, or ok=false when there is none.
	// The probe pane is activated as a side effect.
	AdjacentPane(ctx context.Context, id model.PaneID, dir model.Direction) (model.Pane, bool, error)

	// SplitPane divides the pane, creating a new pane in the given
	// direction with the given size. The new pane's id is not
	// reported; callers diff the live set before and after.
	SplitPane(ctx context.Context, id model.PaneID, dir model.Direction, size model.SizeSpec) error

	// KillPane destroys the pane. When confirm is set the user is
	// prompted before anything is destroyed; ErrDeclined is returned
	// if they decline.
	KillPane(ctx context.Context, id model.PaneID, confirm bool) error

	// ResizePane grows the pane by cells toward dir; a negative count
	// shrinks it. May be a no-op at layout extremes.
	ResizePane(ctx context.Context, id model.PaneID, dir model.Direction, cells int) error
}
