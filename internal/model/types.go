// Package model holds the shared domain types: directions, split-edge
// tags, pane identifiers and live pane geometry.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Direction is one of the four split/resize directions.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the wezterm spelling of the direction ("Left", "Right", ...).
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up", "top":
		return DirUp, nil
	case "down", "bottom":
		return DirDown, nil
	}
	return 0, fmt.Errorf("unknown direction %q (expected left, right, up, down)", s)
}

// Opposite returns the direction on the other side of the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Vertical reports whether the direction lies on the vertical-slit axis
// (a Left/Right split creates a vertical boundary).
func (d Direction) Vertical() bool {
	return d == DirLeft || d == DirRight
}

// Edge tags which side of a pane's slit is governed (adjustable) by
// that pane, as opposed to being fixed by an ancestor split.
// EdgeNone means the pane has no slit on that axis.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeUp
	EdgeDown
)

// String returns the edge name, or "-" for EdgeNone.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "Left"
	case EdgeRight:
		return "Right"
	case EdgeUp:
		return "Up"
	case EdgeDown:
		return "Down"
	case EdgeNone:
		return "-"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// EdgeOf converts a direction into the matching edge tag.
func EdgeOf(d Direction) Edge {
	switch d {
	case DirLeft:
		return EdgeLeft
	case DirRight:
		return EdgeRight
	case DirUp:
		return EdgeUp
	default:
		return EdgeDown
	}
}

// Identifiers are opaque stable strings assigned by the host. WezTerm
// uses monotonically increasing integers that are never reused; the
// numeric value is only consulted where ordering matters (new-pane
// identification, creation-order tie-breaks).
type (
	WindowID string
	TabID    string
	PaneID   string
)

// Num returns the numeric value of a pane id, or -1 if it is not numeric.
func (p PaneID) Num() int {
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return -1
	}
	return n
}

// Less orders pane ids numerically when possible, lexically otherwise.
func (p PaneID) Less(other PaneID) bool {
	a, b := p.Num(), other.Num()
	if a >= 0 && b >= 0 {
		return a < b
	}
	return p < other
}

// Pane is a live pane as reported by the host: its identifiers plus a
// geometry rectangle in cell units. Derived, never persisted.
type Pane struct {
	Window WindowID `json:"window"`
	Tab    TabID    `json:"tab"`
	ID     PaneID   `json:"pane"`
	Title  string   `json:"title,omitempty"`
	Active bool     `json:"active,omitempty"`

	// Geometry in cells.
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the column just past the pane's right edge.
func (p Pane) Right() int { return p.Left + p.Width }

// Bottom returns the row just past the pane's bottom edge.
func (p Pane) Bottom() int { return p.Top + p.Height }

// SizeSpec is the size of a new split: a percentage of the source pane
// or a fixed cell count. Percent wins when both are set.
type SizeSpec struct {
	Percent int
	Cells   int
}

// String renders the size for diagnostics ("50%" or "30 cells").
func (s SizeSpec) String() string {
	if s.Percent > 0 {
		return fmt.Sprintf("%d%%", s.Percent)
	}
	if s.Cells > 0 {
		return fmt.Sprintf("%d cells", s.Cells)
	}
	return "default"
}

// PanesInTab filters a flat snapshot down to one tab, preserving host
// report order.
func PanesInTab(panes []Pane, w WindowID, t TabID) []Pane {
	var out []Pane
	for _, p := range panes {
		if p.Window == w && p.Tab == t {
			out = append(out, p)
		}
	}
	return out
}

// TabsInWindow returns the distinct tab ids of a window, sorted.
func TabsInWindow(panes []Pane, w WindowID) []TabID {
	seen := map[TabID]bool{}
	var out []TabID
	for _, p := range panes {
		if p.Window == w && !seen[p.Tab] {
			seen[p.Tab] = true
			out = append(out, p.Tab)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Windows returns the distinct window ids of a snapshot, sorted.
func Windows(panes []Pane) []WindowID {
	seen := map[WindowID]bool{}
	var out []WindowID
	for _, p := range panes {
		if !seen[p.Window] {
			seen[p.Window] = true
			out = append(out, p.Window)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FindPane returns the snapshot entry for a pane id.
func FindPane(panes []Pane, id PaneID) (Pane, bool) {
	for _, p := range panes {
		if p.ID == id {
			return p, true
		}
	}
	return Pane{}, false
}
