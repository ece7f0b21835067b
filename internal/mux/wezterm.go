package mux

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sunbearc22/panewright/internal/model"
)

// ErrDeclined is returned by KillPane when the user answers the
// confirmation prompt with anything but yes.
var ErrDeclined = errors.New("declined by user")

// WezTerm implements the Host interface by shelling out to
// `wezterm cli`.
type WezTerm struct {
	// Bin is the wezterm executable; defaults to "wezterm".
	Bin string

	// Confirm prompt plumbing, overridable in tests.
	In  io.Reader
	Err io.Writer
}

// NewWezTerm creates a wezterm host using the given binary name.
func NewWezTerm(bin string) *WezTerm {
	if bin == "" {
		bin = "wezterm"
	}
	return &WezTerm{Bin: bin, In: os.Stdin, Err: os.Stderr}
}

// Name returns "wezterm".
func (w *WezTerm) Name() string {
	return "wezterm"
}

// paneEntry mirrors one element of `wezterm cli list --format json`.
type paneEntry struct {
	WindowID int    `json:"window_id"`
	TabID    int    `json:"tab_id"`
	PaneID   int    `json:"pane_id"`
	Title    string `json:"title"`
	IsActive bool   `json:"is_active"`
	LeftCol  int    `json:"left_col"`
	TopRow   int    `json:"top_row"`
	Size     struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	} `json:"size"`
}

// ListPanes returns every wezterm pane with its cell geometry.
func (w *WezTerm) ListPanes(ctx context.Context) ([]model.Pane, error) {
	out, err := w.run(ctx, "cli", "list", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("wezterm cli list: %w", err)
	}
	return parsePaneList([]byte(out))
}

// parsePaneList decodes the JSON pane list into model panes, keeping
// the host's report order.
func parsePaneList(data []byte) ([]model.Pane, error) {
	var entries []paneEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing pane list: %w", err)
	}
	panes := make([]model.Pane, 0, len(entries))
	for _, e := range entries {
		panes = append(panes, model.Pane{
			Window: model.WindowID(strconv.Itoa(e.WindowID)),
			Tab:    model.TabID(strconv.Itoa(e.TabID)),
			ID:     model.PaneID(strconv.Itoa(e.PaneID)),
			Title:  e.Title,
			Active: e.IsActive,
			Left:   e.LeftCol,
			Top:    e.TopRow,
			Width:  e.Size.Cols,
			Height: e.Size.Rows,
		})
	}
	return panes, nil
}

// ActivatePane makes the pane active.
func (w *WezTerm) ActivatePane(ctx context.Context, id model.PaneID) error {
	_, err := w.run(ctx, "cli", "activate-pane", "--pane-id", string(id))
	if err != nil {
		return fmt.Errorf("wezterm cli activate-pane %s: %w", id, err)
	}
	return nil
}

// AdjacentPane activates the probe pane, then resolves the neighbor in
// the given direction. Empty output means there is no neighbor.
func (w *WezTerm) AdjacentPane(ctx context.Context, id model.PaneID, dir model.Direction) (model.Pane, bool, error) {
	if err := w.ActivatePane(ctx, id); err != nil {
		return model.Pane{}, false, err
	}
	out, err := w.run(ctx, "cli", "get-pane-direction", "--pane-id", string(id), dir.String())
	if err != nil {
		return model.Pane{}, false, fmt.Errorf("wezterm cli get-pane-direction %s %s: %w", id, dir, err)
	}
	neighbor := model.PaneID(strings.TrimSpace(out))
	if neighbor == "" {
		return model.Pane{}, false, nil
	}
	panes, err := w.ListPanes(ctx)
	if err != nil {
		return model.Pane{}, false, err
	}
	p, ok := model.FindPane(panes, neighbor)
	return p, ok, nil
}

// SplitPane divides the pane in the given direction. The new pane id
// printed by wezterm is discarded: identification is the caller's job
// (diff the live set before and after).
func (w *WezTerm) SplitPane(ctx context.Context, id model.PaneID, dir model.Direction, size model.SizeSpec) error {
	args := []string{"cli", "split-pane", "--pane-id", string(id)}
	switch dir {
	case model.DirLeft:
		args = append(args, "--left")
	case model.DirRight:
		args = append(args, "--right")
	case model.DirUp:
		args = append(args, "--top")
	case model.DirDown:
		args = append(args, "--bottom")
	}
	if size.Percent > 0 {
		args = append(args, "--percent", strconv.Itoa(size.Percent))
	} else if size.Cells > 0 {
		args = append(args, "--cells", strconv.Itoa(size.Cells))
	}
	if _, err := w.run(ctx, args...); err != nil {
		return fmt.Errorf("wezterm cli split-pane %s %s: %w", id, dir, err)
	}
	return nil
}

// KillPane destroys the pane, prompting first when confirm is set.
func (w *WezTerm) KillPane(ctx context.Context, id model.PaneID, confirm bool) error {
	if confirm && !w.promptYes(fmt.Sprintf("kill pane %s? [y/N] ", id)) {
		return ErrDeclined
	}
	if _, err := w.run(ctx, "cli", "kill-pane", "--pane-id", string(id)); err != nil {
		return fmt.Errorf("wezterm cli kill-pane %s: %w", id, err)
	}
	return nil
}

// ResizePane adjusts the pane by cells toward dir. wezterm's amount is
// unsigned, so a negative count becomes a positive adjustment in the
// opposite direction.
func (w *WezTerm) ResizePane(ctx context.Context, id model.PaneID, dir model.Direction, cells int) error {
	if cells == 0 {
		return nil
	}
	if cells < 0 {
		dir = dir.Opposite()
		cells = -cells
	}
	_, err := w.run(ctx, "cli", "adjust-pane-size",
		"--pane-id", string(id), "--amount", strconv.Itoa(cells), dir.String())
	if err != nil {
		return fmt.Errorf("wezterm cli adjust-pane-size %s %s %d: %w", id, dir, cells, err)
	}
	return nil
}

// promptYes asks on stderr and reads one line from stdin.
func (w *WezTerm) promptYes(prompt string) bool {
	in, errw := w.In, w.Err
	if in == nil {
		in = os.Stdin
	}
	if errw == nil {
		errw = os.Stderr
	}
	fmt.Fprint(errw, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// run executes a wezterm command and returns its stdout.
func (w *WezTerm) run(ctx context.Context, args ...string) (string, error) {
	bin := w.Bin
	if bin == "" {
		bin = "wezterm"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
