// Package monitor is an interactive view of the split-tree topology.
// It refreshes the live pane set on a timer, reconciles the store, and
// binds the split/close/equalize operations to single keys so the
// store accumulates real topology over a session.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sunbearc22/panewright/internal/equalize"
	"github.com/sunbearc22/panewright/internal/model"
	"github.com/sunbearc22/panewright/internal/mux"
	"github.com/sunbearc22/panewright/internal/ops"
	"github.com/sunbearc22/panewright/internal/topo"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	edgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// view mode
type viewMode int

const (
	modeTree viewMode = iota
	modeGoto
)

// row is one visible line: a window/tab header or a pane.
type rowKind int

const (
	rowWindow rowKind = iota
	rowTab
	rowPane
)

type row struct {
	kind   rowKind
	window model.WindowID
	tab    model.TabID
	pane   model.Pane
	depth  int
}

// messages
type panesMsg struct {
	panes []model.Pane
	err   error
}

type tickMsg struct{}

// TUI runs the interactive topology monitor.
type TUI struct {
	Host            mux.Host
	Store           *topo.Store
	RefreshInterval time.Duration // 0 disables auto-refresh
	SplitPercent    int
	Confirm         time.Duration
	Poll            time.Duration
}

type tuiModel struct {
	host    mux.Host
	store   *topo.Store
	ctx     context.Context
	refresh time.Duration

	splitPercent int
	opts         ops.Options
	eqOpts       equalize.Options

	panes  []model.Pane
	rows   []row
	cursor int

	mode      viewMode
	gotoInput textinput.Model

	message string
	width   int
	height  int
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run(ctx context.Context) error {
	ti := textinput.New()
	ti.Placeholder = "pane id"
	ti.CharLimit = 16
	ti.Width = 16

	m := &tuiModel{
		host:         t.Host,
		store:        t.Store,
		ctx:          ctx,
		refresh:      t.RefreshInterval,
		splitPercent: t.SplitPercent,
		opts:         ops.Options{Confirm: t.Confirm, Poll: t.Poll},
		eqOpts:       equalize.Options{Confirm: t.Confirm, Poll: t.Poll},
		gotoInput:    ti,
	}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(m.listCmd(), m.tick())
}

// listCmd queries the host off the update loop; the store itself is
// only touched inside Update.
func (m *tuiModel) listCmd() tea.Cmd {
	return func() tea.Msg {
		panes, err := m.host.ListPanes(m.ctx)
		return panesMsg{panes: panes, err: err}
	}
}

func (m *tuiModel) tick() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.listCmd(), m.tick())

	case panesMsg:
		if msg.err != nil {
			m.message = errorStyle.Render(fmt.Sprintf("list: %v", msg.err))
			return m, nil
		}
		m.panes = msg.panes
		topo.Reconcile(m.store, m.panes)
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeGoto {
			return m.updateGoto(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m *tuiModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "r":
		m.message = "reconciling"
		return m, m.listCmd()
	case "g":
		m.mode = modeGoto
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink
	case "s", "v":
		p, ok := m.selectedPane()
		if !ok {
			break
		}
		dir := model.DirRight
		if msg.String() == "v" {
			dir = model.DirDown
		}
		newID, err := ops.Split(m.ctx, m.store, m.host, m.opts, p.Window, p.Tab, p.ID,
			dir, model.SizeSpec{Percent: m.splitPercent})
		if err != nil {
			m.message = errorStyle.Render(fmt.Sprintf("split: %v", err))
		} else {
			m.message = fmt.Sprintf("split %s %s -> %s", p.ID, dir, newID)
		}
		return m, m.listCmd()
	case "c":
		p, ok := m.selectedPane()
		if !ok {
			break
		}
		if err := ops.Close(m.ctx, m.store, m.host, m.opts, p.Window, p.Tab, p.ID, false); err != nil {
			m.message = errorStyle.Render(fmt.Sprintf("close: %v", err))
		} else {
			m.message = fmt.Sprintf("closed %s", p.ID)
		}
		return m, m.listCmd()
	case "e":
		p, ok := m.selectedPane()
		if !ok {
			break
		}
		res, err := equalize.Run(m.ctx, m.store, m.host, m.eqOpts, p.Window, p.Tab)
		if err != nil {
			m.message = errorStyle.Render(fmt.Sprintf("equalize: %v", err))
		} else {
			m.message = fmt.Sprintf("equalized tab %s: %d groups, %d locked, %d resizes",
				p.Tab, res.Groups, len(res.Locked), res.Resizes)
		}
		return m, m.listCmd()
	}
	return m, nil
}

func (m *tuiModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTree
		return m, nil
	case "enter":
		id := model.PaneID(strings.TrimSpace(m.gotoInput.Value()))
		m.mode = modeTree
		if id == "" {
			return m, nil
		}
		if err := m.host.ActivatePane(m.ctx, id); err != nil {
			m.message = errorStyle.Render(fmt.Sprintf("activate: %v", err))
		} else {
			m.message = fmt.Sprintf("activated %s", id)
		}
		return m, m.listCmd()
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// selectedPane returns the pane under the cursor, if the cursor is on
// a pane row.
func (m *tuiModel) selectedPane() (model.Pane, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Pane{}, false
	}
	r := m.rows[m.cursor]
	if r.kind != rowPane {
		return model.Pane{}, false
	}
	return r.pane, true
}

// rebuildRows flattens the store's forests into visible lines,
// window -> tab -> pane tree in creation order.
func (m *tuiModel) rebuildRows() {
	var rows []row
	for _, w := range model.Windows(m.panes) {
		rows = append(rows, row{kind: rowWindow, window: w})
		for _, t := range model.TabsInWindow(m.panes, w) {
			rows = append(rows, row{kind: rowTab, window: w, tab: t})
			tabPanes := model.PanesInTab(m.panes, w, t)
			added := make(map[model.PaneID]bool)
			var walk func(id model.PaneID, depth int)
			walk = func(id model.PaneID, depth int) {
				if added[id] {
					return
				}
				added[id] = true
				if p, ok := model.FindPane(tabPanes, id); ok {
					rows = append(rows, row{kind: rowPane, window: w, tab: t, pane: p, depth: depth})
				}
				if n, ok := m.store.Get(topo.Key{Window: w, Tab: t, Pane: id}); ok {
					for _, c := range n.Children {
						walk(c, depth+1)
					}
				}
			}
			// Roots first, then anything unreached (panes whose
			// ancestry we never observed).
			for _, id := range m.store.PaneIDs(w, t) {
				if n, ok := m.store.Get(topo.Key{Window: w, Tab: t, Pane: id}); ok && n.Parent == "" {
					walk(id, 0)
				}
			}
			for _, p := range tabPanes {
				walk(p.ID, 0)
			}
		}
	}
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("panewright monitor"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("s split right · v split down · c close · e equalize · g goto · r reconcile · q quit"))
	b.WriteString("\n\n")

	for i, r := range m.rows {
		line := m.renderRow(r)
		if i == m.cursor && r.kind == rowPane {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.mode == modeGoto {
		b.WriteString("\n")
		b.WriteString("activate pane: " + m.gotoInput.View())
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.message))
	}
	return b.String()
}

func (m *tuiModel) renderRow(r row) string {
	switch r.kind {
	case rowWindow:
		return titleStyle.Render(fmt.Sprintf("window %s", r.window))
	case rowTab:
		return headerStyle.Render(fmt.Sprintf("  tab %s", r.tab))
	}
	p := r.pane
	indent := strings.Repeat("  ", r.depth+2)
	tags := ""
	if n, ok := m.store.Get(topo.Key{Window: r.window, Tab: r.tab, Pane: p.ID}); ok {
		tags = edgeStyle.Render(fmt.Sprintf(" v=%s h=%s", n.VSplit, n.HSplit))
		if len(n.Children) > 0 {
			tags += dimStyle.Render(fmt.Sprintf(" children=%v", n.Children))
		}
	}
	active := " "
	if p.Active {
		active = "*"
	}
	return fmt.Sprintf("%s%s pane %-4s %3dx%-3d @(%d,%d)%s", indent, active, p.ID, p.Width, p.Height, p.Left, p.Top, tags)
}
