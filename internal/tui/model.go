package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/sections"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// zone is the part of the screen that receives navigation keys.
type zone int

const (
	zoneIcons zone = iota
	zoneDock
	zoneWindow
	zoneCount
)

type (
	snapshotMsg struct {
		snap *desktop.Snapshot
		err  error
	}
	actionMsg struct {
		notice string
		err    error
	}
	paneMsg struct {
		key   string
		lines []string
		err   error
	}
	// termMsg carries the daemon's terminal scrollback.
	termMsg struct {
		lines []string
		err   error
	}
	recallMsg struct {
		line string
		ok   bool
		err  error
	}
)

// model is the root bubbletea model.
type model struct {
	desk   Desktop
	source string

	snap   desktop.Snapshot
	loaded bool

	zone       zone
	iconIdx    int
	dockIdx    int
	sidebarIdx int

	paneKey string
	pane    []string

	scrollback []string
	input      textinput.Model

	notice  string
	lastErr string

	width  int
	height int
}

func newModel(desk Desktop, source string) model {
	ti := textinput.New()
	ti.Prompt = terminal.Prompt + " "
	ti.CharLimit = 256

	return model{
		desk:   desk,
		source: source,
		input:  ti,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.refresh()
}

func (m model) refresh() tea.Cmd {
	desk := m.desk
	return func() tea.Msg {
		snap, err := desk.Snapshot()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m model) loadTerminal() tea.Cmd {
	desk := m.desk
	return func() tea.Msg {
		data, err := desk.Terminal()
		if err != nil {
			return termMsg{err: err}
		}
		return termMsg{lines: data.Lines}
	}
}

func (m model) recall(direction string) tea.Cmd {
	desk := m.desk
	return func() tea.Msg {
		data, err := desk.Recall(direction)
		if err != nil {
			return recallMsg{err: err}
		}
		return recallMsg{line: data.Line, ok: data.OK}
	}
}

// act runs op against the desktop and refreshes afterwards.
func (m model) act(notice string, op func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{notice: notice, err: op()}
	}
}

// active returns the front-most open window.
func (m model) active() (windows.WindowState, bool) {
	if m.snap.ActiveApp == "" {
		return windows.WindowState{}, false
	}
	for _, w := range m.snap.Windows {
		if w.AppID == m.snap.ActiveApp && w.IsOpen {
			return w, true
		}
	}
	return windows.WindowState{}, false
}

func (m model) terminalFocused() bool {
	w, ok := m.active()
	return ok && m.zone == zoneWindow && w.AppID == windows.AppTerminal
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-6, 10)
		return m, nil

	case snapshotMsg:
		return m.applySnapshot(msg)

	case actionMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			m.notice = ""
		} else {
			m.lastErr = ""
			m.notice = msg.notice
		}
		return m, m.refresh()

	case paneMsg:
		if msg.key != m.paneKey {
			return m, nil
		}
		if msg.err != nil {
			m.pane = []string{"error: " + msg.err.Error()}
			return m, nil
		}
		m.pane = msg.lines
		return m, nil

	case termMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.scrollback = msg.lines
		return m, nil

	case recallMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		if msg.ok {
			m.input.SetValue(msg.line)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.terminalFocused() {
			return m.updateTerminal(msg)
		}
		return m.updateKeys(msg)
	}

	if m.terminalFocused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastErr = msg.err.Error()
		return m, nil
	}
	prevActive := m.snap.ActiveApp
	m.snap = *msg.snap
	m.loaded = true

	m.iconIdx = clamp(m.iconIdx, len(m.snap.Icons))
	m.dockIdx = clamp(m.dockIdx, len(m.snap.Dock))

	var cmds []tea.Cmd
	if m.windowOpen(windows.AppTerminal) {
		cmds = append(cmds, m.loadTerminal())
	} else {
		m.scrollback = nil
	}

	w, ok := m.active()
	if !ok {
		m.paneKey = ""
		m.pane = nil
		if m.zone == zoneWindow {
			m.zone = zoneIcons
		}
		m.input.Blur()
		return m, tea.Batch(cmds...)
	}

	if w.AppID != prevActive {
		m.sidebarIdx = sidebarIndex(w.ActiveSection)
		if w.AppID == windows.AppTerminal {
			m.zone = zoneWindow
		}
	}
	if m.terminalFocused() {
		cmds = append(cmds, m.input.Focus())
	} else {
		m.input.Blur()
	}

	key := paneKey(w, m.snap)
	if key != m.paneKey {
		m.paneKey = key
		m.pane = nil
		cmds = append(cmds, loadPane(m.desk, key, w, m.snap))
	}
	return m, tea.Batch(cmds...)
}

func (m model) windowOpen(app string) bool {
	for _, w := range m.snap.Windows {
		if w.AppID == app {
			return w.IsOpen
		}
	}
	return false
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	desk := m.desk
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		m.zone = m.nextZone(delta)
		cmd := m.focusInput()
		return m, cmd
	case "r":
		m.paneKey = ""
		return m, m.refresh()
	case "up", "k", "left", "h":
		m.move(-1)
		return m, nil
	case "down", "j", "right", "l":
		m.move(1)
		return m, nil
	case "enter":
		return m, m.activate()
	case "d", "delete":
		if m.zone != zoneIcons || len(m.snap.Icons) == 0 {
			return m, nil
		}
		it := m.snap.Icons[m.iconIdx]
		return m, m.act("Moved "+it.Name+" to Trash", func() error {
			_, err := desk.MoveToTrash(it.ID)
			return err
		})
	case "u":
		if len(m.snap.Trash) == 0 {
			return m, nil
		}
		e := m.snap.Trash[len(m.snap.Trash)-1]
		return m, m.act("Restored "+e.Name, func() error {
			_, err := desk.RestoreFromTrash(e.ID)
			return err
		})
	case "E":
		return m, m.act("Trash emptied", func() error {
			_, err := desk.EmptyTrash()
			return err
		})
	case "w":
		w, ok := m.active()
		if !ok {
			return m, nil
		}
		return m, m.act("", func() error {
			_, err := desk.CloseWindow(w.AppID)
			return err
		})
	case "]":
		next, ok := m.backmostOpen()
		if !ok {
			return m, nil
		}
		return m, m.act("", func() error {
			_, err := desk.FocusWindow(next)
			return err
		})
	}
	return m, nil
}

func (m model) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.zone = zoneIcons
		m.input.Blur()
		return m, nil
	case "tab":
		m.zone = m.nextZone(1)
		m.input.Blur()
		return m, nil
	case "up":
		return m, m.recall(ipc.RecallPrevious)
	case "down":
		return m, m.recall(ipc.RecallNext)
	case "enter":
		raw := m.input.Value()
		m.input.SetValue("")
		if terminal.Normalize(raw) == "" {
			return m, nil
		}
		desk := m.desk
		load := m.loadTerminal()
		return m, func() tea.Msg {
			if _, err := desk.Exec(raw); err != nil {
				return termMsg{err: err}
			}
			return load()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) nextZone(delta int) zone {
	z := m.zone
	for range zoneCount {
		z = (z + zone(delta) + zoneCount) % zoneCount
		if z != zoneWindow {
			return z
		}
		if _, ok := m.active(); ok {
			return z
		}
	}
	return zoneIcons
}

func (m *model) focusInput() tea.Cmd {
	if m.terminalFocused() {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *model) move(delta int) {
	switch m.zone {
	case zoneIcons:
		m.iconIdx = wrap(m.iconIdx+delta, len(m.snap.Icons))
	case zoneDock:
		m.dockIdx = wrap(m.dockIdx+delta, len(m.snap.Dock))
	case zoneWindow:
		if w, ok := m.active(); ok && !sections.BypassesSidebar(w.AppID) {
			m.sidebarIdx = wrap(m.sidebarIdx+delta, len(sections.Sidebar()))
		}
	}
}

// activate handles enter on the focused zone: open an icon, launch a dock
// entry or switch the window's section.
func (m model) activate() tea.Cmd {
	desk := m.desk
	switch m.zone {
	case zoneIcons:
		if len(m.snap.Icons) == 0 {
			return nil
		}
		it := m.snap.Icons[m.iconIdx]
		return m.act("", func() error {
			_, err := desk.OpenItem(it.ID)
			return err
		})
	case zoneDock:
		if len(m.snap.Dock) == 0 {
			return nil
		}
		app := m.snap.Dock[m.dockIdx]
		if !app.CanOpen {
			return func() tea.Msg {
				return actionMsg{notice: app.Name + " is not available"}
			}
		}
		return m.act("", func() error {
			_, err := desk.Launch(app.ID)
			return err
		})
	case zoneWindow:
		w, ok := m.active()
		if !ok || sections.BypassesSidebar(w.AppID) {
			return nil
		}
		item := sections.Sidebar()[m.sidebarIdx]
		return m.act("", func() error {
			_, err := desk.ChangeSection(w.AppID, item.Section)
			return err
		})
	}
	return nil
}

// backmostOpen returns the open window with the lowest stack order that is
// not already in front, so repeated presses cycle through every window.
func (m model) backmostOpen() (string, bool) {
	var (
		app   string
		order int
		found bool
	)
	for _, w := range m.snap.Windows {
		if !w.IsOpen || w.AppID == m.snap.ActiveApp {
			continue
		}
		if !found || w.StackOrder < order {
			app, order, found = w.AppID, w.StackOrder, true
		}
	}
	return app, found
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !m.loaded {
		if m.lastErr != "" {
			return errorStyle.Render("error: " + m.lastErr)
		}
		return "Loading desktop..."
	}

	statusBar := renderStatusBar(m.source, m.snap, m.width)
	dock := renderDock(m.snap.Dock, m.dockIdx, m.zone == zoneDock, m.width)
	helpBar := renderHelpBar(m.helpText(), m.notice, m.lastErr, m.width)

	used := lipgloss.Height(statusBar) + lipgloss.Height(dock) + lipgloss.Height(helpBar)
	bodyHeight := max(m.height-used, 3)

	iconsWidth := min(max(m.width/4, 16), 28)
	icons := renderIcons(m.snap.Icons, m.iconIdx, m.zone == zoneIcons, iconsWidth, bodyHeight)
	win := m.renderWindow(max(m.width-iconsWidth-1, 20), bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, icons, " ", win)
	return lipgloss.JoinVertical(lipgloss.Left, statusBar, body, dock, helpBar)
}

func (m model) renderWindow(width, height int) string {
	w, ok := m.active()
	if !ok {
		return emptyDesktopStyle.Width(width).Height(height).Render("No open windows")
	}
	view := sections.Resolve(w)
	focused := m.zone == zoneWindow

	var content []string
	if view.Renderer == sections.RendererTerminal {
		content = m.terminalLines(height - 3)
	} else {
		content = m.pane
		if content == nil {
			content = []string{"Loading..."}
		}
	}

	var sidebar string
	if view.Sidebar {
		sidebar = renderSidebar(w.ActiveSection, m.sidebarIdx, focused)
	}
	title := fmt.Sprintf("%s  [%s]", view.Title, w.AppID)
	return renderWindowFrame(title, sidebar, content, focused, width, height)
}

func (m model) terminalLines(height int) []string {
	lines := m.scrollback
	if height < 1 {
		height = 1
	}
	if keep := height - 1; len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	out := append([]string(nil), lines...)
	return append(out, m.input.View())
}

func (m model) helpText() string {
	switch {
	case m.terminalFocused():
		return "enter: run  up/down: history  esc: leave terminal  tab: next zone"
	case m.zone == zoneWindow:
		return "j/k: sidebar  enter: open section  w: close  ]: next window  tab: next zone  q: quit"
	case m.zone == zoneDock:
		return "h/l: select  enter: launch  tab: next zone  q: quit"
	default:
		return "j/k: select  enter: open  d: trash  u: restore  E: empty trash  ]: next window  q: quit"
	}
}

func sidebarIndex(section string) int {
	for i, item := range sections.Sidebar() {
		if item.Section == section {
			return i
		}
	}
	return 0
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
