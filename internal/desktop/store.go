// Package desktop owns one desktop session: the virtual tree, trash ledger,
// window registry, drag tracker and terminal scrollback. Every mutation goes
// through a Store method so observers see a consistent sequence of changes.
//
// A Store is not safe for concurrent use. The daemon serialises access on a
// single event loop and the TUI drives it from bubbletea's update loop.
package desktop

import (
	"errors"
	"fmt"

	"github.com/1broseidon/foliodesk/internal/gesture"
	"github.com/1broseidon/foliodesk/internal/sections"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/trash"
	"github.com/1broseidon/foliodesk/internal/vfs"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// ErrNotFound is returned when a desktop item, app or path is unknown.
var ErrNotFound = errors.New("not found")

// ChangeKind classifies a session change.
type ChangeKind string

const (
	ChangeWindow   ChangeKind = "window"
	ChangeTrash    ChangeKind = "trash"
	ChangeTerminal ChangeKind = "terminal"
	ChangeDrag     ChangeKind = "drag"
)

// Change is delivered to listeners after a mutation.
type Change struct {
	Kind ChangeKind `json:"kind"`
	// Op is the window event kind, trash op or terminal command.
	Op  string   `json:"op"`
	IDs []string `json:"ids,omitempty"`
}

// Options configure a Store. Nil fields select the built-in catalog.
type Options struct {
	Roots map[vfs.Location]*vfs.Folder
	Dock  []DockApp
	Items []Item
}

// Store is the session state container.
type Store struct {
	tree     *vfs.Tree
	ledger   *trash.Ledger
	registry *windows.Registry
	tracker  *gesture.Tracker
	term     *terminal.Session

	dock  []DockApp
	items []Item

	listeners []func(Change)
}

// New builds a session with every window closed and an empty trash.
func New(opts Options) *Store {
	if opts.Roots == nil {
		opts.Roots = vfs.DefaultRoots()
	}
	if opts.Dock == nil {
		opts.Dock = DefaultDock()
	}
	if opts.Items == nil {
		opts.Items = DefaultItems()
	}

	s := &Store{
		ledger: trash.NewLedger(),
		term:   terminal.NewSession(),
		dock:   opts.Dock,
		items:  opts.Items,
	}
	s.tree = vfs.NewTree(opts.Roots, s.ledger)

	apps := windows.KnownApps()
	for _, d := range opts.Dock {
		apps = append(apps, d.ID)
	}
	s.registry = windows.NewRegistry(apps...)
	s.tracker = gesture.NewTracker(s.ledger, nil)

	s.registry.Subscribe(func(ev windows.Event) {
		if ev.Kind == windows.EventClosed && ev.Window.AppID == windows.AppTerminal {
			s.term = terminal.NewSession()
		}
		s.emit(Change{Kind: ChangeWindow, Op: string(ev.Kind), IDs: []string{ev.Window.AppID}})
	})
	s.ledger.OnChange(func(op trash.Op, ids []string) {
		s.emit(Change{Kind: ChangeTrash, Op: string(op), IDs: ids})
	})
	s.tracker.OnHover(func(over bool, item gesture.Item) {
		op := "leave"
		if over {
			op = "over"
		}
		s.emit(Change{Kind: ChangeDrag, Op: op, IDs: []string{item.ID}})
	})
	return s
}

// Subscribe registers fn for every subsequent change.
func (s *Store) Subscribe(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Tree exposes the read-only virtual tree.
func (s *Store) Tree() *vfs.Tree {
	return s.tree
}

// Windows

// Open opens (or raises) an app window.
func (s *Store) Open(app string) (windows.WindowState, error) {
	w, err := s.registry.Open(app)
	if errors.Is(err, windows.ErrNotFound) {
		return w, fmt.Errorf("app %q: %w", app, ErrNotFound)
	}
	return w, err
}

// Close closes an app window and reports whether it was open.
func (s *Store) Close(app string) bool {
	return s.registry.Close(app)
}

// Focus raises an open window. Closed windows are ignored.
func (s *Store) Focus(app string) bool {
	return s.registry.Focus(app)
}

// ChangeSection switches the pane of an open window.
func (s *Store) ChangeSection(app, section string) bool {
	return s.registry.ChangeSection(app, section)
}

// Window returns one window record.
func (s *Store) Window(app string) (windows.WindowState, error) {
	w, err := s.registry.Get(app)
	if err != nil {
		return w, fmt.Errorf("app %q: %w", app, ErrNotFound)
	}
	return w, nil
}

// Windows returns every window record in registration order.
func (s *Store) Windows() []windows.WindowState {
	return s.registry.All()
}

// OpenWindows returns open windows back-to-front.
func (s *Store) OpenWindows() []windows.WindowState {
	return s.registry.OpenWindows()
}

// Active returns the front-most open window.
func (s *Store) Active() (windows.WindowState, bool) {
	return s.registry.Active()
}

// Phase returns the derived phase of app.
func (s *Store) Phase(app string) windows.Phase {
	return s.registry.PhaseOf(app)
}

// View resolves what a window shell mounts for app.
func (s *Store) View(app string) (sections.View, error) {
	w, err := s.Window(app)
	if err != nil {
		return sections.View{}, err
	}
	return sections.Resolve(w), nil
}

// Desktop icons and dock

// Icons returns desktop items that are not in the trash.
func (s *Store) Icons() []Item {
	hidden := s.ledger.HiddenIDs()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if _, gone := hidden[it.ID]; gone {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Dock returns the dock entries shown in the dock bar.
func (s *Store) Dock() []DockApp {
	out := make([]DockApp, 0, len(s.dock))
	for _, d := range s.dock {
		if dockHidden[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Launch opens the app behind a dock entry.
func (s *Store) Launch(dockID string) (windows.WindowState, error) {
	for _, d := range s.dock {
		if d.ID != dockID {
			continue
		}
		if !d.CanOpen {
			return windows.WindowState{}, fmt.Errorf("dock app %q cannot be opened", dockID)
		}
		return s.Open(d.ID)
	}
	return windows.WindowState{}, fmt.Errorf("dock app %q: %w", dockID, ErrNotFound)
}

func (s *Store) visibleItem(id string) (Item, bool) {
	for _, it := range s.Icons() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// OpenItem opens the app behind a visible desktop icon.
func (s *Store) OpenItem(id string) (windows.WindowState, error) {
	it, ok := s.visibleItem(id)
	if !ok {
		return windows.WindowState{}, fmt.Errorf("desktop item %q: %w", id, ErrNotFound)
	}
	return s.Open(it.Opens)
}

// Trash

// MoveToTrash trashes a visible desktop icon. Trashed or unknown ids are
// rejected so the ledger never sees a duplicate.
func (s *Store) MoveToTrash(id string) error {
	it, ok := s.visibleItem(id)
	if !ok {
		return fmt.Errorf("desktop item %q: %w", id, ErrNotFound)
	}
	s.ledger.Add(it.ID, it.Name, it.Icon)
	return nil
}

// Restore puts a trashed item back on the desktop.
func (s *Store) Restore(id string) bool {
	return s.ledger.Restore(id)
}

// EmptyTrash clears the trash and returns the removed ids.
func (s *Store) EmptyTrash() []string {
	return s.ledger.Empty()
}

// Trash lists trashed entries, oldest first.
func (s *Store) Trash() []trash.Entry {
	return s.ledger.List()
}

// Drag to trash

// DragStart begins dragging a visible desktop icon.
func (s *Store) DragStart(id string) error {
	it, ok := s.visibleItem(id)
	if !ok {
		return fmt.Errorf("desktop item %q: %w", id, ErrNotFound)
	}
	s.tracker.DragStart(gesture.Item{ID: it.ID, Name: it.Name, Icon: it.Icon})
	return nil
}

// DragMove hit-tests the pointer against the current trash targets.
func (s *Store) DragMove(x, y int) {
	s.tracker.Move(x, y)
}

// SetOverTrash reports hover from a surface that does its own hit testing.
func (s *Store) SetOverTrash(over bool) {
	s.tracker.SetOverTrash(over)
}

// DragEnd releases the drag and reports whether the item was trashed.
func (s *Store) DragEnd() bool {
	return s.tracker.DragEnd()
}

// Dragging returns the item currently being dragged.
func (s *Store) Dragging() (gesture.Item, bool) {
	return s.tracker.Dragging()
}

// SetTrashTargets installs the hit boxes for the dock trash icon and any
// visible sidebar trash rows.
func (s *Store) SetTrashTargets(b gesture.Bounds) {
	s.tracker.SetBounds(b)
}

// Terminal

// Exec runs a command in the terminal window's session.
func (s *Store) Exec(raw string) terminal.Result {
	res := s.term.Run(raw)
	if cmd := terminal.Normalize(raw); cmd != "" {
		s.emit(Change{Kind: ChangeTerminal, Op: cmd})
	}
	return res
}

// Terminal returns the terminal session.
func (s *Store) Terminal() *terminal.Session {
	return s.term
}

// Tree access

// Ls resolves a path in the virtual tree.
func (s *Store) Ls(loc vfs.Location, ids ...string) (vfs.Node, error) {
	n, err := s.tree.Resolve(loc, ids...)
	if errors.Is(err, vfs.ErrNotFound) {
		return nil, fmt.Errorf("%s/%v: %w", loc, ids, ErrNotFound)
	}
	return n, err
}

// Search fuzzy-matches names across the virtual tree.
func (s *Store) Search(query string) []vfs.Hit {
	return s.tree.Search(query)
}
