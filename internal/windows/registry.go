package windows

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when an app id is not registered.
var ErrNotFound = errors.New("window not found")

// InitialStackOrder is the floor of the stacking counter. The first opened
// window receives InitialStackOrder+1.
const InitialStackOrder = 1000

// Phase is the derived state of a single window.
type Phase int

const (
	// PhaseClosed means the window is not shown
	PhaseClosed Phase = iota
	// PhaseBackground means the window is open but another one is in front
	PhaseBackground
	// PhaseActive means the window is open and front-most
	PhaseActive
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseBackground:
		return "open-background"
	case PhaseActive:
		return "open-active"
	default:
		return "unknown"
	}
}

// WindowState is the per-application record. One exists for every known app
// for the whole session.
type WindowState struct {
	AppID         string `json:"app_id"`
	IsOpen        bool   `json:"is_open"`
	StackOrder    int    `json:"stack_order"`
	ActiveSection string `json:"active_section"`
}

// EventKind describes a registry mutation.
type EventKind string

const (
	EventOpened         EventKind = "opened"
	EventClosed         EventKind = "closed"
	EventFocused        EventKind = "focused"
	EventSectionChanged EventKind = "section_changed"
)

// Event is delivered to subscribers after a mutation is applied.
type Event struct {
	Kind   EventKind
	Window WindowState
}

// Registry tracks every window and assigns stacking order. It is not safe for
// concurrent use; callers serialise access.
type Registry struct {
	windows   map[string]*WindowState
	apps      []string
	counter   int
	listeners []func(Event)
}

// NewRegistry creates a closed window record for every app. With no apps the
// built-in set is used.
func NewRegistry(apps ...string) *Registry {
	if len(apps) == 0 {
		apps = KnownApps()
	}
	r := &Registry{
		windows: make(map[string]*WindowState, len(apps)),
		counter: InitialStackOrder,
	}
	for _, app := range apps {
		if _, dup := r.windows[app]; dup {
			continue
		}
		r.windows[app] = &WindowState{AppID: app, StackOrder: InitialStackOrder}
		r.apps = append(r.apps, app)
	}
	return r
}

// Subscribe registers fn for every subsequent event.
func (r *Registry) Subscribe(fn func(Event)) {
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) nextStackOrder() int {
	r.counter++
	return r.counter
}

func (r *Registry) emit(kind EventKind, w *WindowState) {
	ev := Event{Kind: kind, Window: *w}
	for _, fn := range r.listeners {
		fn(ev)
	}
}

// Open shows the window and brings it to the front. An open window is simply
// raised. The active section is kept if already set, otherwise the app default
// is used.
func (r *Registry) Open(app string) (WindowState, error) {
	w, ok := r.windows[app]
	if !ok {
		return WindowState{}, fmt.Errorf("open %q: %w", app, ErrNotFound)
	}
	w.IsOpen = true
	w.StackOrder = r.nextStackOrder()
	if w.ActiveSection == "" {
		w.ActiveSection = DefaultSection(app)
	}
	r.emit(EventOpened, w)
	return *w, nil
}

// Close hides the window and resets its section. It reports whether the
// window was open.
func (r *Registry) Close(app string) bool {
	w, ok := r.windows[app]
	if !ok {
		return false
	}
	wasOpen := w.IsOpen
	w.IsOpen = false
	w.ActiveSection = DefaultSection(app)
	if wasOpen {
		r.emit(EventClosed, w)
	}
	return wasOpen
}

// Focus raises an open window. Closed or unknown windows are left untouched.
func (r *Registry) Focus(app string) bool {
	w, ok := r.windows[app]
	if !ok || !w.IsOpen {
		return false
	}
	w.StackOrder = r.nextStackOrder()
	r.emit(EventFocused, w)
	return true
}

// ChangeSection sets the pane of an open window. Updates to closed or unknown
// windows are discarded. Stacking is not affected.
func (r *Registry) ChangeSection(app, section string) bool {
	w, ok := r.windows[app]
	if !ok || !w.IsOpen {
		return false
	}
	w.ActiveSection = section
	r.emit(EventSectionChanged, w)
	return true
}

// Get returns a copy of the window record.
func (r *Registry) Get(app string) (WindowState, error) {
	w, ok := r.windows[app]
	if !ok {
		return WindowState{}, fmt.Errorf("%q: %w", app, ErrNotFound)
	}
	return *w, nil
}

// Active returns the open window with the highest stack order.
func (r *Registry) Active() (WindowState, bool) {
	var best *WindowState
	for _, app := range r.apps {
		w := r.windows[app]
		if !w.IsOpen {
			continue
		}
		if best == nil || w.StackOrder > best.StackOrder {
			best = w
		}
	}
	if best == nil {
		return WindowState{}, false
	}
	return *best, true
}

// PhaseOf derives the phase of app.
func (r *Registry) PhaseOf(app string) Phase {
	w, ok := r.windows[app]
	if !ok || !w.IsOpen {
		return PhaseClosed
	}
	if active, ok := r.Active(); ok && active.AppID == app {
		return PhaseActive
	}
	return PhaseBackground
}

// All returns every record in registration order.
func (r *Registry) All() []WindowState {
	out := make([]WindowState, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, *r.windows[app])
	}
	return out
}

// OpenWindows returns open records back-to-front.
func (r *Registry) OpenWindows() []WindowState {
	var out []WindowState
	for _, app := range r.apps {
		if w := r.windows[app]; w.IsOpen {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StackOrder < out[j].StackOrder
	})
	return out
}

// Known reports whether app is registered.
func (r *Registry) Known(app string) bool {
	_, ok := r.windows[app]
	return ok
}
