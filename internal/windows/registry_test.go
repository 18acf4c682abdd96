package windows

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewRegistry_AllClosed(t *testing.T) {
	r := NewRegistry()
	all := r.All()
	if len(all) != len(KnownApps()) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(KnownApps()))
	}
	for _, w := range all {
		if w.IsOpen {
			t.Fatalf("%s open at startup", w.AppID)
		}
	}
	if _, ok := r.Active(); ok {
		t.Fatal("Active() reported a window on a fresh registry")
	}
}

func TestOpen_UnknownAppIsNotFound(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Open("calculator"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open(calculator) error = %v, want ErrNotFound", err)
	}
	if _, err := r.Get("calculator"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(calculator) error = %v, want ErrNotFound", err)
	}
}

func TestOpen_AssignsDefaultSectionAndFrontmost(t *testing.T) {
	r := NewRegistry()
	w, err := r.Open(AppSafari)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if w.ActiveSection != "projects" {
		t.Fatalf("ActiveSection = %q, want projects", w.ActiveSection)
	}
	if w.StackOrder != InitialStackOrder+1 {
		t.Fatalf("StackOrder = %d, want %d", w.StackOrder, InitialStackOrder+1)
	}
	if r.PhaseOf(AppSafari) != PhaseActive {
		t.Fatalf("PhaseOf(safari) = %s, want open-active", r.PhaseOf(AppSafari))
	}
}

func TestOpen_KeepsSectionWhenReopenedWhileOpen(t *testing.T) {
	r := NewRegistry()
	r.Open(AppFinder)
	r.ChangeSection(AppFinder, "gallery")
	r.Open(AppFinder)

	w, _ := r.Get(AppFinder)
	if w.ActiveSection != "gallery" {
		t.Fatalf("ActiveSection = %q, want gallery", w.ActiveSection)
	}
}

func TestFocusScenario(t *testing.T) {
	r := NewRegistry()
	r.Open(AppFinder)
	r.Open(AppSafari)
	if !r.Focus(AppFinder) {
		t.Fatal("Focus(finder) = false")
	}

	active, ok := r.Active()
	if !ok || active.AppID != AppFinder {
		t.Fatalf("Active() = %q, %v, want finder", active.AppID, ok)
	}
	if active.ActiveSection != "about-me" {
		t.Fatalf("finder section = %q, want about-me", active.ActiveSection)
	}
	if r.PhaseOf(AppSafari) != PhaseBackground {
		t.Fatalf("PhaseOf(safari) = %s, want open-background", r.PhaseOf(AppSafari))
	}
}

func TestFocus_ClosedWindowIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Open(AppFinder)
	before := r.All()

	if r.Focus(AppContact) {
		t.Fatal("Focus(contact) on closed window = true")
	}
	if r.Focus("unknown") {
		t.Fatal("Focus(unknown) = true")
	}

	after := r.All()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Focus on closed window changed %s: %+v -> %+v", before[i].AppID, before[i], after[i])
		}
	}
}

func TestChangeSection_DiscardedWhenClosed(t *testing.T) {
	r := NewRegistry()
	if r.ChangeSection(AppFinder, "gallery") {
		t.Fatal("ChangeSection on closed window = true")
	}
	w, _ := r.Get(AppFinder)
	if w.ActiveSection == "gallery" {
		t.Fatal("section changed on closed window")
	}

	r.Open(AppFinder)
	order := mustGet(t, r, AppFinder).StackOrder
	if !r.ChangeSection(AppFinder, "contact") {
		t.Fatal("ChangeSection on open window = false")
	}
	if got := mustGet(t, r, AppFinder); got.ActiveSection != "contact" || got.StackOrder != order {
		t.Fatalf("after ChangeSection: %+v", got)
	}
}

func TestClose_ResetsSectionAndLeavesNoActive(t *testing.T) {
	r := NewRegistry()
	r.Open(AppSafari)
	r.ChangeSection(AppSafari, "project-2")

	if !r.Close(AppSafari) {
		t.Fatal("Close(safari) = false")
	}
	w := mustGet(t, r, AppSafari)
	if w.IsOpen || w.ActiveSection != "projects" {
		t.Fatalf("after Close: %+v", w)
	}
	if _, ok := r.Active(); ok {
		t.Fatal("Active() reported a window after closing the only one")
	}
	if r.Close(AppSafari) {
		t.Fatal("second Close() = true")
	}
}

func TestClose_ActiveFallsBackToNextHighest(t *testing.T) {
	r := NewRegistry()
	r.Open(AppFinder)
	r.Open(AppContact)
	r.Open(AppTerminal)
	r.Focus(AppFinder)
	r.Close(AppFinder)

	active, ok := r.Active()
	if !ok || active.AppID != AppTerminal {
		t.Fatalf("Active() = %q, want terminal", active.AppID)
	}
}

func TestOpenWindows_BackToFront(t *testing.T) {
	r := NewRegistry()
	r.Open(AppPhotos)
	r.Open(AppTrash)
	r.Open(AppFinder)
	r.Focus(AppPhotos)

	var got []string
	for _, w := range r.OpenWindows() {
		got = append(got, w.AppID)
	}
	want := []string{AppTrash, AppFinder, AppPhotos}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OpenWindows() = %v, want %v", got, want)
		}
	}
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	r := NewRegistry()
	var kinds []EventKind
	r.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	r.Open(AppFinder)
	r.Focus(AppFinder)
	r.ChangeSection(AppFinder, "about")
	r.Focus(AppContact)
	r.Close(AppFinder)

	want := []EventKind{EventOpened, EventFocused, EventSectionChanged, EventClosed}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestRandomSequences_UniqueFrontmost(t *testing.T) {
	apps := append(KnownApps(), "ghost")
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		r := NewRegistry()
		lastCounter := InitialStackOrder
		for step := 0; step < 200; step++ {
			app := apps[rng.Intn(len(apps))]
			before, _ := r.Get(app)

			switch rng.Intn(3) {
			case 0:
				r.Open(app)
			case 1:
				r.Close(app)
			case 2:
				r.Focus(app)
				if !before.IsOpen {
					after, _ := r.Get(app)
					if after != before {
						t.Fatalf("focus on closed %s changed it: %+v -> %+v", app, before, after)
					}
				}
			}

			seen := make(map[int]string)
			maxOrder, maxCount := 0, 0
			for _, w := range r.OpenWindows() {
				if other, dup := seen[w.StackOrder]; dup {
					t.Fatalf("run %d step %d: %s and %s share stack order %d", run, step, other, w.AppID, w.StackOrder)
				}
				seen[w.StackOrder] = w.AppID
				if w.StackOrder > lastCounter {
					lastCounter = w.StackOrder
				}
				switch {
				case w.StackOrder > maxOrder:
					maxOrder, maxCount = w.StackOrder, 1
				case w.StackOrder == maxOrder:
					maxCount++
				}
			}
			if len(seen) > 0 && maxCount != 1 {
				t.Fatalf("run %d step %d: %d windows at max order", run, step, maxCount)
			}

			active, ok := r.Active()
			if ok != (len(seen) > 0) {
				t.Fatalf("Active() ok = %v with %d open windows", ok, len(seen))
			}
			if ok && active.StackOrder != maxOrder {
				t.Fatalf("Active() = %s@%d, max is %d", active.AppID, active.StackOrder, maxOrder)
			}
			activeCount := 0
			for _, w := range r.All() {
				if r.PhaseOf(w.AppID) == PhaseActive {
					activeCount++
				}
			}
			if activeCount > 1 {
				t.Fatalf("%d windows in open-active phase", activeCount)
			}
		}
	}
}

func TestDefaultSection(t *testing.T) {
	tests := map[string]string{
		AppFinder:   "about-me",
		AppSafari:   "projects",
		AppTerminal: "terminal",
		AppContact:  "contact",
		AppPhotos:   "gallery",
		AppTrash:    "trash",
		AppResume:   "resume",
		AppTextFile: "about-me",
		"unknown":   "about-me",
	}
	for app, want := range tests {
		if got := DefaultSection(app); got != want {
			t.Errorf("DefaultSection(%q) = %q, want %q", app, got, want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseClosed.String() != "closed" || PhaseActive.String() != "open-active" || Phase(9).String() != "unknown" {
		t.Fatal("unexpected Phase.String() output")
	}
}

func mustGet(t *testing.T, r *Registry, app string) WindowState {
	t.Helper()
	w, err := r.Get(app)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", app, err)
	}
	return w
}
