package desktop

import (
	"github.com/1broseidon/foliodesk/internal/trash"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// Snapshot is a serialisable view of the session.
type Snapshot struct {
	Windows   []windows.WindowState `json:"windows"`
	ActiveApp string                `json:"active_app,omitempty"`
	Trash     []trash.Entry         `json:"trash"`
	Icons     []Item                `json:"icons"`
	Dock      []DockApp             `json:"dock"`
	Dragging  string                `json:"dragging,omitempty"`
}

// Snapshot captures the current session.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Windows: s.Windows(),
		Trash:   s.Trash(),
		Icons:   s.Icons(),
		Dock:    s.Dock(),
	}
	if w, ok := s.Active(); ok {
		snap.ActiveApp = w.AppID
	}
	if it, ok := s.Dragging(); ok {
		snap.Dragging = it.ID
	}
	return snap
}

// OpenCount returns the number of open windows.
func (snap Snapshot) OpenCount() int {
	n := 0
	for _, w := range snap.Windows {
		if w.IsOpen {
			n++
		}
	}
	return n
}
