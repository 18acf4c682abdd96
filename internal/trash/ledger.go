// Package trash records desktop items that have been moved to the trash.
package trash

// Entry is one trashed desktop item.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Op identifies a ledger mutation for observers.
type Op string

const (
	OpAdd     Op = "add"
	OpRestore Op = "restore"
	OpEmpty   Op = "empty"
)

// Ledger is an insertion-ordered set of entries keyed by id. It is not safe
// for concurrent use.
type Ledger struct {
	entries  []Entry
	onChange func(op Op, ids []string)
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// OnChange registers fn to run after every mutation that changed the ledger.
// A later call replaces the earlier callback.
func (l *Ledger) OnChange(fn func(op Op, ids []string)) {
	l.onChange = fn
}

// Add appends an entry. Adding an id that is already present overwrites its
// name and icon in place and keeps its position.
func (l *Ledger) Add(id, name, icon string) {
	entry := Entry{ID: id, Name: name, Icon: icon}
	if i := l.indexOf(id); i >= 0 {
		l.entries[i] = entry
	} else {
		l.entries = append(l.entries, entry)
	}
	l.notify(OpAdd, []string{id})
}

// Restore removes the entry with id and reports whether one was present.
func (l *Ledger) Restore(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.notify(OpRestore, []string{id})
	return true
}

// Empty removes every entry and returns the ids that were removed.
func (l *Ledger) Empty() []string {
	ids := make([]string, len(l.entries))
	for i, e := range l.entries {
		ids[i] = e.ID
	}
	l.entries = nil
	if len(ids) > 0 {
		l.notify(OpEmpty, ids)
	}
	return ids
}

// List returns a copy of the entries, most recently trashed last.
func (l *Ledger) List() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Contains reports whether id is trashed.
func (l *Ledger) Contains(id string) bool {
	return l.indexOf(id) >= 0
}

// HiddenIDs returns the set of trashed ids. Desktop listings filter on it.
func (l *Ledger) HiddenIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(l.entries))
	for _, e := range l.entries {
		out[e.ID] = struct{}{}
	}
	return out
}

func (l *Ledger) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) notify(op Op, ids []string) {
	if l.onChange != nil {
		l.onChange(op, ids)
	}
}
