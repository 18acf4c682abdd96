package trash

import (
	"reflect"
	"testing"
)

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestLedger_AddKeepsInsertionOrder(t *testing.T) {
	l := NewLedger()
	l.Add("resume", "Resume.pdf", "/images/pdf.png")
	l.Add("proj1", "Project 1", "/images/folder.png")
	l.Add("proj2", "Project 2", "/images/folder.png")

	got := ids(l.List())
	want := []string{"resume", "proj1", "proj2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List() ids = %v, want %v", got, want)
	}
}

func TestLedger_AddDuplicateOverwritesInPlace(t *testing.T) {
	l := NewLedger()
	l.Add("a", "A", "a.png")
	l.Add("b", "B", "b.png")
	l.Add("a", "A2", "a2.png")

	list := l.List()
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	if list[0] != (Entry{ID: "a", Name: "A2", Icon: "a2.png"}) {
		t.Fatalf("List()[0] = %+v, want overwritten entry", list[0])
	}
}

func TestLedger_Restore(t *testing.T) {
	tests := []struct {
		name    string
		seed    []string
		restore string
		want    bool
		remain  []string
	}{
		{"present", []string{"a", "b", "c"}, "b", true, []string{"a", "c"}},
		{"absent", []string{"a"}, "z", false, []string{"a"}},
		{"empty ledger", nil, "a", false, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			for _, id := range tt.seed {
				l.Add(id, id, "")
			}
			if got := l.Restore(tt.restore); got != tt.want {
				t.Fatalf("Restore(%q) = %v, want %v", tt.restore, got, tt.want)
			}
			if got := ids(l.List()); !reflect.DeepEqual(got, tt.remain) {
				t.Fatalf("List() ids = %v, want %v", got, tt.remain)
			}
		})
	}
}

func TestLedger_EmptyClearsEverything(t *testing.T) {
	l := NewLedger()
	l.Add("a", "A", "")
	l.Add("b", "B", "")

	removed := l.Empty()
	if !reflect.DeepEqual(removed, []string{"a", "b"}) {
		t.Fatalf("Empty() = %v, want [a b]", removed)
	}
	if got := l.List(); len(got) != 0 {
		t.Fatalf("List() after Empty() = %v, want empty", got)
	}
	if got := l.Empty(); len(got) != 0 {
		t.Fatalf("second Empty() = %v, want empty", got)
	}
}

func TestLedger_HiddenIDsMatchesList(t *testing.T) {
	l := NewLedger()
	l.Add("a", "A", "")
	l.Add("b", "B", "")
	l.Add("a", "A", "")
	l.Restore("b")
	l.Add("c", "C", "")

	hidden := l.HiddenIDs()
	list := l.List()
	if len(hidden) != len(list) {
		t.Fatalf("len(HiddenIDs()) = %d, len(List()) = %d", len(hidden), len(list))
	}
	for _, e := range list {
		if _, ok := hidden[e.ID]; !ok {
			t.Fatalf("HiddenIDs() missing %q", e.ID)
		}
		if !l.Contains(e.ID) {
			t.Fatalf("Contains(%q) = false", e.ID)
		}
	}
}

func TestLedger_OnChange(t *testing.T) {
	l := NewLedger()
	var ops []Op
	l.OnChange(func(op Op, _ []string) { ops = append(ops, op) })

	l.Add("a", "A", "")
	l.Restore("missing")
	l.Restore("a")
	l.Empty()
	l.Add("b", "B", "")
	l.Empty()

	want := []Op{OpAdd, OpRestore, OpAdd, OpEmpty}
	if !reflect.DeepEqual(ops, want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
}

func TestLedger_ListIsACopy(t *testing.T) {
	l := NewLedger()
	l.Add("a", "A", "")
	list := l.List()
	list[0].Name = "mutated"

	if got := l.List()[0].Name; got != "A" {
		t.Fatalf("ledger entry name = %q, want %q", got, "A")
	}
}
