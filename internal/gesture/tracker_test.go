package gesture

import "testing"

type recordingSink struct {
	added []string
}

func (s *recordingSink) Add(id, name, icon string) {
	s.added = append(s.added, id)
}

func dockTrash() Bounds {
	return BoundsFunc(func() []Rect {
		return []Rect{{X: 100, Y: 500, W: 40, H: 40}}
	})
}

func TestDragEnd_OverTrashAddsOnce(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, dockTrash())

	tr.DragStart(Item{ID: "proj1", Name: "Project 1", Icon: "/images/folder.png"})
	tr.Move(10, 10)
	if tr.OverTrash() {
		t.Fatal("OverTrash() = true away from target")
	}
	tr.Move(120, 520)
	if !tr.OverTrash() {
		t.Fatal("OverTrash() = false over target")
	}

	if !tr.DragEnd() {
		t.Fatal("DragEnd() = false over target")
	}
	if len(sink.added) != 1 || sink.added[0] != "proj1" {
		t.Fatalf("sink.added = %v, want [proj1]", sink.added)
	}
	if _, ok := tr.Dragging(); ok || tr.OverTrash() {
		t.Fatal("state not cleared after DragEnd")
	}
}

func TestDragEnd_MissClearsWithoutMutation(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, dockTrash())

	tr.DragStart(Item{ID: "resume"})
	tr.Move(120, 520)
	tr.Move(300, 300)
	if tr.DragEnd() {
		t.Fatal("DragEnd() = true after leaving target")
	}
	if len(sink.added) != 0 {
		t.Fatalf("sink.added = %v, want none", sink.added)
	}
	if _, ok := tr.Dragging(); ok {
		t.Fatal("Dragging() still set")
	}
}

func TestDragEnd_WithoutDragIsNoop(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, dockTrash())
	tr.SetOverTrash(true)
	if tr.OverTrash() {
		t.Fatal("SetOverTrash took effect with no drag")
	}
	if tr.DragEnd() {
		t.Fatal("DragEnd() = true with no drag")
	}
}

func TestSetOverTrash_SidebarRow(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, nil)
	tr.DragStart(Item{ID: "proj2"})
	tr.Move(120, 520)
	if tr.OverTrash() {
		t.Fatal("Move with nil bounds changed hover")
	}
	tr.SetOverTrash(true)
	if !tr.DragEnd() || len(sink.added) != 1 {
		t.Fatalf("sidebar drop not recorded: %v", sink.added)
	}
}

func TestDragStart_SupersedesPreviousDrag(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, dockTrash())
	tr.DragStart(Item{ID: "a"})
	tr.Move(120, 520)
	tr.DragStart(Item{ID: "b"})
	if tr.OverTrash() {
		t.Fatal("new drag inherited hover state")
	}
	item, _ := tr.Dragging()
	if item.ID != "b" {
		t.Fatalf("Dragging() = %q, want b", item.ID)
	}
}

func TestOnHover_FiresOnTransitionsOnly(t *testing.T) {
	tr := NewTracker(&recordingSink{}, dockTrash())
	var seen []bool
	tr.OnHover(func(over bool, item Item) {
		seen = append(seen, over)
		if item.ID != "proj3" {
			t.Errorf("hover item = %q, want proj3", item.ID)
		}
	})

	tr.DragStart(Item{ID: "proj3"})
	tr.Move(120, 520)
	tr.Move(121, 521)
	tr.Move(0, 0)
	tr.Move(120, 520)
	tr.DragEnd()

	want := []bool{true, false, true, false}
	if len(seen) != len(want) {
		t.Fatalf("hover events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("hover events = %v, want %v", seen, want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(0, 0) || !r.Contains(9, 9) || r.Contains(10, 5) || r.Contains(-1, 0) {
		t.Fatal("Rect.Contains edge handling wrong")
	}
}
