package vfs

import (
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/foliodesk/internal/trash"
)

func newTestTree() (*Tree, *trash.Ledger) {
	ledger := trash.NewLedger()
	return NewTree(DefaultRoots(), ledger), ledger
}

func TestRoot_KnownLocations(t *testing.T) {
	tree, _ := newTestTree()
	tests := []struct {
		loc  Location
		name string
	}{
		{LocationWork, "Work"},
		{LocationAbout, "About me"},
		{LocationResume, "Resume"},
		{LocationTrash, "Trash"},
	}
	for _, tt := range tests {
		root, err := tree.Root(tt.loc)
		if err != nil {
			t.Fatalf("Root(%q) error: %v", tt.loc, err)
		}
		if root.Name != tt.name {
			t.Fatalf("Root(%q).Name = %q, want %q", tt.loc, root.Name, tt.name)
		}
	}
}

func TestRoot_UnknownLocationIsNotFound(t *testing.T) {
	tree, _ := newTestTree()
	if _, err := tree.Root("desktop"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Root(desktop) error = %v, want ErrNotFound", err)
	}
}

func TestResolve_Paths(t *testing.T) {
	tree, _ := newTestTree()
	tests := []struct {
		name     string
		loc      Location
		ids      []string
		wantName string
		wantErr  bool
	}{
		{"root", LocationWork, nil, "Work", false},
		{"project folder", LocationWork, []string{"6"}, "ActiveStride", false},
		{"file under project", LocationWork, []string{"7", "2"}, "Live Demo", false},
		{"same id different parent", LocationWork, []string{"5", "1"}, "Project Details.txt", false},
		{"about file", LocationAbout, []string{"4"}, "about-me.txt", false},
		{"missing child", LocationWork, []string{"99"}, "", true},
		{"descend into file", LocationResume, []string{"1", "1"}, "", true},
		{"unknown location", Location("nope"), []string{"1"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tree.Resolve(tt.loc, tt.ids...)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("Resolve() error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got := n.Info().Name; got != tt.wantName {
				t.Fatalf("Resolve() name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestListChildren_PreservesOrderAndIdentity(t *testing.T) {
	tree, _ := newTestTree()
	root, err := tree.Root(LocationWork)
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	children := ListChildren(root)
	var names []string
	for _, c := range children {
		names = append(names, c.Info().Name)
	}
	want := []string{"ThreatSentry", "ActiveStride", "ThreeDesign"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("children = %v, want %v", names, want)
	}
	if len(children) > 0 && children[0] != root.Children[0] {
		t.Fatal("ListChildren() did not return the folder's own children")
	}
	if ListChildren(nil) != nil {
		t.Fatal("ListChildren(nil) should be nil")
	}
}

func TestTrashRoot_DerivedFromLedger(t *testing.T) {
	tree, ledger := newTestTree()

	root, _ := tree.Root(LocationTrash)
	if len(root.Children) != 0 {
		t.Fatalf("fresh trash has %d children, want 0", len(root.Children))
	}

	ledger.Add("proj1", "Project 1", "/images/folder.png")
	ledger.Add("resume", "Resume.pdf", "/images/pdf.png")

	root, _ = tree.Root(LocationTrash)
	if len(root.Children) != 2 {
		t.Fatalf("trash has %d children, want 2", len(root.Children))
	}
	f, ok := root.Children[1].(*File)
	if !ok {
		t.Fatalf("trash child is %T, want *File", root.Children[1])
	}
	if f.Type() != FileShortcut {
		t.Fatalf("trash child type = %q, want %q", f.Type(), FileShortcut)
	}
	if f.Payload.(Shortcut).ItemID != "resume" {
		t.Fatalf("shortcut target = %q, want resume", f.Payload.(Shortcut).ItemID)
	}

	n, err := tree.Resolve(LocationTrash, "proj1")
	if err != nil {
		t.Fatalf("Resolve(trash, proj1) error: %v", err)
	}
	if n.Info().Name != "Project 1" {
		t.Fatalf("Resolve(trash, proj1) name = %q", n.Info().Name)
	}

	ledger.Restore("proj1")
	if _, err := tree.Resolve(LocationTrash, "proj1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("restored item still resolvable: %v", err)
	}
}

func TestTrashRoot_IgnoresStaticChildren(t *testing.T) {
	roots := DefaultRoots()
	roots[LocationTrash] = &Folder{
		Meta:     Meta{ID: "t", Name: "Bin", Icon: "bin.svg"},
		Children: []Node{&File{Meta: Meta{ID: "x"}, Payload: Text{}}},
	}
	tree := NewTree(roots, trash.NewLedger())
	root, _ := tree.Root(LocationTrash)
	if root.Name != "Bin" {
		t.Fatalf("trash name = %q, want Bin", root.Name)
	}
	if len(root.Children) != 0 {
		t.Fatalf("trash children = %d, want 0", len(root.Children))
	}
}

func TestWalk_VisitsEveryNodeWithPath(t *testing.T) {
	tree, ledger := newTestTree()
	ledger.Add("proj2", "Project 2", "")

	var paths [][]string
	err := tree.Walk(func(loc Location, path []string, n Node) error {
		if loc == LocationWork && n.Info().Name == "Live Demo" {
			paths = append(paths, path)
		}
		if loc == LocationTrash && n.Info().ID != "proj2" {
			t.Fatalf("unexpected trash node %q", n.Info().ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	want := [][]string{{"5", "2"}, {"6", "2"}, {"7", "2"}}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("Live Demo paths = %v, want %v", paths, want)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	tree, _ := newTestTree()
	stop := errors.New("stop")
	count := 0
	err := tree.Walk(func(Location, []string, Node) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) || count != 1 {
		t.Fatalf("Walk() = %v after %d visits, want stop after 1", err, count)
	}
}

func TestParseLocation(t *testing.T) {
	if loc, err := ParseLocation("about"); err != nil || loc != LocationAbout {
		t.Fatalf("ParseLocation(about) = %q, %v", loc, err)
	}
	if _, err := ParseLocation("desktop"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ParseLocation(desktop) error = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	tree, _ := newTestTree()

	hits := tree.Search("stride")
	if len(hits) == 0 {
		t.Fatal("Search(stride) returned no hits")
	}
	if hits[0].Node.Info().Name != "ActiveStride" {
		t.Fatalf("best hit = %q, want ActiveStride", hits[0].Node.Info().Name)
	}
	if hits[0].Location != LocationWork || !reflect.DeepEqual(hits[0].Path, []string{"6"}) {
		t.Fatalf("best hit at %s/%v, want work/[6]", hits[0].Location, hits[0].Path)
	}

	if hits := tree.Search("   "); hits != nil {
		t.Fatalf("Search(blank) = %v, want nil", hits)
	}
	if hits := tree.Search("zzzzqqq"); len(hits) != 0 {
		t.Fatalf("Search(zzzzqqq) = %d hits, want 0", len(hits))
	}
}
