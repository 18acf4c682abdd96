package vfs

import (
	"errors"
	"fmt"

	"github.com/1broseidon/foliodesk/internal/trash"
)

// ErrNotFound is returned for unknown locations and unmatched paths. Callers
// treat it as absence.
var ErrNotFound = errors.New("not found")

// Location addresses one of the fixed roots.
type Location string

const (
	LocationWork   Location = "work"
	LocationAbout  Location = "about"
	LocationResume Location = "resume"
	LocationTrash  Location = "trash"
)

// Locations lists the roots in display order.
func Locations() []Location {
	return []Location{LocationWork, LocationAbout, LocationResume, LocationTrash}
}

// ParseLocation validates a location key.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationWork, LocationAbout, LocationResume, LocationTrash:
		return Location(s), nil
	default:
		return "", fmt.Errorf("location %q: %w", s, ErrNotFound)
	}
}

// TrashSource supplies the entries the trash root is derived from.
type TrashSource interface {
	List() []trash.Entry
}

// Tree serves the static roots and derives the trash root on every read.
type Tree struct {
	roots     map[Location]*Folder
	trashMeta Meta
	trash     TrashSource
}

// NewTree builds a tree over the given static roots. A trash entry in roots
// only contributes its metadata; its children are ignored.
func NewTree(roots map[Location]*Folder, src TrashSource) *Tree {
	t := &Tree{
		roots:     make(map[Location]*Folder, len(roots)),
		trashMeta: DefaultTrashMeta(),
		trash:     src,
	}
	for loc, root := range roots {
		if root == nil {
			continue
		}
		if loc == LocationTrash {
			t.trashMeta = root.Meta
			continue
		}
		t.roots[loc] = root
	}
	return t
}

// Root returns the folder at loc.
func (t *Tree) Root(loc Location) (*Folder, error) {
	if loc == LocationTrash {
		return t.trashRoot(), nil
	}
	root, ok := t.roots[loc]
	if !ok {
		return nil, fmt.Errorf("location %q: %w", loc, ErrNotFound)
	}
	return root, nil
}

func (t *Tree) trashRoot() *Folder {
	folder := &Folder{Meta: t.trashMeta}
	if t.trash == nil {
		return folder
	}
	entries := t.trash.List()
	folder.Children = make([]Node, 0, len(entries))
	for _, e := range entries {
		folder.Children = append(folder.Children, &File{
			Meta:    Meta{ID: e.ID, Name: e.Name, Icon: e.Icon},
			Payload: Shortcut{ItemID: e.ID},
		})
	}
	return folder
}

// Resolve walks ids from the root at loc. With no ids the root itself is
// returned.
func (t *Tree) Resolve(loc Location, ids ...string) (Node, error) {
	root, err := t.Root(loc)
	if err != nil {
		return nil, err
	}

	var current Node = root
	for i, id := range ids {
		folder, ok := current.(*Folder)
		if !ok {
			return nil, fmt.Errorf("%s/%v: %w", loc, ids[:i+1], ErrNotFound)
		}
		child := childByID(folder, id)
		if child == nil {
			return nil, fmt.Errorf("%s/%v: %w", loc, ids[:i+1], ErrNotFound)
		}
		current = child
	}
	return current, nil
}

// ListChildren returns the folder's own children in display order. The
// result must not be mutated.
func ListChildren(f *Folder) []Node {
	if f == nil {
		return nil
	}
	return f.Children
}

func childByID(f *Folder, id string) Node {
	for _, child := range f.Children {
		if child.Info().ID == id {
			return child
		}
	}
	return nil
}

// WalkFunc is called for every node below a root. path holds the ids from
// the root to n inclusive.
type WalkFunc func(loc Location, path []string, n Node) error

// Walk visits every node depth-first, roots in Locations order.
func (t *Tree) Walk(fn WalkFunc) error {
	for _, loc := range Locations() {
		root, err := t.Root(loc)
		if err != nil {
			continue
		}
		if err := walkFolder(loc, nil, root, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkFolder(loc Location, prefix []string, folder *Folder, fn WalkFunc) error {
	for _, child := range folder.Children {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = child.Info().ID

		if err := fn(loc, path, child); err != nil {
			return err
		}
		if sub, ok := child.(*Folder); ok {
			if err := walkFolder(loc, path, sub, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
