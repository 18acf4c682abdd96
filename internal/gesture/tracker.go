// Package gesture tracks a drag-to-trash gesture.
//
// The tracker holds only transient state: the item being dragged and whether
// the pointer is over the current trash target. Release over the target
// hands the item to a Sink. Hover changes reach registered listeners
// directly, so the trash-target owner can highlight itself.
package gesture

// Item is a draggable desktop entry.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Rect is an axis-aligned hit box in desktop coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bounds supplies the trash target boxes for the current context, such as
// the dock trash icon or a Finder sidebar trash row.
type Bounds interface {
	TrashTargets() []Rect
}

// BoundsFunc adapts a function to Bounds.
type BoundsFunc func() []Rect

// TrashTargets implements Bounds.
func (f BoundsFunc) TrashTargets() []Rect { return f() }

// Sink receives an item released over the trash target.
type Sink interface {
	Add(id, name, icon string)
}

// HoverFunc is called when the over-trash state flips.
type HoverFunc func(over bool, item Item)

// Tracker is not safe for concurrent use.
type Tracker struct {
	sink      Sink
	bounds    Bounds
	dragging  *Item
	overTrash bool
	listeners []HoverFunc
}

// NewTracker returns an idle tracker. bounds may be nil when hover is driven
// through SetOverTrash only.
func NewTracker(sink Sink, bounds Bounds) *Tracker {
	return &Tracker{sink: sink, bounds: bounds}
}

// OnHover registers fn for hover changes.
func (t *Tracker) OnHover(fn HoverFunc) {
	t.listeners = append(t.listeners, fn)
}

// SetBounds swaps the hit-test provider, e.g. when focus moves between the
// desktop and a Finder window.
func (t *Tracker) SetBounds(b Bounds) {
	t.bounds = b
}

// DragStart begins a drag. A drag already in progress is superseded.
func (t *Tracker) DragStart(item Item) {
	t.setOver(false)
	it := item
	t.dragging = &it
}

// Move hit-tests the pointer against the trash targets.
func (t *Tracker) Move(x, y int) {
	if t.dragging == nil || t.bounds == nil {
		return
	}
	over := false
	for _, r := range t.bounds.TrashTargets() {
		if r.Contains(x, y) {
			over = true
			break
		}
	}
	t.setOver(over)
}

// SetOverTrash sets hover state directly, for surfaces that do their own hit
// testing.
func (t *Tracker) SetOverTrash(over bool) {
	if t.dragging == nil {
		return
	}
	t.setOver(over)
}

// DragEnd releases the drag. The item is sent to the sink when released over
// the target. Both fields are cleared either way.
func (t *Tracker) DragEnd() bool {
	trashed := false
	if t.dragging != nil && t.overTrash {
		if t.sink != nil {
			t.sink.Add(t.dragging.ID, t.dragging.Name, t.dragging.Icon)
		}
		trashed = true
	}
	t.setOver(false)
	t.dragging = nil
	return trashed
}

// Dragging returns the current item, if any.
func (t *Tracker) Dragging() (Item, bool) {
	if t.dragging == nil {
		return Item{}, false
	}
	return *t.dragging, true
}

// OverTrash reports the current hover state.
func (t *Tracker) OverTrash() bool {
	return t.overTrash
}

func (t *Tracker) setOver(over bool) {
	if t.overTrash == over {
		return
	}
	t.overTrash = over
	var item Item
	if t.dragging != nil {
		item = *t.dragging
	}
	for _, fn := range t.listeners {
		fn(over, item)
	}
}
