package cursor

// PointerEvent carries element enter/leave data.
type PointerEvent struct {
	Target  *Element
	GlobalX float64
	GlobalY float64
}

// --- ID counter ---

// elementIDCounter is a plain counter (no atomic; the tree is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// --- Listener registry ---

type listener struct {
	id uint32
	fn func(PointerEvent)
}

// ListenerHandle allows removing a registered element listener.
type ListenerHandle struct {
	el    *Element
	event EventType
	id    uint32
}

// Remove unregisters the listener. Calling Remove more than once, or on the
// zero ListenerHandle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.el == nil {
		return
	}
	h.el.listeners[h.event] = removeListener(h.el.listeners[h.event], h.id)
}

// removeListener returns s without the entry for id. The result never shares
// a backing array with s so an in-flight dispatch over s stays intact.
func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			out := make([]listener, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// --- Element ---

// Element is a node of a retained-mode content tree. Elements with a non-None
// Role or the TagCursorHover tag are interactive under the default predicate.
type Element struct {
	// Identity
	ID   uint32
	Name string
	Role Role
	Tags []string

	// Hierarchy
	Parent   *Element
	children []*Element
	doc      *Document

	// Layout (local, relative to Parent)
	X, Y          float64
	Width, Height float64
	HitShape      HitShape
	Visible       bool

	// Presentation hints for hosts that draw content.
	Color Color
	Label string

	UserData any

	listeners      [numEventTypes][]listener
	nextListenerID uint32
	disposed       bool
}

// TagCursorHover marks an otherwise static element as interactive.
const TagCursorHover = "cursor-hover"

// NewElement creates a visible element with the given name and role.
func NewElement(name string, role Role) *Element {
	return &Element{
		ID:      nextElementID(),
		Name:    name,
		Role:    role,
		Visible: true,
		Color:   ColorWhite,
	}
}

// NewBox creates a visible element with a rectangular hit area at (x, y).
func NewBox(name string, role Role, x, y, w, h float64) *Element {
	e := NewElement(name, role)
	e.X, e.Y = x, y
	e.Width, e.Height = w, h
	return e
}

// HasTag reports whether tag is present on the element.
func (e *Element) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Document returns the document the element is attached to, or nil.
func (e *Element) Document() *Document {
	return e.doc
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	e.AddChildAt(child, len(e.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("cursor: cannot add nil child")
	}
	if child.disposed || e.disposed {
		panic("cursor: AddChild on disposed element")
	}
	if isAncestor(child, e) {
		panic("cursor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if index < 0 || index > len(e.children) {
		panic("cursor: child index out of range")
	}
	child.Parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	if e.doc != nil {
		attachSubtree(child, e.doc)
		e.doc.record(Mutation{Kind: MutationAdded, Target: child, Parent: e})
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("cursor: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	if doc := child.doc; doc != nil {
		attachSubtree(child, nil)
		doc.record(Mutation{Kind: MutationRemoved, Target: child, Parent: e})
	}
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (e *Element) RemoveChildren() {
	for len(e.children) > 0 {
		e.RemoveChild(e.children[len(e.children)-1])
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// Walk visits e and its descendants depth-first in document order. Returning
// false from fn skips the visited element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// --- Geometry ---

// WorldPosition returns the element's origin in document coordinates.
func (e *Element) WorldPosition() (float64, float64) {
	var x, y float64
	for p := e; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldToLocal converts document coordinates to this element's local space.
func (e *Element) WorldToLocal(wx, wy float64) (float64, float64) {
	ox, oy := e.WorldPosition()
	return wx - ox, wy - oy
}

// --- Listeners ---

// AddEventListener registers fn for events of type t on this element.
func (e *Element) AddEventListener(t EventType, fn func(PointerEvent)) ListenerHandle {
	if e.disposed || t >= numEventTypes {
		return ListenerHandle{}
	}
	e.nextListenerID++
	id := e.nextListenerID
	e.listeners[t] = append(e.listeners[t], listener{id: id, fn: fn})
	return ListenerHandle{el: e, event: t, id: id}
}

// ListenerCount returns the number of listeners registered for all event types.
func (e *Element) ListenerCount() int {
	n := 0
	for _, ls := range e.listeners {
		n += len(ls)
	}
	return n
}

func (e *Element) emit(t EventType, ev PointerEvent) {
	for _, l := range e.listeners[t] {
		l.fn(ev)
	}
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	e.ID = 0
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.doc = nil
	e.HitShape = nil
	e.UserData = nil
	for i := range e.listeners {
		e.listeners[i] = nil
	}
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

func attachSubtree(e *Element, doc *Document) {
	e.doc = doc
	for _, c := range e.children {
		attachSubtree(c, doc)
	}
}
