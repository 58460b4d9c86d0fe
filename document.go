package cursor

import "errors"

// ErrMutationsUnsupported is returned by TreeChangeSource.Observe when the
// host cannot deliver structural change notifications.
var ErrMutationsUnsupported = errors.New("cursor: tree mutation notifications unsupported")

// Subscription releases a registration made with a host collaborator.
// Cancel must be safe to call more than once.
type Subscription interface {
	Cancel()
}

type funcSubscription struct {
	fn func()
}

func (s *funcSubscription) Cancel() {
	if s.fn == nil {
		return
	}
	fn := s.fn
	s.fn = nil
	fn()
}

// NewSubscription wraps fn as a Subscription whose Cancel runs fn at most once.
func NewSubscription(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

// Walker enumerates a tree of elements depth-first in document order.
type Walker interface {
	Walk(fn func(*Element) bool)
}

// TreeChangeSource delivers batches of structural tree changes.
type TreeChangeSource interface {
	Observe(fn func([]Mutation)) (Subscription, error)
}

// HoverSource reports which elements the pointer is currently inside.
type HoverSource interface {
	Hovered() []*Element
}

type mutationObserver struct {
	id uint32
	fn func([]Mutation)
}

// Document owns an element tree, batches its structural mutations for
// observers, and routes pointer positions into element enter/leave events.
type Document struct {
	root *Element

	pending           []Mutation
	observers         []mutationObserver
	nextObserverID    uint32
	mutationsDisabled bool

	// hovered is the current enter/leave chain, outermost first.
	hovered []*Element
	hitBuf  []*Element
	nextBuf []*Element
}

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{}
	d.root = NewElement("root", RoleNone)
	d.root.doc = d
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Walk visits every attached element depth-first, starting at the root.
func (d *Document) Walk(fn func(*Element) bool) {
	d.root.Walk(fn)
}

// --- Mutation notification ---

// SetMutationEventsEnabled controls whether Observe accepts subscriptions.
// Disabling models hosts without a mutation notification API; existing
// subscriptions are unaffected.
func (d *Document) SetMutationEventsEnabled(enabled bool) {
	d.mutationsDisabled = !enabled
}

// Observe registers fn to receive mutation batches on Flush.
func (d *Document) Observe(fn func([]Mutation)) (Subscription, error) {
	if d.mutationsDisabled {
		return nil, ErrMutationsUnsupported
	}
	d.nextObserverID++
	id := d.nextObserverID
	d.observers = append(d.observers, mutationObserver{id: id, fn: fn})
	return NewSubscription(func() { d.removeObserver(id) }), nil
}

// ObserverCount returns the number of live mutation subscriptions.
func (d *Document) ObserverCount() int {
	return len(d.observers)
}

func (d *Document) removeObserver(id uint32) {
	for i := range d.observers {
		if d.observers[i].id == id {
			out := make([]mutationObserver, 0, len(d.observers)-1)
			out = append(out, d.observers[:i]...)
			d.observers = append(out, d.observers[i+1:]...)
			return
		}
	}
}

func (d *Document) record(m Mutation) {
	if len(d.observers) == 0 {
		return
	}
	d.pending = append(d.pending, m)
}

// Pending returns the number of mutations waiting for the next Flush.
func (d *Document) Pending() int {
	return len(d.pending)
}

// Flush delivers all mutations recorded since the previous Flush as a single
// batch to every observer. Hosts call it once per frame.
func (d *Document) Flush() {
	if len(d.pending) == 0 {
		return
	}
	batch := d.pending
	d.pending = nil
	for _, o := range d.observers {
		o.fn(batch)
	}
}

// --- Pointer routing ---

// collectHittable walks the tree in document order appending visible
// elements with a hit area. Invisible subtrees are skipped.
func collectHittable(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.HitShape != nil || e.Width != 0 || e.Height != 0 {
		buf = append(buf, e)
	}
	for _, c := range e.children {
		buf = collectHittable(c, buf)
	}
	return buf
}

// HitTest returns the topmost visible element containing (x, y), or nil.
func (d *Document) HitTest(x, y float64) *Element {
	clear(d.hitBuf)
	d.hitBuf = collectHittable(d.root, d.hitBuf[:0])
	for i := len(d.hitBuf) - 1; i >= 0; i-- {
		e := d.hitBuf[i]
		lx, ly := e.WorldToLocal(x, y)
		if containsLocal(e, lx, ly) {
			return e
		}
	}
	return nil
}

// DispatchPointer routes a pointer position into enter/leave events. The
// hovered chain is the topmost hit element plus its ancestors. Elements that
// drop out of the chain receive EventPointerLeave deepest first; elements that
// join receive EventPointerEnter outermost first. Elements detached since the
// previous dispatch are dropped from the chain without a leave event.
func (d *Document) DispatchPointer(x, y float64) {
	d.pruneDetached()

	next := d.nextBuf[:0]
	for e := d.HitTest(x, y); e != nil; e = e.Parent {
		next = append(next, e)
	}
	// Reverse to outermost first.
	for i, j := 0, len(next)-1; i < j; i, j = i+1, j-1 {
		next[i], next[j] = next[j], next[i]
	}

	ev := PointerEvent{GlobalX: x, GlobalY: y}
	for i := len(d.hovered) - 1; i >= 0; i-- {
		if e := d.hovered[i]; !containsElement(next, e) {
			ev.Target = e
			e.emit(EventPointerLeave, ev)
		}
	}
	for _, e := range next {
		if !containsElement(d.hovered, e) {
			ev.Target = e
			e.emit(EventPointerEnter, ev)
		}
	}

	old := d.hovered
	clear(old)
	d.nextBuf = old[:0]
	d.hovered = next
}

// DispatchPointerOut leaves every hovered element, deepest first. Hosts call
// it when the pointer exits the viewport.
func (d *Document) DispatchPointerOut() {
	d.pruneDetached()
	for i := len(d.hovered) - 1; i >= 0; i-- {
		e := d.hovered[i]
		e.emit(EventPointerLeave, PointerEvent{Target: e})
	}
	clear(d.hovered)
	d.hovered = d.hovered[:0]
}

// Hovered returns the current hover chain, outermost first. The returned
// slice MUST NOT be mutated.
func (d *Document) Hovered() []*Element {
	return d.hovered
}

func (d *Document) pruneDetached() {
	kept := d.hovered[:0]
	for _, e := range d.hovered {
		if e.doc == d {
			kept = append(kept, e)
		}
	}
	clear(d.hovered[len(kept):])
	d.hovered = kept
}

func containsElement(s []*Element, e *Element) bool {
	for _, c := range s {
		if c == e {
			return true
		}
	}
	return false
}
