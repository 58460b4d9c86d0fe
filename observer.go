package cursor

import (
	"errors"
	"log/slog"
)

// binding holds the listener handles installed on one interactive element.
type binding struct {
	enter ListenerHandle
	leave ListenerHandle
}

// Observer keeps exactly one enter/leave binding on every interactive
// element of a mutating tree and folds them into the Store's hover flag.
//
// Hover is aggregated over the set of currently entered elements rather than
// a single flag, so leaving a nested element while still inside an
// interactive ancestor keeps the pointer hovering.
type Observer struct {
	tree   Walker
	source TreeChangeSource
	match  ElementMatchPredicate
	store  *Store
	logger *slog.Logger

	bound   map[*Element]binding
	entered map[*Element]struct{}
	seen    map[*Element]struct{}

	sub    Subscription
	static bool
	closed bool
}

// NewObserver creates an observer. Nothing is bound until Start.
// A nil match uses DefaultInteractive; a nil source behaves like a host
// without mutation notifications.
func NewObserver(tree Walker, source TreeChangeSource, match ElementMatchPredicate, store *Store, logger *slog.Logger) *Observer {
	if match == nil {
		match = DefaultInteractive
	}
	if logger == nil {
		logger = discardLogger
	}
	return &Observer{
		tree:    tree,
		source:  source,
		match:   match,
		store:   store,
		logger:  logger,
		bound:   make(map[*Element]binding),
		entered: make(map[*Element]struct{}),
		seen:    make(map[*Element]struct{}),
	}
}

// Start binds every currently interactive element and subscribes to tree
// changes. If the source cannot deliver notifications the observer keeps the
// initial bindings and never rebinds.
func (o *Observer) Start() {
	if o.closed {
		return
	}
	o.Rescan()

	if o.source == nil {
		o.static = true
		o.logger.Debug("cursor: no tree change source, static bindings", "bound", len(o.bound))
		return
	}
	sub, err := o.source.Observe(func([]Mutation) { o.Rescan() })
	if err != nil {
		o.static = true
		if !errors.Is(err, ErrMutationsUnsupported) {
			o.logger.Warn("cursor: observe tree", "err", err)
		}
		o.logger.Debug("cursor: tree mutations unavailable, static bindings", "bound", len(o.bound))
		return
	}
	o.sub = sub
}

// Rescan re-derives the interactive set and applies the difference against
// the binding table: new elements are bound, vanished elements are released,
// persistent elements are left untouched.
func (o *Observer) Rescan() {
	if o.closed {
		return
	}
	clear(o.seen)
	o.tree.Walk(func(e *Element) bool {
		if o.match.Match(e) {
			o.seen[e] = struct{}{}
		}
		return true
	})

	var added, released int
	for e, b := range o.bound {
		if _, ok := o.seen[e]; !ok {
			o.release(e, b)
			released++
		}
	}
	for e := range o.seen {
		if _, ok := o.bound[e]; !ok {
			o.bind(e)
			added++
		}
	}
	clear(o.seen)

	if added > 0 || released > 0 {
		o.logger.Debug("cursor: rebind", "added", added, "released", released, "bound", len(o.bound))
	}
	o.sync()
}

// bind installs the enter/leave pair on e. An element that is already under
// the pointer counts as entered, since its enter event has already fired.
func (o *Observer) bind(e *Element) {
	o.bound[e] = binding{
		enter: e.AddEventListener(EventPointerEnter, func(PointerEvent) { o.onEnter(e) }),
		leave: e.AddEventListener(EventPointerLeave, func(PointerEvent) { o.onLeave(e) }),
	}
	if hs, ok := o.tree.(HoverSource); ok && containsElement(hs.Hovered(), e) {
		o.entered[e] = struct{}{}
	}
}

func (o *Observer) release(e *Element, b binding) {
	b.enter.Remove()
	b.leave.Remove()
	delete(o.bound, e)
	delete(o.entered, e)
}

func (o *Observer) onEnter(e *Element) {
	if o.closed {
		return
	}
	o.entered[e] = struct{}{}
	o.sync()
}

func (o *Observer) onLeave(e *Element) {
	if o.closed {
		return
	}
	delete(o.entered, e)
	o.sync()
}

func (o *Observer) sync() {
	o.store.SetHover(len(o.entered) > 0)
}

// Close unsubscribes from tree changes and releases every binding.
// Safe to call more than once.
func (o *Observer) Close() {
	if o.closed {
		return
	}
	if o.sub != nil {
		o.sub.Cancel()
		o.sub = nil
	}
	for e, b := range o.bound {
		o.release(e, b)
	}
	clear(o.entered)
	o.store.SetHover(false)
	o.closed = true
}

// BoundCount returns the number of elements currently holding a binding.
func (o *Observer) BoundCount() int {
	return len(o.bound)
}

// EnteredCount returns the number of bound elements the pointer is inside.
func (o *Observer) EnteredCount() int {
	return len(o.entered)
}

// Static reports whether the observer fell back to one-time binding.
func (o *Observer) Static() bool {
	return o.static
}
