package cursor

// PointerListener receives the raw primary-pointer event stream. *Store
// implements it.
type PointerListener interface {
	OnMove(x, y float64)
	OnEnterViewport()
	OnLeaveViewport()
	OnPressStart()
	OnPressEnd()
}

// PointerDevice is the host's primary pointer.
type PointerDevice interface {
	// Subscribe delivers every subsequent pointer event to l.
	Subscribe(l PointerListener) Subscription
	// Position returns the last known pointer position.
	Position() (float64, float64)
}

// PointerStatus is optionally implemented by a PointerDevice that knows
// whether the pointer is inside the viewport and pressed. A new session seeds
// its Store from it.
type PointerStatus interface {
	Inside() bool
	Pressed() bool
}

// FrameSource is the host's render-tick signal.
type FrameSource interface {
	// OnFrame calls fn once per presented frame with the elapsed seconds.
	OnFrame(fn func(dt float64)) Subscription
}

type pointerSub struct {
	id uint32
	l  PointerListener
}

// VirtualPointer is a PointerDevice driven by explicit calls. Hosts translate
// their native input into these calls; tests and scripts call them directly.
// When attached to a Document it also routes positions into element
// enter/leave events.
type VirtualPointer struct {
	doc    *Document
	subs   []pointerSub
	nextID uint32

	x, y    float64
	inside  bool
	pressed bool
}

// NewVirtualPointer creates a pointer routed into doc (which may be nil).
func NewVirtualPointer(doc *Document) *VirtualPointer {
	return &VirtualPointer{doc: doc}
}

// Subscribe implements PointerDevice.
func (p *VirtualPointer) Subscribe(l PointerListener) Subscription {
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, pointerSub{id: id, l: l})
	return NewSubscription(func() { p.unsubscribe(id) })
}

func (p *VirtualPointer) unsubscribe(id uint32) {
	for i := range p.subs {
		if p.subs[i].id == id {
			out := make([]pointerSub, 0, len(p.subs)-1)
			out = append(out, p.subs[:i]...)
			p.subs = append(out, p.subs[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of live subscriptions.
func (p *VirtualPointer) ListenerCount() int {
	return len(p.subs)
}

// Position implements PointerDevice.
func (p *VirtualPointer) Position() (float64, float64) {
	return p.x, p.y
}

// Inside reports whether the pointer is within the viewport.
func (p *VirtualPointer) Inside() bool {
	return p.inside
}

// Pressed reports whether the primary button is held.
func (p *VirtualPointer) Pressed() bool {
	return p.pressed
}

// Move reports a new position. A move from outside the viewport implies an
// enter.
func (p *VirtualPointer) Move(x, y float64) {
	if !p.inside {
		p.inside = true
		for _, s := range p.subs {
			s.l.OnEnterViewport()
		}
	}
	p.x, p.y = x, y
	for _, s := range p.subs {
		s.l.OnMove(x, y)
	}
	if p.doc != nil {
		p.doc.DispatchPointer(x, y)
	}
}

// Enter reports the pointer entering the viewport at its last position.
func (p *VirtualPointer) Enter() {
	if p.inside {
		return
	}
	p.inside = true
	for _, s := range p.subs {
		s.l.OnEnterViewport()
	}
	if p.doc != nil {
		p.doc.DispatchPointer(p.x, p.y)
	}
}

// Leave reports the pointer leaving the viewport.
func (p *VirtualPointer) Leave() {
	if !p.inside {
		return
	}
	p.inside = false
	for _, s := range p.subs {
		s.l.OnLeaveViewport()
	}
	if p.doc != nil {
		p.doc.DispatchPointerOut()
	}
}

// Press reports the primary button going down.
func (p *VirtualPointer) Press() {
	if p.pressed {
		return
	}
	p.pressed = true
	for _, s := range p.subs {
		s.l.OnPressStart()
	}
}

// Release reports the primary button going up.
func (p *VirtualPointer) Release() {
	if !p.pressed {
		return
	}
	p.pressed = false
	for _, s := range p.subs {
		s.l.OnPressEnd()
	}
}

// Refresh re-routes the current position into the document without
// reporting a move. Hosts call it once per frame so elements that appear
// or vanish under a resting pointer still get enter/leave events.
func (p *VirtualPointer) Refresh() {
	if p.inside && p.doc != nil {
		p.doc.DispatchPointer(p.x, p.y)
	}
}

type frameSub struct {
	id uint32
	fn func(dt float64)
}

// FrameClock is a FrameSource advanced explicitly by the host loop.
type FrameClock struct {
	subs   []frameSub
	nextID uint32
	ticks  uint64
}

// OnFrame implements FrameSource.
func (c *FrameClock) OnFrame(fn func(dt float64)) Subscription {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, frameSub{id: id, fn: fn})
	return NewSubscription(func() {
		for i := range c.subs {
			if c.subs[i].id == id {
				out := make([]frameSub, 0, len(c.subs)-1)
				out = append(out, c.subs[:i]...)
				c.subs = append(out, c.subs[i+1:]...)
				return
			}
		}
	})
}

// Tick runs every frame callback with dt seconds. Callbacks run to
// completion before Tick returns, so ticks never overlap or queue.
func (c *FrameClock) Tick(dt float64) {
	c.ticks++
	for _, s := range c.subs {
		s.fn(dt)
	}
}

// Ticks returns the number of Tick calls so far.
func (c *FrameClock) Ticks() uint64 {
	return c.ticks
}

// ListenerCount returns the number of live frame callbacks.
func (c *FrameClock) ListenerCount() int {
	return len(c.subs)
}
