package cursor

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoPointerDevice is logged when a host offers no pointer device or frame
// signal; the overlay then stays inactive.
var ErrNoPointerDevice = errors.New("cursor: host has no pointer device")

// Host bundles the collaborators a Cursor needs. Any field may be nil:
// without Pointer or Frames the cursor never activates, without Tree no
// hover tracking happens, and without Changes hover bindings are static.
type Host struct {
	Capabilities EnvironmentCapabilities
	Pointer      PointerDevice
	Frames       FrameSource
	Tree         Walker
	Changes      TreeChangeSource
	System       SystemCursor
	Renderer     Renderer
}

// session holds everything acquired by one activation.
type session struct {
	store    *Store
	observer *Observer
	dot      *Spring
	ring     *Spring
	overlay  *overlay
	frame    Frame

	pointerSub Subscription
	frameSub   Subscription
}

// Cursor is the pointer overlay subsystem. It activates only when the
// environment allows it, runs one session per activation, and releases
// every listener on deactivation or Close.
type Cursor struct {
	cfg    Config
	host   Host
	match  ElementMatchPredicate
	logger *slog.Logger

	gate   *Gate
	sess   *session
	closed bool
}

// New validates cfg and creates an inactive Cursor.
func New(cfg Config, host Host) (*Cursor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	match, err := NewPredicate(cfg.Predicate)
	if err != nil {
		return nil, fmt.Errorf("interactive predicate: %w", err)
	}
	return &Cursor{
		cfg:    cfg,
		host:   host,
		match:  match,
		logger: cfg.ResolveLogger(),
	}, nil
}

// Activate opens the visibility gate and, if allowed, starts a session.
// It reports whether the overlay is running. Calling Activate again is a
// no-op; after Close it always returns false.
func (c *Cursor) Activate() bool {
	if c.closed {
		return false
	}
	if c.host.Pointer == nil || c.host.Frames == nil {
		c.logger.Debug("cursor: not activating", "err", ErrNoPointerDevice)
		return false
	}
	if c.gate == nil {
		c.gate = NewGate(c.host.Capabilities, c.gateChanged)
		if !c.gate.Open() {
			c.logger.Debug("cursor: gate closed",
				"reduced_motion", c.gate.ReducedMotion(), "touch", c.gate.TouchPrimary())
			return false
		}
	}
	if c.sess == nil && c.gate.Active() {
		c.start()
	}
	return c.sess != nil
}

func (c *Cursor) gateChanged(active bool) {
	if c.closed {
		return
	}
	c.logger.Debug("cursor: gate changed", "active", active)
	if active {
		c.start()
		return
	}
	c.stop()
}

func (c *Cursor) start() {
	if c.sess != nil {
		return
	}

	x, y := c.host.Pointer.Position()
	s := &session{
		store:   NewStore(x, y),
		dot:     NewSpring(c.cfg.Dot),
		ring:    NewSpring(c.cfg.Ring),
		overlay: newOverlay(c.cfg.Transitions),
	}
	if ps, ok := c.host.Pointer.(PointerStatus); ok {
		if ps.Inside() {
			s.store.OnEnterViewport()
		}
		if ps.Pressed() {
			s.store.OnPressStart()
		}
	}
	origin := Vec2{x, y}
	s.dot.Reset(origin)
	s.ring.Reset(origin)

	if c.host.Tree != nil {
		s.observer = NewObserver(c.host.Tree, c.host.Changes, c.match, s.store, c.logger)
		s.observer.Start()
	}
	s.pointerSub = c.host.Pointer.Subscribe(s.store)
	s.frameSub = c.host.Frames.OnFrame(c.tick)
	if c.host.System != nil {
		c.host.System.SetVisible(false)
	}
	c.sess = s
	c.logger.Debug("cursor: activated", "x", x, "y", y)
}

// tick advances both springs toward the latest raw position and hands the
// resulting frame to the renderer.
func (c *Cursor) tick(dt float64) {
	s := c.sess
	if s == nil {
		return
	}
	st := s.store.Read()
	dot := s.dot.Step(st.Position, dt)
	ring := s.ring.Step(st.Position, dt)
	s.frame = s.overlay.frame(st, dot, ring, dt)
	if c.host.Renderer != nil {
		c.host.Renderer.Render(s.frame)
	}
}

// stop ends the current session and restores the system cursor.
func (c *Cursor) stop() {
	s := c.release()
	if s != nil && c.host.System != nil {
		c.host.System.SetVisible(true)
	}
}

// release stops the frame tick, detaches from the pointer, and releases
// every hover binding. It returns the released session, if any.
func (c *Cursor) release() *session {
	s := c.sess
	if s == nil {
		return nil
	}
	c.sess = nil
	s.frameSub.Cancel()
	s.pointerSub.Cancel()
	if s.observer != nil {
		s.observer.Close()
	}
	s.store.Close()
	if c.host.Renderer != nil {
		c.host.Renderer.Clear()
	}
	c.logger.Debug("cursor: deactivated")
	return s
}

// Close tears the subsystem down: frame tick, hover bindings, environment
// subscription, then the system cursor. Safe to call more than once.
func (c *Cursor) Close() {
	if c.closed {
		return
	}
	c.closed = true
	s := c.release()
	if c.gate != nil {
		c.gate.Close()
	}
	if s != nil && c.host.System != nil {
		c.host.System.SetVisible(true)
	}
}

// Active reports whether a session is running.
func (c *Cursor) Active() bool {
	return c.sess != nil
}

// State returns the raw pointer state of the running session.
func (c *Cursor) State() (PointerState, bool) {
	if c.sess == nil {
		return PointerState{}, false
	}
	return c.sess.store.Read(), true
}

// Smoothed returns the current dot and ring positions.
func (c *Cursor) Smoothed() (dot, ring Vec2) {
	if c.sess == nil {
		return Vec2{}, Vec2{}
	}
	return c.sess.dot.Position(), c.sess.ring.Position()
}

// Frame returns the last frame handed to the renderer.
func (c *Cursor) Frame() Frame {
	if c.sess == nil {
		return Frame{}
	}
	return c.sess.frame
}

// Observer returns the running session's hover observer, or nil.
func (c *Cursor) Observer() *Observer {
	if c.sess == nil {
		return nil
	}
	return c.sess.observer
}

// Config returns the configuration the cursor was created with.
func (c *Cursor) Config() Config {
	return c.cfg
}
