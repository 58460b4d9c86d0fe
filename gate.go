package cursor

// EnvironmentCapabilities answers the environment questions that decide
// whether the overlay may run.
type EnvironmentCapabilities interface {
	// PrefersReducedMotion reports the current reduced-motion preference.
	PrefersReducedMotion() bool
	// OnReducedMotionChange registers fn to be called with the new
	// preference whenever it changes.
	OnReducedMotionChange(fn func(reduced bool)) Subscription
	// TouchPrimary reports whether the primary input is touch. It is read
	// once per gate and not expected to change.
	TouchPrimary() bool
}

// SystemCursor controls the platform's native pointer indicator.
type SystemCursor interface {
	SetVisible(visible bool)
}

// Gate decides whether the overlay is allowed to run. It reads the touch
// probe once, reads the reduced-motion preference on Open, and re-reads it on
// every change notification, calling onChange when the decision flips.
type Gate struct {
	caps     EnvironmentCapabilities
	onChange func(active bool)

	reduced bool
	touch   bool
	sub     Subscription
	opened  bool
	closed  bool
}

// NewGate creates a gate over caps. A nil caps reports no reduced motion and
// no touch input.
func NewGate(caps EnvironmentCapabilities, onChange func(active bool)) *Gate {
	return &Gate{caps: caps, onChange: onChange}
}

// Open samples the environment and subscribes to preference changes. It
// returns the initial decision. Calling Open again returns Active.
func (g *Gate) Open() bool {
	if g.opened || g.closed {
		return g.Active()
	}
	g.opened = true
	if g.caps == nil {
		return g.Active()
	}
	g.touch = g.caps.TouchPrimary()
	g.reduced = g.caps.PrefersReducedMotion()
	if !g.touch {
		// touch is sampled once; a touch-primary gate stays off for good
		g.sub = g.caps.OnReducedMotionChange(g.setReduced)
	}
	return g.Active()
}

func (g *Gate) setReduced(reduced bool) {
	if g.closed || reduced == g.reduced {
		return
	}
	was := g.Active()
	g.reduced = reduced
	if now := g.Active(); now != was && g.onChange != nil {
		g.onChange(now)
	}
}

// Active reports whether the overlay may run.
func (g *Gate) Active() bool {
	return g.opened && !g.closed && !g.reduced && !g.touch
}

// ReducedMotion reports the last observed reduced-motion preference.
func (g *Gate) ReducedMotion() bool {
	return g.reduced
}

// TouchPrimary reports the touch probe result sampled on Open.
func (g *Gate) TouchPrimary() bool {
	return g.touch
}

// Close unsubscribes from preference changes. Safe to call more than once.
func (g *Gate) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.sub != nil {
		g.sub.Cancel()
		g.sub = nil
	}
}
