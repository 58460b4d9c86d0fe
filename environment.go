package cursor

import (
	"os"
	"strconv"
)

// EnvReducedMotion names the environment variable read by DetectEnvironment.
const EnvReducedMotion = "CURSOR_REDUCED_MOTION"

type motionSub struct {
	id uint32
	fn func(bool)
}

// motionListeners is a small registry of reduced-motion callbacks.
type motionListeners struct {
	subs   []motionSub
	nextID uint32
}

func (m *motionListeners) add(fn func(bool)) (uint32, Subscription) {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, motionSub{id: id, fn: fn})
	return id, NewSubscription(func() { m.remove(id) })
}

func (m *motionListeners) remove(id uint32) {
	for i := range m.subs {
		if m.subs[i].id == id {
			out := make([]motionSub, 0, len(m.subs)-1)
			out = append(out, m.subs[:i]...)
			m.subs = append(out, m.subs[i+1:]...)
			return
		}
	}
}

func (m *motionListeners) notify(reduced bool) {
	for _, s := range m.subs {
		s.fn(reduced)
	}
}

// StaticEnvironment is an EnvironmentCapabilities whose signals are set
// explicitly. Hosts seed it from their platform probes; tests flip it.
type StaticEnvironment struct {
	reduced   bool
	touch     bool
	listeners motionListeners
}

// NewStaticEnvironment creates an environment with the given signals.
func NewStaticEnvironment(reducedMotion, touchPrimary bool) *StaticEnvironment {
	return &StaticEnvironment{reduced: reducedMotion, touch: touchPrimary}
}

// PrefersReducedMotion implements EnvironmentCapabilities.
func (e *StaticEnvironment) PrefersReducedMotion() bool {
	return e.reduced
}

// OnReducedMotionChange implements EnvironmentCapabilities.
func (e *StaticEnvironment) OnReducedMotionChange(fn func(bool)) Subscription {
	_, sub := e.listeners.add(fn)
	return sub
}

// TouchPrimary implements EnvironmentCapabilities.
func (e *StaticEnvironment) TouchPrimary() bool {
	return e.touch
}

// SetReducedMotion updates the preference and notifies subscribers if it changed.
func (e *StaticEnvironment) SetReducedMotion(reduced bool) {
	if e.reduced == reduced {
		return
	}
	e.reduced = reduced
	e.listeners.notify(reduced)
}

// ListenerCount returns the number of live change subscriptions.
func (e *StaticEnvironment) ListenerCount() int {
	return len(e.listeners.subs)
}

// DetectEnvironment seeds a StaticEnvironment from the process environment.
// Hosts pass their own touch probe; an unparsable EnvReducedMotion value
// counts as unset.
func DetectEnvironment(touchPrimary bool) *StaticEnvironment {
	reduced, _ := strconv.ParseBool(os.Getenv(EnvReducedMotion))
	return NewStaticEnvironment(reduced, touchPrimary)
}
