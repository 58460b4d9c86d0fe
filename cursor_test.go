package cursor

import (
	"errors"
	"math"
	"testing"
)

type recordingRenderer struct {
	frames []Frame
	clears int
}

func (r *recordingRenderer) Render(f Frame) { r.frames = append(r.frames, f) }
func (r *recordingRenderer) Clear()         { r.clears++ }

type recordingSystemCursor struct {
	calls []bool
}

func (s *recordingSystemCursor) SetVisible(v bool) { s.calls = append(s.calls, v) }

func (s *recordingSystemCursor) visible() bool {
	return len(s.calls) == 0 || s.calls[len(s.calls)-1]
}

type fixture struct {
	doc      *Document
	pointer  *VirtualPointer
	clock    *FrameClock
	env      *StaticEnvironment
	system   *recordingSystemCursor
	renderer *recordingRenderer
	cursor   *Cursor
}

func newFixture(t *testing.T, reduced, touch bool) *fixture {
	t.Helper()
	f := &fixture{
		doc:      NewDocument(),
		clock:    &FrameClock{},
		env:      NewStaticEnvironment(reduced, touch),
		system:   &recordingSystemCursor{},
		renderer: &recordingRenderer{},
	}
	f.pointer = NewVirtualPointer(f.doc)
	f.doc.Root().AddChild(NewBox("cta", RoleButton, 0, 0, 50, 50))

	c, err := New(DefaultConfig(), Host{
		Capabilities: f.env,
		Pointer:      f.pointer,
		Frames:       f.clock,
		Tree:         f.doc,
		Changes:      f.doc,
		System:       f.system,
		Renderer:     f.renderer,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.cursor = c
	return f
}

// listenerTotal sums every pointer, frame, tree and element listener.
func (f *fixture) listenerTotal() int {
	n := f.pointer.ListenerCount() + f.clock.ListenerCount() + f.doc.ObserverCount()
	f.doc.Walk(func(e *Element) bool {
		n += e.ListenerCount()
		return true
	})
	return n
}

func (f *fixture) frame() {
	f.doc.Flush()
	f.pointer.Refresh()
	f.clock.Tick(frameDT)
}

func TestCursorActivate(t *testing.T) {
	f := newFixture(t, false, false)
	if !f.cursor.Activate() {
		t.Fatal("Activate should succeed")
	}
	if f.system.visible() {
		t.Error("system cursor should be hidden while active")
	}
	if f.pointer.ListenerCount() != 1 || f.clock.ListenerCount() != 1 {
		t.Errorf("pointer=%d clock=%d listeners, want 1 each", f.pointer.ListenerCount(), f.clock.ListenerCount())
	}
	if f.cursor.Observer().BoundCount() != 1 {
		t.Errorf("BoundCount = %d, want 1", f.cursor.Observer().BoundCount())
	}
	if !f.cursor.Activate() {
		t.Error("second Activate should report active")
	}
	if f.pointer.ListenerCount() != 1 {
		t.Error("second Activate should not subscribe twice")
	}
}

func TestCursorInactiveEnvironments(t *testing.T) {
	tests := []struct {
		name           string
		reduced, touch bool
		envListeners   int
	}{
		{"reduced motion", true, false, 1},
		{"touch primary", false, true, 0},
		{"both", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.reduced, tt.touch)
			if f.cursor.Activate() {
				t.Fatal("Activate should refuse")
			}
			f.pointer.Move(10, 10)
			f.frame()

			if n := f.listenerTotal(); n != 0 {
				t.Errorf("listeners = %d, want 0", n)
			}
			if len(f.renderer.frames) != 0 {
				t.Errorf("rendered %d frames, want 0", len(f.renderer.frames))
			}
			if len(f.system.calls) != 0 {
				t.Errorf("system cursor touched: %v", f.system.calls)
			}
			if got := f.env.ListenerCount(); got != tt.envListeners {
				t.Errorf("env listeners = %d, want %d", got, tt.envListeners)
			}
		})
	}
}

func TestCursorSmoothingScenario(t *testing.T) {
	f := newFixture(t, false, false)
	f.cursor.Activate()

	f.pointer.Move(100, 200)
	f.frame()

	dot, _ := f.cursor.Smoothed()
	if dot.X <= 0 || dot.X >= 100 || dot.Y <= 0 || dot.Y >= 200 {
		t.Errorf("after 1 tick dot = %v, want partway toward (100, 200)", dot)
	}

	for i := 1; i < 60; i++ {
		f.frame()
	}
	dot, ring := f.cursor.Smoothed()
	if d := dot.Sub(Vec2{100, 200}).Len(); d >= 1 {
		t.Errorf("after 60 ticks dot = %v (distance %v), want within 1px", dot, d)
	}
	if d := ring.Sub(Vec2{100, 200}).Len(); d >= 1 {
		t.Errorf("after 60 ticks ring = %v (distance %v), want within 1px", ring, d)
	}
	if len(f.renderer.frames) != 60 {
		t.Errorf("rendered %d frames, want 60", len(f.renderer.frames))
	}
}

func TestCursorSeedsFromPointerPosition(t *testing.T) {
	f := newFixture(t, false, false)
	f.pointer.Move(400, 300)
	f.cursor.Activate()
	f.frame()

	dot, ring := f.cursor.Smoothed()
	if dot != (Vec2{400, 300}) || ring != (Vec2{400, 300}) {
		t.Errorf("dot=%v ring=%v, want no fly-in from origin", dot, ring)
	}
}

func TestCursorHoverAndPressFrame(t *testing.T) {
	f := newFixture(t, false, false)
	f.cursor.Activate()

	f.pointer.Move(10, 10)
	f.pointer.Press()
	for i := 0; i < 30; i++ {
		f.frame()
	}
	fr := f.cursor.Frame()
	if !fr.Hovering || !fr.Pressing {
		t.Fatalf("frame flags = hover %v press %v", fr.Hovering, fr.Pressing)
	}
	if math.Abs(fr.Dot.Scale-dotScalePress) > 1e-6 {
		t.Errorf("pressing dot scale = %v, want %v", fr.Dot.Scale, dotScalePress)
	}

	f.pointer.Release()
	for i := 0; i < 30; i++ {
		f.frame()
	}
	fr = f.cursor.Frame()
	if math.Abs(fr.Dot.Scale-dotScaleHover) > 1e-6 || math.Abs(fr.Ring.Scale-ringScaleHover) > 1e-6 {
		t.Errorf("hover scales dot=%v ring=%v", fr.Dot.Scale, fr.Ring.Scale)
	}
	if math.Abs(fr.Glow.Opacity-glowOpacityMax) > 1e-6 {
		t.Errorf("glow opacity = %v, want %v", fr.Glow.Opacity, glowOpacityMax)
	}

	f.pointer.Leave()
	for i := 0; i < 30; i++ {
		f.frame()
	}
	fr = f.cursor.Frame()
	if fr.Dot.Opacity != 0 || fr.Ring.Opacity != 0 {
		t.Errorf("opacity after leave dot=%v ring=%v, want 0", fr.Dot.Opacity, fr.Ring.Opacity)
	}
	if fr.Hovering {
		t.Error("leaving the viewport should clear hover")
	}
}

func TestCursorTracksMountedContent(t *testing.T) {
	f := newFixture(t, false, false)
	f.cursor.Activate()
	f.pointer.Move(210, 210)
	f.frame()
	if st, _ := f.cursor.State(); st.Hovering {
		t.Fatal("nothing interactive under the pointer yet")
	}

	link := NewBox("late-link", RoleLink, 200, 200, 40, 20)
	f.doc.Root().AddChild(link)
	f.frame()
	if st, _ := f.cursor.State(); !st.Hovering {
		t.Error("element mounted under a resting pointer should set hover")
	}

	link.RemoveFromParent()
	f.frame()
	if st, _ := f.cursor.State(); st.Hovering {
		t.Error("hover stuck after the element unmounted")
	}
}

func TestCursorCloseIdempotent(t *testing.T) {
	f := newFixture(t, false, false)
	f.cursor.Activate()
	f.pointer.Move(10, 10)
	f.frame()

	f.cursor.Close()
	once := f.listenerTotal()
	onceEnv := f.env.ListenerCount()
	calls := len(f.system.calls)

	f.cursor.Close()
	if once != 0 || f.listenerTotal() != 0 {
		t.Errorf("listeners after Close = %d / %d, want 0", once, f.listenerTotal())
	}
	if onceEnv != 0 || f.env.ListenerCount() != 0 {
		t.Error("environment subscription left after Close")
	}
	if len(f.system.calls) != calls {
		t.Error("second Close should not touch the system cursor")
	}
	if !f.system.visible() {
		t.Error("system cursor should be restored")
	}
	if f.renderer.clears != 1 {
		t.Errorf("renderer clears = %d, want 1", f.renderer.clears)
	}
	if f.cursor.Activate() {
		t.Error("Activate after Close should fail")
	}

	// Events after teardown are silent no-ops.
	f.pointer.Move(20, 20)
	f.pointer.Press()
	f.frame()
}

func TestCursorReducedMotionToggle(t *testing.T) {
	f := newFixture(t, false, false)
	f.cursor.Activate()

	f.env.SetReducedMotion(true)
	if f.cursor.Active() {
		t.Fatal("reduced motion should deactivate")
	}
	if n := f.listenerTotal(); n != 0 {
		t.Errorf("listeners while reduced = %d, want 0", n)
	}
	if !f.system.visible() {
		t.Error("system cursor should be restored while reduced")
	}

	f.pointer.Move(30, 40)
	f.env.SetReducedMotion(false)
	if !f.cursor.Active() {
		t.Fatal("clearing reduced motion should reactivate")
	}
	f.frame()
	dot, _ := f.cursor.Smoothed()
	if dot != (Vec2{30, 40}) {
		t.Errorf("reactivated dot = %v, want reset to (30, 40)", dot)
	}
	if f.system.visible() {
		t.Error("system cursor should be hidden again")
	}
	f.cursor.Close()
}

func TestCursorNoPointerDevice(t *testing.T) {
	sys := &recordingSystemCursor{}
	env := NewStaticEnvironment(false, false)
	c, err := New(DefaultConfig(), Host{
		Capabilities: env,
		System:       sys,
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Activate() {
		t.Error("Activate without a pointer device should fail")
	}
	if len(sys.calls) != 0 {
		t.Error("system cursor should be untouched")
	}
	if n := env.ListenerCount(); n != 0 {
		t.Errorf("refused activation left %d environment listeners", n)
	}
	env.SetReducedMotion(true)
	env.SetReducedMotion(false)
	if c.Active() {
		t.Error("environment changes should not start a refused cursor")
	}
	c.Close()
}

func TestCursorWithoutTree(t *testing.T) {
	pointer := NewVirtualPointer(nil)
	clock := &FrameClock{}
	c, err := New(DefaultConfig(), Host{Pointer: pointer, Frames: clock})
	if err != nil {
		t.Fatal(err)
	}
	if !c.Activate() {
		t.Fatal("Activate should succeed without a tree")
	}
	if c.Observer() != nil {
		t.Error("no observer expected without a tree")
	}
	pointer.Move(5, 5)
	clock.Tick(frameDT)
	if st, ok := c.State(); !ok || st.Position != (Vec2{5, 5}) {
		t.Errorf("State = %+v, %v", st, ok)
	}
	c.Close()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dot.Stiffness = 0
	if _, err := New(cfg, Host{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Predicate = PredicateConfig{Engine: "lua", Expression: "true"}
	if _, err := New(cfg, Host{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestCursorSeedsPointerStatus(t *testing.T) {
	f := newFixture(t, false, false)
	f.pointer.Move(10, 10)
	f.pointer.Press()
	f.cursor.Activate()

	st, ok := f.cursor.State()
	if !ok || !st.Visible || !st.Pressing || !st.Hovering {
		t.Errorf("state = %+v, want visible, pressing and hovering", st)
	}
}
