package cursor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Layer is the presentation of one overlay shape for a single frame.
type Layer struct {
	X, Y    float64
	Scale   float64
	Opacity float64
}

// Frame is everything a Renderer receives per tick: the dot follows the tight
// spring, the ring and glow follow the loose one.
type Frame struct {
	Dot  Layer
	Ring Layer
	Glow Layer

	Hovering bool
	Pressing bool
}

// Renderer draws overlay frames. Render is called once per frame tick while
// the overlay is active; Clear is called when it deactivates.
type Renderer interface {
	Render(f Frame)
	Clear()
}

// Scale targets per interaction state.
const (
	dotScalePress   = 0.8
	dotScaleHover   = 1.5
	ringScalePress  = 0.9
	ringScaleHover  = 1.8
	ringOpacityMax  = 0.5
	glowOpacityMax  = 0.3
	defaultEaseName = "outCubic"
)

// tweenValue is a float animated toward a target by a gween tween.
// Changing the target restarts the tween from the current value.
type tweenValue struct {
	value    float64
	target   float64
	duration float32
	fn       ease.TweenFunc
	tween    *gween.Tween
}

func newTweenValue(v float64, seconds float64, fn ease.TweenFunc) tweenValue {
	return tweenValue{value: v, target: v, duration: float32(seconds), fn: fn}
}

func (t *tweenValue) set(target float64) {
	if target == t.target {
		return
	}
	t.target = target
	if t.duration <= 0 {
		t.value = target
		t.tween = nil
		return
	}
	t.tween = gween.New(float32(t.value), float32(target), t.duration, t.fn)
}

func (t *tweenValue) update(dt float64) float64 {
	if t.tween == nil {
		return t.value
	}
	v, done := t.tween.Update(float32(dt))
	t.value = float64(v)
	if done {
		t.value = t.target
		t.tween = nil
	}
	return t.value
}

// overlay maps pointer state onto animated layer scale and opacity.
type overlay struct {
	dotScale, dotOpacity   tweenValue
	ringScale, ringOpacity tweenValue
	glowScale, glowOpacity tweenValue
}

func newOverlay(cfg TransitionConfig) *overlay {
	fn := easeFunc(cfg.Ease)
	return &overlay{
		dotScale:    newTweenValue(1, cfg.Dot, fn),
		dotOpacity:  newTweenValue(0, cfg.Dot, fn),
		ringScale:   newTweenValue(1, cfg.Ring, fn),
		ringOpacity: newTweenValue(0, cfg.Ring, fn),
		glowScale:   newTweenValue(0, cfg.Glow, fn),
		glowOpacity: newTweenValue(0, cfg.Glow, fn),
	}
}

func (o *overlay) frame(st PointerState, dot, ring Vec2, dt float64) Frame {
	switch {
	case st.Pressing:
		o.dotScale.set(dotScalePress)
		o.ringScale.set(ringScalePress)
	case st.Hovering:
		o.dotScale.set(dotScaleHover)
		o.ringScale.set(ringScaleHover)
	default:
		o.dotScale.set(1)
		o.ringScale.set(1)
	}
	if st.Visible {
		o.dotOpacity.set(1)
		o.ringOpacity.set(ringOpacityMax)
	} else {
		o.dotOpacity.set(0)
		o.ringOpacity.set(0)
	}
	if st.Hovering {
		o.glowScale.set(1)
		o.glowOpacity.set(glowOpacityMax)
	} else {
		o.glowScale.set(0)
		o.glowOpacity.set(0)
	}

	return Frame{
		Dot: Layer{
			X: dot.X, Y: dot.Y,
			Scale:   o.dotScale.update(dt),
			Opacity: o.dotOpacity.update(dt),
		},
		Ring: Layer{
			X: ring.X, Y: ring.Y,
			Scale:   o.ringScale.update(dt),
			Opacity: o.ringOpacity.update(dt),
		},
		Glow: Layer{
			X: ring.X, Y: ring.Y,
			Scale:   o.glowScale.update(dt),
			Opacity: o.glowOpacity.update(dt),
		},
		Hovering: st.Hovering,
		Pressing: st.Pressing,
	}
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"outCubic":  ease.OutCubic,
	"outQuart":  ease.OutQuart,
	"outExpo":   ease.OutExpo,
	"inOutQuad": ease.InOutQuad,
	"inOutSine": ease.InOutSine,
}

// easeFunc resolves an easing name, falling back to outCubic.
func easeFunc(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[name]; ok {
		return fn
	}
	return easeFuncs[defaultEaseName]
}
