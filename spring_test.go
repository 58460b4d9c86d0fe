package cursor

import (
	"math"
	"testing"
)

const frameDT = 1.0 / 60

func TestSpringDampingRatio(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpringConfig
		want float64
	}{
		{"underdamped clamps to 1", SpringConfig{Stiffness: 400, Damping: 25}, 1},
		{"critical", SpringConfig{Stiffness: 100, Damping: 20}, 1},
		{"overdamped", SpringConfig{Stiffness: 100, Damping: 40}, 2},
		{"zero stiffness", SpringConfig{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DampingRatio(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DampingRatio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpringConvergesMonotonically(t *testing.T) {
	configs := []SpringConfig{
		{Stiffness: 400, Damping: 25},
		{Stiffness: 200, Damping: 35},
		{Stiffness: 100, Damping: 20},
	}
	target := Vec2{100, 200}
	for _, cfg := range configs {
		s := NewSpring(cfg)
		prev := s.Position().Sub(target).Len()
		for i := 0; i < 60; i++ {
			d := s.Step(target, frameDT).Sub(target).Len()
			if d > prev+1e-9 {
				t.Fatalf("%+v: distance increased at tick %d: %v -> %v", cfg, i, prev, d)
			}
			prev = d
		}
		if prev >= 1 {
			t.Errorf("%+v: distance after 60 ticks = %v, want < 1", cfg, prev)
		}
	}
}

func TestSpringFirstTickPartway(t *testing.T) {
	s := NewSpring(SpringConfig{Stiffness: 400, Damping: 25})
	target := Vec2{100, 200}
	p := s.Step(target, frameDT)

	if p.X <= 0 || p.Y <= 0 {
		t.Errorf("after 1 tick %v should have moved toward target", p)
	}
	if p.X >= target.X || p.Y >= target.Y {
		t.Errorf("after 1 tick %v should not have reached target", p)
	}
}

func TestSpringTightLeadsLoose(t *testing.T) {
	dot := NewSpring(SpringConfig{Stiffness: 400, Damping: 25})
	ring := NewSpring(SpringConfig{Stiffness: 200, Damping: 35})
	target := Vec2{300, 0}
	for i := 0; i < 5; i++ {
		dot.Step(target, frameDT)
		ring.Step(target, frameDT)
	}
	if dot.Position().X <= ring.Position().X {
		t.Errorf("dot %v should lead ring %v during fast motion", dot.Position(), ring.Position())
	}
	for i := 0; i < 240; i++ {
		dot.Step(target, frameDT)
		ring.Step(target, frameDT)
	}
	if !dot.Settled(target, 0.01) || !ring.Settled(target, 0.01) {
		t.Errorf("springs should re-converge at rest: dot %v ring %v", dot.Position(), ring.Position())
	}
}

func TestSpringReset(t *testing.T) {
	s := NewSpring(SpringConfig{Stiffness: 400, Damping: 25})
	s.Step(Vec2{100, 100}, frameDT)
	s.Reset(Vec2{7, 8})
	if s.Position() != (Vec2{7, 8}) {
		t.Errorf("Position = %v, want (7, 8)", s.Position())
	}
	if s.Velocity() != (Vec2{}) {
		t.Errorf("Velocity = %v, want zero", s.Velocity())
	}
	if got := s.Step(Vec2{7, 8}, frameDT); got != (Vec2{7, 8}) {
		t.Errorf("at rest on target, Step = %v, want (7, 8)", got)
	}
}

func TestSpringZeroDT(t *testing.T) {
	s := NewSpring(SpringConfig{Stiffness: 400, Damping: 25})
	if got := s.Step(Vec2{10, 10}, 0); got != (Vec2{}) {
		t.Errorf("Step with dt=0 = %v, want origin", got)
	}
}

func TestSpringNoStiffnessSnaps(t *testing.T) {
	s := NewSpring(SpringConfig{})
	if got := s.Step(Vec2{10, 10}, frameDT); got != (Vec2{10, 10}) {
		t.Errorf("Step = %v, want snap to target", got)
	}
}
