package cursor

import "math"

// SpringConfig parameterizes a unit-mass spring.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

// DampingRatio returns Damping / (2*sqrt(Stiffness)), raised to 1 when lower
// so the response never overshoots.
func (c SpringConfig) DampingRatio() float64 {
	if c.Stiffness <= 0 {
		return 1
	}
	z := c.Damping / (2 * math.Sqrt(c.Stiffness))
	if z < 1 {
		return 1
	}
	return z
}

// Spring smooths a 2D target into a continuous trajectory. Each Step applies
// the closed-form solution of a critically damped (or overdamped) spring
// over dt.
type Spring struct {
	cfg SpringConfig
	pos Vec2
	vel Vec2
}

// NewSpring creates a spring resting at the origin.
func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{cfg: cfg}
}

// Config returns the spring parameters.
func (s *Spring) Config() SpringConfig {
	return s.cfg
}

// Reset places the spring at p with zero velocity.
func (s *Spring) Reset(p Vec2) {
	s.pos = p
	s.vel = Vec2{}
}

// Position returns the current smoothed position.
func (s *Spring) Position() Vec2 {
	return s.pos
}

// Velocity returns the current velocity in units per second.
func (s *Spring) Velocity() Vec2 {
	return s.vel
}

// Step advances the spring toward target by dt seconds and returns the new
// smoothed position.
func (s *Spring) Step(target Vec2, dt float64) Vec2 {
	if dt <= 0 {
		return s.pos
	}
	if s.cfg.Stiffness <= 0 {
		s.Reset(target)
		return s.pos
	}
	omega := math.Sqrt(s.cfg.Stiffness)
	zeta := s.cfg.DampingRatio()
	s.pos.X, s.vel.X = stepAxis(s.pos.X-target.X, s.vel.X, omega, zeta, dt)
	s.pos.Y, s.vel.Y = stepAxis(s.pos.Y-target.Y, s.vel.Y, omega, zeta, dt)
	s.pos.X += target.X
	s.pos.Y += target.Y
	return s.pos
}

// Settled reports whether the spring is within eps of target and nearly at rest.
func (s *Spring) Settled(target Vec2, eps float64) bool {
	return s.pos.Sub(target).Len() < eps && s.vel.Len() < eps
}

// stepAxis advances displacement x and velocity v of one axis by dt.
func stepAxis(x, v, omega, zeta, dt float64) (float64, float64) {
	if zeta-1 < 1e-9 {
		e := math.Exp(-omega * dt)
		c := v + omega*x
		return (x + c*dt) * e, (v - omega*c*dt) * e
	}
	root := omega * math.Sqrt(zeta*zeta-1)
	r1 := -omega*zeta + root
	r2 := -omega*zeta - root
	c1 := (v - r2*x) / (r1 - r2)
	c2 := x - c1
	e1 := math.Exp(r1 * dt)
	e2 := math.Exp(r2 * dt)
	return c1*e1 + c2*e2, c1*r1*e1 + c2*r2*e2
}
