package cursor

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Role classifies how an element accepts direct user activation.
type Role uint8

const (
	RoleNone     Role = iota // static content
	RoleLink                 // hyperlink / navigation anchor
	RoleButton               // push button
	RoleInput                // single-line form control
	RoleTextArea             // multi-line form control
	RoleSelect               // option picker
)

var roleNames = [...]string{
	RoleNone:     "none",
	RoleLink:     "link",
	RoleButton:   "button",
	RoleInput:    "input",
	RoleTextArea: "textarea",
	RoleSelect:   "select",
}

// String returns the lowercase role name used by predicate expressions.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// EventType identifies a kind of element event.
type EventType uint8

const (
	EventPointerEnter EventType = iota // pointer entered the element or a descendant
	EventPointerLeave                  // pointer left the element and all its descendants
	numEventTypes
)

// MutationKind identifies a structural tree change.
type MutationKind uint8

const (
	MutationAdded   MutationKind = iota // subtree attached under Parent
	MutationRemoved                     // subtree detached from Parent
)

// Mutation describes one structural change in a Document's tree.
type Mutation struct {
	Kind   MutationKind
	Target *Element
	Parent *Element
}
