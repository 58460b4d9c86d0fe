package cursor

import "math"

// HitShape replaces an element's Width x Height box when the document decides
// which element lies under the pointer. Coordinates are local to the element.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect limits hits to a sub-rectangle of the element, such as the label of
// a wide row. Edges count as inside.
type HitRect Rect

// Contains implements HitShape.
func (r HitRect) Contains(x, y float64) bool { return Rect(r).Contains(x, y) }

// HitCircle makes an element hit only within Radius of its center, for round
// buttons and avatar links.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains implements HitShape.
func (c HitCircle) Contains(x, y float64) bool {
	return math.Hypot(x-c.CenterX, y-c.CenterY) <= c.Radius
}

// HitPolygon is an outline for irregular elements. Any simple polygon works,
// concave or not, in either winding order; fewer than three points never hit.
// Points exactly on an edge may land on either side.
type HitPolygon struct {
	Points []Vec2
}

// Contains implements HitShape using the even-odd crossing rule.
func (p HitPolygon) Contains(x, y float64) bool {
	if len(p.Points) < 3 {
		return false
	}
	inside := false
	prev := p.Points[len(p.Points)-1]
	for _, cur := range p.Points {
		if (cur.Y > y) != (prev.Y > y) {
			at := cur.X + (y-cur.Y)*(prev.X-cur.X)/(prev.Y-cur.Y)
			if x < at {
				inside = !inside
			}
		}
		prev = cur
	}
	return inside
}

// containsLocal reports whether an element claims the local point. Elements
// with neither a shape nor a size never claim anything.
func containsLocal(e *Element, lx, ly float64) bool {
	switch {
	case e.HitShape != nil:
		return e.HitShape.Contains(lx, ly)
	case e.Width == 0 && e.Height == 0:
		return false
	default:
		return Rect{Width: e.Width, Height: e.Height}.Contains(lx, ly)
	}
}
