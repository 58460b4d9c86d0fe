package cursor

import "testing"

func TestHitTestShapes(t *testing.T) {
	lshape := []Vec2{{0, 0}, {60, 0}, {60, 20}, {20, 20}, {20, 60}, {0, 60}}
	reversed := make([]Vec2, len(lshape))
	for i, p := range lshape {
		reversed[len(lshape)-1-i] = p
	}

	tests := []struct {
		name   string
		shape  HitShape
		wx, wy float64
		want   bool
	}{
		{"box center", nil, 130, 130, true},
		{"box edge", nil, 160, 130, true},
		{"box outside", nil, 161, 130, false},
		{"circle center", HitCircle{CenterX: 30, CenterY: 30, Radius: 30}, 130, 130, true},
		{"circle circumference", HitCircle{CenterX: 30, CenterY: 30, Radius: 30}, 160, 130, true},
		{"circle skips box corner", HitCircle{CenterX: 30, CenterY: 30, Radius: 30}, 102, 102, false},
		{"rect inside", HitRect{X: 10, Y: 10, Width: 20, Height: 20}, 115, 115, true},
		{"rect edge", HitRect{X: 10, Y: 10, Width: 20, Height: 20}, 130, 130, true},
		{"rect skips rest of box", HitRect{X: 10, Y: 10, Width: 20, Height: 20}, 105, 105, false},
		{"polygon arm", HitPolygon{Points: lshape}, 140, 110, true},
		{"polygon leg", HitPolygon{Points: lshape}, 110, 140, true},
		{"polygon notch", HitPolygon{Points: lshape}, 140, 140, false},
		{"polygon reversed winding", HitPolygon{Points: reversed}, 110, 140, true},
		{"polygon reversed notch", HitPolygon{Points: reversed}, 140, 140, false},
		{"polygon too few points", HitPolygon{Points: lshape[:2]}, 100, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			e := NewBox("target", RoleButton, 100, 100, 60, 60)
			e.HitShape = tt.shape
			d.Root().AddChild(e)

			got := d.HitTest(tt.wx, tt.wy) == e
			if got != tt.want {
				t.Errorf("HitTest(%v, %v) hit = %v, want %v", tt.wx, tt.wy, got, tt.want)
			}
		})
	}
}

func TestHitTestShapeFallsThrough(t *testing.T) {
	d := NewDocument()
	card := NewBox("card", RoleLink, 0, 0, 100, 100)
	badge := NewBox("badge", RoleButton, 80, 0, 20, 20)
	badge.HitShape = HitCircle{CenterX: 10, CenterY: 10, Radius: 10}
	d.Root().AddChild(card)
	d.Root().AddChild(badge)

	if got := d.HitTest(90, 10); got != badge {
		t.Errorf("HitTest at badge center = %s, want badge", hitName(got))
	}
	if got := d.HitTest(81, 1); got != card {
		t.Errorf("HitTest outside badge circle = %s, want card underneath", hitName(got))
	}
}

func TestHitTestShapeWithoutSize(t *testing.T) {
	d := NewDocument()
	dot := NewElement("dot", RoleButton)
	dot.X, dot.Y = 50, 50
	dot.HitShape = HitCircle{Radius: 4}
	bare := NewElement("bare", RoleButton)
	d.Root().AddChild(dot)
	d.Root().AddChild(bare)

	if got := d.HitTest(52, 51); got != dot {
		t.Errorf("HitTest = %s, want shaped element without a size", hitName(got))
	}
	if got := d.HitTest(0, 0); got != nil {
		t.Errorf("HitTest = %s, want nil for element with neither shape nor size", hitName(got))
	}
}

func hitName(e *Element) string {
	if e == nil {
		return "<nil>"
	}
	return e.Name
}
