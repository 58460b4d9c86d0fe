package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/cursor"
)

const (
	// cellSize is how many style pixels map onto one terminal cell.
	cellSize = 10
	// cellAspect widens horizontal radii since cells are about twice as tall
	// as they are wide.
	cellAspect = 2

	dotRune  = '●'
	ringRune = '·'
	ringArcs = 24
)

// Renderer draws cursor frames into a tcell screen. Render records the frame;
// Draw paints it over whatever the screen already holds.
type Renderer struct {
	screen tcell.Screen
	style  cursor.StyleConfig
	bg     cursor.Color

	primary cursor.Color
	accent  cursor.Color

	frame  cursor.Frame
	active bool
}

// NewRenderer creates a renderer that blends layers over bg.
func NewRenderer(screen tcell.Screen, style cursor.StyleConfig, bg cursor.Color) *Renderer {
	return &Renderer{
		screen:  screen,
		style:   style,
		bg:      bg,
		primary: style.PrimaryColor(),
		accent:  style.AccentColor(),
	}
}

// Render implements cursor.Renderer.
func (r *Renderer) Render(f cursor.Frame) {
	r.frame = f
	r.active = true
}

// Clear implements cursor.Renderer.
func (r *Renderer) Clear() {
	r.frame = cursor.Frame{}
	r.active = false
}

// Active reports whether there is a frame to draw.
func (r *Renderer) Active() bool {
	return r.active
}

// Draw paints the glow as a tinted background, the ring as dotted cells and
// the dot as a single glyph.
func (r *Renderer) Draw() {
	if !r.active {
		return
	}
	f := r.frame
	w, h := r.screen.Size()

	if g := f.Glow; g.Opacity > 0 && g.Scale > 0 {
		ry := r.style.GlowRadius * g.Scale / cellSize
		rx := ry * cellAspect
		tint := rgb(blend(r.accent, r.bg, g.Opacity*r.accent.A))
		cx, cy := g.X, g.Y
		for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
			for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
				if dx*dx+dy*dy > 1 {
					continue
				}
				mainc, combc, style, _ := r.screen.GetContent(x, y)
				r.screen.SetContent(x, y, mainc, combc, style.Background(tint))
			}
		}
	}

	if ring := f.Ring; ring.Opacity > 0 {
		c := r.primary
		if f.Hovering {
			c = r.accent
		}
		st := tcell.StyleDefault.Foreground(rgb(blend(c, r.bg, ring.Opacity*c.A))).Background(rgb(r.bg))
		ry := r.style.RingRadius * ring.Scale / cellSize
		rx := ry * cellAspect
		for i := range ringArcs {
			a := 2 * math.Pi * float64(i) / ringArcs
			r.put(int(math.Round(ring.X+rx*math.Cos(a))), int(math.Round(ring.Y+ry*math.Sin(a))), ringRune, st, w, h)
		}
	}

	if dot := f.Dot; dot.Opacity > 0 {
		st := tcell.StyleDefault.Foreground(rgb(blend(r.primary, r.bg, dot.Opacity*r.primary.A))).Background(rgb(r.bg))
		r.put(int(math.Round(dot.X)), int(math.Round(dot.Y)), dotRune, st, w, h)
	}
}

func (r *Renderer) put(x, y int, ch rune, st tcell.Style, w, h int) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	_, _, prev, _ := r.screen.GetContent(x, y)
	_, bg, _ := prev.Decompose()
	r.screen.SetContent(x, y, ch, nil, st.Background(bg))
}

// DrawDocument fills the screen with bg and paints every visible element of
// doc as a block of its color, with its label on the first row.
func DrawDocument(screen tcell.Screen, doc *cursor.Document, bg cursor.Color) {
	base := tcell.StyleDefault.Background(rgb(bg))
	screen.Fill(' ', base)
	w, h := screen.Size()

	doc.Walk(func(e *cursor.Element) bool {
		if !e.Visible {
			return false
		}
		if e.Width <= 0 || e.Height <= 0 {
			return true
		}
		ex, ey := e.WorldPosition()
		x0, y0 := int(math.Round(ex)), int(math.Round(ey))
		x1, y1 := int(math.Round(ex+e.Width)), int(math.Round(ey+e.Height))
		st := base.Background(rgb(e.Color)).Foreground(rgb(contrast(e.Color)))
		for y := max(y0, 0); y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				screen.SetContent(x, y, ' ', nil, st)
			}
		}
		col := x0 + 1
		for _, ch := range e.Label {
			if col >= x1-1 || col >= w || y0 < 0 || y0 >= h {
				break
			}
			if col >= 0 {
				screen.SetContent(col, y0, ch, nil, st)
			}
			col++
		}
		return true
	})
}

// blend mixes c over bg at opacity a.
func blend(c, bg cursor.Color, a float64) cursor.Color {
	a = math.Max(0, math.Min(1, a))
	return cursor.Color{
		R: c.R*a + bg.R*(1-a),
		G: c.G*a + bg.G*(1-a),
		B: c.B*a + bg.B*(1-a),
		A: 1,
	}
}

// contrast picks black or white text for a background color.
func contrast(c cursor.Color) cursor.Color {
	if 0.299*c.R+0.587*c.G+0.114*c.B > 0.5 {
		return cursor.Color{A: 1}
	}
	return cursor.ColorWhite
}

func rgb(c cursor.Color) tcell.Color {
	ch := func(v float64) int32 { return int32(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return tcell.NewRGBColor(ch(c.R), ch(c.G), ch(c.B))
}
