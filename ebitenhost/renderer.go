package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/cursor"
)

// minOpacity is the opacity below which a layer is not drawn.
const minOpacity = 1.0 / 255

// Renderer draws cursor frames with ebiten/vector. Render only records the
// frame; Draw paints it, so it must be called from the game's Draw.
type Renderer struct {
	style   cursor.StyleConfig
	primary cursor.Color
	accent  cursor.Color

	frame  cursor.Frame
	active bool
}

// NewRenderer creates a renderer for the given style.
func NewRenderer(style cursor.StyleConfig) *Renderer {
	return &Renderer{
		style:   style,
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

// Draw paints the last frame: glow, then ring, then dot on top.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if !r.active {
		return
	}
	f := r.frame
	if g := f.Glow; g.Opacity >= minOpacity && g.Scale > 0 {
		vector.DrawFilledCircle(screen, float32(g.X), float32(g.Y),
			float32(r.style.GlowRadius*g.Scale), toNRGBA(r.accent, g.Opacity), true)
	}
	if ring := f.Ring; ring.Opacity >= minOpacity {
		c := r.primary
		if f.Hovering {
			c = r.accent
		}
		vector.StrokeCircle(screen, float32(ring.X), float32(ring.Y),
			float32(r.style.RingRadius*ring.Scale), float32(r.style.RingWidth), toNRGBA(c, ring.Opacity), true)
	}
	if dot := f.Dot; dot.Opacity >= minOpacity {
		vector.DrawFilledCircle(screen, float32(dot.X), float32(dot.Y),
			float32(r.style.DotRadius*dot.Scale), toNRGBA(r.primary, dot.Opacity), true)
	}
}

// DrawDocument paints every visible element of doc as a filled rectangle
// with its label, in document order.
func DrawDocument(screen *ebiten.Image, doc *cursor.Document) {
	doc.Walk(func(e *cursor.Element) bool {
		if !e.Visible {
			return false
		}
		if e.Width <= 0 || e.Height <= 0 {
			return true
		}
		x, y := e.WorldPosition()
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(e.Width), float32(e.Height),
			toNRGBA(e.Color, 1), false)
		if e.Label != "" {
			ebitenutil.DebugPrintAt(screen, e.Label, int(x)+4, int(y)+4)
		}
		return true
	})
}

// toNRGBA converts a cursor color, scaled by opacity, to 8-bit NRGBA.
func toNRGBA(c cursor.Color, opacity float64) color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A * opacity),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
