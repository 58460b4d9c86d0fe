package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/cursor"
)

// pointerSample is one poll of the primary mouse pointer.
type pointerSample struct {
	X, Y    int
	Pressed bool
	Focused bool
}

func readPointer() pointerSample {
	x, y := ebiten.CursorPosition()
	return pointerSample{
		X:       x,
		Y:       y,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Focused: ebiten.IsFocused(),
	}
}

// applyPointer routes a sample into p. A sample outside the w x h screen, or
// taken while the window is unfocused, is a viewport leave. Moves are only
// reported when the position changed.
func applyPointer(p *cursor.VirtualPointer, s pointerSample, w, h int) {
	if !s.Focused || s.X < 0 || s.Y < 0 || s.X >= w || s.Y >= h {
		p.Leave()
		return
	}
	x, y := float64(s.X), float64(s.Y)
	if px, py := p.Position(); !p.Inside() || px != x || py != y {
		p.Move(x, y)
	}
	switch {
	case s.Pressed && !p.Pressed():
		p.Press()
	case !s.Pressed && p.Pressed():
		p.Release()
	}
}

// systemCursor hides and restores the OS mouse cursor.
type systemCursor struct{}

func (systemCursor) SetVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}
