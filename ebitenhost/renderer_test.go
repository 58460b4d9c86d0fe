package ebitenhost

import (
	"image/color"
	"testing"

	"github.com/phanxgames/cursor"
)

func TestToNRGBA(t *testing.T) {
	tests := []struct {
		name    string
		c       cursor.Color
		opacity float64
		want    color.NRGBA
	}{
		{"opaque white", cursor.ColorWhite, 1, color.NRGBA{255, 255, 255, 255}},
		{"half opacity", cursor.Color{R: 1, A: 1}, 0.5, color.NRGBA{255, 0, 0, 128}},
		{"clamped", cursor.Color{R: 2, G: -1, B: 0.5, A: 1}, 3, color.NRGBA{255, 0, 128, 255}},
		{"transparent", cursor.Color{R: 1, G: 1, B: 1}, 1, color.NRGBA{255, 255, 255, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toNRGBA(tt.c, tt.opacity); got != tt.want {
				t.Errorf("toNRGBA = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRendererRenderAndClear(t *testing.T) {
	r := NewRenderer(cursor.DefaultConfig().Style)
	if r.Active() {
		t.Fatal("new renderer should be idle")
	}
	r.Render(cursor.Frame{Dot: cursor.Layer{X: 1, Y: 2, Scale: 1, Opacity: 1}})
	if !r.Active() || r.frame.Dot.X != 1 {
		t.Errorf("Render did not record the frame: %+v", r.frame)
	}
	r.Clear()
	if r.Active() || r.frame != (cursor.Frame{}) {
		t.Error("Clear should drop the frame")
	}
}
