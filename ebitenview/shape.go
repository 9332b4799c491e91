package ebitenview

import (
	"image"
	"image/color"
)

// PieceShape is the jigsaw outline shared by the notch and the piece: a
// square body with a round tab on its top edge and another on its right
// edge. The tabs are carved out of the bounding box, so the whole shape
// stays inside Width x Height.
type PieceShape struct {
	Width, Height float64
}

// tabRadius is a fifth of the shorter side.
func (s PieceShape) tabRadius() float64 {
	return min(s.Width, s.Height) / 5
}

func (s PieceShape) body() HitRect {
	r := s.tabRadius()
	return HitRect{X: 0, Y: r, Width: s.Width - r, Height: s.Height - r}
}

func (s PieceShape) tabs() [2]HitCircle {
	r := s.tabRadius()
	b := s.body()
	return [2]HitCircle{
		{CenterX: b.X + b.Width/2, CenterY: b.Y, Radius: r * 0.9},
		{CenterX: b.X + b.Width, CenterY: b.Y + b.Height/2, Radius: r * 0.9},
	}
}

// Contains reports whether local point (x, y) lies inside the shape.
func (s PieceShape) Contains(x, y float64) bool {
	if x < 0 || y < 0 || x > s.Width || y > s.Height {
		return false
	}
	if s.body().Contains(x, y) {
		return true
	}
	for _, tab := range s.tabs() {
		if tab.Contains(x, y) {
			return true
		}
	}
	return false
}

// Mask rasterizes the shape into an alpha mask sampled at pixel centers.
func (s PieceShape) Mask() *image.Alpha {
	w, h := int(s.Width), int(s.Height)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s.Contains(float64(x)+0.5, float64(y)+0.5) {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}
