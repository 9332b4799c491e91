package ebitenview

import "image/color"

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// elementID names the widget's fixed set of elements.
type elementID uint8

const (
	elemNone elementID = iota
	elemWrapper
	elemNotch
	elemPiece
	elemTrack
	elemProgress
	elemHandle
	elemPanel
	elemConfirm
)

var elementNames = [...]string{"none", "wrapper", "notch", "piece", "track", "progress", "handle", "panel", "confirm"}

func (id elementID) String() string {
	if int(id) < len(elementNames) {
		return elementNames[id]
	}
	return "unknown"
}

// element is one rectangle of the widget. The widget's elements never
// nest or rotate, so a flat position plus size is the whole transform.
// OffsetX is the drag translation applied on top of X.
type element struct {
	ID   elementID
	X, Y float64

	Width, Height float64
	OffsetX       float64

	Color   color.RGBA
	Visible bool

	// Interactable elements take part in hit testing. HitShape overrides the
	// bounding box when set.
	Interactable bool
	HitShape     HitShape
}

// Left returns the element's screen x including its drag translation.
func (e *element) Left() float64 {
	return e.X + e.OffsetX
}

// WorldToLocal converts screen coordinates to the element's local space.
func (e *element) WorldToLocal(x, y float64) (float64, float64) {
	return x - e.Left(), y - e.Y
}

// contains tests whether screen point (x, y) hits the element.
func (e *element) contains(x, y float64) bool {
	lx, ly := e.WorldToLocal(x, y)
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width == 0 && e.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}
