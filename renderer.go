package slidecheck

// Renderer is the drawing surface a Widget drives. Implementations own the
// visual elements; the widget only tells them where things are.
//
// All methods are called from the goroutine that delivers pointer events
// and calls Widget.Update.
type Renderer interface {
	// Layout reports the rendered geometry. It is read once, when the widget
	// is constructed.
	Layout() Layout

	// SetOffset moves the drag handle and the puzzle piece to x and sets the
	// progress fill width to x. The three elements never disagree.
	SetOffset(x float64)

	// SetShake displaces the whole widget horizontally by dx while the fail
	// animation plays. Zero restores the rest position.
	SetShake(dx float64)

	// SetNotch positions the notch at (left, top) inside the background, puts
	// the piece on the same row and offsets the piece's background so it
	// lines up once dragged onto the notch.
	SetNotch(left, top int)

	// SetBackground selects the background image.
	SetBackground(image string)

	SetPassPanelVisible(visible bool)

	// SetStatus replaces the status message. Empty clears it.
	SetStatus(text string)
}

// NopRenderer discards every call. Its Layout is the zero value, so it is
// only useful embedded in a type that overrides Layout.
type NopRenderer struct{}

func (NopRenderer) Layout() Layout { return Layout{} }
func (NopRenderer) SetOffset(float64) {}
func (NopRenderer) SetShake(float64) {}
func (NopRenderer) SetNotch(int, int) {}
func (NopRenderer) SetBackground(string) {}
func (NopRenderer) SetPassPanelVisible(bool) {}
func (NopRenderer) SetStatus(string) {}
