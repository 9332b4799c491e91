package slidecheck

import "go.uber.org/zap"

// PointerDown starts a drag gesture. offsetX is the pointer's distance from
// the left edge of the element that was pressed (handle or piece). Presses
// are ignored unless the widget is idle; it reports whether the gesture
// started.
func (w *Widget) PointerDown(offsetX float64) bool {
	if w.phase != PhaseIdle {
		return false
	}
	w.clickOffset = offsetX
	w.phase = PhaseDragging
	return true
}

// PointerMove tracks the pointer during a drag. pageX is the pointer's screen
// x coordinate. The candidate offset is clamped to the track, and handle,
// piece and progress fill are moved together. Moves outside a drag are
// ignored.
func (w *Widget) PointerMove(pageX float64) {
	if w.phase != PhaseDragging {
		return
	}
	x := w.layout.Clamp(pageX - w.layout.TrackX - w.clickOffset)
	if x == w.offset {
		return
	}
	w.offset = x
	w.r.SetOffset(x)
}

// PointerUp ends the drag at screen x coordinate pageX and evaluates the
// release. Releases outside a drag return OutcomeNone.
func (w *Widget) PointerUp(pageX float64) Outcome {
	if w.phase != PhaseDragging {
		return OutcomeNone
	}
	w.phase = PhaseIdle
	return w.evaluate(pageX)
}

// PointerCancel abandons a drag that ended without a release, such as the
// window losing focus mid-drag. The handle snaps back silently and no
// attempt is consumed.
func (w *Widget) PointerCancel() Outcome {
	if w.phase != PhaseDragging {
		return OutcomeNone
	}
	w.stats.Cancelled++
	w.Reset()
	w.log.Debug("drag cancelled", zap.Stringer("round", w.round.ID))
	return OutcomeCancelled
}
