// Package slidecheck is the headless core of a slider-puzzle verification
// widget: a notch is cut into a background image at a random position and
// the user drags a matching piece along a horizontal track until it fits.
//
// The package owns the rules and none of the drawing. A [Widget] drives a
// [Renderer], which the front end implements; package
// github.com/phanxgames/slidecheck/ebitenview provides one on Ebitengine.
//
// # Quick start
//
//	w, err := slidecheck.New(renderer, slidecheck.WithConfig(cfg))
//	if err != nil {
//		return err
//	}
//	// from the UI loop:
//	w.PointerDown(localX)
//	w.PointerMove(screenX)
//	switch w.PointerUp(screenX) {
//	case slidecheck.OutcomeSuccess:
//		// pass panel is shown; call w.Confirm() when dismissed
//	case slidecheck.OutcomeRetry:
//		// w.Update(dt) every frame plays the shake animation
//	}
//
// # Rounds and attempts
//
// [Widget.NewRound] picks a background from [Config.CandidateImages] and a
// notch position with [RandomPosition]. A release passes when it lands
// within [Config.ToleratedPixelError] pixels of the notch (after shifting by
// the click offset). Each miss consumes an attempt and plays a shake
// animation whose end is signalled by a single-shot [Completion]; the miss
// that would exhaust [Config.MaxAttempts] starts a new round silently.
//
// # Non-goals
//
// There is no server-side verification and nothing resists scripted input:
// the widget is a visible gesture, not a security boundary.
package slidecheck
