package slidecheck

import "go.uber.org/zap"

// PassWindow returns the release range that counts as a pass for the current
// round and click offset. The notch's x coordinate is shifted by the click
// offset so it can be compared with raw pointer coordinates.
func (w *Widget) PassWindow() PassWindow {
	tol := w.cfg.ToleratedPixelError
	return PassWindow{
		Min: w.round.NotchX - tol + w.clickOffset,
		Max: w.round.NotchX + tol + w.clickOffset,
	}
}

// evaluate decides the outcome of a release at pageX.
func (w *Widget) evaluate(pageX float64) Outcome {
	if w.PassWindow().Contains(pageX) {
		w.phase = PhasePassed
		w.stats.Passes++
		w.r.SetPassPanelVisible(true)
		w.log.Info("verification passed",
			zap.Stringer("round", w.round.ID),
			zap.Int("attempt", w.round.Attempts+1),
			zap.Float64("release_x", pageX),
		)
		return OutcomeSuccess
	}

	w.stats.Failures++
	if w.round.Attempts >= w.cfg.MaxAttempts-1 {
		w.stats.ForcedResets++
		w.log.Info("attempts exhausted, new round",
			zap.Stringer("round", w.round.ID),
			zap.Float64("release_x", pageX),
		)
		w.Reset()
		w.NewRound()
		return OutcomeForcedReset
	}

	w.round.Attempts++
	remaining := w.cfg.MaxAttempts - w.round.Attempts
	w.r.SetStatus(w.cfg.Messages.Remaining(remaining))
	w.log.Debug("verification missed",
		zap.Stringer("round", w.round.ID),
		zap.Float64("release_x", pageX),
		zap.Float64("notch_x", w.round.NotchX),
		zap.Int("remaining", remaining),
	)
	w.animateReset()
	return OutcomeRetry
}
