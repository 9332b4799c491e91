package slidecheck

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Widget.
type Option func(*Widget)

// WithConfig replaces the default policy.
func WithConfig(cfg Config) Option {
	return func(w *Widget) { w.cfg = cfg }
}

// WithRand sets the randomness source. Tests pass a seeded source to get
// reproducible notch positions.
func WithRand(rng Rand) Option {
	return func(w *Widget) { w.rng = rng }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(w *Widget) { w.log = log }
}

// WithClock overrides time.Now for round timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// Widget is one puzzle verification widget. It owns all round, drag and
// attempt state and drives a Renderer. Several widgets can run side by side;
// nothing is shared between them.
//
// A Widget is not safe for concurrent use: pointer events and Update must
// come from the same goroutine, typically the UI loop.
type Widget struct {
	r      Renderer
	layout Layout
	cfg    Config
	rng    Rand
	log    *zap.Logger
	now    func() time.Time

	xRange, yRange intRange

	round Round
	phase Phase

	// offset is the value last applied to handle, piece and progress fill.
	offset float64
	// clickOffset is the pointer's distance from the grabbed element's left
	// edge, captured on press.
	clickOffset float64

	anim    *failAnimation
	settled *Completion

	stats Stats
}

// New measures the renderer's layout, validates it against the policy and
// starts the first round. Misconfiguration fails here rather than during
// interaction.
func New(r Renderer, opts ...Option) (*Widget, error) {
	w := &Widget{
		r:       r,
		cfg:     DefaultConfig(),
		log:     zap.NewNop(),
		now:     time.Now,
		settled: resolvedCompletion(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = NewRand(uint64(w.now().UnixNano()))
	}
	if err := w.cfg.Validate(); err != nil {
		return nil, err
	}

	w.layout = r.Layout()
	if err := w.layout.Validate(); err != nil {
		return nil, err
	}
	xr, yr, err := positionBounds(w.layout.WrapperWidth, w.layout.WrapperHeight,
		w.layout.PieceWidth, w.layout.PieceHeight)
	if err != nil {
		return nil, fmt.Errorf("new widget: %w", err)
	}
	w.xRange, w.yRange = xr, yr

	w.NewRound()
	return w, nil
}

// NewRound re-randomizes the background and the notch, and clears the
// attempt counter and the status message. It does not move the handle;
// call Reset first when a drag offset may be applied.
func (w *Widget) NewRound() {
	img, _ := RandomImage(w.rng, w.cfg.CandidateImages)
	left := w.xRange.lo + w.rng.IntN(w.xRange.hi-w.xRange.lo)
	top := w.yRange.lo + w.rng.IntN(w.yRange.hi-w.yRange.lo)

	w.r.SetBackground(img)
	w.r.SetNotch(left, top)

	w.round = Round{
		ID:        uuid.New(),
		Image:     img,
		NotchLeft: left,
		NotchTop:  top,
		NotchX:    w.layout.WrapperX + float64(left),
		StartedAt: w.now(),
	}
	w.stats.Rounds++
	w.r.SetStatus("")

	w.log.Debug("round started",
		zap.Stringer("round", w.round.ID),
		zap.String("image", img),
		zap.Int("left", left),
		zap.Int("top", top),
	)
}

// Reset returns the handle, piece and progress fill to the origin without
// animation. A fail animation in progress is abandoned and its completion
// resolved, so nothing waiting on it is left hanging.
func (w *Widget) Reset() {
	if w.anim != nil {
		anim := w.anim
		w.anim = nil
		anim.completion.resolve()
	}
	if w.phase == PhasePassed {
		w.r.SetPassPanelVisible(false)
	}
	w.phase = PhaseIdle
	w.offset = 0
	w.r.SetShake(0)
	w.r.SetOffset(0)
}

// Confirm acknowledges the pass panel and starts a fresh round. It reports
// false when no pass is being shown.
func (w *Widget) Confirm() bool {
	if w.phase != PhasePassed {
		return false
	}
	w.Reset()
	w.NewRound()
	return true
}

// Update advances the fail animation by dt seconds. It is a no-op when no
// animation is playing.
func (w *Widget) Update(dt float32) {
	anim := w.anim
	if anim == nil {
		return
	}
	anim.Update(dt)
	w.r.SetShake(anim.ShakeX)
	if anim.Offset != w.offset {
		w.offset = anim.Offset
		w.r.SetOffset(w.offset)
	}
	// A finished animation has already pinned shake and offset to zero, which
	// is exactly the instantaneous-reset state.
	if anim.Done {
		w.anim = nil
		w.phase = PhaseIdle
		anim.completion.resolve()
	}
}

// animateReset starts the shake-and-snap-back animation from the current
// offset.
func (w *Widget) animateReset() {
	w.anim = newFailAnimation(w.offset, w.cfg.ShakeDuration, w.cfg.ShakeAmplitude)
	w.settled = w.anim.completion
	w.phase = PhaseAnimating
}

// Settled returns the completion of the animation currently playing, or an
// already-resolved completion when none is.
func (w *Widget) Settled() *Completion {
	return w.settled
}

// Phase returns the drag controller state.
func (w *Widget) Phase() Phase { return w.phase }

// Offset returns the offset currently applied to handle, piece and progress.
func (w *Widget) Offset() float64 { return w.offset }

// ClickOffset returns the offset captured by the last press.
func (w *Widget) ClickOffset() float64 { return w.clickOffset }

// Round returns a copy of the current round.
func (w *Widget) Round() Round { return w.round }

// Attempts returns the number of failed releases in the current round.
func (w *Widget) Attempts() int { return w.round.Attempts }

func (w *Widget) Stats() Stats   { return w.stats }
func (w *Widget) Layout() Layout { return w.layout }
func (w *Widget) Config() Config { return w.cfg }
