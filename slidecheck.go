package slidecheck

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidLayout is returned when the measured geometry cannot host a
	// notch (non-positive sizes, or a wrapper smaller than three pieces wide
	// or two pieces tall).
	ErrInvalidLayout = errors.New("slidecheck: invalid layout")

	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("slidecheck: invalid config")

	// ErrNoImages is returned when Config.CandidateImages is empty.
	ErrNoImages = errors.New("slidecheck: no candidate images")
)

// Layout is the rendered geometry of the widget, measured once when the
// widget is constructed. All values are in screen pixels. There is no resize
// handling: a Layout is immutable for the lifetime of a Widget.
type Layout struct {
	// Background area the notch is cut into.
	WrapperX, WrapperY          float64
	WrapperWidth, WrapperHeight float64

	// Horizontal origin of the drag handle and the width of the container it
	// slides in.
	TrackX     float64
	TrackWidth float64

	HandleWidth float64

	PieceWidth, PieceHeight float64
}

// MaxOffset returns the largest offset the handle may be dragged to.
func (l Layout) MaxOffset() float64 {
	return l.TrackWidth - l.HandleWidth
}

// Validate reports whether the layout can host a randomly placed notch.
func (l Layout) Validate() error {
	switch {
	case l.WrapperWidth <= 0 || l.WrapperHeight <= 0:
		return fmt.Errorf("%w: wrapper size %vx%v", ErrInvalidLayout, l.WrapperWidth, l.WrapperHeight)
	case l.PieceWidth <= 0 || l.PieceHeight <= 0:
		return fmt.Errorf("%w: piece size %vx%v", ErrInvalidLayout, l.PieceWidth, l.PieceHeight)
	case l.HandleWidth <= 0:
		return fmt.Errorf("%w: handle width %v", ErrInvalidLayout, l.HandleWidth)
	case l.MaxOffset() <= 0:
		return fmt.Errorf("%w: track width %v leaves no room for a %v handle",
			ErrInvalidLayout, l.TrackWidth, l.HandleWidth)
	}
	if _, _, err := positionBounds(l.WrapperWidth, l.WrapperHeight, l.PieceWidth, l.PieceHeight); err != nil {
		return err
	}
	return nil
}

// Clamp restricts a candidate handle offset to [0, MaxOffset].
func (l Layout) Clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if limit := l.MaxOffset(); x > limit {
		return limit
	}
	return x
}

// Round is one randomized puzzle, from notch placement until a pass or
// until the attempts are exhausted.
type Round struct {
	ID        uuid.UUID
	Image     string
	NotchLeft int
	NotchTop  int
	// NotchX is the notch's screen x coordinate (WrapperX + NotchLeft), the
	// value release positions are compared against.
	NotchX    float64
	Attempts  int
	StartedAt time.Time
}

// PassWindow is the inclusive range of release x coordinates that count as
// a pass.
type PassWindow struct {
	Min, Max float64
}

// Contains reports whether x lies inside the window. Both ends are inclusive.
func (w PassWindow) Contains(x float64) bool {
	return x >= w.Min && x <= w.Max
}

// Phase is the state of the drag controller.
type Phase uint8

const (
	PhaseIdle      Phase = iota // waiting for a pointer press
	PhaseDragging               // pointer is held on the handle or piece
	PhaseAnimating              // fail animation is playing; input is ignored
	PhasePassed                 // pass panel is shown; waiting for Confirm
)

var phaseNames = [...]string{"idle", "dragging", "animating", "passed"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Outcome is the result of ending a drag gesture.
type Outcome uint8

const (
	OutcomeNone        Outcome = iota // no gesture was in progress
	OutcomeSuccess                    // released inside the pass window
	OutcomeRetry                      // missed, attempts remain; animated reset
	OutcomeForcedReset                // missed with attempts exhausted; new round
	OutcomeCancelled                  // gesture interrupted; silent snap back
)

var outcomeNames = [...]string{"none", "success", "retry", "forced-reset", "cancelled"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Stats counts gestures and rounds over the lifetime of a Widget.
type Stats struct {
	Rounds       int
	Passes       int
	Failures     int
	ForcedResets int
	Cancelled    int
}
