package slidecheck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeRenderer records what the widget asked it to draw. It keeps handle,
// piece and progress as separate fields, the way a real renderer would.
type fakeRenderer struct {
	layout Layout

	handleX, pieceX, progressW float64
	shake                      float64
	notchLeft, notchTop        int
	background                 string
	panel                      bool
	status                     string

	calls []string
}

func (f *fakeRenderer) Layout() Layout { return f.layout }

func (f *fakeRenderer) SetOffset(x float64) {
	f.handleX, f.pieceX, f.progressW = x, x, x
	f.calls = append(f.calls, fmt.Sprintf("offset %g", x))
}

func (f *fakeRenderer) SetShake(dx float64) { f.shake = dx }

func (f *fakeRenderer) SetNotch(left, top int) {
	f.notchLeft, f.notchTop = left, top
	f.calls = append(f.calls, "notch")
}

func (f *fakeRenderer) SetBackground(image string) {
	f.background = image
	f.calls = append(f.calls, "background")
}

func (f *fakeRenderer) SetPassPanelVisible(visible bool) {
	f.panel = visible
	f.calls = append(f.calls, fmt.Sprintf("panel %v", visible))
}

func (f *fakeRenderer) SetStatus(text string) {
	f.status = text
	f.calls = append(f.calls, fmt.Sprintf("status %q", text))
}

func (f *fakeRenderer) assertSynced(t *testing.T) {
	t.Helper()
	if f.handleX != f.pieceX || f.pieceX != f.progressW {
		t.Fatalf("handle %v, piece %v, progress %v disagree", f.handleX, f.pieceX, f.progressW)
	}
}

func testLayout() Layout {
	return Layout{
		WrapperWidth:  400,
		WrapperHeight: 300,
		TrackWidth:    400,
		HandleWidth:   50,
		PieceWidth:    50,
		PieceHeight:   50,
	}
}

func newTestWidget(t *testing.T, opts ...Option) (*Widget, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{layout: testLayout()}
	opts = append([]Option{WithRand(NewRand(42))}, opts...)
	w, err := New(r, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, r
}

// settle drives Update at 60 TPS until the fail animation resolves.
func settle(t *testing.T, w *Widget) int {
	t.Helper()
	for frame := 1; frame <= 600; frame++ {
		w.Update(1.0 / 60)
		if w.Settled().Resolved() {
			return frame
		}
	}
	t.Fatal("animation did not settle within 600 frames")
	return 0
}

// miss drags to the far left of the notch and releases there.
func miss(w *Widget) Outcome {
	w.PointerDown(0)
	x := w.Round().NotchX - 40
	w.PointerMove(x)
	return w.PointerUp(x)
}

func TestNewStartsRound(t *testing.T) {
	w, r := newTestWidget(t)

	rd := w.Round()
	if rd.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", rd.Attempts)
	}
	if r.notchLeft != rd.NotchLeft || r.notchTop != rd.NotchTop {
		t.Errorf("renderer notch = (%d,%d), round = (%d,%d)", r.notchLeft, r.notchTop, rd.NotchLeft, rd.NotchTop)
	}
	if rd.NotchX != float64(rd.NotchLeft) {
		t.Errorf("NotchX = %v, want %v", rd.NotchX, rd.NotchLeft)
	}
	if r.background == "" || r.background != rd.Image {
		t.Errorf("background = %q, round image = %q", r.background, rd.Image)
	}
	if w.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want idle", w.Phase())
	}
	if got := w.Stats().Rounds; got != 1 {
		t.Errorf("Rounds = %d, want 1", got)
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"zero wrapper", func(l *Layout) { l.WrapperWidth = 0 }},
		{"zero piece", func(l *Layout) { l.PieceHeight = 0 }},
		{"zero handle", func(l *Layout) { l.HandleWidth = 0 }},
		{"handle wider than track", func(l *Layout) { l.TrackWidth = 40 }},
		{"wrapper too narrow", func(l *Layout) { l.WrapperWidth = 150 }},
		{"wrapper too short", func(l *Layout) { l.WrapperHeight = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout()
			tt.mutate(&l)
			_, err := New(&fakeRenderer{layout: l})
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CandidateImages = nil
	_, err := New(&fakeRenderer{layout: testLayout()}, WithConfig(cfg))
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("err = %v, want ErrNoImages", err)
	}
}

func TestPointerMoveClamps(t *testing.T) {
	tests := []struct {
		name  string
		click float64
		pageX float64
		want  float64
	}{
		{"inside", 0, 120, 120},
		{"inside with click offset", 10, 120, 110},
		{"left of origin", 0, -30, 0},
		{"click offset pushes below zero", 20, 10, 0},
		{"exactly max", 0, 350, 350},
		{"past right edge", 0, 500, 350},
		{"fractional", 0, 77.25, 77.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r := newTestWidget(t)
			w.PointerDown(tt.click)
			w.PointerMove(tt.pageX)
			if w.Offset() != tt.want {
				t.Errorf("Offset() = %v, want %v", w.Offset(), tt.want)
			}
			if r.handleX != tt.want {
				t.Errorf("handle = %v, want %v", r.handleX, tt.want)
			}
			r.assertSynced(t)
		})
	}
}

func TestPointerMoveKeepsThreeWaySync(t *testing.T) {
	w, r := newTestWidget(t)
	w.PointerDown(12)
	for x := -100.0; x <= 600; x += 7.5 {
		w.PointerMove(x)
		r.assertSynced(t)
		if r.handleX != w.Offset() {
			t.Fatalf("renderer offset %v, widget offset %v", r.handleX, w.Offset())
		}
	}
}

func TestPointerMoveSkipsRedundantUpdates(t *testing.T) {
	w, r := newTestWidget(t)
	r.calls = nil

	w.PointerDown(0)
	w.PointerMove(-10)  // clamped to 0, already there
	w.PointerMove(-20)  // still 0
	w.PointerMove(500)  // max
	w.PointerMove(1000) // still max
	w.PointerMove(100)

	want := []string{"offset 350", "offset 100"}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("renderer calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMovesOutsideDragIgnored(t *testing.T) {
	w, r := newTestWidget(t)
	w.PointerMove(200)
	if w.Offset() != 0 || r.handleX != 0 {
		t.Errorf("move without press changed offset to %v", w.Offset())
	}
	if got := w.PointerUp(200); got != OutcomeNone {
		t.Errorf("PointerUp without press = %v, want none", got)
	}
	if got := w.PointerCancel(); got != OutcomeNone {
		t.Errorf("PointerCancel without press = %v, want none", got)
	}
}

func TestNewRoundThenResetReturnsToOrigin(t *testing.T) {
	w, r := newTestWidget(t)
	w.PointerDown(5)
	w.PointerMove(230)
	if w.Offset() == 0 {
		t.Fatal("setup: expected a non-zero offset")
	}

	w.NewRound()
	w.Reset()

	if w.Offset() != 0 {
		t.Errorf("Offset() = %v, want 0", w.Offset())
	}
	if r.handleX != 0 || r.shake != 0 {
		t.Errorf("renderer handle %v shake %v, want 0 0", r.handleX, r.shake)
	}
	r.assertSynced(t)
	if w.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want idle", w.Phase())
	}
}

func TestPassWindowBoundariesInclusive(t *testing.T) {
	const click = 17
	tests := []struct {
		name  string
		delta float64
		want  Outcome
	}{
		{"exact", 0, OutcomeSuccess},
		{"lower bound", -5, OutcomeSuccess},
		{"upper bound", 5, OutcomeSuccess},
		{"strictly inside", 2.5, OutcomeSuccess},
		{"just below", -5.01, OutcomeRetry},
		{"just above", 5.01, OutcomeRetry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r := newTestWidget(t)
			w.PointerDown(click)
			x := w.Round().NotchX + click + tt.delta
			w.PointerMove(x)
			if got := w.PointerUp(x); got != tt.want {
				t.Fatalf("PointerUp(%v) = %v, want %v (window %+v)", x, got, tt.want, w.PassWindow())
			}
			if tt.want == OutcomeSuccess && !r.panel {
				t.Error("pass panel not shown")
			}
		})
	}
}

func TestAttemptCounterScenario(t *testing.T) {
	w, r := newTestWidget(t)
	first := w.Round()

	if got := miss(w); got != OutcomeRetry {
		t.Fatalf("first miss = %v, want retry", got)
	}
	if w.Attempts() != 1 || r.status != "2 attempts remaining" {
		t.Errorf("after first miss: attempts %d status %q", w.Attempts(), r.status)
	}
	settle(t, w)

	if got := miss(w); got != OutcomeRetry {
		t.Fatalf("second miss = %v, want retry", got)
	}
	if w.Attempts() != 2 || r.status != "1 attempt remaining" {
		t.Errorf("after second miss: attempts %d status %q", w.Attempts(), r.status)
	}
	settle(t, w)

	if got := miss(w); got != OutcomeForcedReset {
		t.Fatalf("third miss = %v, want forced reset", got)
	}
	if w.Attempts() != 0 {
		t.Errorf("Attempts after forced reset = %d, want 0", w.Attempts())
	}
	if w.Round().ID == first.ID {
		t.Error("forced reset kept the old round")
	}
	if r.status != "" {
		t.Errorf("status after forced reset = %q, want empty", r.status)
	}
	if w.Offset() != 0 || w.Phase() != PhaseIdle {
		t.Errorf("after forced reset: offset %v phase %v", w.Offset(), w.Phase())
	}

	s := w.Stats()
	if s.Failures != 3 || s.ForcedResets != 1 || s.Rounds != 2 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestMaxAttemptsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 1
	w, _ := newTestWidget(t, WithConfig(cfg))
	if got := miss(w); got != OutcomeForcedReset {
		t.Errorf("miss with one attempt = %v, want forced reset", got)
	}
}

func TestEndToEndTrack400Handle50(t *testing.T) {
	w, r := newTestWidget(t)
	notchX := w.Round().NotchX

	if !w.PointerDown(0) {
		t.Fatal("press rejected")
	}
	for x := 0.0; x < notchX; x += 10 {
		w.PointerMove(x)
		r.assertSynced(t)
	}
	w.PointerMove(notchX)
	if got := w.PointerUp(notchX); got != OutcomeSuccess {
		t.Fatalf("PointerUp = %v, want success", got)
	}
	if w.Attempts() != 0 {
		t.Errorf("Attempts = %d, want 0", w.Attempts())
	}
	if r.pieceX != float64(w.Round().NotchLeft) {
		t.Errorf("piece at %v, notch at %v", r.pieceX, w.Round().NotchLeft)
	}
}

func TestConfirmStartsNewRound(t *testing.T) {
	w, r := newTestWidget(t)
	if w.Confirm() {
		t.Fatal("Confirm succeeded without a pass")
	}

	old := w.Round().ID
	x := w.Round().NotchX
	w.PointerDown(0)
	w.PointerMove(x)
	w.PointerUp(x)

	if w.PointerDown(0) {
		t.Error("press accepted while pass panel is shown")
	}
	if !w.Confirm() {
		t.Fatal("Confirm failed after a pass")
	}
	if r.panel {
		t.Error("pass panel still visible")
	}
	if w.Round().ID == old {
		t.Error("Confirm kept the old round")
	}
	if w.Offset() != 0 || r.handleX != 0 {
		t.Errorf("offset after confirm = %v", w.Offset())
	}
}

func TestPointerCancelSnapsBackSilently(t *testing.T) {
	w, r := newTestWidget(t)
	w.PointerDown(0)
	w.PointerMove(200)
	r.status = "untouched"

	if got := w.PointerCancel(); got != OutcomeCancelled {
		t.Fatalf("PointerCancel = %v, want cancelled", got)
	}
	if w.Offset() != 0 || r.handleX != 0 {
		t.Errorf("offset after cancel = %v", w.Offset())
	}
	if w.Attempts() != 0 {
		t.Errorf("cancel consumed an attempt")
	}
	if r.status != "untouched" {
		t.Errorf("cancel changed status to %q", r.status)
	}
	if got := w.Stats().Cancelled; got != 1 {
		t.Errorf("Cancelled = %d, want 1", got)
	}
}

func TestFailAnimationReturnsToOrigin(t *testing.T) {
	w, r := newTestWidget(t)
	miss(w)

	if w.Phase() != PhaseAnimating {
		t.Fatalf("Phase = %v, want animating", w.Phase())
	}
	if w.PointerDown(0) {
		t.Error("press accepted during animation")
	}
	settled := w.Settled()
	if settled.Resolved() {
		t.Fatal("completion resolved before animation ran")
	}

	var sawShake bool
	var fired int
	settled.OnDone(func() { fired++ })
	for i := 0; i < 600 && !settled.Resolved(); i++ {
		w.Update(1.0 / 60)
		r.assertSynced(t)
		if r.shake != 0 {
			sawShake = true
		}
	}
	if !sawShake {
		t.Error("container never shook")
	}
	if fired != 1 {
		t.Errorf("completion callback fired %d times, want 1", fired)
	}
	if w.Offset() != 0 || r.handleX != 0 || r.shake != 0 {
		t.Errorf("after animation: offset %v handle %v shake %v", w.Offset(), r.handleX, r.shake)
	}
	if w.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want idle", w.Phase())
	}

	// Further updates must not fire the completion again.
	w.Update(1.0 / 60)
	if fired != 1 {
		t.Errorf("completion callback fired %d times after extra update", fired)
	}
}

func TestFailAnimationDuration(t *testing.T) {
	w, _ := newTestWidget(t)
	miss(w)
	frames := settle(t, w)
	// 0.5s at 60 TPS; allow a few frames for segment hand-over.
	if frames < 30 || frames > 40 {
		t.Errorf("animation took %d frames, want about 30", frames)
	}
}

func TestResetDuringAnimationResolvesCompletion(t *testing.T) {
	w, _ := newTestWidget(t)
	miss(w)
	settled := w.Settled()
	w.Update(1.0 / 60)

	w.Reset()
	select {
	case <-settled.Done():
	default:
		t.Fatal("Reset left the animation completion pending")
	}
	if w.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want idle", w.Phase())
	}
}

func TestWidgetsAreIndependent(t *testing.T) {
	a, ra := newTestWidget(t)
	b, rb := newTestWidget(t, WithRand(NewRand(7)))

	a.PointerDown(0)
	a.PointerMove(100)
	miss(b)

	if rb.handleX != b.Offset() {
		t.Errorf("b renderer at %v, b offset %v", rb.handleX, b.Offset())
	}
	if a.Phase() != PhaseDragging || b.Phase() != PhaseAnimating {
		t.Errorf("phases a=%v b=%v, want dragging animating", a.Phase(), b.Phase())
	}
	if ra.handleX != 100 {
		t.Errorf("a handle = %v, want 100", ra.handleX)
	}
	if a.Attempts() != 0 || b.Attempts() != 1 {
		t.Errorf("attempts a=%d b=%d, want 0 1", a.Attempts(), b.Attempts())
	}
}

func TestRoundIDsUnique(t *testing.T) {
	w, _ := newTestWidget(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := w.Round().ID.String()
		if seen[id] {
			t.Fatalf("duplicate round ID %s", id)
		}
		seen[id] = true
		w.NewRound()
	}
}

// headless only answers Layout; everything else goes to NopRenderer.
type headless struct {
	NopRenderer
}

func (headless) Layout() Layout { return testLayout() }

func TestNopRendererEmbedding(t *testing.T) {
	w, err := New(headless{}, WithRand(NewRand(9)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.PointerDown(10)
	x := w.Round().NotchX + 10
	w.PointerMove(x)
	if got := w.PointerUp(x); got != OutcomeSuccess {
		t.Errorf("PointerUp() = %v, want success", got)
	}

	if _, err := New(NopRenderer{}); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("New(NopRenderer{}) = %v, want ErrInvalidLayout", err)
	}
}
