package ebitenview

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/phanxgames/slidecheck"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "drag"}, {"action": "jump"}]}`, `step 1: unknown action "jump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("LoadScript() = nil error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadScript() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}

	_, err := LoadScript([]byte(`{"steps": []}`))
	if !errors.Is(err, ErrEmptyScript) {
		t.Errorf("LoadScript(empty) = %v, want ErrEmptyScript", err)
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runScript(t *testing.T, v *View, data string) *ScriptRunner {
	t.Helper()
	r, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	v.SetScriptRunner(r)
	for i := 0; i < 1000 && !r.Done(); i++ {
		frame(v)
	}
	if !r.Done() {
		t.Fatal("script did not finish within 1000 frames")
	}
	return r
}

func TestScriptSolveAndConfirm(t *testing.T) {
	v, w := newTestView(t)

	runScript(t, v, `{"steps": [
		{"action": "screenshot", "label": "start"},
		{"action": "solve", "frames": 10},
		{"action": "screenshot", "label": "passed"},
		{"action": "wait", "frames": 5},
		{"action": "confirm"}
	]}`)

	if w.Stats().Passes != 1 {
		t.Errorf("Stats().Passes = %d, want 1", w.Stats().Passes)
	}
	if w.Stats().Rounds != 2 {
		t.Errorf("Stats().Rounds = %d, want 2", w.Stats().Rounds)
	}
	if w.Phase() != slidecheck.PhaseIdle {
		t.Errorf("Phase() = %v, want idle", w.Phase())
	}
	if got := strings.Join(v.screenshotQueue, ","); got != "start,passed" {
		t.Errorf("screenshot queue = %q, want %q", got, "start,passed")
	}
}

func TestScriptDragMiss(t *testing.T) {
	v, w := newTestView(t)
	hx, hy := handleCenter(v)
	to := missX(v, w)

	runScript(t, v, `{"steps": [
		{"action": "drag", "fromX": `+ftoa(hx)+`, "fromY": `+ftoa(hy)+`, "toX": `+ftoa(to)+`, "toY": `+ftoa(hy)+`, "frames": 6}
	]}`)

	if w.Stats().Failures != 1 {
		t.Errorf("Stats().Failures = %d, want 1", w.Stats().Failures)
	}
	if w.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", w.Attempts())
	}
}

func TestScriptWaitCountsFrames(t *testing.T) {
	v, _ := newTestView(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetScriptRunner(r)

	frames := 0
	for !r.Done() {
		frame(v)
		frames++
		if frames > 10 {
			t.Fatal("wait never finished")
		}
	}
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
}

func TestScriptClickWithoutTarget(t *testing.T) {
	v, w := newTestView(t)
	runScript(t, v, `{"steps": [{"action": "click", "x": 390, "y": 10}]}`)
	if w.Phase() != slidecheck.PhaseIdle {
		t.Errorf("Phase() = %v, want idle", w.Phase())
	}
}
