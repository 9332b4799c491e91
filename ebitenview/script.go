package ebitenview

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// scriptStep is one action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"drag": true, "click": true, "wait": true,
	"screenshot": true, "confirm": true, "solve": true,
}

// ScriptRunner replays injected input and screenshots across frames. Attach
// it with View.SetScriptRunner; it advances from View.Update before input is
// processed.
//
//	{"steps": [
//	  {"action": "screenshot", "label": "start"},
//	  {"action": "drag", "fromX": 45, "fromY": 284, "toX": 200, "toY": 284, "frames": 20},
//	  {"action": "wait", "frames": 40},
//	  {"action": "solve", "frames": 20},
//	  {"action": "confirm"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script. Unknown actions are rejected up front so
// a typo does not silently skip a step.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner to the view.
func (v *View) SetScriptRunner(r *ScriptRunner) {
	v.runner = r
}

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(v *View) {
	if r.done {
		return
	}
	if v.pendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "click":
		v.InjectClick(st.X, st.Y)
	case "drag":
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts
		}
	case "confirm":
		c := &v.confirm
		v.InjectClick(c.X+c.Width/2, c.Y+c.Height/2)
	case "solve":
		v.InjectSolve(st.Frames)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && v.pendingInjections() == 0 {
		r.done = true
	}
}
