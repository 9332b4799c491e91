package slidecheck

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenTrack plays a list of tweens back to back and writes the current
// value to a single field. A segment that finishes mid-frame hands over to
// the next one on the following Update.
type tweenTrack struct {
	tweens []*gween.Tween
	index  int
	field  *float64
	done   bool
}

func newTweenTrack(field *float64, tweens ...*gween.Tween) tweenTrack {
	return tweenTrack{tweens: tweens, field: field, done: len(tweens) == 0}
}

// Update advances the active segment by dt seconds.
func (t *tweenTrack) Update(dt float32) {
	if t.done {
		return
	}
	val, finished := t.tweens[t.index].Update(dt)
	*t.field = float64(val)
	if finished {
		t.index++
		t.done = t.index >= len(t.tweens)
	}
}

// failAnimation is the "shake and snap back" played after a recoverable
// miss: the container wobbles around its rest position while the shared
// handle/piece/progress offset eases back to zero. Both tracks share the
// same total duration.
//
// There is no animation manager; the owning Widget calls Update each frame.
type failAnimation struct {
	shake tweenTrack
	back  tweenTrack

	// Current values, written by the tracks.
	ShakeX float64
	Offset float64

	Done bool

	completion *Completion
}

// newFailAnimation builds the timeline starting from the given offset.
// The shake visits -a, a, -a/2, a/2 and settles at 0 in five equal steps.
func newFailAnimation(from float64, duration time.Duration, amplitude float64) *failAnimation {
	secs := float32(duration.Seconds())
	step := secs / 5
	a := float32(amplitude)

	anim := &failAnimation{Offset: from, completion: newCompletion()}
	anim.shake = newTweenTrack(&anim.ShakeX,
		gween.New(0, -a, step, ease.InOutSine),
		gween.New(-a, a, step, ease.InOutSine),
		gween.New(a, -a/2, step, ease.InOutSine),
		gween.New(-a/2, a/2, step, ease.InOutSine),
		gween.New(a/2, 0, step, ease.InOutSine),
	)
	anim.back = newTweenTrack(&anim.Offset,
		gween.New(float32(from), 0, secs, ease.OutCubic),
	)
	return anim
}

// Update advances both tracks by dt seconds. Once both have finished the
// values are pinned to the rest state and Done is set; the completion token
// is resolved by the owner after it has restored its own state.
func (a *failAnimation) Update(dt float32) {
	if a.Done {
		return
	}
	a.shake.Update(dt)
	a.back.Update(dt)
	if a.shake.done && a.back.done {
		a.ShakeX = 0
		a.Offset = 0
		a.Done = true
	}
}
