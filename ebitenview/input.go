package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerState tracks one pointer between frames.
type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitElem elementID // element under the pointer at press time
}

// inputState is the per-view pointer bookkeeping.
type inputState struct {
	pointers [maxPointers]pointerState

	// captured is the pointer driving the current drag, or -1. Only one
	// gesture runs at a time; other pointers are ignored until it ends.
	captured int

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	focused bool
}

// --- Hit testing ---

// hitTest finds the topmost interactable element at (x, y). While the pass
// panel is shown it swallows everything except the confirm button.
func (v *View) hitTest(x, y float64) *element {
	if v.panel.Visible {
		if v.confirm.contains(x, y) {
			return &v.confirm
		}
		return nil
	}
	for i := len(v.elements) - 1; i >= 0; i-- {
		e := v.elements[i]
		if !e.Visible || !e.Interactable {
			continue
		}
		if e.contains(x, y) {
			return e
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called once per frame. Injected events take priority over
// real devices, one per frame.
func (v *View) processInput() {
	if v.processInjectedInput() {
		return
	}
	v.checkFocus()
	v.processMousePointer()
	v.processTouchPointers()
}

// checkFocus cancels a drag when the window loses focus, since the release
// will never be delivered.
func (v *View) checkFocus() {
	focused := ebiten.IsFocused()
	if v.input.focused && !focused {
		v.cancelGesture()
	}
	v.input.focused = focused
}

// processMousePointer handles mouse input (pointer 0).
func (v *View) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	v.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9). A touch that
// disappears is a release at its last position.
func (v *View) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(v.input.prevTouchIDs[:0])
	v.input.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := v.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		v.processPointer(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if v.input.touchUsed[i] && !activeSlots[i] {
			ps := &v.input.pointers[i]
			if ps.down {
				v.processPointer(i, ps.lastX, ps.lastY, false)
			}
			v.input.touchUsed[i] = false
			v.input.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (v *View) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if v.input.touchUsed[i] && v.input.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !v.input.touchUsed[i] {
			v.input.touchUsed[i] = true
			v.input.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer
// and translates it into widget calls.
func (v *View) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &v.input.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		ps.hitElem = elemNone
		if target := v.hitTest(x, y); target != nil {
			ps.hitElem = target.ID
			v.pointerDown(pointerID, target, x, y)
		}

	case !pressed && ps.down:
		if v.input.captured == pointerID && v.widget != nil {
			v.input.captured = -1
			outcome := v.widget.PointerUp(x)
			v.log.Debug("drag released", zap.Float64("x", x), zap.Stringer("outcome", outcome))
		} else if ps.hitElem == elemConfirm && v.confirm.Visible && v.confirm.contains(x, y) && v.widget != nil {
			v.widget.Confirm()
		}
		ps.down = false
		ps.hitElem = elemNone

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if v.input.captured == pointerID && v.widget != nil {
				v.widget.PointerMove(x)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// pointerDown starts a drag when the handle or piece is pressed and no other
// pointer owns a gesture.
func (v *View) pointerDown(pointerID int, target *element, x, y float64) {
	if v.widget == nil || v.input.captured >= 0 {
		return
	}
	if target.ID != elemHandle && target.ID != elemPiece {
		return
	}
	localX, _ := target.WorldToLocal(x, y)
	if v.widget.PointerDown(localX) {
		v.input.captured = pointerID
	}
}

// cancelGesture abandons the active drag, if any.
func (v *View) cancelGesture() {
	id := v.input.captured
	if id < 0 {
		return
	}
	v.input.captured = -1
	v.input.pointers[id].down = false
	if v.widget != nil {
		v.widget.PointerCancel()
	}
}
