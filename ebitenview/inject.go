package ebitenview

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's input pass.
func (v *View) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (v *View) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *View) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (v *View) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, a move onto (toX, toY) and the release there. The
// sequence consumes frames+1 frames; frames below 2 are raised to 2.
func (v *View) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectMove(toX, toY)
	v.InjectRelease(toX, toY)
}

// InjectSolve queues a drag that grabs the handle at its center and drops it
// exactly onto the current notch.
func (v *View) InjectSolve(frames int) {
	if v.widget == nil {
		return
	}
	fromX := v.handle.Left() + v.handle.Width/2
	y := v.handle.Y + v.handle.Height/2
	target := v.track.X + float64(v.widget.Round().NotchLeft) + v.handle.Width/2
	v.InjectDrag(fromX, y, target, y, frames)
}

// pendingInjections reports how many synthetic events are queued.
func (v *View) pendingInjections() int {
	return len(v.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it through
// processPointer as pointer 0. Returns true if an event was consumed, in
// which case real input is skipped for the frame.
func (v *View) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	v.processPointer(0, evt.x, evt.y, evt.pressed)
	return true
}
