package slidecheck

import "sync"

// Completion is a single-shot signal that an animation has finished. It is
// resolved at most once; callbacks registered before or after resolution
// run exactly once.
type Completion struct {
	once sync.Once
	mu   sync.Mutex
	done chan struct{}
	fns  []func()
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// resolvedCompletion returns a Completion that has already fired.
func resolvedCompletion() *Completion {
	c := newCompletion()
	c.resolve()
	return c
}

// Done returns a channel closed when the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Resolved reports whether the completion has fired.
func (c *Completion) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// OnDone registers fn to run on resolution. If the completion has already
// resolved, fn runs immediately on the caller's goroutine.
func (c *Completion) OnDone(fn func()) {
	c.mu.Lock()
	if !c.Resolved() {
		c.fns = append(c.fns, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	fn()
}

// resolve fires the completion. Calls after the first are no-ops.
func (c *Completion) resolve() {
	c.once.Do(func() {
		c.mu.Lock()
		fns := c.fns
		c.fns = nil
		close(c.done)
		c.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	})
}
