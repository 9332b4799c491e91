package slidecheck

import (
	"sync"
	"testing"
	"time"
)

func TestCompletionResolvesOnce(t *testing.T) {
	c := newCompletion()
	var calls int
	c.OnDone(func() { calls++ })
	c.OnDone(func() { calls++ })

	if c.Resolved() {
		t.Fatal("new completion already resolved")
	}
	c.resolve()
	c.resolve()

	if calls != 2 {
		t.Errorf("callbacks ran %d times, want 2", calls)
	}
	if !c.Resolved() {
		t.Error("Resolved() = false after resolve")
	}
}

func TestCompletionOnDoneAfterResolve(t *testing.T) {
	c := resolvedCompletion()
	var ran bool
	c.OnDone(func() { ran = true })
	if !ran {
		t.Error("OnDone on a resolved completion did not run immediately")
	}
}

func TestCompletionDoneChannel(t *testing.T) {
	c := newCompletion()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c.Done()
	}()
	c.resolve()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter not released by resolve")
	}
}

func TestSettledIdleIsResolved(t *testing.T) {
	w, _ := newTestWidget(t)
	if !w.Settled().Resolved() {
		t.Error("Settled() on an idle widget should be resolved")
	}
}
