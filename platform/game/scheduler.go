package game

import "time"

// Scheduler abstracts timer scheduling so AI pacing and autosave can run
// synchronously in tests.
type Scheduler interface {
	// After runs fn once after d. The returned func cancels the run.
	After(d time.Duration, fn func()) (cancel func())
	// Every runs fn repeatedly at interval d. The returned func stops it.
	Every(d time.Duration, fn func()) (stop func())
}

type realScheduler struct{}

// NewScheduler returns the wall-clock scheduler used in production.
func NewScheduler() Scheduler { return realScheduler{} }

func (realScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

func (realScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

// immediateScheduler runs After callbacks synchronously and never ticks.
// Used by headless test harnesses.
type immediateScheduler struct{}

func NewImmediateScheduler() Scheduler { return immediateScheduler{} }

func (immediateScheduler) After(d time.Duration, fn func()) func() {
	fn()
	return func() {}
}

func (immediateScheduler) Every(d time.Duration, fn func()) func() {
	return func() {}
}
