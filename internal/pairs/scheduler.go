package pairs

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. Calling it more than once is safe.
type CancelFunc func()

// Scheduler abstracts timer side effects out of the engine so game logic can
// be driven by a fake clock in tests, without real wall-clock waits.
type Scheduler interface {
	// Once runs fn exactly once after d, unless cancelled first.
	Once(d time.Duration, fn func()) CancelFunc
	// Every runs fn once per period d until cancelled.
	Every(d time.Duration, fn func()) CancelFunc
}

type realScheduler struct{}

// NewScheduler returns a Scheduler backed by the wall clock.
func NewScheduler() Scheduler {
	return &realScheduler{}
}

func (that *realScheduler) Once(d time.Duration, fn func()) CancelFunc {
	timer := time.AfterFunc(d, fn)

	return func() { timer.Stop() }
}

func (that *realScheduler) Every(d time.Duration, fn func()) CancelFunc {
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

	var once sync.Once

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
