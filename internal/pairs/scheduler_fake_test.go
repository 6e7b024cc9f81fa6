package pairs

import (
	"sync"
	"time"
)

// fakeScheduler drives engine timers by hand so tests never wait on the real
// clock.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

type fakeTask struct {
	delay     time.Duration
	fn        func()
	periodic  bool
	cancelled bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (that *fakeScheduler) Once(d time.Duration, fn func()) CancelFunc {
	return that.add(&fakeTask{delay: d, fn: fn})
}

func (that *fakeScheduler) Every(d time.Duration, fn func()) CancelFunc {
	return that.add(&fakeTask{delay: d, fn: fn, periodic: true})
}

func (that *fakeScheduler) add(task *fakeTask) CancelFunc {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.tasks = append(that.tasks, task)

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		task.cancelled = true
	}
}

// fireOnce runs every pending one-shot callback, as if its delay elapsed.
// Callbacks run outside the scheduler lock, like real timer callbacks do.
func (that *fakeScheduler) fireOnce() {
	for _, task := range that.pending(false) {
		task.fn()
	}
}

// tick advances every periodic task by n periods.
func (that *fakeScheduler) tick(n int) {
	for i := 0; i < n; i++ {
		for _, task := range that.pending(true) {
			task.fn()
		}
	}
}

func (that *fakeScheduler) pending(periodic bool) []*fakeTask {
	that.mu.Lock()
	defer that.mu.Unlock()

	var fired []*fakeTask
	remaining := that.tasks[:0]

	for _, task := range that.tasks {
		if task.cancelled {
			continue
		}

		if task.periodic != periodic {
			remaining = append(remaining, task)
			continue
		}

		fired = append(fired, task)
		if task.periodic {
			remaining = append(remaining, task)
		}
	}

	that.tasks = remaining

	return fired
}
