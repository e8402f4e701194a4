// Package scheduler provides the clock and the cancellable callbacks that
// drive the timer engine. The engine owns every Task it creates and stops
// it before scheduling a replacement, so at most one repeating callback is
// ever outstanding.
package scheduler

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Task is a scheduled callback. Stop is idempotent and safe to call from
// inside the callback itself.
type Task interface {
	Stop()
}

// Scheduler creates repeating and one-shot tasks.
type Scheduler interface {
	Clock

	// Every calls fn once per period until the task is stopped.
	Every(period time.Duration, fn func()) Task

	// After calls fn once after delay unless the task is stopped first.
	After(delay time.Duration, fn func()) Task
}

// System is the real-time scheduler. Its clock is time.Now, whose
// monotonic reading keeps deltas stable across wall-clock adjustments.
var System Scheduler = systemScheduler{}

type systemScheduler struct{}

func (systemScheduler) Now() time.Time { return time.Now() }

func (systemScheduler) Every(period time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

func (systemScheduler) After(delay time.Duration, fn func()) Task {
	return &timerTask{timer: time.AfterFunc(delay, fn)}
}

// tickerTask runs fn on its own goroutine for every tick.
type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

type timerTask struct {
	timer *time.Timer
}

func (t *timerTask) Stop() {
	t.timer.Stop()
}
