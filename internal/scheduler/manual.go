package scheduler

import (
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Tests use it to drive the engine deterministically.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	seq     int
	due     time.Time
	period  time.Duration
	fn      func()
	stopped bool
}

// NewManual returns a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every registers a repeating task.
func (m *Manual) Every(period time.Duration, fn func()) Task {
	return m.add(period, period, fn)
}

// After registers a one-shot task.
func (m *Manual) After(delay time.Duration, fn func()) Task {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, period time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, seq: m.seq, due: m.now.Add(delay), period: period, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of live tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every task that falls due
// in order. Callbacks run without the scheduler lock held, so they may
// schedule or stop tasks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			next.stopped = true
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// nextDue picks the earliest live task due at or before target, breaking
// ties by creation order. Stopped tasks are dropped. Callers hold m.mu.
func (m *Manual) nextDue(target time.Time) *manualTask {
	live := m.tasks[:0]
	var best *manualTask
	for _, t := range m.tasks {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	m.tasks = live
	return best
}

func (t *manualTask) Stop() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	t.stopped = true
}
