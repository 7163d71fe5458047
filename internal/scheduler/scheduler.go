// Package scheduler runs delayed callbacks. Battles schedule every pause of
// a turn through it so tests can drive time by hand.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Scheduler schedules fn to run once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real schedules callbacks on the runtime timer wheel.
type Real struct{}

func (Real) AfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// Manual is a Scheduler whose clock only moves when Advance or RunAll is
// called. Callbacks run on the calling goroutine, without Manual's lock held,
// so a callback may schedule further callbacks.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks that are scheduled and not stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due in order of due time. Callbacks scheduled during the advance run too
// if they fall due before the new time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		t.fn()
	}
	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
}

// RunAll runs callbacks until none are pending, advancing the clock to each
// due time. It returns the number of callbacks run. limit bounds runaway
// rescheduling loops.
func (m *Manual) RunAll(limit int) int {
	ran := 0
	for ran < limit {
		t := m.next(-1)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}
	return ran
}

// next pops the earliest live task due at or before target, or the earliest
// live task at all when target is negative.
func (m *Manual) next(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due == live[j].due {
			return live[i].seq < live[j].seq
		}
		return live[i].due < live[j].due
	})
	t := live[0]
	if target >= 0 && t.due > target {
		return nil
	}
	t.fired = true
	if t.due > m.now {
		m.now = t.due
	}
	return t
}
