package editor

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d. The returned cancel stops fn from running
// if it has not started yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler is a Scheduler driven by Advance, for tests.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := &manualTask{at: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		task.canceled = true
	}
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, rest []*manualTask
	for _, t := range m.tasks {
		switch {
		case t.canceled:
		case t.at <= m.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks that are scheduled and not canceled.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}
