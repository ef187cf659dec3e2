package sim

import (
	"sync"
	"time"
)

// Task is a cancellable periodic callback.
type Task interface {
	// Stop cancels the task. No new callback starts after Stop returns; a
	// callback already in flight may still complete. Idempotent.
	Stop()
}

// Scheduler starts periodic tasks. The driver never reads the wall clock
// directly, so tests substitute a ManualScheduler.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// === TickerScheduler ===

// TickerScheduler runs each task on its own goroutine driven by time.Ticker.
type TickerScheduler struct{}

// Every starts fn every interval until the returned Task is stopped.
func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) loop(fn func()) {
	defer t.ticker.Stop()
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
	t.once.Do(func() { close(t.done) })
}

// === ManualScheduler ===

// ManualScheduler is a virtual clock: tasks fire only when Advance moves time
// past their due time. Callbacks run synchronously on the Advance caller's
// goroutine and may stop tasks or start new ones.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  []*manualTask
}

type manualTask struct {
	id       int
	interval time.Duration
	due      time.Duration
	fn       func()
	owner    *ManualScheduler
	stopped  bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn to fire every interval of virtual time.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &manualTask{id: m.nextID, interval: interval, due: m.now + interval, fn: fn, owner: m}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves virtual time forward by d, firing due tasks in due-time order
// (ties broken by registration order).
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		t := m.nextDueLocked(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.due += t.interval
		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Now returns the elapsed virtual time.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Active returns the number of tasks that have not been stopped.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *ManualScheduler) nextDueLocked(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (t *manualTask) Stop() {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
}
