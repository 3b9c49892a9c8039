package flowkit

import (
	"sync"
	"time"
)

// CopiedWindow is how long an option stays marked as copied.
const CopiedWindow = 2 * time.Second

// Timer is the part of *time.Timer the copy marker needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it via RealAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc schedules with the runtime timer.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// CopyMarker remembers which result index was copied last. The mark clears
// itself after CopiedWindow; marking another index restarts the window.
type CopyMarker struct {
	mu     sync.Mutex
	index  int
	gen    uint64
	timer  Timer
	after  AfterFunc
	notify Notifier
}

// NewCopyMarker returns an empty marker. after may be nil for the real clock.
func NewCopyMarker(after AfterFunc, notify Notifier) *CopyMarker {
	if after == nil {
		after = RealAfterFunc
	}
	return &CopyMarker{index: -1, after: after, notify: notify}
}

// Mark flags index as copied and (re)starts the clear timer.
func (m *CopyMarker) Mark(index int) {
	m.mu.Lock()
	m.stopLocked()
	m.index = index
	m.gen++
	gen := m.gen
	m.timer = m.after(CopiedWindow, func() { m.expire(gen) })
	m.mu.Unlock()

	m.notify.Notify()
}

// Clear removes the mark immediately.
func (m *CopyMarker) Clear() {
	m.mu.Lock()
	had := m.index >= 0
	m.stopLocked()
	m.index = -1
	m.gen++
	m.mu.Unlock()

	if had {
		m.notify.Notify()
	}
}

// Index returns the marked index, or -1.
func (m *CopyMarker) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

func (m *CopyMarker) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.index = -1
	m.timer = nil
	m.mu.Unlock()

	m.notify.Notify()
}

func (m *CopyMarker) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
