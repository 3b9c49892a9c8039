// Package flowkittest provides fakes for testing flows.
package flowkittest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

// Scheduler is a manual clock for flowkit.AfterFunc.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

type timer struct {
	s       *Scheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// AfterFunc implements flowkit.AfterFunc.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) flowkit.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &timer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward and runs every timer that became due.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*timer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that are neither stopped nor fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Counter counts notifications.
type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Notify() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Analyzer is a scriptable domain.Analyzer. Unset funcs return zero results.
type Analyzer struct {
	InterpretFunc func(ctx context.Context, text string) (*domain.Interpretation, error)
	RepliesFunc   func(ctx context.Context, text, goal string) (*domain.ReplyOptions, error)
	StyleFunc     func(ctx context.Context, preferences []string) (*domain.StyleVariants, error)

	mu    sync.Mutex
	calls []Call
}

// Call records one analyzer invocation.
type Call struct {
	Method      string
	Text        string
	Goal        string
	Preferences []string
}

func (a *Analyzer) record(c Call) {
	a.mu.Lock()
	a.calls = append(a.calls, c)
	a.mu.Unlock()
}

// Calls returns a copy of the recorded invocations.
func (a *Analyzer) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

func (a *Analyzer) Interpret(ctx context.Context, text string) (*domain.Interpretation, error) {
	a.record(Call{Method: "interpret", Text: text})
	if a.InterpretFunc == nil {
		return &domain.Interpretation{}, nil
	}
	return a.InterpretFunc(ctx, text)
}

func (a *Analyzer) Replies(ctx context.Context, text, goal string) (*domain.ReplyOptions, error) {
	a.record(Call{Method: "replies", Text: text, Goal: goal})
	if a.RepliesFunc == nil {
		return &domain.ReplyOptions{}, nil
	}
	return a.RepliesFunc(ctx, text, goal)
}

func (a *Analyzer) Style(ctx context.Context, preferences []string) (*domain.StyleVariants, error) {
	a.record(Call{Method: "style", Preferences: append([]string(nil), preferences...)})
	if a.StyleFunc == nil {
		return &domain.StyleVariants{}, nil
	}
	return a.StyleFunc(ctx, preferences)
}

// Gate lets a test hold a fake backend call open until it is released.
type Gate struct {
	entered chan struct{}
	release chan struct{}
}

func NewGate() *Gate {
	return &Gate{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

// Wait is called from inside the fake; it blocks until Release.
func (g *Gate) Wait() {
	g.entered <- struct{}{}
	<-g.release
}

// Entered blocks until a call is parked in Wait.
func (g *Gate) Entered() {
	<-g.entered
}

// Release unblocks every parked call.
func (g *Gate) Release() {
	close(g.release)
}
