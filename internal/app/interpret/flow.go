package interpret

import (
	"context"
	"sync"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// State is a snapshot of the interpret flow. Result is shared with the flow
// and must be treated as read-only.
type State struct {
	Text    string
	Result  *domain.Interpretation
	Loading bool
	Err     string
}

// Affordance is one rendered suggested action.
type Affordance struct {
	Kind  domain.ActionKind
	Label string
	Why   string
	Link  string // empty for muted affordances
}

func (a Affordance) Muted() bool {
	return a.Link == ""
}

// Actions returns one affordance per action kind present in the result, in
// the order reply, ask_clarifying_question, pause. Links carry the current
// text.
func (s State) Actions() []Affordance {
	if s.Result == nil {
		return nil
	}

	var out []Affordance
	for _, kind := range domain.ActionKinds {
		action, ok := s.Result.FirstAction(kind)
		if !ok {
			continue
		}
		a := Affordance{Kind: kind, Label: kind.Label(), Why: action.Why}
		if goal, ok := kind.Goal(); ok {
			a.Link = navigation.ReplyLink(s.Text, goal)
		}
		out = append(out, a)
	}
	return out
}

// CanSubmit mirrors the enabled state of the analyse control.
func (s State) CanSubmit() bool {
	return !s.Loading && !flowkit.Blank(s.Text)
}

type Flow struct {
	analyzer domain.Analyzer
	notify   flowkit.Notifier

	mu    sync.Mutex
	state State
	seq   flowkit.Sequencer
}

func NewFlow(analyzer domain.Analyzer, notify flowkit.Notifier) *Flow {
	return &Flow{analyzer: analyzer, notify: notify}
}

func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetText updates the message input.
func (f *Flow) SetText(text string) {
	f.mu.Lock()
	f.state.Text = domain.ClampMessage(text)
	f.mu.Unlock()
	f.notify.Notify()
}

// UseExample fills the input with a fixture and clears the previous outcome
// without calling the backend.
func (f *Flow) UseExample(text string) {
	f.mu.Lock()
	f.state.Text = domain.ClampMessage(text)
	f.state.Result = nil
	f.state.Err = ""
	f.mu.Unlock()
	f.notify.Notify()
}

// Submit interprets the current text. Blank text is ignored.
func (f *Flow) Submit(ctx context.Context) {
	f.mu.Lock()
	if flowkit.Blank(f.state.Text) {
		f.mu.Unlock()
		return
	}
	text := f.state.Text
	ticket := f.seq.Next()
	f.state.Loading = true
	f.state.Err = ""
	f.state.Result = nil
	f.mu.Unlock()
	f.notify.Notify()

	log := observability.LoggerFromContext(ctx).With("flow", "interpret", "ticket", ticket)
	log.Info("interpreting message", "chars", len([]rune(text)))

	res, err := f.analyzer.Interpret(ctx, text)
	if err == nil && res == nil {
		res = &domain.Interpretation{}
	}
	if err == nil {
		res.SortMeanings()
	}

	f.mu.Lock()
	if !f.seq.Latest(ticket) {
		f.mu.Unlock()
		log.Info("discarding superseded interpretation")
		return
	}
	if err != nil {
		log.Warn("interpretation failed", "error", err)
		f.state.Err = flowkit.ErrorMessage(err)
	} else {
		log.Info("interpretation received", "meanings", len(res.PossibleMeanings))
		f.state.Result = res
	}
	f.state.Loading = false
	f.mu.Unlock()
	f.notify.Notify()
}
