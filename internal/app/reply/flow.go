package reply

import (
	"context"
	"sync"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// State is a snapshot of the reply flow. Result and GoalOptions are shared
// with the flow and must be treated as read-only.
type State struct {
	Text        string
	Goal        string
	GoalOptions []domain.GoalOption
	Result      *domain.ReplyOptions
	Loading     bool
	Refining    bool
	Err         string
	Copied      int // index of the option just copied, or -1
}

// Busy reports whether a submission or refinement is in flight.
func (s State) Busy() bool {
	return s.Loading || s.Refining
}

func (s State) CanSubmit() bool {
	return !s.Busy() && !flowkit.Blank(s.Text)
}

// GoalLabel returns the label of the selected goal.
func (s State) GoalLabel() string {
	for _, o := range s.GoalOptions {
		if o.Value == s.Goal {
			return o.Label
		}
	}
	return s.Goal
}

type Flow struct {
	analyzer  domain.Analyzer
	clipboard domain.Clipboard
	notify    flowkit.Notifier
	copied    *flowkit.CopyMarker
	autoStart bool

	mu      sync.Mutex
	state   State
	seq     flowkit.Sequencer
	started bool
}

type Option func(*Flow)

// WithAfterFunc replaces the clock used for the copied marker.
func WithAfterFunc(after flowkit.AfterFunc) Option {
	return func(f *Flow) {
		f.copied = flowkit.NewCopyMarker(after, f.notify)
	}
}

// NewFlow creates the reply flow pre-filled from navigation params. An unknown
// goal is offered as an extra option and selected.
func NewFlow(
	analyzer domain.Analyzer,
	clipboard domain.Clipboard,
	params navigation.ReplyParams,
	notify flowkit.Notifier,
	opts ...Option,
) *Flow {
	goal := params.Goal
	if goal == "" {
		goal = domain.DefaultGoal
	}

	f := &Flow{
		analyzer:  analyzer,
		clipboard: clipboard,
		notify:    notify,
		autoStart: params.Complete(),
		state: State{
			Text:        domain.ClampMessage(params.Text),
			Goal:        goal,
			GoalOptions: domain.GoalOptions(params.Goal),
			Copied:      -1,
		},
	}
	f.copied = flowkit.NewCopyMarker(nil, notify)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Snapshot() State {
	f.mu.Lock()
	st := f.state
	f.mu.Unlock()
	st.Copied = f.copied.Index()
	return st
}

// Start runs the automatic submission for a flow entered with both text and
// goal. Only the first call can submit; it reports whether it did.
func (f *Flow) Start(ctx context.Context) bool {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return false
	}
	f.started = true
	auto := f.autoStart
	f.mu.Unlock()

	if !auto {
		return false
	}
	f.submit(ctx, "")
	return true
}

func (f *Flow) SetText(text string) {
	f.mu.Lock()
	f.state.Text = domain.ClampMessage(text)
	f.mu.Unlock()
	f.notify.Notify()
}

// SetGoal selects a goal; values outside the option list are added to it.
func (f *Flow) SetGoal(goal string) {
	if goal == "" {
		return
	}
	f.mu.Lock()
	f.selectGoalLocked(goal)
	f.mu.Unlock()
	f.notify.Notify()
}

// CycleGoal moves the selection delta positions through the options.
func (f *Flow) CycleGoal(delta int) {
	f.mu.Lock()
	opts := f.state.GoalOptions
	if len(opts) == 0 {
		f.mu.Unlock()
		return
	}
	cur := 0
	for i, o := range opts {
		if o.Value == f.state.Goal {
			cur = i
			break
		}
	}
	next := ((cur+delta)%len(opts) + len(opts)) % len(opts)
	f.state.Goal = opts[next].Value
	f.mu.Unlock()
	f.notify.Notify()
}

// Submit drafts replies for the current text and goal, clearing the shown
// options first.
func (f *Flow) Submit(ctx context.Context) {
	f.submit(ctx, "")
}

// Refine drafts replies with goalTweak as the goal while the current options
// stay visible. It is ignored while busy; an empty tweak is a plain submit.
func (f *Flow) Refine(ctx context.Context, goalTweak string) {
	f.submit(ctx, goalTweak)
}

func (f *Flow) submit(ctx context.Context, override string) {
	refine := override != ""

	f.mu.Lock()
	if flowkit.Blank(f.state.Text) || (refine && f.state.Busy()) {
		f.mu.Unlock()
		return
	}
	text := f.state.Text
	goal := f.state.Goal
	if refine {
		goal = override
		f.state.Refining = true
	} else {
		f.state.Loading = true
		f.state.Result = nil
	}
	f.state.Err = ""
	ticket := f.seq.Next()
	f.mu.Unlock()
	f.copied.Clear()
	f.notify.Notify()

	log := observability.LoggerFromContext(ctx).With("flow", "reply", "ticket", ticket, "refine", refine)
	log.Info("requesting replies", "goal", goal)

	res, err := f.analyzer.Replies(ctx, text, goal)
	if err == nil && res == nil {
		res = &domain.ReplyOptions{}
	}

	f.mu.Lock()
	if !f.seq.Latest(ticket) {
		f.mu.Unlock()
		log.Info("discarding superseded replies")
		return
	}
	if err != nil {
		log.Warn("replies failed", "error", err)
		f.state.Err = flowkit.ErrorMessage(err)
	} else {
		log.Info("replies received", "options", len(res.Options))
		f.state.Result = res
		if refine {
			f.selectGoalLocked(override)
		}
	}
	f.state.Loading = false
	f.state.Refining = false
	f.mu.Unlock()
	f.notify.Notify()
}

// Copy puts option index on the clipboard and marks it as copied. It is a
// no-op while busy or for an index without an option.
func (f *Flow) Copy(index int) error {
	f.mu.Lock()
	if f.state.Busy() || f.state.Result == nil || index < 0 || index >= len(f.state.Result.Options) {
		f.mu.Unlock()
		return nil
	}
	message := f.state.Result.Options[index].Message
	f.mu.Unlock()

	err := f.clipboard.WriteText(message)
	if err != nil {
		observability.Logger().Warn("clipboard write failed", "flow", "reply", "error", err)
	}
	f.copied.Mark(index)
	return err
}

func (f *Flow) selectGoalLocked(goal string) {
	f.state.GoalOptions = domain.WithGoal(f.state.GoalOptions, goal)
	f.state.Goal = goal
}
