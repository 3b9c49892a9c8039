package style

import (
	"context"
	"slices"
	"sync"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// State is a snapshot of the style flow. Selected is a copy; Result is shared
// and read-only.
type State struct {
	Selected []string
	Result   *domain.StyleVariants
	Loading  bool
	Err      string
	Copied   int
}

func (s State) IsSelected(pref string) bool {
	return slices.Contains(s.Selected, pref)
}

func (s State) CanSubmit() bool {
	return !s.Loading && len(s.Selected) > 0
}

type Flow struct {
	analyzer  domain.Analyzer
	clipboard domain.Clipboard
	notify    flowkit.Notifier
	copied    *flowkit.CopyMarker

	mu       sync.Mutex
	selected []string // insertion order, no duplicates
	state    State
	seq      flowkit.Sequencer
}

type Option func(*Flow)

// WithAfterFunc replaces the clock used for the copied marker.
func WithAfterFunc(after flowkit.AfterFunc) Option {
	return func(f *Flow) {
		f.copied = flowkit.NewCopyMarker(after, f.notify)
	}
}

func NewFlow(analyzer domain.Analyzer, clipboard domain.Clipboard, notify flowkit.Notifier, opts ...Option) *Flow {
	f := &Flow{
		analyzer:  analyzer,
		clipboard: clipboard,
		notify:    notify,
		state:     State{Copied: -1},
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
	st.Selected = slices.Clone(f.selected)
	f.mu.Unlock()
	st.Copied = f.copied.Index()
	return st
}

// Toggle adds or removes a preference. The current result stays visible.
func (f *Flow) Toggle(pref string) {
	f.mu.Lock()
	if i := slices.Index(f.selected, pref); i >= 0 {
		f.selected = slices.Delete(f.selected, i, i+1)
	} else {
		f.selected = append(f.selected, pref)
	}
	f.mu.Unlock()
	f.notify.Notify()
}

// Submit generates style variants for the selected preferences. An empty
// selection is ignored.
func (f *Flow) Submit(ctx context.Context) {
	f.mu.Lock()
	if len(f.selected) == 0 {
		f.mu.Unlock()
		return
	}
	prefs := slices.Clone(f.selected)
	ticket := f.seq.Next()
	f.state.Loading = true
	f.state.Err = ""
	f.state.Result = nil
	f.mu.Unlock()
	f.copied.Clear()
	f.notify.Notify()

	log := observability.LoggerFromContext(ctx).With("flow", "style", "ticket", ticket)
	log.Info("requesting style variants", "preferences", len(prefs))

	res, err := f.analyzer.Style(ctx, prefs)
	if err == nil && res == nil {
		res = &domain.StyleVariants{}
	}

	f.mu.Lock()
	if !f.seq.Latest(ticket) {
		f.mu.Unlock()
		log.Info("discarding superseded style variants")
		return
	}
	if err != nil {
		log.Warn("style failed", "error", err)
		f.state.Err = flowkit.ErrorMessage(err)
	} else {
		log.Info("style variants received", "variants", len(res.Variants))
		f.state.Result = res
	}
	f.state.Loading = false
	f.mu.Unlock()
	f.notify.Notify()
}

// Copy puts variant index on the clipboard and marks it as copied.
func (f *Flow) Copy(index int) error {
	f.mu.Lock()
	if f.state.Result == nil || index < 0 || index >= len(f.state.Result.Variants) {
		f.mu.Unlock()
		return nil
	}
	message := f.state.Result.Variants[index].Message
	f.mu.Unlock()

	err := f.clipboard.WriteText(message)
	if err != nil {
		observability.Logger().Warn("clipboard write failed", "flow", "style", "error", err)
	}
	f.copied.Mark(index)
	return err
}
