package interpret_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/app/flowkit/flowkittest"
	"github.com/PabloGalante/nuance-coach/internal/app/interpret"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

func sampleInterpretation() *domain.Interpretation {
	return &domain.Interpretation{
		LiteralSummary: "Ze stemt in, met een knipoog.",
		PossibleMeanings: []domain.PossibleMeaning{
			{Meaning: "sarcastisch", Confidence: 40, Why: "knipoog"},
			{Meaning: "oprecht", Confidence: 70, Why: "ja hoor"},
			{Meaning: "plagerig", Confidence: 40, Why: "haha"},
		},
		ToneTags: []string{"luchtig", "speels"},
		SuggestedActions: []domain.SuggestedAction{
			{Action: domain.ActionPause, Why: "even laten bezinken"},
			{Action: domain.ActionAskClarifyingQuestion, Why: "vraag wat ze bedoelt"},
			{Action: domain.ActionReply, Why: "speel mee"},
			{Action: domain.ActionReply, Why: "tweede reply"},
		},
		Regulation: "Het is waarschijnlijk goed bedoeld.",
	}
}

func TestSubmitSortsMeanings(t *testing.T) {
	analyzer := &flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			return sampleInterpretation(), nil
		},
	}
	var redraws flowkittest.Counter
	f := interpret.NewFlow(analyzer, redraws.Notify)

	f.SetText("Haha ja hoor, tuurlijk")
	f.Submit(context.Background())

	st := f.Snapshot()
	require.NotNil(t, st.Result)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)

	var order []string
	for _, m := range st.Result.PossibleMeanings {
		order = append(order, m.Meaning)
	}
	assert.Equal(t, []string{"oprecht", "sarcastisch", "plagerig"}, order)

	// SetText, loading on, loading off.
	assert.Equal(t, 3, redraws.Count())
	require.Len(t, analyzer.Calls(), 1)
	assert.Equal(t, "Haha ja hoor, tuurlijk", analyzer.Calls()[0].Text)
}

func TestSubmitBlankIsNoop(t *testing.T) {
	analyzer := &flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			return sampleInterpretation(), nil
		},
	}
	f := interpret.NewFlow(analyzer, nil)
	f.SetText("iets")
	f.Submit(context.Background())
	before := f.Snapshot()

	f.SetText("   \n\t")
	f.Submit(context.Background())

	after := f.Snapshot()
	assert.Len(t, analyzer.Calls(), 1)
	assert.Same(t, before.Result, after.Result)
	assert.False(t, after.Loading)
	assert.False(t, after.CanSubmit())
}

func TestSubmitFailureShowsMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"detail", &domain.APIError{Status: 422, Message: "Message too long"}, "Message too long"},
		{"no detail", &domain.APIError{Status: 500, Message: domain.ServerErrorMessage(500)}, "Server error (500)"},
		{"unreachable", &domain.APIError{Status: 0, Message: domain.UnreachableMessage}, domain.UnreachableMessage},
		{"other", errors.New("decoding response: unexpected EOF"), flowkit.GenericErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := interpret.NewFlow(&flowkittest.Analyzer{
				InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
					return nil, tc.err
				},
			}, nil)
			f.SetText("hoi")
			f.Submit(context.Background())

			st := f.Snapshot()
			assert.Equal(t, tc.want, st.Err)
			assert.Nil(t, st.Result)
			assert.False(t, st.Loading)
		})
	}
}

func TestSubmitClearsPreviousResultWhileLoading(t *testing.T) {
	gate := flowkittest.NewGate()
	calls := 0
	f := interpret.NewFlow(&flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			calls++
			if calls == 2 {
				gate.Wait()
			}
			return sampleInterpretation(), nil
		},
	}, nil)
	f.SetText("hoi")
	f.Submit(context.Background())
	require.NotNil(t, f.Snapshot().Result)

	done := make(chan struct{})
	go func() {
		f.Submit(context.Background())
		close(done)
	}()
	gate.Entered()

	st := f.Snapshot()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Result)
	assert.Empty(t, st.Err)

	gate.Release()
	<-done
	assert.NotNil(t, f.Snapshot().Result)
}

func TestUseExampleClearsOutcomeWithoutCall(t *testing.T) {
	analyzer := &flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			return nil, &domain.APIError{Status: 500, Message: "kapot"}
		},
	}
	f := interpret.NewFlow(analyzer, nil)
	f.SetText("hoi")
	f.Submit(context.Background())
	require.Equal(t, "kapot", f.Snapshot().Err)

	f.UseExample(domain.Examples[1])

	st := f.Snapshot()
	assert.Equal(t, domain.Examples[1], st.Text)
	assert.Empty(t, st.Err)
	assert.Nil(t, st.Result)
	assert.Len(t, analyzer.Calls(), 1)
}

func TestSetTextIsClamped(t *testing.T) {
	f := interpret.NewFlow(&flowkittest.Analyzer{}, nil)
	long := make([]rune, domain.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	f.SetText(string(long))
	assert.Len(t, f.Snapshot().Text, domain.MaxMessageLength)
}

func TestActions(t *testing.T) {
	f := interpret.NewFlow(&flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			return sampleInterpretation(), nil
		},
	}, nil)
	f.SetText("Haha ja hoor")
	f.Submit(context.Background())

	actions := f.Snapshot().Actions()
	require.Len(t, actions, 3)

	assert.Equal(t, domain.ActionReply, actions[0].Kind)
	assert.Equal(t, "Reageer", actions[0].Label)
	assert.Equal(t, "speel mee", actions[0].Why)
	r, err := navigation.Parse(actions[0].Link)
	require.NoError(t, err)
	assert.Equal(t, navigation.ReplyParams{Text: "Haha ja hoor", Goal: domain.GoalContinueConversation}, r.ReplyParams())

	assert.Equal(t, domain.ActionAskClarifyingQuestion, actions[1].Kind)
	r, err = navigation.Parse(actions[1].Link)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalClarifyingQuestion, r.ReplyParams().Goal)

	assert.Equal(t, domain.ActionPause, actions[2].Kind)
	assert.True(t, actions[2].Muted())
	assert.Equal(t, "even laten bezinken", actions[2].Why)
}

func TestActionsOnlyForPresentKinds(t *testing.T) {
	st := interpret.State{
		Text: "x",
		Result: &domain.Interpretation{SuggestedActions: []domain.SuggestedAction{
			{Action: domain.ActionPause, Why: "wacht"},
		}},
	}
	actions := st.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionPause, actions[0].Kind)

	assert.Nil(t, interpret.State{}.Actions())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	slow := flowkittest.NewGate()
	var mu sync.Mutex
	n := 0
	f := interpret.NewFlow(&flowkittest.Analyzer{
		InterpretFunc: func(ctx context.Context, text string) (*domain.Interpretation, error) {
			mu.Lock()
			n++
			first := n == 1
			mu.Unlock()
			if first {
				slow.Wait()
				return &domain.Interpretation{LiteralSummary: "oud"}, nil
			}
			return &domain.Interpretation{LiteralSummary: "nieuw"}, nil
		},
	}, nil)
	f.SetText("hoi")

	done := make(chan struct{})
	go func() {
		f.Submit(context.Background())
		close(done)
	}()
	slow.Entered()

	f.Submit(context.Background())
	require.Equal(t, "nieuw", f.Snapshot().Result.LiteralSummary)

	slow.Release()
	<-done
	st := f.Snapshot()
	assert.Equal(t, "nieuw", st.Result.LiteralSummary)
	assert.False(t, st.Loading)
}
