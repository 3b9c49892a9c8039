package style_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/nuance-coach/internal/adapters/clipboard"
	"github.com/PabloGalante/nuance-coach/internal/app/flowkit/flowkittest"
	"github.com/PabloGalante/nuance-coach/internal/app/style"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

func variants(context.Context, []string) (*domain.StyleVariants, error) {
	return &domain.StyleVariants{Variants: []domain.StyleVariant{
		{Tone: domain.ToneDirect, Message: "Ik hou van duidelijkheid."},
		{Tone: domain.ToneWarm, Message: "Ik vind het fijn als we eerlijk zijn."},
		{Tone: domain.TonePlayful, Message: "Geen raadsels, ik ben geen detective."},
	}}, nil
}

func TestToggleKeepsInsertionOrderWithoutDuplicates(t *testing.T) {
	f := style.NewFlow(&flowkittest.Analyzer{}, &clipboard.Memory{}, nil)

	f.Toggle(domain.Preferences[2])
	f.Toggle(domain.Preferences[0])
	f.Toggle(domain.Preferences[1])
	f.Toggle(domain.Preferences[0])

	st := f.Snapshot()
	assert.Equal(t, []string{domain.Preferences[2], domain.Preferences[1]}, st.Selected)
	assert.True(t, st.IsSelected(domain.Preferences[1]))
	assert.False(t, st.IsSelected(domain.Preferences[0]))
}

func TestSubmitEmptySelectionIsNoop(t *testing.T) {
	analyzer := &flowkittest.Analyzer{StyleFunc: variants}
	var redraws flowkittest.Counter
	f := style.NewFlow(analyzer, &clipboard.Memory{}, redraws.Notify)

	f.Submit(context.Background())
	assert.Empty(t, analyzer.Calls())
	assert.Zero(t, redraws.Count())
	assert.False(t, f.Snapshot().CanSubmit())
}

func TestSubmitSendsSelection(t *testing.T) {
	analyzer := &flowkittest.Analyzer{StyleFunc: variants}
	f := style.NewFlow(analyzer, &clipboard.Memory{}, nil)
	f.Toggle(domain.Preferences[3])
	f.Toggle(domain.Preferences[0])

	f.Submit(context.Background())

	require.Len(t, analyzer.Calls(), 1)
	assert.ElementsMatch(t, []string{domain.Preferences[0], domain.Preferences[3]}, analyzer.Calls()[0].Preferences)
	st := f.Snapshot()
	require.NotNil(t, st.Result)
	assert.Len(t, st.Result.Variants, 3)
	assert.False(t, st.Loading)
}

func TestToggleDoesNotClearResult(t *testing.T) {
	f := style.NewFlow(&flowkittest.Analyzer{StyleFunc: variants}, &clipboard.Memory{}, nil)
	f.Toggle(domain.Preferences[0])
	f.Submit(context.Background())

	f.Toggle(domain.Preferences[0])
	st := f.Snapshot()
	assert.NotNil(t, st.Result)
	assert.Empty(t, st.Selected)
}

func TestSubmitFailure(t *testing.T) {
	f := style.NewFlow(&flowkittest.Analyzer{
		StyleFunc: func(context.Context, []string) (*domain.StyleVariants, error) {
			return nil, &domain.APIError{Status: 0, Message: domain.UnreachableMessage}
		},
	}, &clipboard.Memory{}, nil)
	f.Toggle(domain.Preferences[0])
	f.Submit(context.Background())

	st := f.Snapshot()
	assert.Equal(t, domain.UnreachableMessage, st.Err)
	assert.Nil(t, st.Result)
	assert.False(t, st.Loading)
}

func TestCopyAndResubmit(t *testing.T) {
	clock := &flowkittest.Scheduler{}
	cb := &clipboard.Memory{}
	f := style.NewFlow(&flowkittest.Analyzer{StyleFunc: variants}, cb, nil, style.WithAfterFunc(clock.AfterFunc))
	f.Toggle(domain.Preferences[0])
	f.Submit(context.Background())

	require.NoError(t, f.Copy(2))
	last, _ := cb.Last()
	assert.Equal(t, "Geen raadsels, ik ben geen detective.", last)
	assert.Equal(t, 2, f.Snapshot().Copied)

	clock.Advance(time.Second)
	require.NoError(t, f.Copy(0))
	assert.Equal(t, 0, f.Snapshot().Copied)

	f.Submit(context.Background())
	assert.Equal(t, -1, f.Snapshot().Copied)
	assert.Zero(t, clock.Pending())
}
