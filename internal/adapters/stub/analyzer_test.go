package stub_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/nuance-coach/internal/adapters/stub"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

func kinds(r *domain.Interpretation) []domain.ActionKind {
	var out []domain.ActionKind
	for _, a := range r.SuggestedActions {
		out = append(out, a.Action)
	}
	return out
}

func TestInterpretReadsCues(t *testing.T) {
	a := stub.NewAnalyzer(0)

	res, err := a.Interpret(context.Background(), "Haha ja hoor, tuurlijk \U0001F609")
	require.NoError(t, err)
	assert.Contains(t, res.ToneTags, "speels")
	assert.Contains(t, kinds(res), domain.ActionReply)
	require.Len(t, res.PossibleMeanings, 3)
	for _, m := range res.PossibleMeanings {
		assert.GreaterOrEqual(t, m.Confidence, 0)
		assert.LessOrEqual(t, m.Confidence, 100)
	}

	res, err = a.Interpret(context.Background(), "Dus… wat zoek je hier eigenlijk?")
	require.NoError(t, err)
	assert.Contains(t, res.ToneTags, "vragend")
	assert.Contains(t, res.ToneTags, "aarzelend")
	assert.Contains(t, kinds(res), domain.ActionAskClarifyingQuestion)

	res, err = a.Interpret(context.Background(), "Je bent wel heel stil ineens")
	require.NoError(t, err)
	assert.Contains(t, kinds(res), domain.ActionPause)
}

func TestRepliesCoverAllTones(t *testing.T) {
	res, err := stub.NewAnalyzer(0).Replies(context.Background(), "Hoi", "Afspraak maken")
	require.NoError(t, err)
	require.Len(t, res.Options, 3)
	for i, tone := range domain.Tones {
		assert.Equal(t, tone, res.Options[i].Style)
		assert.Contains(t, res.Options[i].Message, "afspraak maken")
		assert.NotEmpty(t, res.Options[i].ImpactLabel)
	}
}

func TestStyleMentionsPreferences(t *testing.T) {
	res, err := stub.NewAnalyzer(0).Style(context.Background(), []string{"Korte concrete zinnen", "Expliciete intenties"})
	require.NoError(t, err)
	require.Len(t, res.Variants, 3)
	assert.Contains(t, res.Variants[0].Message, "korte concrete zinnen en expliciete intenties")
}

func TestDelayHonoursContext(t *testing.T) {
	a := stub.NewAnalyzer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Interpret(ctx, "hoi")
	assert.ErrorIs(t, err, context.Canceled)
}
