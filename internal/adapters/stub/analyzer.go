// Package stub is a deterministic stand-in for the remote analysis service.
// It gives canned, input-dependent answers so the client can be developed and
// tested without the real backend.
package stub

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PabloGalante/nuance-coach/internal/domain"
)

type Analyzer struct {
	delay time.Duration
}

// NewAnalyzer returns a stub that waits delay before answering.
func NewAnalyzer(delay time.Duration) *Analyzer {
	return &Analyzer{delay: delay}
}

func (a *Analyzer) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// signals are the cues the stub reads from a message.
type signals struct {
	question bool
	playful  bool
	hesitant bool
	short    bool
	quiet    bool
}

func readSignals(text string) signals {
	lower := strings.ToLower(text)
	playful := strings.Contains(lower, "haha") ||
		strings.ContainsAny(text, "\U0001F609\U0001F60A\U0001F60F\U0001F61C")
	return signals{
		question: strings.Contains(text, "?"),
		playful:  playful,
		hesitant: strings.Contains(text, "…") || strings.Contains(text, "..."),
		short:    utf8.RuneCountInString(strings.TrimSpace(text)) < 25,
		quiet:    strings.Contains(lower, "stil"),
	}
}

func (a *Analyzer) Interpret(ctx context.Context, text string) (*domain.Interpretation, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	s := readSignals(text)

	var tags []string
	if s.question {
		tags = append(tags, "vragend")
	}
	if s.playful {
		tags = append(tags, "speels")
	}
	if s.hesitant {
		tags = append(tags, "aarzelend")
	}
	if s.short {
		tags = append(tags, "kort")
	}
	if len(tags) == 0 {
		tags = append(tags, "neutraal")
	}

	sincere, teasing, distant := 50, 30, 20
	if s.playful {
		teasing += 35
	}
	if s.question {
		sincere += 15
	}
	if s.hesitant || s.quiet {
		distant += 40
	}

	// Deliberately not sorted; ordering is the client's job.
	meanings := []domain.PossibleMeaning{
		{Meaning: "Afstand of onzekerheid", Confidence: clampPercent(distant), Why: "Korte of aarzelende berichten kunnen twijfel verraden."},
		{Meaning: "Oprechte interesse", Confidence: clampPercent(sincere), Why: "De ander reageert en houdt het gesprek gaande."},
		{Meaning: "Plagerig bedoeld", Confidence: clampPercent(teasing), Why: "Lachjes en emoji wijzen vaak op luchtigheid."},
	}

	var actions []domain.SuggestedAction
	if s.question || s.hesitant {
		actions = append(actions, domain.SuggestedAction{
			Action: domain.ActionAskClarifyingQuestion,
			Why:    "Vraag wat de ander precies bedoelt voordat je iets invult.",
		})
	}
	if s.quiet {
		actions = append(actions, domain.SuggestedAction{
			Action: domain.ActionPause,
			Why:    "Geef het even de tijd; stilte hoeft niets te betekenen.",
		})
	}
	actions = append(actions, domain.SuggestedAction{
		Action: domain.ActionReply,
		Why:    "Een luchtige reactie houdt de deur open.",
	})

	return &domain.Interpretation{
		LiteralSummary:   fmt.Sprintf("De ander schrijft letterlijk: %q.", excerpt(text, 80)),
		PossibleMeanings: meanings,
		ToneTags:         tags,
		SuggestedActions: actions,
		Regulation:       "Je hoeft niet meteen te reageren. Adem even rustig in en uit; de meeste berichten zijn minder beladen dan ze lijken.",
	}, nil
}

func (a *Analyzer) Replies(ctx context.Context, text, goal string) (*domain.ReplyOptions, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	g := strings.ToLower(strings.TrimSpace(goal))

	return &domain.ReplyOptions{Options: []domain.ReplyOption{
		{
			Style:       domain.ToneDirect,
			Message:     fmt.Sprintf("Ik zal eerlijk zijn: %s. Wat vind jij?", g),
			ImpactLabel: "Helder en eerlijk",
		},
		{
			Style:       domain.ToneWarm,
			Message:     fmt.Sprintf("Wat leuk dat je schrijft! Ik wil graag %s, als jij dat ook fijn vindt.", g),
			ImpactLabel: "Voelt betrokken",
		},
		{
			Style:       domain.TonePlayful,
			Message:     fmt.Sprintf("Haha, goeie vraag \U0001F60F Plan: %s. Deal?", g),
			ImpactLabel: "Luchtig en open",
		},
	}}, nil
}

func (a *Analyzer) Style(ctx context.Context, preferences []string) (*domain.StyleVariants, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	lowered := make([]string, 0, len(preferences))
	for _, p := range preferences {
		lowered = append(lowered, strings.ToLower(p))
	}
	list := joinDutch(lowered)

	return &domain.StyleVariants{Variants: []domain.StyleVariant{
		{Tone: domain.ToneDirect, Message: fmt.Sprintf("Ik communiceer het liefst met %s.", list)},
		{Tone: domain.ToneWarm, Message: fmt.Sprintf("Ik voel me het prettigst bij %s; zo weten we allebei waar we staan.", list)},
		{Tone: domain.TonePlayful, Message: fmt.Sprintf("Handleiding voor mij: %s. Meer geheimen heb ik niet \U0001F609", list)},
	}}, nil
}

func clampPercent(n int) int {
	return max(0, min(100, n))
}

func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "…"
}

func joinDutch(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " en " + items[len(items)-1]
	}
}
