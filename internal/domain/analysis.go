package domain

import "sort"

// PossibleMeaning is one reading of the received message.
type PossibleMeaning struct {
	Meaning    string `json:"meaning"`
	Confidence int    `json:"confidence"`
	Why        string `json:"why"`
}

// SuggestedAction is a recommended next step with its rationale.
type SuggestedAction struct {
	Action ActionKind `json:"action"`
	Why    string     `json:"why"`
}

// Interpretation is the /api/interpret response.
type Interpretation struct {
	LiteralSummary   string            `json:"literal_summary"`
	PossibleMeanings []PossibleMeaning `json:"possible_meanings"`
	ToneTags         []string          `json:"tone_tags"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
	Regulation       string            `json:"regulation"`
}

// SortMeanings orders possible meanings by descending confidence, keeping the
// original order among equal confidences.
func (r *Interpretation) SortMeanings() {
	sort.SliceStable(r.PossibleMeanings, func(i, j int) bool {
		return r.PossibleMeanings[i].Confidence > r.PossibleMeanings[j].Confidence
	})
}

// FirstAction returns the first suggested action of the given kind.
func (r *Interpretation) FirstAction(kind ActionKind) (SuggestedAction, bool) {
	for _, a := range r.SuggestedActions {
		if a.Action == kind {
			return a, true
		}
	}
	return SuggestedAction{}, false
}

// ReplyOption is one drafted reply.
type ReplyOption struct {
	Style       Tone   `json:"style"`
	Message     string `json:"message"`
	ImpactLabel string `json:"impact_label"`
}

// ReplyOptions is the /api/replies response.
type ReplyOptions struct {
	Options []ReplyOption `json:"options"`
}

// StyleVariant is one toned self-description.
type StyleVariant struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
}

// StyleVariants is the /api/style response.
type StyleVariants struct {
	Variants []StyleVariant `json:"variants"`
}
