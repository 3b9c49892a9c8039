package domain

import "unicode/utf8"

// MaxMessageLength is the input limit for a received message, in characters.
const MaxMessageLength = 5000

// Backend-side request limits.
const (
	MaxGoalLength  = 500
	MaxPreferences = 10
)

// Tone is the three-way style categorization applied to generated text.
type Tone string

const (
	ToneDirect  Tone = "direct"
	ToneWarm    Tone = "warm"
	TonePlayful Tone = "playful"
)

// Tones lists the known tones in display order.
var Tones = []Tone{ToneDirect, ToneWarm, TonePlayful}

// Label returns the display label; unknown tones fall back to their raw value.
func (t Tone) Label() string {
	switch t {
	case ToneDirect:
		return "Direct"
	case ToneWarm:
		return "Warm"
	case TonePlayful:
		return "Speels"
	default:
		return string(t)
	}
}

// Emoji returns the badge shown next to the label, or "" for unknown tones.
func (t Tone) Emoji() string {
	switch t {
	case ToneDirect:
		return "\U0001F3AF"
	case ToneWarm:
		return "❤️"
	case TonePlayful:
		return "\U0001F60F"
	default:
		return ""
	}
}

// ActionKind is a suggested next step returned by the interpretation.
type ActionKind string

const (
	ActionReply                 ActionKind = "reply"
	ActionAskClarifyingQuestion ActionKind = "ask_clarifying_question"
	ActionPause                 ActionKind = "pause"
)

// ActionKinds lists the action kinds in the order they are rendered.
var ActionKinds = []ActionKind{ActionReply, ActionAskClarifyingQuestion, ActionPause}

// Goal strings used when an action deep-links into the reply flow.
const (
	GoalContinueConversation = "Vriendelijk reageren en gesprek voortzetten"
	GoalClarifyingQuestion   = "Een verduidelijkende vraag stellen"
)

func (a ActionKind) Label() string {
	switch a {
	case ActionReply:
		return "Reageer"
	case ActionAskClarifyingQuestion:
		return "Vraag door"
	case ActionPause:
		return "Wacht even"
	default:
		return string(a)
	}
}

// Goal returns the reply goal an action links to. Pause does not link anywhere.
func (a ActionKind) Goal() (string, bool) {
	switch a {
	case ActionReply:
		return GoalContinueConversation, true
	case ActionAskClarifyingQuestion:
		return GoalClarifyingQuestion, true
	default:
		return "", false
	}
}

// ClampMessage truncates text to MaxMessageLength characters.
func ClampMessage(text string) string {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxMessageLength])
}
