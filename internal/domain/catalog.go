package domain

// GoalOption is one selectable reply goal.
type GoalOption struct {
	Value string
	Label string
}

// Goals is the fixed goal list of the reply flow.
var Goals = []GoalOption{
	{Value: GoalContinueConversation, Label: "Gesprek voortzetten"},
	{Value: "Interesse tonen maar rustig aan doen", Label: "Rustig interesse tonen"},
	{Value: "Beleefd een grens aangeven", Label: "Grens aangeven"},
	{Value: "Afspraak maken", Label: "Afspraak voorstellen"},
	{Value: GoalClarifyingQuestion, Label: "Vraag stellen"},
}

// DefaultGoal is selected when the reply flow is entered without a goal.
var DefaultGoal = Goals[0].Value

// GoalOptions returns the fixed goals plus goal as an ad hoc option when it is
// non-empty and not already listed.
func GoalOptions(goal string) []GoalOption {
	return WithGoal(Goals, goal)
}

// WithGoal returns options extended with goal, labeled by its own value, when
// it is not present yet. The input slice is never modified.
func WithGoal(options []GoalOption, goal string) []GoalOption {
	out := make([]GoalOption, len(options), len(options)+1)
	copy(out, options)
	if goal == "" {
		return out
	}
	for _, o := range out {
		if o.Value == goal {
			return out
		}
	}
	return append(out, GoalOption{Value: goal, Label: goal})
}

// Refinement is a one-click tweak of the reply goal.
type Refinement struct {
	Label     string
	GoalTweak string
}

var Refinements = []Refinement{
	{Label: "Minder direct", GoalTweak: "Reageer minder direct, iets voorzichtiger en zachter"},
	{Label: "Warmer", GoalTweak: "Reageer warmer en hartelijker, meer betrokkenheid tonen"},
	{Label: "Neutraler", GoalTweak: "Reageer neutraler en afstandelijker, minder emotie"},
}

// Preferences are the communication preferences offered by the style flow.
var Preferences = []string{
	"Duidelijke vragen met opties",
	"Expliciete intenties",
	"Korte concrete zinnen",
	"Geen verborgen verwachtingen",
}

// Examples are fixture messages the interpret flow offers with one click.
var Examples = []string{
	"Haha ja hoor, tuurlijk \U0001F609",
	"Dus… wat zoek je hier eigenlijk?",
	"Je bent wel heel stil ineens",
}
