package editor

// Action identifies one of the fixed text-transformation intents. The
// string value doubles as the Telegram callback token for the action
type Action string

const (
	ActionFix      Action = "fix"
	ActionShorten  Action = "shorten"
	ActionImprove  Action = "improve"
	ActionFormal   Action = "formal"
	ActionFriendly Action = "friendly"
	ActionRephrase Action = "rephrase"
	ActionContinue Action = "continue"
)

// actionInfo holds presentation metadata for a single action
type actionInfo struct {
	label string
	emoji string
}

// actions is the exhaustive table over the closed action set. Adding a new
// action means adding a constant above, an entry here, and a template in
// defaultTemplates — Valid, Label, Emoji and the catalog all key off it
var actions = map[Action]actionInfo{
	ActionFix:      {label: "Fix", emoji: "✏️"},
	ActionShorten:  {label: "Shorten", emoji: "✂️"},
	ActionImprove:  {label: "Improve", emoji: "🚀"},
	ActionFormal:   {label: "Formal", emoji: "🎩"},
	ActionFriendly: {label: "Friendly", emoji: "😊"},
	ActionRephrase: {label: "Rephrase", emoji: "🔄"},
	ActionContinue: {label: "Continue", emoji: "➡️"},
}

// actionOrder fixes the presentation order of the action menu
var actionOrder = []Action{
	ActionFix,
	ActionShorten,
	ActionImprove,
	ActionRephrase,
	ActionFormal,
	ActionFriendly,
	ActionContinue,
}

// Actions returns every action in menu order
func Actions() []Action {
	out := make([]Action, len(actionOrder))
	copy(out, actionOrder)
	return out
}

// ParseAction maps a callback token to its Action. Unknown tokens return
// ErrUnknownAction instead of being treated as an expired session
func ParseAction(token string) (Action, error) {
	a := Action(token)
	if !a.Valid() {
		return "", ErrUnknownAction
	}
	return a, nil
}

// Valid reports whether the action is a member of the closed action set
func (a Action) Valid() bool {
	_, ok := actions[a]
	return ok
}

// Label returns the human-readable name for the action
func (a Action) Label() string {
	return actions[a].label
}

// Emoji returns the menu icon for the action
func (a Action) Emoji() string {
	return actions[a].emoji
}
