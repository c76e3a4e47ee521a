package editor

import "unicode/utf8"

// Text length bounds for a submission, measured in runes
const (
	MinTextLen = 5
	MaxTextLen = 2000
)

// State is the conversation state for one user. There is no stored state
// beyond the session table: a user with a live session is selecting an
// action, anyone else is awaiting text. Terminal outcomes (cancelled,
// completed) delete the session, which resets the user to StateAwaitingText
type State int

const (
	// StateAwaitingText means no text has been collected yet
	StateAwaitingText State = iota

	// StateSelectingAction means a current text exists and the next legal
	// inputs are an action selection or a control command
	StateSelectingAction
)

// Command is a control token from the transport: a slash command or a
// non-action keyboard button
type Command string

const (
	CommandStart    Command = "start"
	CommandHelp     Command = "help"
	CommandEdit     Command = "edit"
	CommandCancel   Command = "cancel"
	CommandEditMore Command = "edit_more"
	CommandDone     Command = "done"
)

// InputKind discriminates the machine's input alphabet
type InputKind int

const (
	InputText InputKind = iota
	InputAction
	InputCommand
)

// Input is one inbound event, already translated from transport shapes
type Input struct {
	Kind    InputKind
	Text    string  // set for InputText
	Action  Action  // set for InputAction
	Command Command // set for InputCommand
}

// TextInput builds a text-submission input
func TextInput(text string) Input {
	return Input{Kind: InputText, Text: text}
}

// ActionInput builds an action-selection input
func ActionInput(action Action) Input {
	return Input{Kind: InputAction, Action: action}
}

// CommandInput builds a control-command input
func CommandInput(cmd Command) Input {
	return Input{Kind: InputCommand, Command: cmd}
}

// SessionView is the read-only slice of session state the machine needs to
// compute transitions and effect payloads
type SessionView struct {
	Exists      bool
	CurrentText string
	EditCount   int
	Actions     []string // labels of completed edits, chronological
}

// EffectKind identifies one side effect the caller must perform
type EffectKind int

const (
	// EffectCreateSession stores Text as the user's new session
	EffectCreateSession EffectKind = iota

	// EffectDispatch runs Action against the session's current text
	EffectDispatch

	// EffectPrompt asks the user to submit text
	EffectPrompt

	// EffectShowActionMenu presents the action keyboard over Text
	EffectShowActionMenu

	// EffectShowPostEditMenu presents the edit-more/done keyboard
	EffectShowPostEditMenu

	// EffectFinalSummary emits the final text plus an edit summary
	EffectFinalSummary

	// EffectCancelled acknowledges a cancel
	EffectCancelled

	// EffectWelcome and EffectHelp emit the static info messages
	EffectWelcome
	EffectHelp

	// EffectError reports Err to the user
	EffectError
)

// Effect is one side effect with its payload
type Effect struct {
	Kind      EffectKind
	Text      string
	Action    Action
	EditCount int
	Actions   []string
	Err       error
}

// Outcome is the result of a transition: the next state, whether the
// session must be deleted, and the effects to perform in order
type Outcome struct {
	Next       State
	EndSession bool
	Effects    []Effect
}

// ValidateText checks a text submission against the length bounds
func ValidateText(text string) error {
	switch n := utf8.RuneCountInString(text); {
	case n < MinTextLen:
		return ErrTextTooShort
	case n > MaxTextLen:
		return ErrTextTooLong
	}
	return nil
}

// StateFor derives the conversation state from session existence
func StateFor(view SessionView) State {
	if view.Exists {
		return StateSelectingAction
	}
	return StateAwaitingText
}

// Transition computes the next state and the effects for one input. It is a
// pure function: all mutation happens through the returned effects
func Transition(state State, view SessionView, in Input) Outcome {
	switch in.Kind {
	case InputText:
		return transitionText(state, in.Text)
	case InputAction:
		return transitionAction(state, view, in.Action)
	case InputCommand:
		return transitionCommand(state, view, in.Command)
	}
	return Outcome{Next: state, Effects: []Effect{{Kind: EffectError, Err: ErrUnknownAction}}}
}

// transitionText handles a text submission in any state. A valid text
// always (re)creates the session, discarding any previous one for the user
func transitionText(state State, text string) Outcome {
	if err := ValidateText(text); err != nil {
		return Outcome{Next: state, Effects: []Effect{{Kind: EffectError, Err: err}}}
	}

	return Outcome{
		Next: StateSelectingAction,
		Effects: []Effect{
			{Kind: EffectCreateSession, Text: text},
			{Kind: EffectShowActionMenu, Text: text},
		},
	}
}

// transitionAction handles an action selection. With no live session the
// selection is stale (e.g. an old keyboard after eviction) and is reported
// as an expired session without touching any state
func transitionAction(state State, view SessionView, action Action) Outcome {
	if !action.Valid() {
		return Outcome{Next: state, Effects: []Effect{{Kind: EffectError, Err: ErrUnknownAction}}}
	}

	if !view.Exists {
		return Outcome{Next: StateAwaitingText, Effects: []Effect{{Kind: EffectError, Err: ErrSessionExpired}}}
	}

	return Outcome{
		Next:    StateSelectingAction,
		Effects: []Effect{{Kind: EffectDispatch, Action: action}},
	}
}

// transitionCommand handles control commands
func transitionCommand(state State, view SessionView, cmd Command) Outcome {
	switch cmd {
	case CommandStart:
		return Outcome{Next: state, Effects: []Effect{{Kind: EffectWelcome}}}

	case CommandHelp:
		return Outcome{Next: state, Effects: []Effect{{Kind: EffectHelp}}}

	case CommandEdit:
		if !view.Exists {
			return Outcome{Next: StateAwaitingText, Effects: []Effect{{Kind: EffectPrompt}}}
		}
		return Outcome{
			Next:    StateSelectingAction,
			Effects: []Effect{{Kind: EffectShowActionMenu, Text: view.CurrentText}},
		}

	case CommandCancel:
		// legal in any state; deleting an absent session is a no-op
		return Outcome{
			Next:       StateAwaitingText,
			EndSession: true,
			Effects:    []Effect{{Kind: EffectCancelled}},
		}

	case CommandEditMore:
		if !view.Exists {
			return Outcome{Next: StateAwaitingText, Effects: []Effect{{Kind: EffectError, Err: ErrSessionExpired}}}
		}
		return Outcome{
			Next:    StateSelectingAction,
			Effects: []Effect{{Kind: EffectShowActionMenu, Text: view.CurrentText}},
		}

	case CommandDone:
		if !view.Exists {
			return Outcome{Next: StateAwaitingText, Effects: []Effect{{Kind: EffectError, Err: ErrSessionExpired}}}
		}
		return Outcome{
			Next:       StateAwaitingText,
			EndSession: true,
			Effects: []Effect{{
				Kind:      EffectFinalSummary,
				Text:      view.CurrentText,
				EditCount: view.EditCount,
				Actions:   view.Actions,
			}},
		}
	}

	return Outcome{Next: state, Effects: []Effect{{Kind: EffectError, Err: ErrUnknownAction}}}
}
