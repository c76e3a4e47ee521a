package editor

import "errors"

var (
	// ErrTextTooShort is returned when a submitted text is below the minimum length
	ErrTextTooShort = errors.New("text is too short")

	// ErrTextTooLong is returned when a submitted text exceeds the maximum length
	ErrTextTooLong = errors.New("text is too long")

	// ErrUnknownAction is returned for tokens outside the closed action set
	ErrUnknownAction = errors.New("unknown action")

	// ErrSessionExpired is returned when an action is selected for a user
	// with no live session
	ErrSessionExpired = errors.New("session expired")

	// ErrTransformation wraps any failure from the transformation
	// collaborator: timeouts, malformed responses, quota or auth errors
	ErrTransformation = errors.New("transformation failed")
)
