package session

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session represents one user's live editing session: the text currently
// subject to transformation and the history of completed edits
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CurrentText string `json:"current_text"`
	History     []Edit `json:"history,omitempty"`
}

// Edit represents one completed transformation. Edits are append-only and
// never modified after being recorded
type Edit struct {
	Action   string    `json:"action"`
	Original string    `json:"original"`
	Result   string    `json:"result"`
	At       time.Time `json:"at"`
}

// NewSession creates a new session for a user with the given initial text
func NewSession(userID, text string) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
		CurrentText: text,
	}
}

// EditCount returns the number of completed edits in the session
func (s *Session) EditCount() int {
	return len(s.History)
}

// Actions returns the action tokens of all completed edits in chronological order
func (s *Session) Actions() []string {
	actions := make([]string, 0, len(s.History))
	for _, edit := range s.History {
		actions = append(actions, edit.Action)
	}
	return actions
}

// clone returns a deep copy so callers never alias store-owned state
func (s *Session) clone() *Session {
	copied := *s
	copied.History = slices.Clone(s.History)
	return &copied
}
