package editor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ethanbaker/textcraft/pkg/llm"
	"github.com/ethanbaker/textcraft/pkg/session"
)

// Result is the outcome of one successful transformation
type Result struct {
	Action    Action
	Original  string
	Text      string // the transformed text, now the session's current text
	EditCount int    // completed edits including this one
}

// Dispatcher turns a selected action into a single transformation call and
// folds the result back into the user's session
type Dispatcher struct {
	store     *session.Store
	catalog   *Catalog
	completer llm.Completer
	timeout   time.Duration
}

// NewDispatcher creates a dispatcher. A timeout of zero leaves the
// transformation call unbounded beyond the caller's context
func NewDispatcher(store *session.Store, catalog *Catalog, completer llm.Completer, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		store:     store,
		catalog:   catalog,
		completer: completer,
		timeout:   timeout,
	}
}

// Apply runs one transformation for the user's session. The per-user lock
// is held across the whole read-transform-write cycle so two concurrent
// selections from the same user serialize: the second observes the first's
// result as its input instead of silently overwriting it. Requests for
// different users proceed fully in parallel.
//
// On any collaborator failure the session is left untouched so the user's
// current text is not lost; no retries are attempted and the returned text
// is trusted verbatim
func (d *Dispatcher) Apply(ctx context.Context, userID string, action Action) (*Result, error) {
	if !action.Valid() {
		return nil, ErrUnknownAction
	}

	mu := d.store.Acquire(userID)
	mu.Lock()
	defer mu.Unlock()

	sess, exists := d.store.Get(userID)
	if !exists {
		return nil, ErrSessionExpired
	}

	prompt, err := d.catalog.Render(action, sess.CurrentText)
	if err != nil {
		return nil, err
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	// the sole blocking point in the flow
	result, err := d.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransformation, err)
	}

	edit := session.Edit{
		Action:   string(action),
		Original: sess.CurrentText,
		Result:   result,
		At:       time.Now(),
	}
	if err := d.store.Update(userID, sess.ID, result, edit); err != nil {
		// session cancelled or replaced while the call was in flight; drop
		// the result rather than fold it into a session it was not computed
		// against
		log.Printf("[EDITOR]: discarding in-flight %s result for user %s: %v", action, userID, err)
		return nil, ErrSessionExpired
	}

	return &Result{
		Action:    action,
		Original:  edit.Original,
		Text:      result,
		EditCount: sess.EditCount() + 1,
	}, nil
}
