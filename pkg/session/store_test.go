package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	// Test case 1: no session exists initially
	_, exists := store.Get("user1")
	assert.False(t, exists)

	// Test case 2: create returns a session with the initial text and no history
	sess := store.Create("user1", "hello world")
	assert.Equal(t, "user1", sess.UserID)
	assert.Equal(t, "hello world", sess.CurrentText)
	assert.Empty(t, sess.History)
	assert.NotEqual(t, sess.ID.String(), "00000000-0000-0000-0000-000000000000")

	// Test case 3: get returns the stored session
	got, exists := store.Get("user1")
	require.True(t, exists)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "hello world", got.CurrentText)

	// Test case 4: creating again replaces the previous session
	replaced := store.Create("user1", "brand new text")
	assert.NotEqual(t, sess.ID, replaced.ID)

	got, exists = store.Get("user1")
	require.True(t, exists)
	assert.Equal(t, "brand new text", got.CurrentText)
	assert.Empty(t, got.History)
	assert.Equal(t, 1, store.Count())
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore()
	created := store.Create("user1", "original text")

	// Test case 1: update appends the edit and advances the current text
	edit := Edit{Action: "improve", Original: "original text", Result: "better text", At: time.Now()}
	err := store.Update("user1", created.ID, "better text", edit)
	require.NoError(t, err)

	sess, exists := store.Get("user1")
	require.True(t, exists)
	assert.Equal(t, "better text", sess.CurrentText)
	require.Len(t, sess.History, 1)
	assert.Equal(t, "improve", sess.History[0].Action)
	assert.Equal(t, "original text", sess.History[0].Original)
	assert.Equal(t, "better text", sess.History[0].Result)

	// Test case 2: updating an absent session returns ErrNotFound
	err = store.Update("ghost", uuid.New(), "text", edit)
	assert.ErrorIs(t, err, ErrNotFound)

	// Test case 3: an update against a replaced session is rejected and the
	// replacement stays untouched
	replacement := store.Create("user1", "fresh submission")
	err = store.Update("user1", created.ID, "stale result", Edit{Action: "fix", Original: "better text", Result: "stale result"})
	assert.ErrorIs(t, err, ErrNotFound)

	sess, _ = store.Get("user1")
	assert.Equal(t, replacement.ID, sess.ID)
	assert.Equal(t, "fresh submission", sess.CurrentText)
	assert.Empty(t, sess.History)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	store.Create("user1", "some text here")

	store.Delete("user1")
	_, exists := store.Get("user1")
	assert.False(t, exists)
	assert.Equal(t, 0, store.Count())

	// Deleting an absent session is a no-op
	store.Delete("user1")
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	created := store.Create("user1", "immutable text")
	require.NoError(t, store.Update("user1", created.ID, "v2", Edit{Action: "fix", Original: "immutable text", Result: "v2"}))

	// Mutating the returned session must not affect the stored one
	sess, _ := store.Get("user1")
	sess.CurrentText = "tampered"
	sess.History[0].Result = "tampered"
	sess.History = append(sess.History, Edit{Action: "shorten"})

	fresh, _ := store.Get("user1")
	assert.Equal(t, "v2", fresh.CurrentText)
	require.Len(t, fresh.History, 1)
	assert.Equal(t, "v2", fresh.History[0].Result)
}

func TestStoreConcurrentUsers(t *testing.T) {
	store := NewStore()

	// Many users operating in parallel must not corrupt each other's state
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user%d", n)
			text := fmt.Sprintf("text for user %d", n)

			created := store.Create(userID, text)
			err := store.Update(userID, created.ID, text+" v2", Edit{Action: "improve", Original: text, Result: text + " v2"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
	for i := 0; i < 50; i++ {
		sess, exists := store.Get(fmt.Sprintf("user%d", i))
		require.True(t, exists)
		assert.Equal(t, fmt.Sprintf("text for user %d v2", i), sess.CurrentText)
		assert.Len(t, sess.History, 1)
	}
}

func TestStoreAcquire(t *testing.T) {
	store := NewStore()

	// Same user always gets the same mutex, different users get different ones
	assert.Same(t, store.Acquire("user1"), store.Acquire("user1"))
	assert.NotSame(t, store.Acquire("user1"), store.Acquire("user2"))

	// The lock survives session deletion
	mu := store.Acquire("user1")
	store.Create("user1", "short lived")
	store.Delete("user1")
	assert.Same(t, mu, store.Acquire("user1"))
}

func TestStoreEvictIdle(t *testing.T) {
	store := NewStore()
	store.Create("fresh", "recent activity")
	store.Create("stale", "old session")

	// Backdate the stale session past the cutoff
	store.mu.Lock()
	store.sessions["stale"].UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	evicted := store.EvictIdle(time.Hour)
	assert.Equal(t, 1, evicted)

	_, exists := store.Get("stale")
	assert.False(t, exists)
	_, exists = store.Get("fresh")
	assert.True(t, exists)

	// Nothing left to evict
	assert.Equal(t, 0, store.EvictIdle(time.Hour))
}

func TestSessionActions(t *testing.T) {
	sess := NewSession("user1", "base text")
	assert.Equal(t, 0, sess.EditCount())
	assert.Empty(t, sess.Actions())

	sess.History = append(sess.History,
		Edit{Action: "fix", Original: "base text", Result: "a"},
		Edit{Action: "shorten", Original: "a", Result: "b"},
	)
	assert.Equal(t, 2, sess.EditCount())
	assert.Equal(t, []string{"fix", "shorten"}, sess.Actions())
}
