// Package presence tracks ephemeral typing indicators. Entries expire
// after a short TTL and are never persisted; losing them on restart is
// acceptable.
package presence

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a typing indicator stays fresh after the last
// keystroke notification
const DefaultTTL = 3 * time.Second

// Tracker records and queries who is currently typing in a conversation
type Tracker interface {
	RecordTyping(ctx context.Context, conversationID, userID string) error
	// ActiveTypers returns users typing within the TTL, excluding the viewer
	ActiveTypers(ctx context.Context, conversationID, excludingUserID string) ([]string, error)
}

// MemoryTracker is a mutex-guarded in-memory Tracker. It is per-process
// only; multi-instance deployments should use the Redis tracker instead.
type MemoryTracker struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	// conversationID -> userID -> last typing notification
	typing map[string]map[string]time.Time
}

// NewMemoryTracker creates an in-memory Tracker with the given TTL
func NewMemoryTracker(ttl time.Duration) *MemoryTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryTracker{
		ttl:    ttl,
		now:    time.Now,
		typing: make(map[string]map[string]time.Time),
	}
}

// RecordTyping stores the current time for (conversation, user).
// Overwrites are idempotent.
func (t *MemoryTracker) RecordTyping(_ context.Context, conversationID, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.typing[conversationID]
	if !ok {
		users = make(map[string]time.Time)
		t.typing[conversationID] = users
	}
	users[userID] = t.now()
	return nil
}

// ActiveTypers returns users whose last notification is within the TTL,
// excluding the viewer. Stale entries are pruned as a side effect.
func (t *MemoryTracker) ActiveTypers(_ context.Context, conversationID, excludingUserID string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.typing[conversationID]
	if !ok {
		return nil, nil
	}

	now := t.now()
	var active []string
	for userID, last := range users {
		if now.Sub(last) >= t.ttl {
			delete(users, userID)
			continue
		}
		if userID != excludingUserID {
			active = append(active, userID)
		}
	}
	if len(users) == 0 {
		delete(t.typing, conversationID)
	}
	return active, nil
}
