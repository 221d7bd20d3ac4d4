package session

import (
	"sync"
	"time"
)

// Store owns every live session, keyed by chat id. Mutations for one chat are
// serialized through a per-chat lock; different chats proceed concurrently.
// Aggregate readers get copied snapshots and may observe concurrent mutation
// by other chats, which is acceptable for statistics.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the serialization lock for a chat, creating it on first use.
// Locks are retained for the process lifetime, like the sessions they guard.
func (st *Store) lockFor(chatID int64) *sync.Mutex {
	st.locksMu.Lock()
	defer st.locksMu.Unlock()
	l, ok := st.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		st.locks[chatID] = l
	}
	return l
}

// Start creates a fresh session for the chat, silently discarding any
// in-progress one. Starting over is a restart, not an error.
func (st *Store) Start(chatID int64, username, displayName string, now time.Time) {
	l := st.lockFor(chatID)
	l.Lock()
	defer l.Unlock()

	st.mu.Lock()
	st.sessions[chatID] = &Session{
		ChatID:      chatID,
		Username:    username,
		DisplayName: displayName,
		StartedAt:   now,
	}
	st.mu.Unlock()
}

// Do runs fn under the chat's serialization lock. fn receives nil when the
// chat has no session. fn may call Delete for its own chat id.
func (st *Store) Do(chatID int64, fn func(s *Session)) {
	l := st.lockFor(chatID)
	l.Lock()
	defer l.Unlock()

	st.mu.RLock()
	s := st.sessions[chatID]
	st.mu.RUnlock()
	fn(s)
}

// Delete removes the chat's session, if any.
func (st *Store) Delete(chatID int64) {
	st.mu.Lock()
	delete(st.sessions, chatID)
	st.mu.Unlock()
}

// Get returns a copy of the chat's session.
func (st *Store) Get(chatID int64) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Snapshot returns copies of all live sessions in no particular order.
func (st *Store) Snapshot() []Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s.clone())
	}
	return out
}
