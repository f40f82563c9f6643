package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"commerce-agent-be/pkg/store"
)

// SessionRepository holds the process-wide session state. Sessions are
// created lazily on first access and never expire unless a TTL is
// configured. There is no per-session locking: concurrent requests
// against the same session id race, which is accepted under the
// single-user-per-session assumption.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionRepository creates the in-memory session store. ttl <= 0
// keeps sessions for the lifetime of the process.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(expiration, cleanup),
		ttl:   ttl,
	}
}

// GetOrCreate returns the session for sessionID, creating an empty one
// on first access. It never fails.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}
	session := store.NewSession(sessionID)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session
}

// Save persists session state (and refreshes its TTL when one is set).
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Reset replaces the session with a fresh empty one.
func (r *SessionRepository) Reset(sessionID string) *store.Session {
	session := store.NewSession(sessionID)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session
}
