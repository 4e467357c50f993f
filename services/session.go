package services

import (
	"time"

	"github.com/lborres/sandbank/core"
	"github.com/lborres/sandbank/pkg/crypto"
)

// SessionManager issues and verifies opaque session tokens. Only the sha256
// hash of a token is ever stored; the raw token goes back to the caller once.
type SessionManager struct {
	config  core.SessionConfig
	storage core.SessionStorage
	cache   core.Cache // optional, nil when caching is disabled
	ids     *crypto.NanoIDGenerator
}

// CreateSessionResult carries a new session and its raw token.
type CreateSessionResult struct {
	Session *core.Session `json:"session"`
	Token   string        `json:"token"`
}

func NewSessionManager(config core.SessionConfig, storage core.SessionStorage, cache core.Cache) *SessionManager {
	return &SessionManager{
		config:  config,
		storage: storage,
		cache:   cache,
		ids:     crypto.NewNanoID(),
	}
}

func (sm *SessionManager) Create(userID string) (*CreateSessionResult, error) {
	pair, err := crypto.GenerateHashedToken()
	if err != nil {
		return nil, err
	}

	sessionID, err := sm.ids.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &core.Session{
		ID:        sessionID,
		UserID:    userID,
		TokenHash: pair.Hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(sm.config.MaxAge),
	}

	if err := sm.storage.CreateSession(session); err != nil {
		return nil, err
	}

	// Cache is best-effort; a failed set never fails the request.
	if sm.cache != nil {
		_ = sm.cache.Set(pair.Hash, session)
	}

	return &CreateSessionResult{Session: session, Token: pair.Token}, nil
}

// Verify resolves a raw token to its session. Expiry is checked against the
// wall clock at the verification boundary; the engine runs no timers.
func (sm *SessionManager) Verify(token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	if sm.cache != nil {
		if session, err := sm.cache.Get(tokenHash); err == nil {
			if time.Now().After(session.ExpiresAt) {
				_ = sm.cache.Delete(tokenHash)
				return nil, core.ErrSessionExpired
			}
			return session, nil
		}
		// cache miss, fall through to storage
	}

	session, err := sm.storage.GetSessionByHash(tokenHash)
	if err != nil {
		return nil, core.ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrSessionExpired
	}

	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, session)
	}

	return session, nil
}

func (sm *SessionManager) Destroy(token string) error {
	if token == "" {
		return core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}

	return sm.storage.DeleteSessionByHash(tokenHash)
}

func (sm *SessionManager) DestroyAllUserSessions(userID string) (int, error) {
	if userID == "" {
		return 0, core.ErrUserNotFound
	}

	count, err := sm.storage.DeleteUserSessions(userID)
	if err != nil {
		return 0, err
	}

	// Conservative: clearing the whole cache avoids fetching every session
	// just to learn its token hash.
	if sm.cache != nil && count > 0 {
		_ = sm.cache.Clear()
	}

	return count, nil
}
