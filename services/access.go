package services

import (
	"github.com/lborres/sandbank/core"
)

// AccessService is the role-based authorization gate consulted before any
// privileged operation.
type AccessService struct {
	store    core.LedgerStorage
	profile  *core.Profile
	sessions *SessionManager
}

func NewAccessService(store core.LedgerStorage, profile *core.Profile, sessions *SessionManager) *AccessService {
	return &AccessService{
		store:    store,
		profile:  profile,
		sessions: sessions,
	}
}

// Check resolves the token's session and compares the owning user's role
// against required.
//
// With accessControlEnforced off, every check is granted regardless of the
// session's role or even validity, simulating navigation-based privilege
// escalation; the returned SessionData may then carry a nil user.
func (s *AccessService) Check(token string, required core.Role) (*core.SessionData, error) {
	if !s.profile.AccessControlEnforced {
		if data, err := s.resolve(token); err == nil {
			return data, nil
		}
		return &core.SessionData{}, nil
	}

	data, err := s.resolve(token)
	if err != nil {
		return nil, core.ErrUnknownSession
	}

	if data.User.Role != required {
		return nil, core.ErrAccessDenied
	}

	return data, nil
}

// Resolve returns the session and user behind a token without any role
// comparison. Unlike Check it always requires a valid session; transfers and
// transaction listings use it since they act on the caller's own account.
func (s *AccessService) Resolve(token string) (*core.SessionData, error) {
	data, err := s.resolve(token)
	if err != nil {
		return nil, core.ErrUnknownSession
	}
	return data, nil
}

func (s *AccessService) resolve(token string) (*core.SessionData, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(session.UserID)
	if err != nil {
		return nil, err
	}

	return &core.SessionData{User: user, Session: session}, nil
}
