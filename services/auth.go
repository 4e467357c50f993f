package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/lborres/sandbank/core"
	"github.com/lborres/sandbank/pkg/crypto"
)

// AuthService handles registration and login. Login first runs the combined
// credentials through the query classifier; with injection protection off, a
// tautology in the input bypasses password verification entirely.
type AuthService struct {
	store    core.LedgerStorage
	profile  *core.Profile
	hasher   crypto.PasswordHandler
	sessions *SessionManager
	ids      *crypto.NanoIDGenerator
}

func NewAuthService(store core.LedgerStorage, profile *core.Profile, hasher crypto.PasswordHandler, sessions *SessionManager) *AuthService {
	return &AuthService{
		store:    store,
		profile:  profile,
		hasher:   hasher,
		sessions: sessions,
		ids:      crypto.NewNanoID(),
	}
}

// Register opens a new account with the profile's starting balance.
func (s *AuthService) Register(input core.RegisterInput) (*core.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, core.ErrUsernameRequired
	}
	if len(input.Password) < s.profile.PasswordMinLength {
		return nil, core.ErrWeakPassword
	}
	if input.Password != input.ConfirmPassword {
		return nil, core.ErrPasswordMismatch
	}

	credential, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	now := time.Now()
	user := &core.User{
		ID:         id,
		Username:   core.SanitizeText(input.Username, s.profile),
		Email:      core.SanitizeText(input.Email, s.profile),
		Credential: credential,
		Role:       core.RoleUser,
		Balance:    s.profile.StartingBalance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues a session.
//
// The credentials are first combined into a simulated query and classified.
// An always-true verdict (only reachable with sqlInjectionProtection off)
// skips password verification and issues a session for whichever user the
// username clause resolves to. Otherwise a literal lookup and credential
// comparison decide.
func (s *AuthService) Login(username, password string) (*core.AuthResult, error) {
	probe := fmt.Sprintf(
		"SELECT * FROM users WHERE username = '%s' AND password = '%s'",
		username, password,
	)

	verdict := core.EvaluateQuery(probe, core.PurposeLogin, s.profile)
	if verdict.MatchedAlwaysTrue {
		return s.bypassLogin(username)
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, core.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.Credential)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, core.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Logout invalidates the session for the given token.
func (s *AuthService) Logout(token string) error {
	return s.sessions.Destroy(token)
}

// GetSession resolves a raw token to its session and owning user.
func (s *AuthService) GetSession(token string) (*core.SessionData, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &core.SessionData{User: user, Session: session}, nil
}

// bypassLogin is the injection path: no password check. The username clause
// (text before the first quote) picks the victim account; when no account
// matches, one is materialized the way the original materialized its
// localStorage user, admin-roled iff the clause reads "admin".
func (s *AuthService) bypassLogin(rawUsername string) (*core.AuthResult, error) {
	clause := usernameClause(rawUsername)

	for _, candidate := range []string{clause, rawUsername} {
		if candidate == "" {
			continue
		}
		if user, err := s.store.GetUserByUsername(candidate); err == nil {
			return s.issueSession(user)
		}
	}

	name := clause
	if name == "" {
		name = rawUsername
	}

	role := core.RoleUser
	if strings.EqualFold(name, "admin") {
		role = core.RoleAdmin
	}

	id, err := s.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	now := time.Now()
	user := &core.User{
		ID:        id,
		Username:  name,
		Role:      role,
		Balance:   s.profile.StartingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *core.User) (*core.AuthResult, error) {
	result, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.AuthResult{
		User:    user,
		Session: result.Session,
		Token:   result.Token,
	}, nil
}

// usernameClause returns the literal part of an injected username: the text
// before the first quote, trimmed.
func usernameClause(username string) string {
	if i := strings.IndexByte(username, '\''); i >= 0 {
		username = username[:i]
	}
	return strings.TrimSpace(username)
}
