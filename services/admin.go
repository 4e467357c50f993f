package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/lborres/sandbank/core"
)

// AdminService carries the privileged operations: user search, raw query
// execution, and role/lifecycle management. Privileged calls gate through
// the access service; with enforcement off they proceed unconditionally.
type AdminService struct {
	store    core.LedgerStorage
	profile  *core.Profile
	access   *AccessService
	sessions *SessionManager
}

func NewAdminService(store core.LedgerStorage, profile *core.Profile, access *AccessService, sessions *SessionManager) *AdminService {
	return &AdminService{
		store:    store,
		profile:  profile,
		access:   access,
		sessions: sessions,
	}
}

// Search filters users by a free-text query. A tautology verdict (injection
// protection off) bypasses the filter and returns the full user set; a
// syntax-error verdict returns no rows, mirroring the original's failed
// query. Otherwise the query matches literally against username and email.
// Search itself never fails; the verdict rides along for reporting.
func (s *AdminService) Search(query string) ([]*core.User, core.QueryResult, error) {
	verdict := core.EvaluateQuery(query, core.PurposeSearch, s.profile)

	users, err := s.store.ListUsers()
	if err != nil {
		return nil, verdict, fmt.Errorf("failed to list users: %w", err)
	}

	if verdict.MatchedAlwaysTrue {
		return users, verdict, nil
	}
	if verdict.SyntaxError {
		return []*core.User{}, verdict, nil
	}

	needle := strings.ToLower(query)
	matched := make([]*core.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matched = append(matched, u)
		}
	}
	return matched, verdict, nil
}

// RunRawQuery simulates executing an arbitrary query. Destructive statements
// are never applied to the live ledger: the would-be effect is computed on a
// detached snapshot and only reported.
func (s *AdminService) RunRawQuery(token, query string) (*core.QueryReport, error) {
	if _, err := s.access.Check(token, core.RoleAdmin); err != nil {
		return nil, err
	}

	verdict := core.EvaluateQuery(query, core.PurposeRawQuery, s.profile)
	report := &core.QueryReport{Query: query, Result: verdict}

	users, err := s.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	switch {
	case verdict.Destructive && !s.profile.SQLInjectionProtection:
		// users is already a detached snapshot; the wipe is reported
		// against it and the live ledger is never touched.
		report.RowsAffected = len(users)
		report.Message = fmt.Sprintf("destructive query detected: %d rows would be removed", report.RowsAffected)

	case verdict.Destructive:
		report.Blocked = true
		report.Message = "statement handled as literal text; no rows affected"

	case strings.Contains(strings.ToLower(query), "select"):
		report.RowsAffected = len(users)
		report.Message = fmt.Sprintf("query executed: %d rows", report.RowsAffected)

	default:
		report.Message = "unknown command"
	}

	return report, nil
}

// PromoteUser grants the target the admin role.
func (s *AdminService) PromoteUser(token, targetID string) (*core.User, error) {
	return s.setRole(token, targetID, core.RoleAdmin)
}

// DemoteUser reverts the target to a regular user.
func (s *AdminService) DemoteUser(token, targetID string) (*core.User, error) {
	return s.setRole(token, targetID, core.RoleUser)
}

// DeleteUser removes the target and their sessions.
func (s *AdminService) DeleteUser(token, targetID string) error {
	if _, err := s.access.Check(token, core.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.sessions.DestroyAllUserSessions(targetID); err != nil {
		return fmt.Errorf("failed to destroy sessions: %w", err)
	}

	return s.store.DeleteUser(targetID)
}

func (s *AdminService) setRole(token, targetID string, role core.Role) (*core.User, error) {
	if !role.Valid() {
		return nil, core.ErrInvalidRole
	}

	if _, err := s.access.Check(token, core.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}
