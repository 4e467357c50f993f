// Package sandbank is a controlled training sandbox that reproduces classic
// web-application vulnerability classes (broken access control, injection,
// weak cryptography, race conditions) deterministically. Every operation runs
// in one of two modes, vulnerable or hardened, selected per feature by a
// protection profile, so a harness can assert both that an attack succeeds
// with protection off and that it fails with protection on.
package sandbank

import (
	"time"

	"github.com/lborres/sandbank/core"
	"github.com/lborres/sandbank/pkg/cache"
	"github.com/lborres/sandbank/pkg/crypto"
	"github.com/lborres/sandbank/pkg/memstore"
	"github.com/lborres/sandbank/services"
)

// interfaces
type (
	LedgerStorage = core.LedgerStorage
	Cache         = core.Cache

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Profile       = core.Profile
	SessionConfig = core.SessionConfig
	CacheConfig   = core.CacheConfig
)

type (
	User                = core.User
	Role                = core.Role
	Session             = core.Session
	SessionData         = core.SessionData
	Transaction         = core.Transaction
	TransactionPair     = core.TransactionPair
	RegisterInput       = core.RegisterInput
	AuthResult          = core.AuthResult
	QueryReport         = core.QueryReport
	QueryResult         = core.QueryResult
	VulnerabilityRecord = core.VulnerabilityRecord
	CacheStats          = core.CacheStats
)

const (
	RoleUser  = core.RoleUser
	RoleAdmin = core.RoleAdmin
)

// Constructors & helpers (convenience re-exports)
var (
	NewMemstore      = memstore.New
	NewInMemoryCache = cache.NewInMemoryCache
	NewArgon2        = crypto.NewArgon2
	NewPlaintext     = crypto.NewPlaintext
	HardenedProfile  = core.Hardened
	VulnerableProfile = core.Vulnerable
)

var (
	ErrWeakPassword     = core.ErrWeakPassword
	ErrPasswordMismatch = core.ErrPasswordMismatch
	ErrUsernameTaken    = core.ErrUsernameTaken
	ErrUsernameRequired = core.ErrUsernameRequired
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrAccessDenied       = core.ErrAccessDenied
	ErrUnknownSession     = core.ErrUnknownSession
)

var (
	ErrInvalidAmount     = core.ErrInvalidAmount
	ErrInsufficientFunds = core.ErrInsufficientFunds
	ErrUnknownRecipient  = core.ErrUnknownRecipient
)

var (
	ErrUserNotFound    = core.ErrUserNotFound
	ErrInvalidToken    = core.ErrInvalidToken
	ErrSessionNotFound = core.ErrSessionNotFound
	ErrSessionExpired  = core.ErrSessionExpired
)

// Config wires a sandbox instance. Everything is optional: the zero Config
// yields a hardened in-memory sandbox.
type Config struct {
	// Profile selects vulnerable vs. hardened behavior per feature.
	// Defaults to the hardened profile.
	Profile *Profile

	// Storage is the authoritative ledger. Defaults to the in-memory store.
	Storage LedgerStorage

	// Optional config
	CacheAdapter   Cache
	DisableCache   bool
	SessionConfig  *SessionConfig
	PasswordHasher PasswordHandler
}

// Sandbank composes the engines over one shared ledger.
type Sandbank struct {
	Profile *Profile
	Storage LedgerStorage

	Sessions  *services.SessionManager
	Auth      *services.AuthService
	Access    *services.AccessService
	Transfers *services.TransferService
	Admin     *services.AdminService

	hasher PasswordHandler
}

func New(config Config) (*Sandbank, error) {
	profile := config.Profile
	if profile == nil {
		profile = core.Hardened()
	}
	profile.Normalize()

	storage := config.Storage
	if storage == nil {
		storage = memstore.New()
	}

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = cache.NewInMemoryCache(core.CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		c := core.DefaultSessionConfig()
		sessionConfig = &c
	}

	hasher := config.PasswordHasher
	if hasher == nil {
		if profile.PlaintextPasswords {
			hasher = crypto.NewPlaintext()
		} else {
			hasher = crypto.NewArgon2()
		}
	}

	sessions := services.NewSessionManager(*sessionConfig, storage, cacheAdapter)
	access := services.NewAccessService(storage, profile, sessions)

	return &Sandbank{
		Profile:   profile,
		Storage:   storage,
		Sessions:  sessions,
		Auth:      services.NewAuthService(storage, profile, hasher, sessions),
		Access:    access,
		Transfers: services.NewTransferService(storage, profile, access),
		Admin:     services.NewAdminService(storage, profile, access, sessions),
		hasher:    hasher,
	}, nil
}

// Operation surface exposed to presentation layers.

func (s *Sandbank) Register(input RegisterInput) (*User, error) {
	return s.Auth.Register(input)
}

func (s *Sandbank) Login(username, password string) (*AuthResult, error) {
	return s.Auth.Login(username, password)
}

func (s *Sandbank) Logout(token string) error {
	return s.Auth.Logout(token)
}

func (s *Sandbank) GetSession(token string) (*SessionData, error) {
	return s.Auth.GetSession(token)
}

func (s *Sandbank) Search(query string) ([]*User, QueryResult, error) {
	return s.Admin.Search(query)
}

func (s *Sandbank) RunRawQuery(token, query string) (*QueryReport, error) {
	return s.Admin.RunRawQuery(token, query)
}

func (s *Sandbank) Transfer(token, recipient string, amount int64, description string) (*TransactionPair, error) {
	return s.Transfers.Transfer(token, recipient, amount, description)
}

func (s *Sandbank) Transactions(token string) ([]*Transaction, error) {
	return s.Transfers.Transactions(token)
}

func (s *Sandbank) PromoteUser(token, targetID string) (*User, error) {
	return s.Admin.PromoteUser(token, targetID)
}

func (s *Sandbank) DemoteUser(token, targetID string) (*User, error) {
	return s.Admin.DemoteUser(token, targetID)
}

func (s *Sandbank) DeleteUser(token, targetID string) error {
	return s.Admin.DeleteUser(token, targetID)
}

func (s *Sandbank) ListVulnerabilities() []VulnerabilityRecord {
	return core.Catalog()
}
