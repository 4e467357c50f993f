package core

import "time"

// Ports define interfaces for the authoritative ledger and its collaborators.

type UserStorage interface {
	// CreateUser stores u. Usernames are unique case-insensitively;
	// a clash returns ErrUsernameTaken.
	CreateUser(u *User) error

	GetUserByID(id string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	ListUsers() ([]*User, error)

	UpdateUser(u *User) error

	DeleteUser(id string) error
}

type TransactionStorage interface {
	// ApplyTransaction appends tx to the user's log and adjusts the balance
	// by +amount (credit) or -amount (debit) as a single atomic mutation.
	// The balance is never clamped here; limiting is the caller's concern.
	ApplyTransaction(userID string, tx *Transaction) error

	// UserTransactions returns the user's ledger entries, newest first.
	UserTransactions(userID string) ([]*Transaction, error)
}

type SessionStorage interface {
	CreateSession(session *Session) error

	GetSessionByHash(tokenHash string) (*Session, error)

	DeleteSessionByHash(tokenHash string) error
	DeleteUserSessions(userID string) (int, error)
}

// LedgerStorage is the full account ledger: users, the append-only
// transaction log, and active sessions.
type LedgerStorage interface {
	UserStorage
	TransactionStorage
	SessionStorage
}

// Cache defines session caching operations.
type Cache interface {
	Get(tokenHash string) (*Session, error)
	Set(tokenHash string, session *Session) error
	Delete(tokenHash string) error
	Clear() error
}

// CacheWithStats extends Cache with statistics tracking.
type CacheWithStats interface {
	Cache
	Stats() CacheStats
}

// CacheConfig configures cache behavior.
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats are simple counters for cache behavior, intended for
// diagnostics and monitoring.
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}
