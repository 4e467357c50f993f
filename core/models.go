package core

import "time"

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account holder in the simulated bank.
//
// Balance is fixed-point: the amount in cents. The ledger never clamps it;
// whether it may go negative is the transfer processor's concern.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Credential string    `json:"-"` // plaintext or encoded hash, per profile
	Role       Role      `json:"role"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TransactionType distinguishes money entering from money leaving an account.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a single immutable ledger entry. Once appended it is never
// edited or removed.
type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"` // cents, always > 0
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty,omitempty"` // username reference, not owning
	Timestamp    time.Time       `json:"timestamp"`
}

// TransactionPair is the result of a transfer: the sender's debit and, when
// the recipient is a known user, the matching credit. Credit is nil when the
// recipient is an external counterparty.
type TransactionPair struct {
	Debit  *Transaction `json:"debit"`
	Credit *Transaction `json:"credit,omitempty"`
}

// Session represents an active login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // never expose the stored hash
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionData combines a session with its owning user.
type SessionData struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// RegisterInput contains the data needed to open a new account.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResult contains the authenticated user and their session.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
	Token   string   `json:"token"` // the raw token (not the hash)
}

// QueryReport describes the outcome of a raw query execution. Destructive and
// tautology outcomes are successful results carrying flags, not errors: the
// point of the sandbox is to observe them.
type QueryReport struct {
	Query        string      `json:"query"`
	Result       QueryResult `json:"result"`
	Blocked      bool        `json:"blocked"`
	RowsAffected int         `json:"rowsAffected"`
	Message      string      `json:"message"`
}
