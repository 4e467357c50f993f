package memstore

import (
	"strings"
	"sync"

	"github.com/lborres/sandbank/core"
)

// Ledger is the authoritative in-process store: users, the append-only
// transaction log, and active sessions. Every mutation runs under one mutex,
// so each individual ledger operation is atomic and immediately observable
// to any reader holding the same instance. Serializing sequences of
// operations (read-check-write) is the caller's concern.
type Ledger struct {
	mu        sync.RWMutex
	users     map[string]*core.User        // by id
	usernames map[string]string            // lower(username) -> id
	order     []string                     // user ids in insertion order
	sessions  map[string]*core.Session     // by token hash
	txs       map[string][]*core.Transaction // by user id, newest first
}

var _ core.LedgerStorage = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{
		users:     make(map[string]*core.User),
		usernames: make(map[string]string),
		sessions:  make(map[string]*core.Session),
		txs:       make(map[string][]*core.Transaction),
	}
}

// --- UserStorage ---

func (l *Ledger) CreateUser(u *core.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, taken := l.usernames[key]; taken {
		return core.ErrUsernameTaken
	}

	stored := *u
	l.users[u.ID] = &stored
	l.usernames[key] = u.ID
	l.order = append(l.order, u.ID)
	return nil
}

func (l *Ledger) GetUserByID(id string) (*core.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userCopy(id)
}

func (l *Ledger) GetUserByUsername(username string) (*core.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	id, ok := l.usernames[strings.ToLower(username)]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return l.userCopy(id)
}

func (l *Ledger) ListUsers() ([]*core.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*core.User, 0, len(l.order))
	for _, id := range l.order {
		if u, err := l.userCopy(id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (l *Ledger) UpdateUser(u *core.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, exists := l.users[u.ID]
	if !exists {
		return core.ErrUserNotFound
	}

	if !strings.EqualFold(current.Username, u.Username) {
		key := strings.ToLower(u.Username)
		if _, taken := l.usernames[key]; taken {
			return core.ErrUsernameTaken
		}
		delete(l.usernames, strings.ToLower(current.Username))
		l.usernames[key] = u.ID
	}

	stored := *u
	l.users[u.ID] = &stored
	return nil
}

func (l *Ledger) DeleteUser(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, exists := l.users[id]
	if !exists {
		return core.ErrUserNotFound
	}

	delete(l.users, id)
	delete(l.usernames, strings.ToLower(u.Username))
	delete(l.txs, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// --- TransactionStorage ---

func (l *Ledger) ApplyTransaction(userID string, tx *core.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, exists := l.users[userID]
	if !exists {
		return core.ErrUserNotFound
	}

	stored := *tx
	stored.UserID = userID

	switch tx.Type {
	case core.TransactionCredit:
		user.Balance += tx.Amount
	case core.TransactionDebit:
		user.Balance -= tx.Amount
	}

	// prepend: the log reads newest first
	l.txs[userID] = append([]*core.Transaction{&stored}, l.txs[userID]...)
	return nil
}

func (l *Ledger) UserTransactions(userID string) ([]*core.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, exists := l.users[userID]; !exists {
		return nil, core.ErrUserNotFound
	}

	entries := l.txs[userID]
	out := make([]*core.Transaction, len(entries))
	for i, tx := range entries {
		c := *tx
		out[i] = &c
	}
	return out, nil
}

// --- SessionStorage ---

func (l *Ledger) CreateSession(session *core.Session) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored := *session
	l.sessions[session.TokenHash] = &stored
	return nil
}

func (l *Ledger) GetSessionByHash(tokenHash string) (*core.Session, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	c := *s
	return &c, nil
}

func (l *Ledger) DeleteSessionByHash(tokenHash string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sessions[tokenHash]; !ok {
		return core.ErrSessionNotFound
	}
	delete(l.sessions, tokenHash)
	return nil
}

func (l *Ledger) DeleteUserSessions(userID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for hash, s := range l.sessions {
		if s.UserID == userID {
			delete(l.sessions, hash)
			count++
		}
	}
	return count, nil
}

// userCopy returns a detached copy; callers must hold at least a read lock.
func (l *Ledger) userCopy(id string) (*core.User, error) {
	u, exists := l.users[id]
	if !exists {
		return nil, core.ErrUserNotFound
	}
	c := *u
	return &c, nil
}
