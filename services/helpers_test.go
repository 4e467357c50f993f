package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lborres/sandbank/core"
	"github.com/lborres/sandbank/pkg/cache"
	"github.com/lborres/sandbank/pkg/crypto"
	"github.com/lborres/sandbank/pkg/memstore"
)

// testEnv wires the full service stack over one in-memory ledger, the same
// composition the root facade performs.
type testEnv struct {
	profile   *core.Profile
	store     *memstore.Ledger
	sessions  *SessionManager
	auth      *AuthService
	access    *AccessService
	transfers *TransferService
	admin     *AdminService
}

func newTestEnv(t *testing.T, profile *core.Profile) *testEnv {
	t.Helper()
	profile.Normalize()

	store := memstore.New()
	sessions := NewSessionManager(
		core.SessionConfig{MaxAge: time.Hour},
		store,
		cache.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 100}),
	)

	var hasher crypto.PasswordHandler = crypto.NewArgon2()
	if profile.PlaintextPasswords {
		hasher = crypto.NewPlaintext()
	}

	access := NewAccessService(store, profile, sessions)
	return &testEnv{
		profile:   profile,
		store:     store,
		sessions:  sessions,
		auth:      NewAuthService(store, profile, hasher, sessions),
		access:    access,
		transfers: NewTransferService(store, profile, access),
		admin:     NewAdminService(store, profile, access, sessions),
	}
}

// addUser creates an account directly in the ledger and returns it together
// with a live session token.
func (e *testEnv) addUser(t *testing.T, username, password string, role core.Role, balance int64) (*core.User, string) {
	t.Helper()

	var hasher crypto.PasswordHandler = crypto.NewArgon2()
	if e.profile.PlaintextPasswords {
		hasher = crypto.NewPlaintext()
	}
	credential, err := hasher.Hash(password)
	require.NoError(t, err)

	now := time.Now()
	user := &core.User{
		ID:         "id-" + username,
		Username:   username,
		Email:      username + "@example.com",
		Credential: credential,
		Role:       role,
		Balance:    balance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, e.store.CreateUser(user))

	result, err := e.sessions.Create(user.ID)
	require.NoError(t, err)

	return user, result.Token
}

func (e *testEnv) balance(t *testing.T, userID string) int64 {
	t.Helper()
	user, err := e.store.GetUserByID(userID)
	require.NoError(t, err)
	return user.Balance
}
