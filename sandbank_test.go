package sandbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	sb, err := New(Config{})
	require.NoError(t, err)

	assert.True(t, sb.Profile.SQLInjectionProtection, "zero config should default to the hardened profile")
	assert.True(t, sb.Profile.AccessControlEnforced)
	assert.NotNil(t, sb.Storage)

	// Hardened password policy applies immediately.
	_, err = sb.Register(RegisterInput{Username: "bob", Password: "abc", ConfirmPassword: "abc"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSeedDemoUsers(t *testing.T) {
	sb, err := New(Config{Profile: VulnerableProfile()})
	require.NoError(t, err)

	require.NoError(t, sb.SeedDemoUsers())
	require.NoError(t, sb.SeedDemoUsers(), "seeding must be idempotent")

	users, err := sb.Storage.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3)

	// Plaintext flag: the demo credential is stored verbatim.
	admin, err := sb.Storage.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, "admin", admin.Credential)

	result, err := sb.Login("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, result.User.ID)
}

func TestSeedDemoUsers_HardenedCredentials(t *testing.T) {
	sb, err := New(Config{Profile: HardenedProfile()})
	require.NoError(t, err)
	require.NoError(t, sb.SeedDemoUsers())

	admin, err := sb.Storage.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin", admin.Credential, "hardened seeding must hash the demo password")

	// The demo login still works through the hash.
	_, err = sb.Login("john_doe", "password")
	assert.NoError(t, err)
}

func TestSandbank_VulnerableWalkthrough(t *testing.T) {
	sb, err := New(Config{Profile: VulnerableProfile()})
	require.NoError(t, err)
	require.NoError(t, sb.SeedDemoUsers())

	// Injection login as the seeded admin, wrong password.
	result, err := sb.Login("admin' OR '1'='1' --", "anything")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, result.User.Role)

	// The stolen session drives admin operations.
	report, err := sb.RunRawQuery(result.Token, "DROP TABLE users")
	require.NoError(t, err)
	assert.True(t, report.Result.Destructive)
	assert.Equal(t, 3, report.RowsAffected)

	users, err := sb.Storage.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3, "reported destruction never mutates the ledger")

	// Money still moves normally.
	pair, err := sb.Transfer(result.Token, "john_doe", 10000, "payout")
	require.NoError(t, err)
	require.NotNil(t, pair.Credit)

	john, err := sb.Storage.GetUserByUsername("john_doe")
	require.NoError(t, err)
	assert.Equal(t, int64(260000), john.Balance)

	txs, err := sb.Transactions(result.Token)
	require.NoError(t, err)
	require.NotEmpty(t, txs)
	assert.Equal(t, "john_doe", txs[0].Counterparty)
}

func TestSandbank_HardenedBlocksTheSameWalkthrough(t *testing.T) {
	sb, err := New(Config{Profile: HardenedProfile()})
	require.NoError(t, err)
	require.NoError(t, sb.SeedDemoUsers())

	_, err = sb.Login("admin' OR '1'='1' --", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A legitimate non-admin session cannot reach admin surface.
	result, err := sb.Login("john_doe", "password")
	require.NoError(t, err)

	_, err = sb.RunRawQuery(result.Token, "SELECT * FROM users")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSandbank_LogoutAndSessionLifecycle(t *testing.T) {
	sb, err := New(Config{Profile: VulnerableProfile()})
	require.NoError(t, err)
	require.NoError(t, sb.SeedDemoUsers())

	result, err := sb.Login("jane_smith", "password")
	require.NoError(t, err)

	data, err := sb.GetSession(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane_smith", data.User.Username)

	require.NoError(t, sb.Logout(result.Token))
	_, err = sb.GetSession(result.Token)
	assert.Error(t, err)
}

func TestSandbank_ListVulnerabilities(t *testing.T) {
	sb, err := New(Config{})
	require.NoError(t, err)

	records := sb.ListVulnerabilities()
	assert.Len(t, records, 7)

	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		ids[rec.ID] = true
	}
	for _, want := range []string{"A01", "A02", "A03", "A07", "A08"} {
		assert.True(t, ids[want], "missing catalog entry %s", want)
	}
}
