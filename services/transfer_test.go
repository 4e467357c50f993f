package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborres/sandbank/core"
)

func TestTransferService_Validation(t *testing.T) {
	env := newTestEnv(t, core.Vulnerable())
	_, token := env.addUser(t, "alice", "pass", core.RoleUser, 10000)

	t.Run("zero amount", func(t *testing.T) {
		_, err := env.transfers.Transfer(token, "bob", 0, "")
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := env.transfers.Transfer(token, "bob", -500, "")
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
	})

	t.Run("empty recipient", func(t *testing.T) {
		_, err := env.transfers.Transfer(token, "", 500, "")
		assert.ErrorIs(t, err, core.ErrUnknownRecipient)
	})

	t.Run("invalid session", func(t *testing.T) {
		_, err := env.transfers.Transfer("garbage", "bob", 500, "")
		assert.ErrorIs(t, err, core.ErrUnknownSession)
	})
}

func TestTransferService_KnownRecipient(t *testing.T) {
	env := newTestEnv(t, core.Hardened())
	alice, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)
	bob, _ := env.addUser(t, "bob", "bobpass", core.RoleUser, 2000)

	pair, err := env.transfers.Transfer(token, "bob", 3000, "rent")
	require.NoError(t, err)

	require.NotNil(t, pair.Debit)
	assert.Equal(t, core.TransactionDebit, pair.Debit.Type)
	assert.Equal(t, int64(3000), pair.Debit.Amount)
	assert.Equal(t, "bob", pair.Debit.Counterparty)

	require.NotNil(t, pair.Credit)
	assert.Equal(t, core.TransactionCredit, pair.Credit.Type)
	assert.Equal(t, "alice", pair.Credit.Counterparty)

	assert.Equal(t, int64(7000), env.balance(t, alice.ID))
	assert.Equal(t, int64(5000), env.balance(t, bob.ID))
}

func TestTransferService_ExternalRecipient(t *testing.T) {
	env := newTestEnv(t, core.Hardened())
	alice, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

	pair, err := env.transfers.Transfer(token, "acme-utilities", 3000, "")
	require.NoError(t, err)

	require.NotNil(t, pair.Debit)
	assert.Nil(t, pair.Credit, "an unknown recipient gets no credit entry")
	assert.Equal(t, "Money Transfer", pair.Debit.Description)
	assert.Equal(t, int64(7000), env.balance(t, alice.ID))
}

func TestTransferService_InsufficientFunds(t *testing.T) {
	env := newTestEnv(t, core.Hardened())
	alice, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 1000)

	_, err := env.transfers.Transfer(token, "bob", 5000, "")
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)

	assert.Equal(t, int64(1000), env.balance(t, alice.ID), "a rejected transfer must not move money")
	txs, err := env.store.UserTransactions(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransferService_DescriptionSanitization(t *testing.T) {
	payload := "<img src=x onerror=alert(1)>"

	t.Run("escaped when protection on", func(t *testing.T) {
		env := newTestEnv(t, core.Hardened())
		_, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

		pair, err := env.transfers.Transfer(token, "anyone", 100, payload)
		require.NoError(t, err)
		assert.NotContains(t, pair.Debit.Description, "<img")
	})

	t.Run("raw when protection off", func(t *testing.T) {
		env := newTestEnv(t, core.Vulnerable())
		_, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

		pair, err := env.transfers.Transfer(token, "anyone", 100, payload)
		require.NoError(t, err)
		assert.Equal(t, payload, pair.Debit.Description)
	})
}

// Both transfers are held inside the read-check-write window until each has
// read the same pre-transfer balance. Without serialization both pass the
// sufficiency check and both debits land.
func TestTransferService_RaceWindow_Unprotected(t *testing.T) {
	env := newTestEnv(t, core.Vulnerable())
	alice, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

	var barrier sync.WaitGroup
	barrier.Add(2)
	env.transfers.afterBalanceRead = func() {
		barrier.Done()
		barrier.Wait()
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.transfers.Transfer(token, "payee", 8000, "")
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(-6000), env.balance(t, alice.ID),
		"double spend should drive the balance negative")
}

func TestTransferService_RaceWindow_Protected(t *testing.T) {
	env := newTestEnv(t, core.Hardened())
	alice, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.transfers.Transfer(token, "payee", 8000, "")
		}()
	}
	wg.Wait()

	// Per-account serialization: exactly one transfer fits the balance.
	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, core.ErrInsufficientFunds)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, int64(2000), env.balance(t, alice.ID))
}

func TestTransferService_Transactions(t *testing.T) {
	env := newTestEnv(t, core.Hardened())
	_, token := env.addUser(t, "alice", "alicepass", core.RoleUser, 10000)

	_, err := env.transfers.Transfer(token, "first", 100, "one")
	require.NoError(t, err)
	_, err = env.transfers.Transfer(token, "second", 200, "two")
	require.NoError(t, err)

	txs, err := env.transfers.Transactions(token)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "second", txs[0].Counterparty, "listing should be newest first")
	assert.Equal(t, "first", txs[1].Counterparty)

	_, err = env.transfers.Transactions("garbage")
	assert.ErrorIs(t, err, core.ErrUnknownSession)
}
