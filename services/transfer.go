package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lborres/sandbank/core"
)

// TransferService moves funds between accounts. It is the only engine with a
// real ordering hazard: the read-check-write sequence on the sender's
// balance. With raceConditionSafe on, that sequence is serialized per sender
// account; with it off, the three steps run unserialized and concurrent
// transfers can each pass the sufficiency check against the same stale
// balance (a double-spend). Individual ledger mutations stay atomic either
// way.
type TransferService struct {
	store    core.LedgerStorage
	profile  *core.Profile
	access   *AccessService
	mu       sync.Mutex
	accounts map[string]*sync.Mutex

	// afterBalanceRead, when set, runs between the balance read and the
	// sufficiency check. Tests use it to hold transfers inside the race
	// window deterministically.
	afterBalanceRead func()
}

func NewTransferService(store core.LedgerStorage, profile *core.Profile, access *AccessService) *TransferService {
	return &TransferService{
		store:    store,
		profile:  profile,
		access:   access,
		accounts: make(map[string]*sync.Mutex),
	}
}

// Transfer debits the session's user and, when the recipient resolves to a
// known account, credits it. Amount is in cents. An unknown recipient name
// is treated as an external counterparty: debit only, nil credit.
func (s *TransferService) Transfer(token, recipient string, amount int64, description string) (*core.TransactionPair, error) {
	if amount <= 0 {
		return nil, core.ErrInvalidAmount
	}

	data, err := s.access.Resolve(token)
	if err != nil {
		return nil, err
	}
	sender := data.User

	if recipient == "" {
		return nil, core.ErrUnknownRecipient
	}

	description = core.SanitizeText(description, s.profile)
	if description == "" {
		description = "Money Transfer"
	}

	if s.profile.RaceConditionSafe {
		lock := s.accountLock(sender.ID)
		lock.Lock()
		defer lock.Unlock()
	}

	// read
	current, err := s.store.GetUserByID(sender.ID)
	if err != nil {
		return nil, core.ErrUnknownSession
	}

	if s.afterBalanceRead != nil {
		s.afterBalanceRead()
	}

	// check
	if current.Balance < amount {
		return nil, core.ErrInsufficientFunds
	}

	// write
	now := time.Now()
	debit := &core.Transaction{
		ID:           uuid.NewString(),
		UserID:       sender.ID,
		Type:         core.TransactionDebit,
		Amount:       amount,
		Description:  description,
		Counterparty: recipient,
		Timestamp:    now,
	}
	if err := s.store.ApplyTransaction(sender.ID, debit); err != nil {
		return nil, err
	}

	pair := &core.TransactionPair{Debit: debit}

	if receiver, err := s.store.GetUserByUsername(recipient); err == nil {
		credit := &core.Transaction{
			ID:           uuid.NewString(),
			UserID:       receiver.ID,
			Type:         core.TransactionCredit,
			Amount:       amount,
			Description:  description,
			Counterparty: sender.Username,
			Timestamp:    now,
		}
		if err := s.store.ApplyTransaction(receiver.ID, credit); err != nil {
			return nil, err
		}
		pair.Credit = credit
	}

	return pair, nil
}

// Transactions returns the caller's ledger entries, newest first.
func (s *TransferService) Transactions(token string) ([]*core.Transaction, error) {
	data, err := s.access.Resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.UserTransactions(data.User.ID)
}

func (s *TransferService) accountLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.accounts[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.accounts[userID] = lock
	}
	return lock
}
