package sandbank

import (
	"fmt"
	"time"

	"github.com/lborres/sandbank/core"
	"github.com/lborres/sandbank/pkg/crypto"
)

type seedUser struct {
	username string
	email    string
	password string
	role     core.Role
	balance  int64 // cents
}

// The demo accounts from the original application.
var demoUsers = []seedUser{
	{username: "admin", email: "admin@securebank.com", password: "admin", role: core.RoleAdmin, balance: 5000000},
	{username: "john_doe", email: "john@email.com", password: "password", role: core.RoleUser, balance: 250000},
	{username: "jane_smith", email: "jane@email.com", password: "password", role: core.RoleUser, balance: 175050},
}

// SeedDemoUsers loads the demo accounts into the ledger. Already-taken
// usernames are skipped, so seeding is idempotent.
func (s *Sandbank) SeedDemoUsers() error {
	ids := crypto.NewNanoID()

	for _, seed := range demoUsers {
		credential, err := s.hasher.Hash(seed.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed credential: %w", err)
		}

		id, err := ids.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate ID: %w", err)
		}

		now := time.Now()
		err = s.Storage.CreateUser(&core.User{
			ID:         id,
			Username:   seed.username,
			Email:      seed.email,
			Credential: credential,
			Role:       seed.role,
			Balance:    seed.balance,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil && err != core.ErrUsernameTaken {
			return fmt.Errorf("failed to seed user %q: %w", seed.username, err)
		}
	}

	return nil
}
