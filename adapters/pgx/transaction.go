package pgx

import (
	"context"
	"fmt"

	"github.com/lborres/sandbank/core"
)

// ApplyTransaction appends the ledger entry and adjusts the balance in one
// database transaction, matching the atomicity of the in-memory store.
func (a *Adapter) ApplyTransaction(userID string, tx *core.Transaction) error {
	ctx := context.Background()

	dbtx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbtx.Rollback(ctx)

	delta := tx.Amount
	if tx.Type == core.TransactionDebit {
		delta = -tx.Amount
	}

	tag, err := dbtx.Exec(ctx,
		`UPDATE public.users SET balance = balance + $1 WHERE id = $2`, delta, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}

	_, err = dbtx.Exec(ctx,
		`INSERT INTO public.transactions (id, user_id, type, amount, description, counterparty, ts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, userID, tx.Type, tx.Amount, tx.Description, tx.Counterparty, tx.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return dbtx.Commit(ctx)
}

func (a *Adapter) UserTransactions(userID string) ([]*core.Transaction, error) {
	ctx := context.Background()

	q := `SELECT id, user_id, type, amount, description, counterparty, ts
	      FROM public.transactions WHERE user_id = $1 ORDER BY ts DESC, id DESC`

	rows, err := a.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*core.Transaction
	for rows.Next() {
		tx := &core.Transaction{}
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount,
			&tx.Description, &tx.Counterparty, &tx.Timestamp)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
