// Package pgx persists the ledger in PostgreSQL. The engine itself never
// requires a database; this adapter exists for deployments that want the
// sandbox state to outlive the process.
//
// Expected schema:
//
//	CREATE TABLE public.users (
//	    id         text PRIMARY KEY,
//	    username   text NOT NULL,
//	    email      text NOT NULL DEFAULT '',
//	    credential text NOT NULL DEFAULT '',
//	    role       text NOT NULL DEFAULT 'user',
//	    balance    bigint NOT NULL DEFAULT 0,
//	    created_at timestamptz NOT NULL,
//	    updated_at timestamptz NOT NULL
//	);
//	CREATE UNIQUE INDEX users_username_key ON public.users (lower(username));
//
//	CREATE TABLE public.sessions (
//	    id         text PRIMARY KEY,
//	    user_id    text NOT NULL REFERENCES public.users (id) ON DELETE CASCADE,
//	    token_hash text NOT NULL UNIQUE,
//	    issued_at  timestamptz NOT NULL,
//	    expires_at timestamptz NOT NULL
//	);
//
//	CREATE TABLE public.transactions (
//	    id           text PRIMARY KEY,
//	    user_id      text NOT NULL REFERENCES public.users (id) ON DELETE CASCADE,
//	    type         text NOT NULL,
//	    amount       bigint NOT NULL,
//	    description  text NOT NULL DEFAULT '',
//	    counterparty text NOT NULL DEFAULT '',
//	    ts           timestamptz NOT NULL
//	);
package pgx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/sandbank/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.LedgerStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
