package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/sandbank/core"
)

func (a *Adapter) CreateSession(session *core.Session) error {
	ctx := context.Background()

	q := `INSERT INTO public.sessions (id, user_id, token_hash, issued_at, expires_at)
	      VALUES ($1, $2, $3, $4, $5)`

	_, err := a.pool.Exec(ctx, q, session.ID, session.UserID, session.TokenHash,
		session.IssuedAt, session.ExpiresAt)
	return err
}

func (a *Adapter) GetSessionByHash(tokenHash string) (*core.Session, error) {
	ctx := context.Background()
	q := `SELECT id, user_id, token_hash, issued_at, expires_at FROM public.sessions WHERE token_hash = $1`

	session := &core.Session{}
	err := a.pool.QueryRow(ctx, q, tokenHash).Scan(&session.ID, &session.UserID,
		&session.TokenHash, &session.IssuedAt, &session.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (a *Adapter) DeleteSessionByHash(tokenHash string) error {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteUserSessions(userID string) (int, error) {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
