package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/sandbank/core"
)

const userColumns = `id, username, email, credential, role, balance, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Credential,
		&user.Role, &user.Balance, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) CreateUser(user *core.User) error {
	ctx := context.Background()

	q := `INSERT INTO public.users (id, username, email, credential, role, balance, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := a.pool.Exec(ctx, q, user.ID, user.Username, user.Email, user.Credential,
		user.Role, user.Balance, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`

	return scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByUsername(username string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT ` + userColumns + ` FROM public.users WHERE lower(username) = lower($1)`

	return scanUser(a.pool.QueryRow(ctx, q, username))
}

func (a *Adapter) ListUsers() ([]*core.User, error) {
	ctx := context.Background()
	q := `SELECT ` + userColumns + ` FROM public.users ORDER BY created_at, id`

	rows, err := a.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*core.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (a *Adapter) UpdateUser(user *core.User) error {
	ctx := context.Background()
	q := `UPDATE public.users SET username = $1, email = $2, credential = $3, role = $4,
	      balance = $5, updated_at = $6 WHERE id = $7`

	tag, err := a.pool.Exec(ctx, q, user.Username, user.Email, user.Credential,
		user.Role, user.Balance, user.UpdatedAt, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUsernameTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (a *Adapter) DeleteUser(id string) error {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
