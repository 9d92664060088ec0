package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/blog-auth-api/internal/model"
)

// TokenRepo persists single-use email tokens (verification and reset).
// A record exists from the moment a flow starts until it is consumed;
// deletion on consumption is what prevents replay.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a token row for the given email.
func (r *TokenRepo) Store(ctx context.Context, email, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tokens (email, token) VALUES (?,?)",
		email, token)
	return err
}

// FindByToken returns the record for an opaque token value.
// sql.ErrNoRows means the token was never issued or already consumed.
func (r *TokenRepo) FindByToken(ctx context.Context, token string) (model.Token, error) {
	var t model.Token
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, token, created_at FROM tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.Email, &t.Token, &t.CreatedAt)
	return t, err
}

// DeleteByToken consumes a token record.  Deleting an already-deleted
// token reports sql.ErrNoRows, which callers treat as an invalid token.
func (r *TokenRepo) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tokens WHERE token=?", token)
	if err != nil {
		return err
	}
	return oneRow(res)
}
