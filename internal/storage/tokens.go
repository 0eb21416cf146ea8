package storage

import (
	"context"
	"database/sql"
	"errors"
)

// TokensRepository stores one auth token per user.
type TokensRepository interface {
	GetOrCreate(ctx context.Context, userID int64, newKey string) (string, error)
	GetUserID(ctx context.Context, key string) (int64, error)
}

type tokensRepository struct {
	db *sql.DB
}

func NewTokensRepository(db *sql.DB) TokensRepository {
	return &tokensRepository{db: db}
}

// GetOrCreate returns the user's existing key, or stores newKey if the user has none.
func (r *tokensRepository) GetOrCreate(ctx context.Context, userID int64, newKey string) (string, error) {
	var key string
	// The no-op update makes RETURNING yield the existing row on conflict.
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key
	`, newKey, userID).Scan(&key)
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetUserID resolves a token key to its owner.
func (r *tokensRepository) GetUserID(ctx context.Context, key string) (int64, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM auth_tokens WHERE key = $1`, key).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}
