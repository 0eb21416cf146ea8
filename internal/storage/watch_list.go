package storage

import (
	"context"
	"database/sql"
	"errors"

	pq "github.com/lib/pq"
)

// WatchListRepository reads and replaces a user's watch list symbols.
type WatchListRepository interface {
	GetSymbols(ctx context.Context, userID int64) ([]string, error)
	ReplaceSymbols(ctx context.Context, userID int64, symbols []string) error
}

type watchListRepository struct {
	db *sql.DB
}

func NewWatchListRepository(db *sql.DB) WatchListRepository {
	return &watchListRepository{db: db}
}

func (r *watchListRepository) GetSymbols(ctx context.Context, userID int64) ([]string, error) {
	var symbols []string
	err := r.db.QueryRowContext(ctx, `SELECT symbols FROM watch_lists WHERE user_id = $1`, userID).
		Scan(pq.Array(&symbols))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if symbols == nil {
		symbols = []string{}
	}
	return symbols, nil
}

// ReplaceSymbols overwrites the stored list with symbols; nothing is merged.
// Concurrent calls for the same user are not serialized: the last UPDATE wins.
func (r *watchListRepository) ReplaceSymbols(ctx context.Context, userID int64, symbols []string) error {
	if symbols == nil {
		symbols = []string{}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE watch_lists
		SET symbols = $2, updated_at = NOW()
		WHERE user_id = $1
	`, userID, pq.Array(symbols))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
