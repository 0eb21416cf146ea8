package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
)

// UsersRepository defines contract for user account persistence.
type UsersRepository interface {
	CreateWithWatchList(ctx context.Context, user *models.User) (*models.User, error)
	TakenFields(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type usersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) UsersRepository {
	return &usersRepository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, created_at`

// CreateWithWatchList inserts the user and its empty watch list in one transaction,
// so a user never exists without a watch list.
func (r *usersRepository) CreateWithWatchList(ctx context.Context, user *models.User) (*models.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := *user
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", user.Username, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert user %q: %w", user.Username, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO watch_lists (user_id) VALUES ($1)`, out.ID); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("create watch list for user %d: %w", out.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// TakenFields reports which of username/email already belong to an account.
func (r *usersRepository) TakenFields(ctx context.Context, username, email string) (bool, bool, error) {
	var usernameTaken, emailTaken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE username = $1),
			EXISTS(SELECT 1 FROM users WHERE email = $2)
	`, username, email).Scan(&usernameTaken, &emailTaken)
	if err != nil {
		return false, false, err
	}
	return usernameTaken, emailTaken, nil
}

func (r *usersRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *usersRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Delete removes the user; the watch list and token go with it (ON DELETE CASCADE).
func (r *usersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
