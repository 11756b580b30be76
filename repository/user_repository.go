package repository

import (
	"context"
	"database/sql"
	"time"

	"OpenMusic/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByID returns the user with the given id, or nil if absent.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// GetUserByUsername returns the user with the given username, or nil if absent.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// MySQLUserRepository is the MySQL implementation of UserRepository.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL user repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// CreateUser inserts a new user.
func (r *MySQLUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, fullname, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Fullname,
		user.Email,
		now,
		now,
	)
	return err
}

// GetUserByID returns the user with the given id, or nil if absent.
func (r *MySQLUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, fullname, email, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername returns the user with the given username, or nil if absent.
func (r *MySQLUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, fullname, email, created_at, updated_at
		FROM users
		WHERE username = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Fullname,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
