package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// UserDB is the SQLite-backed credential store.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// GetByEmail looks up a user by email. sql.ErrNoRows is translated to the
// domain's not-found error so callers never see database sentinels.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &user, nil
}

// Create inserts a new user. The PRIMARY KEY on email turns a duplicate
// registration into a constraint violation, which surfaces as ErrConflict.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateUser()
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE/PRIMARY KEY constraint
// failure. modernc.org/sqlite doesn't export a typed error for this, so we
// match on the SQLite error text ("UNIQUE constraint failed: ...").
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
