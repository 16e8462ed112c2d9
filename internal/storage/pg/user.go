package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
)

type userRow struct {
	Id           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Admin        bool      `db:"admin"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{Id: r.Id, Name: r.Name, Email: r.Email, Admin: r.Admin, CreatedAt: r.CreatedAt}
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User, passwordHash string) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRowxContext(ctx, `
        INSERT INTO users (name, email, password_hash, admin)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, user.Name, user.Email, passwordHash, user.Admin).Scan(&id)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return 0, internal_errors.Conflict("User with this name or email already exists")
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// UserByEmail returns the user with its bcrypt password hash.
func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, string, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
        SELECT id, name, email, password_hash, admin, created_at
        FROM users
        WHERE email = $1
    `, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, "", internal_errors.NotFound("User not found")
		}
		return domain.User{}, "", fmt.Errorf("failed to fetch user: %w", err)
	}
	return row.toDomain(), row.PasswordHash, nil
}
