package sqlite

import (
	"context"
	"fmt"

	"github.com/dinelink/dinelink/internal/models"
)

const userColumns = `id, phone, name, password_hash, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (q *queries) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := q.db.ExecContext(ctx, query,
		user.ID,
		user.Phone,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByPhone retrieves a user by their phone number.
func (q *queries) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return q.getUser(ctx, "phone", phone)
}

// GetUserByID retrieves a user by their ID.
func (q *queries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return q.getUser(ctx, "id", id)
}

func (q *queries) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`

	user := &models.User{}
	err := q.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Phone,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, notFound("user", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}
