package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an investigator account. Authentication only; authorization is
// flat, every active user may run analyses.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	Organization string    `json:"organization" db:"organization"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (db *DB) CreateUser(ctx context.Context, user *User) error {
	query := `
        INSERT INTO users (id, email, full_name, organization, password_hash, is_active, created_at)
        VALUES (:id, :email, :full_name, :organization, :password_hash, :is_active, :created_at)`
	_, err := db.NamedExecContext(ctx, query, user)
	return err
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE email = $1`
	if err := db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := db.GetContext(ctx, &exists, query, email)
	return exists, err
}
