package repository

import (
	"context"
	"fmt"

	"autocare/internal/db"
)

const userColumns = `id, name, email, phone, password_hash, created_at, updated_at`

func (s *PostgresStore) CreateUser(ctx context.Context, u *db.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", translateErr(err))
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u *db.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.Phone, u.PasswordHash, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error updating user: %w", translateErr(err))
	}
	return requireRow(result)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u db.User
	err := s.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u db.User
	err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}
