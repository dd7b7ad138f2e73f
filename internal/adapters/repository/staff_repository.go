package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

type StaffRepository struct {
	db *sql.DB
}

var _ ports.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) FindByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	var account domain.StaffAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM staff_accounts WHERE username = $1`,
		username,
	).Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *StaffRepository) Create(ctx context.Context, account domain.StaffAccount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO staff_accounts (id, username, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
	)
	return translateError(err)
}

func (r *StaffRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_accounts`).Scan(&count)
	return count, err
}
