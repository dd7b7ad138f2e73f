package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

const playerColumns = `id, full_name, father_name, mother_name, dob, gender, phone,
	national_id, email, profile_image, id_document_image, region, state, district,
	status, registration_date`

// Columns staff may touch through the partial-update operation.
var updatablePlayerColumns = map[string]bool{
	"full_name":         true,
	"father_name":       true,
	"mother_name":       true,
	"dob":               true,
	"gender":            true,
	"phone":             true,
	"national_id":       true,
	"email":             true,
	"profile_image":     true,
	"id_document_image": true,
	"region":            true,
	"state":             true,
	"district":          true,
	"status":            true,
}

type PlayerRepository struct {
	db *sql.DB
}

var _ ports.RegistrationRepository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, reg domain.Registration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		reg.ID,
		reg.FullName,
		reg.FatherName,
		reg.MotherName,
		reg.DOB,
		reg.Gender,
		reg.Phone,
		reg.NationalID,
		reg.Email,
		reg.ProfileImage,
		reg.IDDocumentImage,
		reg.Region,
		reg.State,
		reg.District,
		reg.Status,
		reg.RegistrationDate,
	)
	return translateError(err)
}

func (r *PlayerRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *PlayerRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE national_id = $1`, nationalID)
	return scanPlayer(row)
}

func (r *PlayerRepository) FindCollisions(ctx context.Context, email, nationalID string) (bool, bool, error) {
	var emailTaken, nationalIDTaken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT
			EXISTS (SELECT 1 FROM players WHERE email = $1),
			EXISTS (SELECT 1 FROM players WHERE national_id = $2)`,
		email, nationalID,
	).Scan(&emailTaken, &nationalIDTaken)
	if err != nil {
		return false, false, err
	}
	return emailTaken, nationalIDTaken, nil
}

func (r *PlayerRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE players SET status = $1 WHERE id = $2 RETURNING `+playerColumns,
		status, id)
	return scanPlayer(row)
}

func (r *PlayerRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Registration, error) {
	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for col, value := range fields {
		if !updatablePlayerColumns[col] {
			continue
		}
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(set) == 0 {
		return nil, &domain.ValidationError{Reason: "No updatable fields provided"}
	}
	args = append(args, id)

	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("UPDATE players SET %s WHERE id = $%d RETURNING %s",
			strings.Join(set, ", "), len(args), playerColumns),
		args...)
	return scanPlayer(row)
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlayerRepository) List(ctx context.Context, offset, limit int, status domain.Status) ([]domain.RegistrationSummary, int, error) {
	where := ""
	args := []any{limit, offset}
	countArgs := []any{}
	if status != "" {
		where = " WHERE status = $3"
		args = append(args, status)
		countArgs = append(countArgs, status)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, email, phone, region, state, district, status, registration_date
		 FROM players`+where+`
		 ORDER BY registration_date DESC
		 LIMIT $1 OFFSET $2`,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []domain.RegistrationSummary
	for rows.Next() {
		var s domain.RegistrationSummary
		var region, state, district string
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Phone,
			&region, &state, &district, &s.Status, &s.RegistrationDate); err != nil {
			return nil, 0, err
		}
		s.Location = fmt.Sprintf("%s, %s, %s", district, state, region)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countWhere := ""
	if status != "" {
		countWhere = " WHERE status = $1"
	}
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM players`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *PlayerRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM players GROUP BY status`)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	defer rows.Close()

	var counts domain.StatusCounts
	for rows.Next() {
		var status domain.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return domain.StatusCounts{}, err
		}
		switch status {
		case domain.StatusPending:
			counts.Pending = n
		case domain.StatusApproved:
			counts.Approved = n
		case domain.StatusRejected:
			counts.Rejected = n
		}
		counts.Total += n
	}
	return counts, rows.Err()
}

func (r *PlayerRepository) Recent(ctx context.Context, n int) ([]domain.RegistrationSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, email, status, registration_date
		 FROM players
		 ORDER BY registration_date DESC
		 LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.RegistrationSummary
	for rows.Next() {
		var s domain.RegistrationSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Status, &s.RegistrationDate); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func scanPlayer(row *sql.Row) (*domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID,
		&reg.FullName,
		&reg.FatherName,
		&reg.MotherName,
		&reg.DOB,
		&reg.Gender,
		&reg.Phone,
		&reg.NationalID,
		&reg.Email,
		&reg.ProfileImage,
		&reg.IDDocumentImage,
		&reg.Region,
		&reg.State,
		&reg.District,
		&reg.Status,
		&reg.RegistrationDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &reg, nil
}

// translateError maps low-level Postgres constraint violations onto the
// domain taxonomy so a lost race at insert time reports the same Conflict as
// the application pre-check.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23505": // unique_violation
		switch pqErr.Constraint {
		case "players_email_key":
			return &domain.ConflictError{Email: true}
		case "players_national_id_key":
			return &domain.ConflictError{NationalID: true}
		case "staff_accounts_username_key":
			return &domain.ConflictError{Field: "username"}
		case "staff_accounts_email_key":
			return &domain.ConflictError{Field: "email"}
		}
	case "23514": // check_violation
		return &domain.ValidationError{
			Reason: "Invalid status value. Must be one of: pending, approved, rejected",
		}
	}
	return err
}
