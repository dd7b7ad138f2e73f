package ports

import (
	"context"
	"time"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration) error
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Registration, error)
	// FindCollisions reports whether any existing registration already uses
	// the given email or national ID.
	FindCollisions(ctx context.Context, email, nationalID string) (emailTaken, nationalIDTaken bool, err error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Registration, error)
	// UpdateFields merges the given column/value pairs onto a registration.
	// Unknown columns are ignored; identity and registration date are never
	// updatable.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Registration, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of summaries ordered by registration date
	// descending, plus the total matching count. An empty status means no
	// filter.
	List(ctx context.Context, offset, limit int, status domain.Status) ([]domain.RegistrationSummary, int, error)
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)
	Recent(ctx context.Context, n int) ([]domain.RegistrationSummary, error)
}

type StaffRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.StaffAccount, error)
	Create(ctx context.Context, account domain.StaffAccount) error
	Count(ctx context.Context) (int, error)
}

// SessionDenylist records revoked session IDs until their tokens expire.
type SessionDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
