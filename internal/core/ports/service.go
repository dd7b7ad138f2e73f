package ports

import (
	"context"
	"time"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
)

// RegistrationWorkflow owns the lifecycle of a registration: creation with a
// forced pending status, guarded status transitions, staff corrections and
// removal. Role enforcement happens at the HTTP boundary; the same Detail
// operation backs both the staff view and the self-service profile view.
type RegistrationWorkflow interface {
	Submit(ctx context.Context, sub domain.Submission) (*domain.Registration, error)
	Lookup(ctx context.Context, nationalID string) (*domain.Registration, error)
	Detail(ctx context.Context, id string) (*domain.Registration, error)
	Transition(ctx context.Context, id string, status domain.Status) (*domain.Registration, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Registration, error)
	Delete(ctx context.Context, id string) error
}

type Reporting interface {
	List(ctx context.Context, page, limit int, statusFilter string) (*domain.RegistrationPage, error)
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.StaffAccount, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ProvisionAccount(ctx context.Context, setupKey, username, password, email string) (*domain.StaffAccount, error)
}
