package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

type RegistrationService struct {
	repo ports.RegistrationRepository
	now  func() time.Time
}

var _ ports.RegistrationWorkflow = (*RegistrationService)(nil)

func NewRegistrationService(repo ports.RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
		now:  time.Now,
	}
}

// Submit validates and persists a new registration. The status is always
// pending and the registration date is always the server clock, no matter
// what the caller supplied. A duplicate email or national ID yields a
// ConflictError naming the colliding field(s); if two submissions race past
// the pre-check, the repository translates the unique-index violation into
// the same error.
func (s *RegistrationService) Submit(ctx context.Context, sub domain.Submission) (*domain.Registration, error) {
	if missing := sub.MissingFields(); len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	emailTaken, nationalIDTaken, err := s.repo.FindCollisions(ctx, sub.Email, sub.NationalID)
	if err != nil {
		return nil, err
	}
	if emailTaken || nationalIDTaken {
		return nil, &domain.ConflictError{Email: emailTaken, NationalID: nationalIDTaken}
	}

	reg := domain.Registration{
		ID:               uuid.NewString(),
		FullName:         sub.FullName,
		FatherName:       sub.FatherName,
		MotherName:       sub.MotherName,
		DOB:              sub.DOB,
		Gender:           sub.Gender,
		Phone:            sub.Phone,
		NationalID:       sub.NationalID,
		Email:            sub.Email,
		ProfileImage:     sub.ProfileImage,
		IDDocumentImage:  sub.IDDocumentImage,
		Region:           sub.Region,
		State:            sub.State,
		District:         sub.District,
		Status:           domain.StatusPending,
		RegistrationDate: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Lookup finds a registration by national ID for public status checks.
// Callers must project the result down to id, name and status.
func (s *RegistrationService) Lookup(ctx context.Context, nationalID string) (*domain.Registration, error) {
	if nationalID == "" {
		return nil, &domain.ValidationError{Reason: "National ID number is required"}
	}
	return s.repo.FindByNationalID(ctx, nationalID)
}

func (s *RegistrationService) Detail(ctx context.Context, id string) (*domain.Registration, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Transition moves a registration to the given status. Any status may move
// to any other; a transition to the current status is an accepted no-op.
func (s *RegistrationService) Transition(ctx context.Context, id string, status domain.Status) (*domain.Registration, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{
			Reason: "Invalid status value. Must be one of: pending, approved, rejected",
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Update applies a field-level merge onto a registration. The identity and
// registration date can never be changed; a status value, if present, must be
// a valid status.
func (s *RegistrationService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Registration, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	delete(fields, "id")
	delete(fields, "registration_date")
	if len(fields) == 0 {
		return nil, &domain.ValidationError{Reason: "No updatable fields provided"}
	}
	if v, ok := fields["status"]; ok {
		str, _ := v.(string)
		if !domain.Status(str).Valid() {
			return nil, &domain.ValidationError{
				Reason: "Invalid status value. Must be one of: pending, approved, rejected",
			}
		}
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
