package services

import (
	"context"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	recentCount     = 5
)

// ReportingService is a read-only consumer of the registrant store. It never
// mutates state and returns only minimal projections.
type ReportingService struct {
	repo ports.RegistrationRepository
}

var _ ports.Reporting = (*ReportingService)(nil)

func NewReportingService(repo ports.RegistrationRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

// List returns one stable page ordered by registration date descending.
// An unknown status filter is ignored rather than rejected.
func (s *ReportingService) List(ctx context.Context, page, limit int, statusFilter string) (*domain.RegistrationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var status domain.Status
	if domain.Status(statusFilter).Valid() {
		status = domain.Status(statusFilter)
	}

	players, total, err := s.repo.List(ctx, (page-1)*limit, limit, status)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []domain.RegistrationSummary{}
	}

	return &domain.RegistrationPage{
		Players:    players,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *ReportingService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, recentCount)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.RegistrationSummary{}
	}

	return &domain.DashboardStats{
		TotalPlayers:        counts.Total,
		PendingPlayers:      counts.Pending,
		ApprovedPlayers:     counts.Approved,
		RejectedPlayers:     counts.Rejected,
		RecentRegistrations: recent,
	}, nil
}
