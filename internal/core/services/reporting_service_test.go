package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/repository"
	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/services"
)

// seedRegistrations inserts n records with strictly increasing registration
// dates so ordering assertions are deterministic. Record i (1-based) is the
// i-th oldest.
func seedRegistrations(t *testing.T, repo *repository.MemoryPlayerRepository, n int, status domain.Status) []domain.Registration {
	t.Helper()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	regs := make([]domain.Registration, 0, n)
	for i := 1; i <= n; i++ {
		reg := domain.Registration{
			ID:               uuid.NewString(),
			FullName:         fmt.Sprintf("Player %02d", i),
			FatherName:       "Father",
			MotherName:       "Mother",
			DOB:              "2000-01-01",
			Gender:           "female",
			Phone:            fmt.Sprintf("90000000%02d", i),
			NationalID:       fmt.Sprintf("1000000000%02d", i),
			Email:            fmt.Sprintf("player%02d@example.com", i),
			ProfileImage:     "img",
			IDDocumentImage:  "img",
			Region:           "East",
			State:            "Assam",
			District:         "Kamrup",
			Status:           status,
			RegistrationDate: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), reg); err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
		regs = append(regs, reg)
	}
	return regs
}

func TestList_Pagination(t *testing.T) {
	repo := repository.NewMemoryPlayerRepository()
	service := services.NewReportingService(repo)
	seedRegistrations(t, repo, 25, domain.StatusPending)

	page, err := service.List(context.Background(), 2, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Total != 25 {
		t.Errorf("total = %d, want 25", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
	if page.Page != 2 || page.Limit != 10 {
		t.Errorf("page/limit echoed wrong: %d/%d", page.Page, page.Limit)
	}
	if len(page.Players) != 10 {
		t.Fatalf("expected 10 players, got %d", len(page.Players))
	}
	// Newest first: page 2 of 25 covers the 11th through 20th newest, which
	// are seeds 15 down to 6.
	if page.Players[0].FullName != "Player 15" {
		t.Errorf("first on page 2 = %q, want Player 15", page.Players[0].FullName)
	}
	if page.Players[9].FullName != "Player 06" {
		t.Errorf("last on page 2 = %q, want Player 06", page.Players[9].FullName)
	}
	for i := 1; i < len(page.Players); i++ {
		if page.Players[i].RegistrationDate.After(page.Players[i-1].RegistrationDate) {
			t.Errorf("page not ordered by registration date descending at %d", i)
		}
	}
}

func TestList_LastPageAndBeyond(t *testing.T) {
	repo := repository.NewMemoryPlayerRepository()
	service := services.NewReportingService(repo)
	seedRegistrations(t, repo, 25, domain.StatusPending)
	ctx := context.Background()

	last, err := service.List(ctx, 3, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(last.Players) != 5 {
		t.Errorf("expected 5 players on last page, got %d", len(last.Players))
	}

	beyond, err := service.List(ctx, 4, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beyond.Players) != 0 {
		t.Errorf("expected empty page beyond the end, got %d", len(beyond.Players))
	}
	if beyond.Players == nil {
		t.Error("players must serialize as an empty list, not null")
	}
}

func TestList_StatusFilter(t *testing.T) {
	repo := repository.NewMemoryPlayerRepository()
	service := services.NewReportingService(repo)
	ctx := context.Background()

	regs := seedRegistrations(t, repo, 6, domain.StatusPending)
	for _, reg := range regs[:2] {
		if _, err := repo.UpdateStatus(ctx, reg.ID, domain.StatusApproved); err != nil {
			t.Fatalf("seed status update failed: %v", err)
		}
	}

	approved, err := service.List(ctx, 1, 10, "approved")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Total != 2 || len(approved.Players) != 2 {
		t.Errorf("approved filter: total=%d len=%d, want 2/2", approved.Total, len(approved.Players))
	}

	// An unknown filter value is ignored, not rejected.
	all, err := service.List(ctx, 1, 10, "bogus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.Total != 6 {
		t.Errorf("bogus filter should be ignored, total=%d want 6", all.Total)
	}
}

func TestList_Defaults(t *testing.T) {
	repo := repository.NewMemoryPlayerRepository()
	service := services.NewReportingService(repo)
	seedRegistrations(t, repo, 12, domain.StatusPending)

	page, err := service.List(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Errorf("defaults not applied: page=%d limit=%d", page.Page, page.Limit)
	}
	if len(page.Players) != 10 {
		t.Errorf("expected 10 players with default limit, got %d", len(page.Players))
	}
}

func TestStats(t *testing.T) {
	repo := repository.NewMemoryPlayerRepository()
	service := services.NewReportingService(repo)
	ctx := context.Background()

	regs := seedRegistrations(t, repo, 10, domain.StatusPending)
	for _, reg := range regs[:3] {
		if _, err := repo.UpdateStatus(ctx, reg.ID, domain.StatusApproved); err != nil {
			t.Fatalf("seed status update failed: %v", err)
		}
	}
	for _, reg := range regs[3:5] {
		if _, err := repo.UpdateStatus(ctx, reg.ID, domain.StatusRejected); err != nil {
			t.Fatalf("seed status update failed: %v", err)
		}
	}

	stats, err := service.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalPlayers != 10 {
		t.Errorf("total = %d, want 10", stats.TotalPlayers)
	}
	if stats.PendingPlayers != 5 || stats.ApprovedPlayers != 3 || stats.RejectedPlayers != 2 {
		t.Errorf("per-status counts wrong: %+v", stats)
	}
	if len(stats.RecentRegistrations) != 5 {
		t.Fatalf("expected 5 recent registrations, got %d", len(stats.RecentRegistrations))
	}
	if stats.RecentRegistrations[0].FullName != "Player 10" {
		t.Errorf("most recent = %q, want Player 10", stats.RecentRegistrations[0].FullName)
	}
}
