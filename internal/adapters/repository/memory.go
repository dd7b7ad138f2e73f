package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

// MemoryPlayerRepository is an in-memory registrant store with the same
// uniqueness semantics as the SQL adapter. Used by tests.
type MemoryPlayerRepository struct {
	mu      sync.RWMutex
	players map[string]domain.Registration
}

var _ ports.RegistrationRepository = (*MemoryPlayerRepository)(nil)

func NewMemoryPlayerRepository() *MemoryPlayerRepository {
	return &MemoryPlayerRepository{players: make(map[string]domain.Registration)}
}

func (r *MemoryPlayerRepository) Create(_ context.Context, reg domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conflict := &domain.ConflictError{}
	for _, existing := range r.players {
		if existing.Email == reg.Email {
			conflict.Email = true
		}
		if existing.NationalID == reg.NationalID {
			conflict.NationalID = true
		}
	}
	if conflict.Email || conflict.NationalID {
		return conflict
	}
	r.players[reg.ID] = reg
	return nil
}

func (r *MemoryPlayerRepository) FindByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.players[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &reg, nil
}

func (r *MemoryPlayerRepository) FindByNationalID(_ context.Context, nationalID string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range r.players {
		if reg.NationalID == nationalID {
			reg := reg
			return &reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryPlayerRepository) FindCollisions(_ context.Context, email, nationalID string) (bool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var emailTaken, nationalIDTaken bool
	for _, reg := range r.players {
		if reg.Email == email {
			emailTaken = true
		}
		if reg.NationalID == nationalID {
			nationalIDTaken = true
		}
	}
	return emailTaken, nationalIDTaken, nil
}

func (r *MemoryPlayerRepository) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.players[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	reg.Status = status
	r.players[id] = reg
	return &reg, nil
}

func (r *MemoryPlayerRepository) UpdateFields(_ context.Context, id string, fields map[string]any) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.players[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for col, value := range fields {
		str, isString := value.(string)
		if !isString || !updatablePlayerColumns[col] {
			continue
		}
		switch col {
		case "full_name":
			reg.FullName = str
		case "father_name":
			reg.FatherName = str
		case "mother_name":
			reg.MotherName = str
		case "dob":
			reg.DOB = str
		case "gender":
			reg.Gender = str
		case "phone":
			reg.Phone = str
		case "national_id":
			reg.NationalID = str
		case "email":
			reg.Email = str
		case "profile_image":
			reg.ProfileImage = str
		case "id_document_image":
			reg.IDDocumentImage = str
		case "region":
			reg.Region = str
		case "state":
			reg.State = str
		case "district":
			reg.District = str
		case "status":
			reg.Status = domain.Status(str)
		}
	}
	r.players[id] = reg
	return &reg, nil
}

func (r *MemoryPlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *MemoryPlayerRepository) List(_ context.Context, offset, limit int, status domain.Status) ([]domain.RegistrationSummary, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedByDateDesc()
	var filtered []domain.Registration
	for _, reg := range all {
		if status == "" || reg.Status == status {
			filtered = append(filtered, reg)
		}
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	var summaries []domain.RegistrationSummary
	for _, reg := range filtered[offset:end] {
		summaries = append(summaries, domain.RegistrationSummary{
			ID:               reg.ID,
			FullName:         reg.FullName,
			Email:            reg.Email,
			Phone:            reg.Phone,
			Location:         fmt.Sprintf("%s, %s, %s", reg.District, reg.State, reg.Region),
			Status:           reg.Status,
			RegistrationDate: reg.RegistrationDate,
		})
	}
	return summaries, total, nil
}

func (r *MemoryPlayerRepository) CountByStatus(_ context.Context) (domain.StatusCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var counts domain.StatusCounts
	for _, reg := range r.players {
		switch reg.Status {
		case domain.StatusPending:
			counts.Pending++
		case domain.StatusApproved:
			counts.Approved++
		case domain.StatusRejected:
			counts.Rejected++
		}
		counts.Total++
	}
	return counts, nil
}

func (r *MemoryPlayerRepository) Recent(_ context.Context, n int) ([]domain.RegistrationSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedByDateDesc()
	if n > len(all) {
		n = len(all)
	}
	var summaries []domain.RegistrationSummary
	for _, reg := range all[:n] {
		summaries = append(summaries, domain.RegistrationSummary{
			ID:               reg.ID,
			FullName:         reg.FullName,
			Email:            reg.Email,
			Status:           reg.Status,
			RegistrationDate: reg.RegistrationDate,
		})
	}
	return summaries, nil
}

func (r *MemoryPlayerRepository) sortedByDateDesc() []domain.Registration {
	all := make([]domain.Registration, 0, len(r.players))
	for _, reg := range r.players {
		all = append(all, reg)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RegistrationDate.After(all[j].RegistrationDate)
	})
	return all
}

// MemoryStaffRepository is the in-memory credential store counterpart.
type MemoryStaffRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.StaffAccount
}

var _ ports.StaffRepository = (*MemoryStaffRepository)(nil)

func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{accounts: make(map[string]domain.StaffAccount)}
}

func (r *MemoryStaffRepository) FindByUsername(_ context.Context, username string) (*domain.StaffAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.Username == username {
			account := account
			return &account, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryStaffRepository) Create(_ context.Context, account domain.StaffAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return &domain.ConflictError{Field: "username"}
		}
		if existing.Email == account.Email {
			return &domain.ConflictError{Field: "email"}
		}
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *MemoryStaffRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}
