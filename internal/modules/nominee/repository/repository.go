package repository

import (
	"context"
	"sync"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
)

type NomineeRepository interface {
	Create(ctx context.Context, nominee *entity.Nominee) error
	Update(ctx context.Context, nominee *entity.Nominee) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Nominee, error)
	FindAll(ctx context.Context) ([]entity.Nominee, error)
	FindByInsuranceID(ctx context.Context, insuranceID uuid.UUID) ([]entity.Nominee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type nomineeRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Nominee
	order []uuid.UUID
}

func NewNomineeRepository() NomineeRepository {
	return &nomineeRepository{items: make(map[uuid.UUID]entity.Nominee)}
}

func (r *nomineeRepository) Create(ctx context.Context, nominee *entity.Nominee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[nominee.ID]; exists {
		return apperror.ErrConflict
	}

	r.items[nominee.ID] = cloneNominee(*nominee)
	r.order = append(r.order, nominee.ID)
	return nil
}

func (r *nomineeRepository) Update(ctx context.Context, nominee *entity.Nominee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[nominee.ID]; !exists {
		return apperror.ErrNotFound
	}

	r.items[nominee.ID] = cloneNominee(*nominee)
	return nil
}

func (r *nomineeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Nominee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nominee, exists := r.items[id]
	if !exists {
		return nil, apperror.ErrNotFound
	}

	clone := cloneNominee(nominee)
	return &clone, nil
}

func (r *nomineeRepository) FindAll(ctx context.Context) ([]entity.Nominee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nominees := make([]entity.Nominee, 0, len(r.order))
	for _, id := range r.order {
		nominees = append(nominees, cloneNominee(r.items[id]))
	}
	return nominees, nil
}

func (r *nomineeRepository) FindByInsuranceID(ctx context.Context, insuranceID uuid.UUID) ([]entity.Nominee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nominees := make([]entity.Nominee, 0)
	for _, id := range r.order {
		nominee := r.items[id]
		if nominee.InsuranceID != nil && *nominee.InsuranceID == insuranceID {
			nominees = append(nominees, cloneNominee(nominee))
		}
	}
	return nominees, nil
}

func (r *nomineeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return apperror.ErrNotFound
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneNominee(n entity.Nominee) entity.Nominee {
	if n.InsuranceID != nil {
		insuranceID := *n.InsuranceID
		n.InsuranceID = &insuranceID
	}
	return n
}
