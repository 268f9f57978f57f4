package repository

import (
	"context"
	"sync"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
)

type InsuranceRepository interface {
	Create(ctx context.Context, insurance *entity.Insurance) error
	Update(ctx context.Context, insurance *entity.Insurance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Insurance, error)
	FindAll(ctx context.Context) ([]entity.Insurance, error)
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]entity.Insurance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type insuranceRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Insurance
	order []uuid.UUID
}

func NewInsuranceRepository() InsuranceRepository {
	return &insuranceRepository{items: make(map[uuid.UUID]entity.Insurance)}
}

func (r *insuranceRepository) Create(ctx context.Context, insurance *entity.Insurance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[insurance.ID]; exists {
		return apperror.ErrConflict
	}

	r.items[insurance.ID] = cloneInsurance(*insurance)
	r.order = append(r.order, insurance.ID)
	return nil
}

func (r *insuranceRepository) Update(ctx context.Context, insurance *entity.Insurance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[insurance.ID]; !exists {
		return apperror.ErrNotFound
	}

	r.items[insurance.ID] = cloneInsurance(*insurance)
	return nil
}

func (r *insuranceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Insurance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	insurance, exists := r.items[id]
	if !exists {
		return nil, apperror.ErrNotFound
	}

	clone := cloneInsurance(insurance)
	return &clone, nil
}

func (r *insuranceRepository) FindAll(ctx context.Context) ([]entity.Insurance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	insurances := make([]entity.Insurance, 0, len(r.order))
	for _, id := range r.order {
		insurances = append(insurances, cloneInsurance(r.items[id]))
	}
	return insurances, nil
}

func (r *insuranceRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]entity.Insurance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	insurances := make([]entity.Insurance, 0)
	for _, id := range r.order {
		if insurance := r.items[id]; insurance.PropertyID == propertyID {
			insurances = append(insurances, cloneInsurance(insurance))
		}
	}
	return insurances, nil
}

func (r *insuranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

func cloneInsurance(i entity.Insurance) entity.Insurance {
	if i.NextPaymentDate != nil {
		next := *i.NextPaymentDate
		i.NextPaymentDate = &next
	}
	return i
}
