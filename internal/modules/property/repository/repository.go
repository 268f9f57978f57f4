package repository

import (
	"context"
	"sync"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindAll(ctx context.Context) ([]entity.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// propertyRepository keeps the collection in memory. Reads hand out clones so
// callers never share mutable state with the store; there is exactly one
// writer at a time behind the mutex.
type propertyRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Property
	order []uuid.UUID
}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{items: make(map[uuid.UUID]entity.Property)}
}

func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[property.ID]; exists {
		return apperror.ErrConflict
	}

	r.items[property.ID] = cloneProperty(*property)
	r.order = append(r.order, property.ID)
	return nil
}

func (r *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[property.ID]; !exists {
		return apperror.ErrNotFound
	}

	r.items[property.ID] = cloneProperty(*property)
	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	property, exists := r.items[id]
	if !exists {
		return nil, apperror.ErrNotFound
	}

	clone := cloneProperty(property)
	return &clone, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]entity.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	properties := make([]entity.Property, 0, len(r.order))
	for _, id := range r.order {
		properties = append(properties, cloneProperty(r.items[id]))
	}
	return properties, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

func cloneProperty(p entity.Property) entity.Property {
	if p.Documents != nil {
		docs := make([]entity.DocumentMarker, len(p.Documents))
		copy(docs, p.Documents)
		p.Documents = docs
	}
	return p
}
