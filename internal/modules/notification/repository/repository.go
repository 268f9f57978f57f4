package repository

import (
	"sync"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	// Prepend inserts a batch at the front of the list in one update,
	// preserving the batch's relative order.
	Prepend(batch ...entity.Notification)
	FindAll() []entity.Notification
	// Dismiss removes one notification and returns it.
	Dismiss(id uuid.UUID) (*entity.Notification, error)
	DismissAll()
	// HasActive reports whether an active notification with the given type and
	// related record exists.
	HasActive(t entity.NotificationType, relatedID uuid.UUID) bool
}

type membershipKey struct {
	Type      entity.NotificationType
	RelatedID uuid.UUID
}

// notificationRepository is an ordered in-memory list, newest first, with a
// set keyed by (type, relatedID) so duplicate checks don't rescan the list.
type notificationRepository struct {
	mu     sync.RWMutex
	items  []entity.Notification
	active map[membershipKey]int
}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{active: make(map[membershipKey]int)}
}

func (r *notificationRepository) Prepend(batch ...entity.Notification) {
	if len(batch) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]entity.Notification, 0, len(batch)+len(r.items))
	items = append(items, batch...)
	items = append(items, r.items...)
	r.items = items

	for _, n := range batch {
		if n.RelatedID != nil {
			r.active[membershipKey{Type: n.Type, RelatedID: *n.RelatedID}]++
		}
	}
}

func (r *notificationRepository) FindAll() []entity.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.Notification, len(r.items))
	copy(items, r.items)
	return items
}

func (r *notificationRepository) Dismiss(id uuid.UUID) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.items {
		if n.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.forget(n)
			return &n, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *notificationRepository) DismissAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	r.active = make(map[membershipKey]int)
}

func (r *notificationRepository) HasActive(t entity.NotificationType, relatedID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active[membershipKey{Type: t, RelatedID: relatedID}] > 0
}

func (r *notificationRepository) forget(n entity.Notification) {
	if n.RelatedID == nil {
		return
	}
	key := membershipKey{Type: n.Type, RelatedID: *n.RelatedID}
	if r.active[key] <= 1 {
		delete(r.active, key)
	} else {
		r.active[key]--
	}
}
