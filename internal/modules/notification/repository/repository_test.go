package repository

import (
	"testing"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renewalFor(relatedID uuid.UUID) entity.Notification {
	return entity.Notification{ID: uuid.New(), Type: entity.NotificationRenewal, RelatedID: &relatedID}
}

func TestPrependKeepsBatchOrderAtFront(t *testing.T) {
	repo := NewNotificationRepository()

	older := entity.Notification{ID: uuid.New(), Type: entity.NotificationInfo}
	repo.Prepend(older)

	a := renewalFor(uuid.New())
	b := renewalFor(uuid.New())
	repo.Prepend(a, b)

	list := repo.FindAll()
	require.Len(t, list, 3)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
}

func TestHasActiveTracksDismissal(t *testing.T) {
	repo := NewNotificationRepository()
	policyID := uuid.New()

	n := renewalFor(policyID)
	repo.Prepend(n)
	assert.True(t, repo.HasActive(entity.NotificationRenewal, policyID))
	assert.False(t, repo.HasActive(entity.NotificationUpdate, policyID))

	dismissed, err := repo.Dismiss(n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, dismissed.ID)
	assert.False(t, repo.HasActive(entity.NotificationRenewal, policyID))
}

func TestHasActiveRefcountsDuplicates(t *testing.T) {
	repo := NewNotificationRepository()
	policyID := uuid.New()

	first := renewalFor(policyID)
	second := renewalFor(policyID)
	repo.Prepend(first, second)

	_, err := repo.Dismiss(first.ID)
	require.NoError(t, err)
	assert.True(t, repo.HasActive(entity.NotificationRenewal, policyID))

	_, err = repo.Dismiss(second.ID)
	require.NoError(t, err)
	assert.False(t, repo.HasActive(entity.NotificationRenewal, policyID))
}

func TestDismissUnknown(t *testing.T) {
	repo := NewNotificationRepository()

	_, err := repo.Dismiss(uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDismissAll(t *testing.T) {
	repo := NewNotificationRepository()
	policyID := uuid.New()
	repo.Prepend(renewalFor(policyID))

	repo.DismissAll()

	assert.Empty(t, repo.FindAll())
	assert.False(t, repo.HasActive(entity.NotificationRenewal, policyID))
}
