package service

import (
	"context"
	"testing"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	notifRepo "kavling.dev/assetmanager/internal/modules/notification/repository"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*notificationService, insuranceRepo.InsuranceRepository) {
	t.Helper()

	insurances := insuranceRepo.NewInsuranceRepository()
	svc := NewNotificationService(notifRepo.NewNotificationRepository(), insurances, nil, time.Millisecond, time.Hour).(*notificationService)
	svc.now = func() time.Time { return scanNow }
	return svc, insurances
}

func seedPolicy(t *testing.T, insurances insuranceRepo.InsuranceRepository, endsInDays int) entity.Insurance {
	t.Helper()

	policy := policyEndingIn(endsInDays)
	require.NoError(t, insurances.Create(context.Background(), &policy))
	return policy
}

func TestUpdateSettingsRejectsUnknownLeadTime(t *testing.T) {
	svc, _ := newTestService(t)

	settings := entity.DefaultNotificationSettings()
	settings.PolicyRenewal.DaysInAdvance = 45

	_, err := svc.UpdateSettings(context.Background(), settings)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdateSettingsAlwaysEmitsInfoNotification(t *testing.T) {
	svc, _ := newTestService(t)

	settings := entity.DefaultNotificationSettings()
	settings.PropertyUpdates.Enabled = false
	settings.InsuranceUpdates.Enabled = false
	settings.NomineeUpdates.Enabled = false
	settings.PolicyRenewal.Enabled = false

	notification, err := svc.UpdateSettings(context.Background(), settings)

	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, entity.NotificationInfo, notification.Type)

	list := svc.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, notification.ID, list[0].ID)
	assert.Equal(t, settings, svc.Settings())
}

func TestRecordChangeNotificationsRespectCategoryGates(t *testing.T) {
	svc, _ := newTestService(t)

	settings := entity.DefaultNotificationSettings()
	settings.PropertyUpdates.Enabled = false
	_, err := svc.UpdateSettings(context.Background(), settings)
	require.NoError(t, err)

	suppressed := svc.PropertyChanged(context.Background(), entity.Property{ID: uuid.New(), Name: "Villa"}, true)
	assert.Nil(t, suppressed)

	emitted := svc.InsuranceChanged(context.Background(), entity.Insurance{ID: uuid.New(), PolicyNumber: "POL-1"}, true)
	require.NotNil(t, emitted)

	// Only the settings confirmation and the insurance notification made it in.
	list := svc.List(context.Background())
	require.Len(t, list, 2)
	assert.Equal(t, emitted.ID, list[0].ID)
}

func TestRunRenewalScanPrependsBatchInOrder(t *testing.T) {
	svc, insurances := newTestService(t)

	first := seedPolicy(t, insurances, 3)
	second := seedPolicy(t, insurances, 8)

	marker := svc.PropertyChanged(context.Background(), entity.Property{ID: uuid.New(), Name: "Villa"}, true)
	require.NotNil(t, marker)

	reminders := svc.RunRenewalScan(context.Background())
	require.Len(t, reminders, 2)

	// Batch lands in front of the older notification, keeping its own order.
	list := svc.List(context.Background())
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, *list[0].RelatedID)
	assert.Equal(t, second.ID, *list[1].RelatedID)
	assert.Equal(t, marker.ID, list[2].ID)
}

func TestRunRenewalScanIgnoresUpdateNotificationsForDedup(t *testing.T) {
	svc, insurances := newTestService(t)
	policy := seedPolicy(t, insurances, 3)

	// A change confirmation for the same policy shares its relatedID but must
	// not suppress the renewal reminder.
	emitted := svc.InsuranceChanged(context.Background(), policy, false)
	require.NotNil(t, emitted)

	reminders := svc.RunRenewalScan(context.Background())

	require.Len(t, reminders, 1)
	assert.Equal(t, policy.ID, *reminders[0].RelatedID)
}

func TestRunRenewalScanIsIdempotentWhileReminderActive(t *testing.T) {
	svc, insurances := newTestService(t)
	seedPolicy(t, insurances, 3)

	require.Len(t, svc.RunRenewalScan(context.Background()), 1)
	assert.Empty(t, svc.RunRenewalScan(context.Background()))
}

func TestDismissRenewalSchedulesRescan(t *testing.T) {
	svc, insurances := newTestService(t)
	seedPolicy(t, insurances, 3)

	reminders := svc.RunRenewalScan(context.Background())
	require.Len(t, reminders, 1)

	// Drain any pending signal so we observe the one Dismiss sends.
	select {
	case <-svc.changed:
	default:
	}

	require.NoError(t, svc.Dismiss(context.Background(), reminders[0].ID))

	select {
	case <-svc.changed:
	default:
		t.Fatal("expected a rescan signal after dismissing a renewal reminder")
	}

	// The dedup window is open again.
	assert.Len(t, svc.RunRenewalScan(context.Background()), 1)
}

func TestDismissUnknownNotification(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Dismiss(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDismissAllEmptiesList(t *testing.T) {
	svc, insurances := newTestService(t)
	seedPolicy(t, insurances, 3)

	svc.RunRenewalScan(context.Background())
	svc.PropertyChanged(context.Background(), entity.Property{ID: uuid.New(), Name: "Villa"}, true)
	require.NotEmpty(t, svc.List(context.Background()))

	svc.DismissAll(context.Background())

	assert.Empty(t, svc.List(context.Background()))
}

func TestRenewalWatcherDebouncesBursts(t *testing.T) {
	svc, insurances := newTestService(t)
	seedPolicy(t, insurances, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.StartRenewalWatcher(ctx)

	for range 5 {
		svc.SignalInsurancesChanged()
	}

	assert.Eventually(t, func() bool {
		return len(svc.List(ctx)) == 1
	}, time.Second, 5*time.Millisecond)
}
