package service

import (
	"fmt"
	"testing"
	"time"

	"kavling.dev/assetmanager/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scanNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func renewalSettings(enabled bool, days int) entity.RenewalSettings {
	return entity.RenewalSettings{Enabled: enabled, DaysInAdvance: days, AppNotification: true}
}

func policyEndingIn(days int) entity.Insurance {
	return entity.Insurance{
		ID:           uuid.New(),
		PolicyNumber: fmt.Sprintf("POL-%d", days),
		PropertyName: "Lakeside Villa",
		Type:         entity.InsuranceFire,
		EndDate:      scanNow.AddDate(0, 0, days),
	}
}

func TestScanRenewalsWindowBounds(t *testing.T) {
	settings := renewalSettings(true, 30)

	insurances := []entity.Insurance{
		policyEndingIn(-1), // already expired, outside the window
		policyEndingIn(0),  // expires today, inclusive lower bound
		policyEndingIn(30), // inclusive upper bound
		policyEndingIn(31), // just past the horizon
	}

	reminders := ScanRenewals(insurances, nil, settings, scanNow)

	require.Len(t, reminders, 2)
	assert.Equal(t, insurances[1].ID, *reminders[0].RelatedID)
	assert.Equal(t, insurances[2].ID, *reminders[1].RelatedID)
	for _, r := range reminders {
		assert.Equal(t, entity.NotificationRenewal, r.Type)
		assert.Equal(t, "Policy Renewal Reminder", r.Title)
	}
}

func TestScanRenewalsDisabled(t *testing.T) {
	insurances := []entity.Insurance{policyEndingIn(5)}

	reminders := ScanRenewals(insurances, nil, renewalSettings(false, 30), scanNow)

	assert.Empty(t, reminders)
}

func reminderSet(ids ...uuid.UUID) func(uuid.UUID) bool {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id uuid.UUID) bool {
		_, ok := set[id]
		return ok
	}
}

func TestScanRenewalsSkipsPoliciesWithActiveReminder(t *testing.T) {
	settings := renewalSettings(true, 30)
	covered := policyEndingIn(5)
	uncovered := policyEndingIn(10)

	reminders := ScanRenewals([]entity.Insurance{covered, uncovered}, reminderSet(covered.ID), settings, scanNow)

	require.Len(t, reminders, 1)
	assert.Equal(t, uncovered.ID, *reminders[0].RelatedID)
}

func TestScanRenewalsEmitsAgainAfterDismissal(t *testing.T) {
	settings := renewalSettings(true, 30)
	policy := policyEndingIn(5)

	first := ScanRenewals([]entity.Insurance{policy}, reminderSet(), settings, scanNow)
	require.Len(t, first, 1)

	// With the reminder active nothing new is emitted; once it is gone the
	// same policy produces a fresh one.
	assert.Empty(t, ScanRenewals([]entity.Insurance{policy}, reminderSet(policy.ID), settings, scanNow))

	again := ScanRenewals([]entity.Insurance{policy}, reminderSet(), settings, scanNow)
	require.Len(t, again, 1)
	assert.NotEqual(t, first[0].ID, again[0].ID)
}

func TestScanRenewalsDaysRemainingMessage(t *testing.T) {
	settings := renewalSettings(true, 30)
	policy := policyEndingIn(10)

	reminders := ScanRenewals([]entity.Insurance{policy}, nil, settings, scanNow)

	require.Len(t, reminders, 1)
	assert.Equal(t, "Your fire insurance policy (POL-10) for Lakeside Villa will expire in 10 days.", reminders[0].Message)
}

func TestScanRenewalsUsesDayGranularity(t *testing.T) {
	settings := renewalSettings(true, 7)

	// Ends early tomorrow morning; less than 24h away but still one full
	// calendar day remaining.
	policy := entity.Insurance{
		ID:           uuid.New(),
		PolicyNumber: "POL-EARLY",
		PropertyName: "Lakeside Villa",
		Type:         entity.InsuranceProperty,
		EndDate:      time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC),
	}

	reminders := ScanRenewals([]entity.Insurance{policy}, nil, settings, scanNow)

	require.Len(t, reminders, 1)
	assert.Contains(t, reminders[0].Message, "expire in 1 days")
}

func TestScanRenewalsIncludesTodayWestOfUTC(t *testing.T) {
	settings := renewalSettings(true, 30)

	// Clock runs west of UTC while the end date was parsed as UTC midnight of
	// the same calendar day. The policy still expires "today".
	west := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, west)
	policy := entity.Insurance{
		ID:           uuid.New(),
		PolicyNumber: "POL-TODAY",
		PropertyName: "Lakeside Villa",
		Type:         entity.InsuranceFlood,
		EndDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	reminders := ScanRenewals([]entity.Insurance{policy}, nil, settings, now)

	require.Len(t, reminders, 1)
	assert.Contains(t, reminders[0].Message, "expire in 0 days")
}

func TestScanRenewalsDayCountEastOfUTC(t *testing.T) {
	settings := renewalSettings(true, 30)

	east := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, east)
	policy := entity.Insurance{
		ID:           uuid.New(),
		PolicyNumber: "POL-TEN",
		PropertyName: "Lakeside Villa",
		Type:         entity.InsuranceProperty,
		EndDate:      time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	reminders := ScanRenewals([]entity.Insurance{policy}, nil, settings, now)

	require.Len(t, reminders, 1)
	assert.Contains(t, reminders[0].Message, "expire in 10 days")
}

func TestPropertyChangeNotificationGating(t *testing.T) {
	property := entity.Property{ID: uuid.New(), Name: "Lakeside Villa"}

	disabled := PropertyChangeNotification(property, true, entity.CategorySettings{Enabled: false}, scanNow)
	assert.Nil(t, disabled)

	created := PropertyChangeNotification(property, true, entity.CategorySettings{Enabled: true}, scanNow)
	require.NotNil(t, created)
	assert.Equal(t, "Property Added", created.Title)
	assert.Equal(t, entity.NotificationUpdate, created.Type)
	assert.Equal(t, property.ID, *created.RelatedID)

	updated := PropertyChangeNotification(property, false, entity.CategorySettings{Enabled: true}, scanNow)
	require.NotNil(t, updated)
	assert.Equal(t, "Property Updated", updated.Title)
}

func TestInsuranceChangeNotificationWording(t *testing.T) {
	insurance := entity.Insurance{ID: uuid.New(), PolicyNumber: "POL-9", PropertyName: "Lakeside Villa"}

	created := InsuranceChangeNotification(insurance, true, entity.CategorySettings{Enabled: true}, scanNow)
	require.NotNil(t, created)
	assert.Equal(t, `New insurance policy "POL-9" has been added for Lakeside Villa.`, created.Message)

	assert.Nil(t, InsuranceChangeNotification(insurance, true, entity.CategorySettings{}, scanNow))
}

func TestNomineeChangeNotificationWording(t *testing.T) {
	nominee := entity.Nominee{ID: uuid.New(), Name: "Asha", SharePercentage: 40}

	created := NomineeChangeNotification(nominee, true, entity.CategorySettings{Enabled: true}, scanNow)
	require.NotNil(t, created)
	assert.Equal(t, `New nominee "Asha" has been added with 40% share.`, created.Message)
}

func TestSettingsUpdatedNotificationIsAlwaysInfo(t *testing.T) {
	n := SettingsUpdatedNotification(scanNow)

	assert.Equal(t, entity.NotificationInfo, n.Type)
	assert.Equal(t, "Settings Updated", n.Title)
	assert.Nil(t, n.RelatedID)
}
