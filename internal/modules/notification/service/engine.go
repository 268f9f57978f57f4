package service

import (
	"fmt"
	"math"
	"time"

	"kavling.dev/assetmanager/internal/entity"

	"github.com/google/uuid"
)

// ScanRenewals returns one renewal reminder for every policy whose end date
// falls inside [today, today+daysInAdvance], both bounds inclusive, skipping
// policies hasReminder reports as already covered. Bounds compare calendar
// dates, so a policy expiring today qualifies regardless of the server zone.
// It is a pure function; callers apply the result themselves. Output order
// follows the insurance collection's iteration order.
func ScanRenewals(insurances []entity.Insurance, hasReminder func(policyID uuid.UUID) bool, settings entity.RenewalSettings, now time.Time) []entity.Notification {
	if !settings.Enabled {
		return nil
	}

	today := truncateToDay(now)
	horizon := today.AddDate(0, 0, settings.DaysInAdvance)

	var reminders []entity.Notification
	for _, insurance := range insurances {
		endDay := truncateToDay(insurance.EndDate)
		if endDay.Before(today) || endDay.After(horizon) {
			continue
		}
		if hasReminder != nil && hasReminder(insurance.ID) {
			continue
		}

		daysRemaining := daysUntil(today, insurance.EndDate)
		relatedID := insurance.ID
		reminders = append(reminders, entity.Notification{
			ID:    uuid.New(),
			Type:  entity.NotificationRenewal,
			Title: "Policy Renewal Reminder",
			Message: fmt.Sprintf("Your %s insurance policy (%s) for %s will expire in %d days.",
				insurance.Type, insurance.PolicyNumber, insurance.PropertyName, daysRemaining),
			Date:      now,
			RelatedID: &relatedID,
		})
	}
	return reminders
}

// PropertyChangeNotification builds the create/update confirmation for a
// property, or nil when the category is disabled.
func PropertyChangeNotification(property entity.Property, isNew bool, settings entity.CategorySettings, now time.Time) *entity.Notification {
	if !settings.Enabled {
		return nil
	}

	title := "Property Updated"
	message := fmt.Sprintf("Property %q has been updated successfully.", property.Name)
	if isNew {
		title = "Property Added"
		message = fmt.Sprintf("New property %q has been added successfully.", property.Name)
	}

	relatedID := property.ID
	return &entity.Notification{
		ID:        uuid.New(),
		Type:      entity.NotificationUpdate,
		Title:     title,
		Message:   message,
		Date:      now,
		RelatedID: &relatedID,
	}
}

func InsuranceChangeNotification(insurance entity.Insurance, isNew bool, settings entity.CategorySettings, now time.Time) *entity.Notification {
	if !settings.Enabled {
		return nil
	}

	title := "Insurance Updated"
	message := fmt.Sprintf("Insurance policy %q has been updated.", insurance.PolicyNumber)
	if isNew {
		title = "Insurance Added"
		message = fmt.Sprintf("New insurance policy %q has been added for %s.", insurance.PolicyNumber, insurance.PropertyName)
	}

	relatedID := insurance.ID
	return &entity.Notification{
		ID:        uuid.New(),
		Type:      entity.NotificationUpdate,
		Title:     title,
		Message:   message,
		Date:      now,
		RelatedID: &relatedID,
	}
}

func NomineeChangeNotification(nominee entity.Nominee, isNew bool, settings entity.CategorySettings, now time.Time) *entity.Notification {
	if !settings.Enabled {
		return nil
	}

	title := "Nominee Updated"
	message := fmt.Sprintf("Nominee %q details have been updated.", nominee.Name)
	if isNew {
		title = "Nominee Added"
		message = fmt.Sprintf("New nominee %q has been added with %d%% share.", nominee.Name, nominee.SharePercentage)
	}

	relatedID := nominee.ID
	return &entity.Notification{
		ID:        uuid.New(),
		Type:      entity.NotificationUpdate,
		Title:     title,
		Message:   message,
		Date:      now,
		RelatedID: &relatedID,
	}
}

// SettingsUpdatedNotification is always emitted; settings-change confirmations
// are not gated by any enable flag.
func SettingsUpdatedNotification(now time.Time) entity.Notification {
	return entity.Notification{
		ID:      uuid.New(),
		Type:    entity.NotificationInfo,
		Title:   "Settings Updated",
		Message: "Your notification preferences have been updated successfully.",
		Date:    now,
	}
}

// truncateToDay maps a timestamp to its calendar date, pinned to UTC. End
// dates are parsed as UTC midnight while the clock runs in the server zone;
// comparing raw truncations would shift the window by up to a day.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysUntil(today time.Time, end time.Time) int {
	return int(math.Ceil(truncateToDay(end).Sub(today).Hours() / 24))
}
