package entity

// RenewalSettings controls the policy-renewal reminder scan.
type RenewalSettings struct {
	Enabled           bool `json:"enabled"`
	DaysInAdvance     int  `json:"days_in_advance"`
	EmailNotification bool `json:"email_notification"`
	AppNotification   bool `json:"app_notification"`
}

// CategorySettings gates notifications for one record kind.
type CategorySettings struct {
	Enabled           bool `json:"enabled"`
	EmailNotification bool `json:"email_notification"`
	AppNotification   bool `json:"app_notification"`
}

// NotificationSettings is replaced wholesale on update; categories are never
// patched in place.
type NotificationSettings struct {
	PolicyRenewal    RenewalSettings  `json:"policy_renewal"`
	PropertyUpdates  CategorySettings `json:"property_updates"`
	InsuranceUpdates CategorySettings `json:"insurance_updates"`
	NomineeUpdates   CategorySettings `json:"nominee_updates"`
}

// AllowedDaysInAdvance are the renewal lead times a user may pick.
var AllowedDaysInAdvance = []int{7, 15, 30, 60, 90}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		PolicyRenewal: RenewalSettings{
			Enabled:           true,
			DaysInAdvance:     30,
			EmailNotification: true,
			AppNotification:   true,
		},
		PropertyUpdates: CategorySettings{
			Enabled:           true,
			EmailNotification: false,
			AppNotification:   true,
		},
		InsuranceUpdates: CategorySettings{
			Enabled:           true,
			EmailNotification: true,
			AppNotification:   true,
		},
		NomineeUpdates: CategorySettings{
			Enabled:           true,
			EmailNotification: true,
			AppNotification:   true,
		},
	}
}
