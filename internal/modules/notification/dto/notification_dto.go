package dto

import "kavling.dev/assetmanager/internal/entity"

type RenewalSettingsRequest struct {
	Enabled           bool `json:"enabled"`
	DaysInAdvance     int  `json:"days_in_advance" binding:"required,oneof=7 15 30 60 90"`
	EmailNotification bool `json:"email_notification"`
	AppNotification   bool `json:"app_notification"`
}

type CategorySettingsRequest struct {
	Enabled           bool `json:"enabled"`
	EmailNotification bool `json:"email_notification"`
	AppNotification   bool `json:"app_notification"`
}

type UpdateSettingsRequest struct {
	PolicyRenewal    RenewalSettingsRequest  `json:"policy_renewal" binding:"required"`
	PropertyUpdates  CategorySettingsRequest `json:"property_updates"`
	InsuranceUpdates CategorySettingsRequest `json:"insurance_updates"`
	NomineeUpdates   CategorySettingsRequest `json:"nominee_updates"`
}

func (r UpdateSettingsRequest) ToEntity() entity.NotificationSettings {
	return entity.NotificationSettings{
		PolicyRenewal: entity.RenewalSettings{
			Enabled:           r.PolicyRenewal.Enabled,
			DaysInAdvance:     r.PolicyRenewal.DaysInAdvance,
			EmailNotification: r.PolicyRenewal.EmailNotification,
			AppNotification:   r.PolicyRenewal.AppNotification,
		},
		PropertyUpdates:  entity.CategorySettings(r.PropertyUpdates),
		InsuranceUpdates: entity.CategorySettings(r.InsuranceUpdates),
		NomineeUpdates:   entity.CategorySettings(r.NomineeUpdates),
	}
}
