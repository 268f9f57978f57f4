package entity

import (
	"time"

	"github.com/google/uuid"
)

// Nominee is a beneficiary attached to a property and, optionally, one of its
// insurance policies. PropertyName and InsurancePolicy are write-time
// snapshots, same as Insurance.PropertyName.
type Nominee struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Relationship      string     `json:"relationship"`
	Contact           string     `json:"contact"`
	Email             string     `json:"email"`
	Address           string     `json:"address,omitempty"`
	PropertyID        uuid.UUID  `json:"property_id"`
	InsuranceID       *uuid.UUID `json:"insurance_id,omitempty"`
	PropertyName      string     `json:"property_name"`
	InsurancePolicy   string     `json:"insurance_policy,omitempty"`
	SharePercentage   int        `json:"share_percentage"`
	AdditionalDetails string     `json:"additional_details,omitempty"`
	AddedDate         time.Time  `json:"added_date"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
