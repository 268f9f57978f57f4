package entity

import (
	"time"

	"github.com/google/uuid"
)

type InsuranceType string

const (
	InsuranceProperty   InsuranceType = "property"
	InsuranceLiability  InsuranceType = "liability"
	InsuranceFire       InsuranceType = "fire"
	InsuranceFlood      InsuranceType = "flood"
	InsuranceEarthquake InsuranceType = "earthquake"
	InsuranceOther      InsuranceType = "other"
)

type PremiumFrequency string

const (
	PremiumMonthly    PremiumFrequency = "Monthly"
	PremiumQuarterly  PremiumFrequency = "Quarterly"
	PremiumSemiAnnual PremiumFrequency = "Semi-Annual"
	PremiumAnnual     PremiumFrequency = "Annual"
)

// AnnualizedPremium normalizes a premium amount to a yearly figure. An
// unrecognized frequency is treated as annual.
func (f PremiumFrequency) AnnualizedPremium(premium float64) float64 {
	switch f {
	case PremiumMonthly:
		return premium * 12
	case PremiumQuarterly:
		return premium * 4
	case PremiumSemiAnnual:
		return premium * 2
	default:
		return premium
	}
}

// Insurance is a policy covering one property. PropertyName is a snapshot of
// the referenced property's name taken at write time; renaming the property
// later does not rewrite it.
type Insurance struct {
	ID               uuid.UUID        `json:"id"`
	PolicyNumber     string           `json:"policy_number"`
	Provider         string           `json:"provider"`
	PropertyID       uuid.UUID        `json:"property_id"`
	PropertyName     string           `json:"property_name"`
	Type             InsuranceType    `json:"type"`
	CoverageAmount   float64          `json:"coverage_amount"`
	Premium          float64          `json:"premium"`
	PremiumFrequency PremiumFrequency `json:"premium_frequency"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	NextPaymentDate  *time.Time       `json:"next_payment_date,omitempty"`
	CoverageDetails  string           `json:"coverage_details,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
