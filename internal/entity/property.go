package entity

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyResidential  PropertyType = "Residential"
	PropertyCommercial   PropertyType = "Commercial"
	PropertyLand         PropertyType = "Land"
	PropertyIndustrial   PropertyType = "Industrial"
	PropertyAgricultural PropertyType = "Agricultural"
	PropertyOther        PropertyType = "Other"
)

type LoanStatus string

const (
	LoanNone    LoanStatus = "No Loan"
	LoanActive  LoanStatus = "Active"
	LoanPaidOff LoanStatus = "Paid Off"
)

// DocumentMarker tracks whether a named ownership document has been uploaded
// for a property.
type DocumentMarker struct {
	Name     string `json:"name"`
	Uploaded bool   `json:"uploaded"`
	FileURL  string `json:"file_url,omitempty"`
}

// DefaultDocumentMarkers returns the standard document checklist attached to a
// new property when the caller does not provide one.
func DefaultDocumentMarkers() []DocumentMarker {
	return []DocumentMarker{
		{Name: "Deed Papers"},
		{Name: "Tax Receipts"},
		{Name: "Loan Documents"},
		{Name: "Valuation Report"},
	}
}

type Property struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Type          PropertyType     `json:"type"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	State         string           `json:"state"`
	PostalCode    string           `json:"postal_code"`
	PurchaseDate  time.Time        `json:"purchase_date"`
	PurchaseValue float64          `json:"purchase_value"`
	CurrentValue  float64          `json:"current_value"`
	MarketValue   float64          `json:"market_value"`
	LandArea      float64          `json:"land_area"`
	BuiltArea     float64          `json:"built_area"`
	LoanStatus    LoanStatus       `json:"loan_status"`
	LoanAmount    float64          `json:"loan_amount,omitempty"`
	LoanProvider  string           `json:"loan_provider,omitempty"`
	Documents     []DocumentMarker `json:"documents"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
