package dto

import (
	"time"

	"kavling.dev/assetmanager/internal/entity"
)

type DocumentType string

const (
	PropertyReport  DocumentType = "propertyReport"
	InsuranceReport DocumentType = "insuranceReport"
	NomineeReport   DocumentType = "nomineeReport"
	SummaryReport   DocumentType = "summaryReport"
)

// Document is the payload handed to the export boundary. Exactly one of the
// data fields is populated depending on the document type and selection.
type Document struct {
	Type        DocumentType `json:"type"`
	Title       string       `json:"title"`
	Filename    string       `json:"filename"`
	GeneratedAt time.Time    `json:"generated_at"`

	Property   *entity.Property    `json:"property,omitempty"`
	Properties []entity.Property   `json:"properties,omitempty"`
	Insurance  *entity.Insurance   `json:"insurance,omitempty"`
	Insurances []entity.Insurance  `json:"insurances,omitempty"`
	Nominee    *entity.Nominee     `json:"nominee,omitempty"`
	Nominees   []entity.Nominee    `json:"nominees,omitempty"`
	Covered    *PropertyInsurances `json:"property_insurances,omitempty"`
	Summary    *Summary            `json:"summary,omitempty"`
}

// PropertyInsurances is the insuranceReport shape when filtered by property:
// the property plus every policy covering it. Insurances may be empty.
type PropertyInsurances struct {
	Property   entity.Property    `json:"property"`
	Insurances []entity.Insurance `json:"insurances"`
}

type TypeCount struct {
	Type  entity.PropertyType `json:"type"`
	Count int                 `json:"count"`
}

type RelationshipCount struct {
	Relationship string `json:"relationship"`
	Count        int    `json:"count"`
}

// Summary bundles all three collections with their aggregates.
type Summary struct {
	Properties []entity.Property  `json:"properties"`
	Insurances []entity.Insurance `json:"insurances"`
	Nominees   []entity.Nominee   `json:"nominees"`

	TotalPropertyValue   float64             `json:"total_property_value"`
	PropertyTypeCounts   []TypeCount         `json:"property_type_counts"`
	TotalCoverage        float64             `json:"total_coverage"`
	TotalAnnualPremium   float64             `json:"total_annual_premium"`
	ExpiringPolicies     []entity.Insurance  `json:"expiring_policies"`
	NomineeRelationships []RelationshipCount `json:"nominee_relationships"`
}
