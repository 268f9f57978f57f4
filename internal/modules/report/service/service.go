package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	nomineeRepo "kavling.dev/assetmanager/internal/modules/nominee/repository"
	propertyRepo "kavling.dev/assetmanager/internal/modules/property/repository"
	"kavling.dev/assetmanager/internal/modules/report/dto"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
)

// expiringHorizonDays is the fixed lookahead for the summary report's
// expiring-policies section. It is independent of the renewal settings.
const expiringHorizonDays = 90

// Selection carries the optional id filters for a report. Which ids matter
// depends on the document type; insurance id takes precedence over property id
// for the insurance report.
type Selection struct {
	PropertyID  *uuid.UUID
	InsuranceID *uuid.UUID
	NomineeID   *uuid.UUID
}

type ReportService interface {
	Project(ctx context.Context, docType dto.DocumentType, sel Selection) (*dto.Document, error)
}

type reportService struct {
	properties propertyRepo.PropertyRepository
	insurances insuranceRepo.InsuranceRepository
	nominees   nomineeRepo.NomineeRepository
	now        func() time.Time
}

func NewReportService(properties propertyRepo.PropertyRepository, insurances insuranceRepo.InsuranceRepository, nominees nomineeRepo.NomineeRepository) ReportService {
	return &reportService{
		properties: properties,
		insurances: insurances,
		nominees:   nominees,
		now:        time.Now,
	}
}

// Project builds a document payload from the current collections. It never
// mutates repository state; unknown selected ids yield a not-found error.
func (s *reportService) Project(ctx context.Context, docType dto.DocumentType, sel Selection) (*dto.Document, error) {
	switch docType {
	case dto.PropertyReport:
		return s.projectProperties(ctx, sel)
	case dto.InsuranceReport:
		return s.projectInsurances(ctx, sel)
	case dto.NomineeReport:
		return s.projectNominees(ctx, sel)
	case dto.SummaryReport:
		return s.projectSummary(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", apperror.ErrInvalidInput, docType)
	}
}

func (s *reportService) projectProperties(ctx context.Context, sel Selection) (*dto.Document, error) {
	if sel.PropertyID != nil {
		property, err := s.properties.FindByID(ctx, *sel.PropertyID)
		if err != nil {
			return nil, err
		}
		doc := s.newDocument(dto.PropertyReport, "Property Report - "+property.Name)
		doc.Property = property
		return doc, nil
	}

	properties, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	doc := s.newDocument(dto.PropertyReport, "Complete Property Report")
	doc.Properties = properties
	return doc, nil
}

func (s *reportService) projectInsurances(ctx context.Context, sel Selection) (*dto.Document, error) {
	// Insurance id wins over property id when both are selected.
	if sel.InsuranceID != nil {
		insurance, err := s.insurances.FindByID(ctx, *sel.InsuranceID)
		if err != nil {
			return nil, err
		}
		doc := s.newDocument(dto.InsuranceReport, "Insurance Report - "+insurance.PolicyNumber)
		doc.Insurance = insurance
		return doc, nil
	}

	if sel.PropertyID != nil {
		property, err := s.properties.FindByID(ctx, *sel.PropertyID)
		if err != nil {
			return nil, err
		}
		insurances, err := s.insurances.FindByPropertyID(ctx, property.ID)
		if err != nil {
			return nil, err
		}
		doc := s.newDocument(dto.InsuranceReport, "Insurance Report - "+property.Name)
		doc.Covered = &dto.PropertyInsurances{Property: *property, Insurances: insurances}
		return doc, nil
	}

	insurances, err := s.insurances.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	doc := s.newDocument(dto.InsuranceReport, "Complete Insurance Report")
	doc.Insurances = insurances
	return doc, nil
}

func (s *reportService) projectNominees(ctx context.Context, sel Selection) (*dto.Document, error) {
	if sel.NomineeID != nil {
		nominee, err := s.nominees.FindByID(ctx, *sel.NomineeID)
		if err != nil {
			return nil, err
		}
		doc := s.newDocument(dto.NomineeReport, "Nominee Report - "+nominee.Name)
		doc.Nominee = nominee
		return doc, nil
	}

	nominees, err := s.nominees.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	doc := s.newDocument(dto.NomineeReport, "Complete Nominee Report")
	doc.Nominees = nominees
	return doc, nil
}

func (s *reportService) projectSummary(ctx context.Context) (*dto.Document, error) {
	properties, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	insurances, err := s.insurances.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	nominees, err := s.nominees.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.Summary{
		Properties: properties,
		Insurances: insurances,
		Nominees:   nominees,
	}

	var totalValue float64
	for _, property := range properties {
		totalValue += property.CurrentValue
	}
	summary.TotalPropertyValue = round2(totalValue)
	summary.PropertyTypeCounts = countPropertyTypes(properties)

	var totalCoverage, totalAnnualPremium float64
	for _, insurance := range insurances {
		totalCoverage += insurance.CoverageAmount
		totalAnnualPremium += insurance.PremiumFrequency.AnnualizedPremium(insurance.Premium)
	}
	summary.TotalCoverage = round2(totalCoverage)
	summary.TotalAnnualPremium = round2(totalAnnualPremium)
	summary.ExpiringPolicies = expiringWithin(insurances, s.now(), expiringHorizonDays)
	summary.NomineeRelationships = countRelationships(nominees)

	doc := s.newDocument(dto.SummaryReport, "Asset Summary Report")
	doc.Summary = summary
	return doc, nil
}

func (s *reportService) newDocument(docType dto.DocumentType, title string) *dto.Document {
	return &dto.Document{
		Type:        docType,
		Title:       title,
		Filename:    Filename(title),
		GeneratedAt: s.now(),
	}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Filename converts a document title into its export file name.
func Filename(title string) string {
	return whitespacePattern.ReplaceAllString(title, "_") + ".pdf"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countPropertyTypes groups by type, keeping first-seen order.
func countPropertyTypes(properties []entity.Property) []dto.TypeCount {
	counts := make([]dto.TypeCount, 0)
	index := make(map[entity.PropertyType]int)
	for _, property := range properties {
		if i, seen := index[property.Type]; seen {
			counts[i].Count++
			continue
		}
		index[property.Type] = len(counts)
		counts = append(counts, dto.TypeCount{Type: property.Type, Count: 1})
	}
	return counts
}

// countRelationships groups nominees by relationship, keeping first-seen order.
func countRelationships(nominees []entity.Nominee) []dto.RelationshipCount {
	counts := make([]dto.RelationshipCount, 0)
	index := make(map[string]int)
	for _, nominee := range nominees {
		if i, seen := index[nominee.Relationship]; seen {
			counts[i].Count++
			continue
		}
		index[nominee.Relationship] = len(counts)
		counts = append(counts, dto.RelationshipCount{Relationship: nominee.Relationship, Count: 1})
	}
	return counts
}

// expiringWithin selects policies whose end date falls between today and
// today+horizon, both bounds inclusive. Comparisons use calendar dates pinned
// to UTC; end dates are parsed as UTC midnight while the clock runs in the
// server zone, so truncating each in its own zone would shift the window.
func expiringWithin(insurances []entity.Insurance, now time.Time, horizonDays int) []entity.Insurance {
	today := calendarDate(now)
	cutoff := today.AddDate(0, 0, horizonDays)

	expiring := make([]entity.Insurance, 0)
	for _, insurance := range insurances {
		endDay := calendarDate(insurance.EndDate)
		if !endDay.Before(today) && !endDay.After(cutoff) {
			expiring = append(expiring, insurance)
		}
	}
	return expiring
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
