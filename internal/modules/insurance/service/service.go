package service

import (
	"context"
	"fmt"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/internal/modules/insurance/dto"
	"kavling.dev/assetmanager/internal/modules/insurance/repository"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"
	propertyRepo "kavling.dev/assetmanager/internal/modules/property/repository"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type InsuranceService interface {
	Create(ctx context.Context, req dto.InsuranceRequest) (*entity.Insurance, error)
	Update(ctx context.Context, id uuid.UUID, req dto.InsuranceRequest) (*entity.Insurance, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Insurance, error)
	List(ctx context.Context) ([]entity.Insurance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type insuranceService struct {
	repo          repository.InsuranceRepository
	propertyRepo  propertyRepo.PropertyRepository
	notifications notifService.NotificationService
	sanitizer     *bluemonday.Policy
	now           func() time.Time
}

func NewInsuranceService(repo repository.InsuranceRepository, propertyRepo propertyRepo.PropertyRepository, notifications notifService.NotificationService) InsuranceService {
	return &insuranceService{
		repo:          repo,
		propertyRepo:  propertyRepo,
		notifications: notifications,
		sanitizer:     bluemonday.StrictPolicy(),
		now:           time.Now,
	}
}

func (s *insuranceService) Create(ctx context.Context, req dto.InsuranceRequest) (*entity.Insurance, error) {
	insurance, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	insurance.ID = uuid.New()
	insurance.CreatedAt = s.now()
	insurance.UpdatedAt = insurance.CreatedAt

	if err := s.repo.Create(ctx, insurance); err != nil {
		return nil, err
	}

	s.notifications.InsuranceChanged(ctx, *insurance, true)
	s.notifications.SignalInsurancesChanged()
	return insurance, nil
}

func (s *insuranceService) Update(ctx context.Context, id uuid.UUID, req dto.InsuranceRequest) (*entity.Insurance, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	insurance, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	insurance.ID = existing.ID
	insurance.CreatedAt = existing.CreatedAt
	insurance.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, insurance); err != nil {
		return nil, err
	}

	s.notifications.InsuranceChanged(ctx, *insurance, false)
	s.notifications.SignalInsurancesChanged()
	return insurance, nil
}

func (s *insuranceService) Get(ctx context.Context, id uuid.UUID) (*entity.Insurance, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *insuranceService) List(ctx context.Context) ([]entity.Insurance, error) {
	return s.repo.FindAll(ctx)
}

func (s *insuranceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifications.SignalInsurancesChanged()
	return nil
}

// fromRequest validates references and resolves the property-name snapshot.
// The snapshot is fixed at write time; renaming the property later does not
// update existing policies.
func (s *insuranceService) fromRequest(ctx context.Context, req dto.InsuranceRequest) (*entity.Insurance, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid property id", apperror.ErrInvalidInput)
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: property does not exist", apperror.ErrInvalidInput)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", apperror.ErrInvalidInput)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", apperror.ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperror.ErrInvalidInput)
	}

	var nextPaymentDate *time.Time
	if req.NextPaymentDate != "" {
		next, err := time.Parse("2006-01-02", req.NextPaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next payment date", apperror.ErrInvalidInput)
		}
		nextPaymentDate = &next
	}

	return &entity.Insurance{
		PolicyNumber:     req.PolicyNumber,
		Provider:         req.Provider,
		PropertyID:       property.ID,
		PropertyName:     property.Name,
		Type:             entity.InsuranceType(req.Type),
		CoverageAmount:   req.CoverageAmount,
		Premium:          req.Premium,
		PremiumFrequency: entity.PremiumFrequency(req.PremiumFrequency),
		StartDate:        startDate,
		EndDate:          endDate,
		NextPaymentDate:  nextPaymentDate,
		CoverageDetails:  s.sanitizer.Sanitize(req.CoverageDetails),
	}, nil
}
