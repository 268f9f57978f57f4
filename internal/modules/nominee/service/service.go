package service

import (
	"context"
	"fmt"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	"kavling.dev/assetmanager/internal/modules/nominee/dto"
	"kavling.dev/assetmanager/internal/modules/nominee/repository"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"
	propertyRepo "kavling.dev/assetmanager/internal/modules/property/repository"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type NomineeService interface {
	Create(ctx context.Context, req dto.NomineeRequest) (*entity.Nominee, error)
	Update(ctx context.Context, id uuid.UUID, req dto.NomineeRequest) (*entity.Nominee, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Nominee, error)
	List(ctx context.Context) ([]entity.Nominee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type nomineeService struct {
	repo          repository.NomineeRepository
	propertyRepo  propertyRepo.PropertyRepository
	insuranceRepo insuranceRepo.InsuranceRepository
	notifications notifService.NotificationService
	sanitizer     *bluemonday.Policy
	now           func() time.Time
}

func NewNomineeService(repo repository.NomineeRepository, propertyRepo propertyRepo.PropertyRepository, insuranceRepo insuranceRepo.InsuranceRepository, notifications notifService.NotificationService) NomineeService {
	return &nomineeService{
		repo:          repo,
		propertyRepo:  propertyRepo,
		insuranceRepo: insuranceRepo,
		notifications: notifications,
		sanitizer:     bluemonday.StrictPolicy(),
		now:           time.Now,
	}
}

func (s *nomineeService) Create(ctx context.Context, req dto.NomineeRequest) (*entity.Nominee, error) {
	nominee, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkShareCap(ctx, nominee, uuid.Nil); err != nil {
		return nil, err
	}

	nominee.ID = uuid.New()
	nominee.AddedDate = s.now()
	nominee.UpdatedAt = nominee.AddedDate

	if err := s.repo.Create(ctx, nominee); err != nil {
		return nil, err
	}

	s.notifications.NomineeChanged(ctx, *nominee, true)
	return nominee, nil
}

func (s *nomineeService) Update(ctx context.Context, id uuid.UUID, req dto.NomineeRequest) (*entity.Nominee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nominee, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkShareCap(ctx, nominee, existing.ID); err != nil {
		return nil, err
	}

	nominee.ID = existing.ID
	nominee.AddedDate = existing.AddedDate
	nominee.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, nominee); err != nil {
		return nil, err
	}

	s.notifications.NomineeChanged(ctx, *nominee, false)
	return nominee, nil
}

func (s *nomineeService) Get(ctx context.Context, id uuid.UUID) (*entity.Nominee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *nomineeService) List(ctx context.Context) ([]entity.Nominee, error) {
	return s.repo.FindAll(ctx)
}

func (s *nomineeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// fromRequest validates the property and optional insurance references and
// resolves the name snapshots. When an insurance is given it must belong to
// the same property as the nominee.
func (s *nomineeService) fromRequest(ctx context.Context, req dto.NomineeRequest) (*entity.Nominee, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid property id", apperror.ErrInvalidInput)
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: property does not exist", apperror.ErrInvalidInput)
	}

	nominee := &entity.Nominee{
		Name:              req.Name,
		Relationship:      req.Relationship,
		Contact:           req.Contact,
		Email:             req.Email,
		Address:           req.Address,
		PropertyID:        property.ID,
		PropertyName:      property.Name,
		SharePercentage:   req.SharePercentage,
		AdditionalDetails: s.sanitizer.Sanitize(req.AdditionalDetails),
	}

	if req.InsuranceID != "" {
		insuranceID, err := uuid.Parse(req.InsuranceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid insurance id", apperror.ErrInvalidInput)
		}

		insurance, err := s.insuranceRepo.FindByID(ctx, insuranceID)
		if err != nil {
			return nil, fmt.Errorf("%w: insurance does not exist", apperror.ErrInvalidInput)
		}
		if insurance.PropertyID != property.ID {
			return nil, fmt.Errorf("%w: insurance does not cover the selected property", apperror.ErrInvalidInput)
		}

		nominee.InsuranceID = &insurance.ID
		nominee.InsurancePolicy = insurance.PolicyNumber
	}

	return nominee, nil
}

// checkShareCap rejects a write that would push the cumulative share of a
// policy's nominees past 100%. excludeID skips the nominee being updated.
func (s *nomineeService) checkShareCap(ctx context.Context, nominee *entity.Nominee, excludeID uuid.UUID) error {
	if nominee.InsuranceID == nil {
		return nil
	}

	siblings, err := s.repo.FindByInsuranceID(ctx, *nominee.InsuranceID)
	if err != nil {
		return err
	}

	total := nominee.SharePercentage
	for _, sibling := range siblings {
		if sibling.ID == excludeID {
			continue
		}
		total += sibling.SharePercentage
	}

	if total > 100 {
		return fmt.Errorf("%w: combined share for this policy would be %d%%, exceeding 100%%", apperror.ErrInvalidInput, total)
	}
	return nil
}
