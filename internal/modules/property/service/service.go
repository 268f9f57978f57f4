package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/internal/modules/property/dto"
	"kavling.dev/assetmanager/internal/modules/property/repository"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"
	"kavling.dev/assetmanager/pkg/apperror"
	"kavling.dev/assetmanager/pkg/storage"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type PropertyService interface {
	Create(ctx context.Context, req dto.PropertyRequest) (*entity.Property, error)
	Update(ctx context.Context, id uuid.UUID, req dto.PropertyRequest) (*entity.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	List(ctx context.Context) ([]entity.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadDocument(ctx context.Context, id uuid.UUID, docName, fileName string, file io.Reader) (*entity.Property, error)
}

type propertyService struct {
	repo          repository.PropertyRepository
	notifications notifService.NotificationService
	docStorage    storage.DocumentStorage
	uploadFolder  string
	sanitizer     *bluemonday.Policy
	now           func() time.Time
}

func NewPropertyService(repo repository.PropertyRepository, notifications notifService.NotificationService, docStorage storage.DocumentStorage, uploadFolder string) PropertyService {
	return &propertyService{
		repo:          repo,
		notifications: notifications,
		docStorage:    docStorage,
		uploadFolder:  uploadFolder,
		sanitizer:     bluemonday.StrictPolicy(),
		now:           time.Now,
	}
}

func (s *propertyService) Create(ctx context.Context, req dto.PropertyRequest) (*entity.Property, error) {
	property, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	property.ID = uuid.New()
	property.CreatedAt = s.now()
	property.UpdatedAt = property.CreatedAt

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.notifications.PropertyChanged(ctx, *property, true)
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, id uuid.UUID, req dto.PropertyRequest) (*entity.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	property, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	property.ID = existing.ID
	property.CreatedAt = existing.CreatedAt
	property.UpdatedAt = s.now()
	if len(req.Documents) == 0 {
		property.Documents = existing.Documents
	} else {
		mergeDocumentState(property.Documents, existing.Documents)
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}

	// Insurance and nominee snapshots of this property's name are taken at
	// their own write time and are intentionally left stale here.
	s.notifications.PropertyChanged(ctx, *property, false)
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *propertyService) List(ctx context.Context) ([]entity.Property, error) {
	return s.repo.FindAll(ctx)
}

func (s *propertyService) Delete(ctx context.Context, id uuid.UUID) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Uploaded files go with the record. Cleanup is best effort; a failed
	// remote delete must not resurrect the property.
	if s.docStorage != nil {
		for _, doc := range property.Documents {
			if doc.Uploaded && doc.FileURL != "" {
				if err := s.docStorage.DeleteDocument(ctx, doc.FileURL); err != nil {
					log.Printf("failed to delete document %q for property %s: %v", doc.Name, id, err)
				}
			}
		}
	}
	return nil
}

func (s *propertyService) UploadDocument(ctx context.Context, id uuid.UUID, docName, fileName string, file io.Reader) (*entity.Property, error) {
	if s.docStorage == nil {
		return nil, fmt.Errorf("%w: document storage is not configured", apperror.ErrUnavailable)
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	marker := -1
	for i, doc := range property.Documents {
		if doc.Name == docName {
			marker = i
			break
		}
	}
	if marker == -1 {
		return nil, fmt.Errorf("%w: unknown document %q", apperror.ErrInvalidInput, docName)
	}

	fileURL, err := s.docStorage.UploadDocument(ctx, file, s.uploadFolder, fileName)
	if err != nil {
		return nil, err
	}

	// Replacing an earlier upload orphans the old file unless it is removed.
	if old := property.Documents[marker].FileURL; old != "" && old != fileURL {
		if err := s.docStorage.DeleteDocument(ctx, old); err != nil {
			log.Printf("failed to delete replaced document %q for property %s: %v", docName, id, err)
		}
	}

	property.Documents[marker].Uploaded = true
	property.Documents[marker].FileURL = fileURL
	property.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// mergeDocumentState carries Uploaded/FileURL forward for markers whose name
// survives a checklist rewrite; a request lists names only.
func mergeDocumentState(docs, existing []entity.DocumentMarker) {
	byName := make(map[string]entity.DocumentMarker, len(existing))
	for _, doc := range existing {
		byName[doc.Name] = doc
	}
	for i, doc := range docs {
		if prev, ok := byName[doc.Name]; ok {
			docs[i].Uploaded = prev.Uploaded
			docs[i].FileURL = prev.FileURL
		}
	}
}

func (s *propertyService) fromRequest(req dto.PropertyRequest) (*entity.Property, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase date", apperror.ErrInvalidInput)
	}

	loanStatus := entity.LoanStatus(req.LoanStatus)
	if loanStatus == "" {
		loanStatus = entity.LoanNone
	}
	if loanStatus == entity.LoanActive {
		if req.LoanAmount <= 0 {
			return nil, fmt.Errorf("%w: loan amount is required when a loan is active", apperror.ErrInvalidInput)
		}
		if req.LoanProvider == "" {
			return nil, fmt.Errorf("%w: loan provider is required when a loan is active", apperror.ErrInvalidInput)
		}
	} else {
		req.LoanAmount = 0
		req.LoanProvider = ""
	}

	documents := entity.DefaultDocumentMarkers()
	if len(req.Documents) > 0 {
		documents = make([]entity.DocumentMarker, 0, len(req.Documents))
		for _, doc := range req.Documents {
			documents = append(documents, entity.DocumentMarker{Name: doc.Name})
		}
	}

	return &entity.Property{
		Name:          req.Name,
		Type:          entity.PropertyType(req.Type),
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		PurchaseDate:  purchaseDate,
		PurchaseValue: req.PurchaseValue,
		CurrentValue:  req.CurrentValue,
		MarketValue:   req.MarketValue,
		LandArea:      req.LandArea,
		BuiltArea:     req.BuiltArea,
		LoanStatus:    loanStatus,
		LoanAmount:    req.LoanAmount,
		LoanProvider:  req.LoanProvider,
		Documents:     documents,
		Notes:         s.sanitizer.Sanitize(req.Notes),
	}, nil
}
