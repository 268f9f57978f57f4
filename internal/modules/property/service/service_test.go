package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	notifRepo "kavling.dev/assetmanager/internal/modules/notification/repository"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"
	"kavling.dev/assetmanager/internal/modules/property/dto"
	"kavling.dev/assetmanager/internal/modules/property/repository"
	"kavling.dev/assetmanager/pkg/apperror"
	"kavling.dev/assetmanager/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStorage records uploads and deletes in memory.
type stubStorage struct {
	uploads int
	deleted []string
}

func (s *stubStorage) UploadDocument(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://files.test/%s/%d-%s", folder, s.uploads, fileName), nil
}

func (s *stubStorage) DeleteDocument(ctx context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

var _ storage.DocumentStorage = (*stubStorage)(nil)

func newTestService(t *testing.T) (PropertyService, notifService.NotificationService) {
	t.Helper()

	svc, notifications, _ := newTestServiceWithStorage(t, nil)
	return svc, notifications
}

func newTestServiceWithStorage(t *testing.T, docStorage storage.DocumentStorage) (PropertyService, notifService.NotificationService, *stubStorage) {
	t.Helper()

	notifications := notifService.NewNotificationService(
		notifRepo.NewNotificationRepository(),
		insuranceRepo.NewInsuranceRepository(),
		nil, time.Millisecond, time.Hour,
	)
	stub, _ := docStorage.(*stubStorage)
	return NewPropertyService(repository.NewPropertyRepository(), notifications, docStorage, "documents"), notifications, stub
}

func validRequest() dto.PropertyRequest {
	return dto.PropertyRequest{
		Name:          "Lakeside Villa",
		Type:          "Residential",
		Address:       "12 Shore Road",
		City:          "Pune",
		PurchaseDate:  "2020-06-15",
		PurchaseValue: 90000,
		CurrentValue:  100000,
	}
}

func TestCreatePropertyDefaultsDocumentChecklist(t *testing.T) {
	svc, _ := newTestService(t)

	property, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, property.Documents, 4)
	assert.Equal(t, "Deed Papers", property.Documents[0].Name)
	assert.False(t, property.Documents[0].Uploaded)
	assert.Equal(t, entity.LoanNone, property.LoanStatus)
}

func TestCreatePropertyActiveLoanRequiresDetails(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.LoanStatus = "Active"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	req.LoanAmount = 40000
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	req.LoanProvider = "First Bank"
	property, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanActive, property.LoanStatus)
	assert.Equal(t, 40000.0, property.LoanAmount)
}

func TestCreatePropertyClearsLoanFieldsWhenNoLoan(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.LoanStatus = "Paid Off"
	req.LoanAmount = 40000
	req.LoanProvider = "First Bank"

	property, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Zero(t, property.LoanAmount)
	assert.Empty(t, property.LoanProvider)
}

func TestCreatePropertySanitizesNotes(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Notes = `<script>alert(1)</script>quiet street`

	property, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "quiet street", property.Notes)
}

func TestCreatePropertyEmitsNotification(t *testing.T) {
	svc, notifications := newTestService(t)

	property, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	list := notifications.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationUpdate, list[0].Type)
	assert.Equal(t, property.ID, *list[0].RelatedID)
}

func TestUpdatePropertyKeepsDocumentsWhenOmitted(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Lakeside Villa East"
	updated, err := svc.Update(context.Background(), created.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "Lakeside Villa East", updated.Name)
	assert.Equal(t, created.Documents, updated.Documents)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateUnknownProperty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), validRequest())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUploadDocumentWithoutStorage(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.UploadDocument(context.Background(), created.ID, "Deed Papers", "deed.pdf", nil)

	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestUploadDocumentMarksChecklistEntry(t *testing.T) {
	svc, _, stub := newTestServiceWithStorage(t, &stubStorage{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	updated, err := svc.UploadDocument(context.Background(), created.ID, "Deed Papers", "deed.pdf", strings.NewReader("scan"))

	require.NoError(t, err)
	assert.True(t, updated.Documents[0].Uploaded)
	assert.NotEmpty(t, updated.Documents[0].FileURL)
	assert.Empty(t, stub.deleted)
}

func TestUploadDocumentDeletesReplacedFile(t *testing.T) {
	svc, _, stub := newTestServiceWithStorage(t, &stubStorage{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	first, err := svc.UploadDocument(context.Background(), created.ID, "Deed Papers", "deed-v1.pdf", strings.NewReader("scan"))
	require.NoError(t, err)
	firstURL := first.Documents[0].FileURL

	second, err := svc.UploadDocument(context.Background(), created.ID, "Deed Papers", "deed-v2.pdf", strings.NewReader("scan"))
	require.NoError(t, err)

	assert.NotEqual(t, firstURL, second.Documents[0].FileURL)
	assert.Equal(t, []string{firstURL}, stub.deleted)
}

func TestDeletePropertyRemovesUploadedFiles(t *testing.T) {
	svc, _, stub := newTestServiceWithStorage(t, &stubStorage{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	uploaded, err := svc.UploadDocument(context.Background(), created.ID, "Tax Receipts", "tax.pdf", strings.NewReader("scan"))
	require.NoError(t, err)
	fileURL := uploaded.Documents[1].FileURL

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Equal(t, []string{fileURL}, stub.deleted)
}

func TestUpdatePropertyMergesDocumentUploadState(t *testing.T) {
	svc, _, _ := newTestServiceWithStorage(t, &stubStorage{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	uploaded, err := svc.UploadDocument(context.Background(), created.ID, "Deed Papers", "deed.pdf", strings.NewReader("scan"))
	require.NoError(t, err)
	deedURL := uploaded.Documents[0].FileURL

	req := validRequest()
	req.Documents = []dto.DocumentMarkerRequest{
		{Name: "Deed Papers"},
		{Name: "Survey Map"},
	}
	updated, err := svc.Update(context.Background(), created.ID, req)

	require.NoError(t, err)
	require.Len(t, updated.Documents, 2)
	assert.True(t, updated.Documents[0].Uploaded)
	assert.Equal(t, deedURL, updated.Documents[0].FileURL)
	assert.False(t, updated.Documents[1].Uploaded)
}

func TestDeleteProperty(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
