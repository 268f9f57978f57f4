package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	insuranceRepo "kavling.dev/assetmanager/internal/modules/insurance/repository"
	notifRepo "kavling.dev/assetmanager/internal/modules/notification/repository"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel is the redis pubsub channel live notifications are
// published to when redis is configured.
const NotificationChannel = "session_notifications"

type NotificationService interface {
	List(ctx context.Context) []entity.Notification
	Dismiss(ctx context.Context, id uuid.UUID) error
	DismissAll(ctx context.Context)
	Settings() entity.NotificationSettings
	UpdateSettings(ctx context.Context, settings entity.NotificationSettings) (*entity.Notification, error)

	PropertyChanged(ctx context.Context, property entity.Property, isNew bool) *entity.Notification
	InsuranceChanged(ctx context.Context, insurance entity.Insurance, isNew bool) *entity.Notification
	NomineeChanged(ctx context.Context, nominee entity.Nominee, isNew bool) *entity.Notification

	// RunRenewalScan scans the insurance collection against the renewal
	// settings and prepends any new reminders in one batch.
	RunRenewalScan(ctx context.Context) []entity.Notification
	// SignalInsurancesChanged schedules a debounced renewal scan.
	SignalInsurancesChanged()
	StartRenewalWatcher(ctx context.Context)
}

type notificationService struct {
	repo          notifRepo.NotificationRepository
	insuranceRepo insuranceRepo.InsuranceRepository
	redisClient   *redis.Client

	settingsMu sync.RWMutex
	settings   entity.NotificationSettings

	changed      chan struct{}
	debounce     time.Duration
	scanInterval time.Duration
	now          func() time.Time
}

func NewNotificationService(repo notifRepo.NotificationRepository, insuranceRepo insuranceRepo.InsuranceRepository, redisClient *redis.Client, debounce, scanInterval time.Duration) NotificationService {
	return &notificationService{
		repo:          repo,
		insuranceRepo: insuranceRepo,
		redisClient:   redisClient,
		settings:      entity.DefaultNotificationSettings(),
		changed:       make(chan struct{}, 1),
		debounce:      debounce,
		scanInterval:  scanInterval,
		now:           time.Now,
	}
}

func (s *notificationService) List(ctx context.Context) []entity.Notification {
	return s.repo.FindAll()
}

func (s *notificationService) Dismiss(ctx context.Context, id uuid.UUID) error {
	dismissed, err := s.repo.Dismiss(id)
	if err != nil {
		return err
	}

	// Dismissing a renewal reminder re-opens the dedup window; the next scan
	// may emit a fresh one for the same policy.
	if dismissed.Type == entity.NotificationRenewal {
		s.SignalInsurancesChanged()
	}
	return nil
}

func (s *notificationService) DismissAll(ctx context.Context) {
	s.repo.DismissAll()
}

func (s *notificationService) Settings() entity.NotificationSettings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the settings object wholesale and always emits an
// info notification acknowledging the change.
func (s *notificationService) UpdateSettings(ctx context.Context, settings entity.NotificationSettings) (*entity.Notification, error) {
	if !slices.Contains(entity.AllowedDaysInAdvance, settings.PolicyRenewal.DaysInAdvance) {
		return nil, fmt.Errorf("%w: days in advance must be one of %v", apperror.ErrInvalidInput, entity.AllowedDaysInAdvance)
	}

	s.settingsMu.Lock()
	s.settings = settings
	s.settingsMu.Unlock()

	notification := SettingsUpdatedNotification(s.now())
	s.repo.Prepend(notification)
	s.publish(ctx, notification)

	// A changed lead time can move policies in or out of the renewal window.
	s.SignalInsurancesChanged()

	return &notification, nil
}

func (s *notificationService) PropertyChanged(ctx context.Context, property entity.Property, isNew bool) *entity.Notification {
	notification := PropertyChangeNotification(property, isNew, s.Settings().PropertyUpdates, s.now())
	s.apply(ctx, notification)
	return notification
}

func (s *notificationService) InsuranceChanged(ctx context.Context, insurance entity.Insurance, isNew bool) *entity.Notification {
	notification := InsuranceChangeNotification(insurance, isNew, s.Settings().InsuranceUpdates, s.now())
	s.apply(ctx, notification)
	return notification
}

func (s *notificationService) NomineeChanged(ctx context.Context, nominee entity.Nominee, isNew bool) *entity.Notification {
	notification := NomineeChangeNotification(nominee, isNew, s.Settings().NomineeUpdates, s.now())
	s.apply(ctx, notification)
	return notification
}

func (s *notificationService) RunRenewalScan(ctx context.Context) []entity.Notification {
	insurances, err := s.insuranceRepo.FindAll(ctx)
	if err != nil {
		log.Printf("renewal scan: failed to list insurances: %v", err)
		return nil
	}

	hasReminder := func(policyID uuid.UUID) bool {
		return s.repo.HasActive(entity.NotificationRenewal, policyID)
	}
	reminders := ScanRenewals(insurances, hasReminder, s.Settings().PolicyRenewal, s.now())
	if len(reminders) == 0 {
		return nil
	}

	// The whole batch is prepended in one update so its relative order is
	// preserved instead of interleaving one-by-one.
	s.repo.Prepend(reminders...)
	for _, reminder := range reminders {
		s.publish(ctx, reminder)
	}
	return reminders
}

func (s *notificationService) SignalInsurancesChanged() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// apply prepends and publishes a notification unless gating suppressed it.
func (s *notificationService) apply(ctx context.Context, notification *entity.Notification) {
	if notification == nil {
		return
	}
	s.repo.Prepend(*notification)
	s.publish(ctx, *notification)
}

func (s *notificationService) publish(ctx context.Context, notification entity.Notification) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err == nil {
		s.redisClient.Publish(ctx, NotificationChannel, payload)
	}
}
