package services

import (
	"context"
	"errors"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/pkg/metrics"

	"gorm.io/gorm"
)

// NotificationService is the internal side channel that surfaces public
// activity (registrations, contact messages) in the back office.
//
// Emit is a best-effort contract: callers log the returned error and move
// on; it must never abort the primary operation that triggered it.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Emit creates an unread notification timestamped now
func (s *NotificationService) Emit(ctx context.Context, typ domain.NotificationType, title, message, link string, relatedID *uint) error {
	n := &models.Notification{
		Type:      string(typ),
		Title:     title,
		Message:   message,
		Link:      link,
		RelatedID: relatedID,
		IsRead:    false,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		metrics.NotificationFailures.Inc()
		return err
	}

	metrics.NotificationsTotal.WithLabelValues(string(typ)).Inc()
	return nil
}

// List lists notifications newest-first
func (s *NotificationService) List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.List(ctx, offset, limit)
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.notificationRepo.CountUnread(ctx)
}

// MarkRead marks a notification read. Marking an already-read notification
// succeeds and leaves read_at unchanged.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}

	if n.IsRead {
		return n, nil
	}

	if err := s.notificationRepo.MarkRead(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification read in one logical operation
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.notificationRepo.MarkAllRead(ctx)
}

// Delete removes a notification regardless of read state
func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	err := s.notificationRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotificationNotFound
	}
	return err
}
