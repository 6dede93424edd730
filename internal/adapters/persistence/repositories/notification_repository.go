package repositories

import (
	"context"
	"time"

	"anpere-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a new notification
func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// GetByID gets a notification by id
func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List lists notifications newest-first with pagination
func (r *notificationRepository) List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Notification{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// CountUnread counts unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// MarkRead sets is_read and read_at on a notification
func (r *notificationRepository) MarkRead(ctx context.Context, n *models.Notification) error {
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return r.db.WithContext(ctx).
		Model(n).
		Select("is_read", "read_at").
		Updates(n).Error
}

// MarkAllRead marks every unread notification read in one statement
func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// Delete removes a notification regardless of read state
func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
