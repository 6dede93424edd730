package repositories

import (
	"context"

	"anpere-portal/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// MemberFilter narrows member listings
type MemberFilter struct {
	Query  string // free-text match on name, email, member number
	Status string // exact status match, empty for all
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByMemberNumber(ctx context.Context, number string) (*models.Member, error)
	List(ctx context.Context, filter MemberFilter, offset, limit int) ([]*models.Member, int64, error)
	ListAll(ctx context.Context, filter MemberFilter) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CountRegisteredInYear(ctx context.Context, year int) (int64, error)
	MaxSequenceInYear(ctx context.Context, year int) (int, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, n *models.Notification) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uint) error
}

// ContactRepository defines contact message repository interface
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, offset, limit int) ([]*models.ContactMessage, int64, error)
	Delete(ctx context.Context, id uint) error
}
