package services

import (
	"context"
	"time"

	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/core/domain"
)

// DashboardService aggregates counts for the back-office landing page
type DashboardService struct {
	memberRepo       repositories.MemberRepository
	notificationRepo repositories.NotificationRepository
	contactRepo      repositories.ContactRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo repositories.MemberRepository,
	notificationRepo repositories.NotificationRepository,
	contactRepo repositories.ContactRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		contactRepo:      contactRepo,
	}
}

// DashboardStats summarizes the portal state
type DashboardStats struct {
	MembersPending      int64 `json:"members_pending"`
	MembersActive       int64 `json:"members_active"`
	MembersInactive     int64 `json:"members_inactive"`
	UnreadNotifications int64 `json:"unread_notifications"`
	ContactMessages     int64 `json:"contact_messages"`
	RecentRegistrations int64 `json:"recent_registrations"`
}

// Stats gathers counts by status plus notification and contact totals
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.MembersPending, err = s.memberRepo.CountByStatus(ctx, string(domain.StatusPending)); err != nil {
		return nil, err
	}
	if stats.MembersActive, err = s.memberRepo.CountByStatus(ctx, string(domain.StatusActive)); err != nil {
		return nil, err
	}
	if stats.MembersInactive, err = s.memberRepo.CountByStatus(ctx, string(domain.StatusInactive)); err != nil {
		return nil, err
	}
	if stats.UnreadNotifications, err = s.notificationRepo.CountUnread(ctx); err != nil {
		return nil, err
	}

	_, contactTotal, err := s.contactRepo.List(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	stats.ContactMessages = contactTotal

	recent, err := s.recentRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	stats.RecentRegistrations = recent

	return stats, nil
}

// recentRegistrations counts members registered this calendar year
func (s *DashboardService) recentRegistrations(ctx context.Context) (int64, error) {
	return s.memberRepo.CountRegisteredInYear(ctx, time.Now().Year())
}
