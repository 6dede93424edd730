package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/core/domain"

	"gorm.io/gorm"
)

// ContactService handles public contact messages, the other producer
// feeding the notification side channel.
type ContactService struct {
	contactRepo   repositories.ContactRepository
	notifyService *NotificationService
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repositories.ContactRepository, notifyService *NotificationService) *ContactService {
	return &ContactService{
		contactRepo:   contactRepo,
		notifyService: notifyService,
	}
}

// ContactInput carries the public contact form
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks the required fields
func (in *ContactInput) Validate() error {
	var fields []string
	if in.Name == "" {
		fields = append(fields, "name")
	}
	if in.Email == "" {
		fields = append(fields, "email")
	}
	if in.Subject == "" {
		fields = append(fields, "subject")
	}
	if in.Message == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

// Submit persists a contact message and emits a best-effort notification
func (s *ContactService) Submit(ctx context.Context, input *ContactInput) (*models.ContactMessage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, &domain.StorageError{Op: "create contact message", Err: err}
	}

	relatedID := msg.ID
	if err := s.notifyService.Emit(ctx,
		domain.NotificationContactMessage,
		"Nova mensagem de contacto",
		fmt.Sprintf("%s: %s", msg.Name, msg.Subject),
		fmt.Sprintf("/admin/contact-messages/%d", msg.ID),
		&relatedID,
	); err != nil {
		log.Printf("⚠️ Contact notification failed for message %d: %v", msg.ID, err)
	}

	return msg, nil
}

// GetByID gets a contact message by id
func (s *ContactService) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, &domain.StorageError{Op: "get contact message", Err: err}
	}
	return msg, nil
}

// List lists contact messages newest-first
func (s *ContactService) List(ctx context.Context, offset, limit int) ([]*models.ContactMessage, int64, error) {
	return s.contactRepo.List(ctx, offset, limit)
}

// Delete removes a contact message
func (s *ContactService) Delete(ctx context.Context, id uint) error {
	err := s.contactRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrContactNotFound
	}
	return err
}
