package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/pkg/metrics"
	"anpere-portal/internal/storage"

	"gorm.io/gorm"
)

// MemberService handles the member lifecycle: public registration intake,
// the admin console CRUD, and the status workflow (member_workflow.go).
type MemberService struct {
	memberRepo    repositories.MemberRepository
	notifyService *NotificationService
	mailService   *MailService
	photoStore    storage.PhotoStore
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	notifyService *NotificationService,
	mailService *MailService,
	photoStore storage.PhotoStore,
) *MemberService {
	return &MemberService{
		memberRepo:    memberRepo,
		notifyService: notifyService,
		mailService:   mailService,
		photoStore:    photoStore,
	}
}

// MemberInput carries the full registration form. The same payload backs
// public intake and the admin console create/update forms.
type MemberInput struct {
	FullName      string `json:"full_name"`
	BirthDate     string `json:"birth_date"`
	BirthPlace    string `json:"birth_place"`
	Nationality   string `json:"nationality"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`

	DocumentNumber     string `json:"document_number"`
	DocumentIssueDate  string `json:"document_issue_date"`
	DocumentIssuePlace string `json:"document_issue_place"`

	FatherName   string `json:"father_name"`
	MotherName   string `json:"mother_name"`
	Occupation   string `json:"occupation"`
	WorkProvince string `json:"work_province"`

	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Municipality string `json:"municipality"`

	PhotoURL  string `json:"photo_url"`
	OtherInfo string `json:"other_info"`

	// Status is honoured only on admin create/update, never on public
	// intake. Empty means pending on create, unchanged on update.
	Status string `json:"status"`
}

// Validate checks the required field set and the closed enums. It returns
// a *domain.ValidationError naming every offending field.
func (in *MemberInput) Validate() error {
	var fields []string

	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"birth_date", in.BirthDate},
		{"birth_place", in.BirthPlace},
		{"nationality", in.Nationality},
		{"gender", in.Gender},
		{"marital_status", in.MaritalStatus},
		{"document_number", in.DocumentNumber},
		{"father_name", in.FatherName},
		{"mother_name", in.MotherName},
		{"occupation", in.Occupation},
		{"phone", in.Phone},
		{"email", in.Email},
		{"address", in.Address},
		{"municipality", in.Municipality},
	}
	for _, f := range required {
		if f.value == "" {
			fields = append(fields, f.name)
		}
	}

	if in.Gender != "" && !domain.Gender(in.Gender).Valid() {
		fields = append(fields, "gender")
	}
	if in.MaritalStatus != "" && !domain.MaritalStatus(in.MaritalStatus).Valid() {
		fields = append(fields, "marital_status")
	}
	if in.Status != "" && !domain.MemberStatus(in.Status).Valid() {
		fields = append(fields, "status")
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

// apply copies the form values onto a member record. Member number and
// status are handled by the callers, never here.
func (in *MemberInput) apply(m *models.Member) {
	m.FullName = in.FullName
	m.BirthDate = in.BirthDate
	m.BirthPlace = in.BirthPlace
	m.Nationality = in.Nationality
	m.Gender = in.Gender
	m.MaritalStatus = in.MaritalStatus
	m.DocumentNumber = in.DocumentNumber
	m.DocumentIssueDate = in.DocumentIssueDate
	m.DocumentIssuePlace = in.DocumentIssuePlace
	m.FatherName = in.FatherName
	m.MotherName = in.MotherName
	m.Occupation = in.Occupation
	m.WorkProvince = in.WorkProvince
	m.Phone = in.Phone
	m.Email = in.Email
	m.Address = in.Address
	m.Municipality = in.Municipality
	m.OtherInfo = in.OtherInfo
}

// ResolvePhotoURL decides which photo reference a saved record keeps.
// Precedence: freshly stored file, then an explicit reference in the
// payload, then the value already stored. An update without a new photo
// must never drop the existing one.
func ResolvePhotoURL(newFileURL, suppliedURL, existingURL string) string {
	if newFileURL != "" {
		return newFileURL
	}
	if suppliedURL != "" {
		return suppliedURL
	}
	return existingURL
}

// savePhoto stores an uploaded photo and returns its URL. A nil header
// or missing store yields the empty string.
func (s *MemberService) savePhoto(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if header == nil || s.photoStore == nil {
		return "", nil
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded photo: %w", err)
	}
	defer file.Close()

	return s.photoStore.Save(ctx, file, header)
}

// allocateMemberNumber assigns the next per-year sequence, e.g. "0017/2026".
// Allocation follows the highest sequence ever issued, not the row count,
// so a deleted member never causes a number to be reissued.
func (s *MemberService) allocateMemberNumber(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()
	maxSeq, err := s.memberRepo.MaxSequenceInYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d/%d", maxSeq+1, year), nil
}

// Register handles the public intake. Status is forced to pending no
// matter what the payload carries, and the member_registration
// notification is emitted best-effort after the member write.
func (s *MemberService) Register(ctx context.Context, input *MemberInput, photo *multipart.FileHeader) (*models.Member, error) {
	// The public form carries no status field; whatever the payload
	// claims is discarded, not rejected.
	input.Status = ""
	if err := input.Validate(); err != nil {
		return nil, err
	}

	photoURL, err := s.savePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := s.allocateMemberNumber(ctx, now)
	if err != nil {
		return nil, &domain.StorageError{Op: "allocate member number", Err: err}
	}

	member := &models.Member{
		MemberNumber: number,
		PhotoURL:     ResolvePhotoURL(photoURL, input.PhotoURL, ""),
		Status:       string(domain.StatusPending),
		RegisteredAt: now,
	}
	input.apply(member)

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, &domain.StorageError{Op: "create member", Err: err}
	}

	metrics.RegistrationsTotal.Inc()

	// Best-effort: the registration already succeeded, a notification
	// failure is logged and swallowed.
	relatedID := member.ID
	if err := s.notifyService.Emit(ctx,
		domain.NotificationMemberRegistration,
		"Nova inscrição de membro",
		fmt.Sprintf("%s submeteu uma inscrição (nº %s)", member.FullName, member.MemberNumber),
		fmt.Sprintf("/admin/members/%d", member.ID),
		&relatedID,
	); err != nil {
		log.Printf("⚠️ Registration notification failed for member %d: %v", member.ID, err)
	}

	log.Printf("✅ Member registered: %s (%s)", member.FullName, member.MemberNumber)
	return member, nil
}

// Create handles admin-side member creation. The same required set applies;
// an explicit valid status is honoured, defaulting to pending.
func (s *MemberService) Create(ctx context.Context, input *MemberInput, photo *multipart.FileHeader) (*models.Member, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	photoURL, err := s.savePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := s.allocateMemberNumber(ctx, now)
	if err != nil {
		return nil, &domain.StorageError{Op: "allocate member number", Err: err}
	}

	status := domain.StatusPending
	if input.Status != "" {
		status = domain.MemberStatus(input.Status)
	}

	member := &models.Member{
		MemberNumber: number,
		PhotoURL:     ResolvePhotoURL(photoURL, input.PhotoURL, ""),
		Status:       string(status),
		RegisteredAt: now,
	}
	input.apply(member)

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, &domain.StorageError{Op: "create member", Err: err}
	}

	log.Printf("✅ Member created by admin: %s (%s)", member.FullName, member.MemberNumber)
	return member, nil
}

// GetByID gets a member by internal id
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, &domain.StorageError{Op: "get member", Err: err}
	}
	return member, nil
}

// List lists members with free-text and status filtering
func (s *MemberService) List(ctx context.Context, filter repositories.MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, filter, offset, limit)
}

// Update applies the full form to an existing member. Member number is
// immutable; the photo reference follows ResolvePhotoURL so it is never
// dropped implicitly.
func (s *MemberService) Update(ctx context.Context, id uint, input *MemberInput, photo *multipart.FileHeader) (*models.Member, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.savePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	input.apply(member)
	member.PhotoURL = ResolvePhotoURL(photoURL, input.PhotoURL, member.PhotoURL)
	if input.Status != "" {
		member.Status = input.Status
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, &domain.StorageError{Op: "update member", Err: err}
	}
	return member, nil
}

// Delete hard-deletes a member
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	err := s.memberRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMemberNotFound
	}
	if err != nil {
		return &domain.StorageError{Op: "delete member", Err: err}
	}

	log.Printf("🗑 Member %d deleted", id)
	return nil
}
