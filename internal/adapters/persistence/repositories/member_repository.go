package repositories

import (
	"context"
	"strconv"
	"strings"

	"anpere-portal/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by internal id
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByMemberNumber gets a member by its human-readable number
func (r *memberRepository) GetByMemberNumber(ctx context.Context, number string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("member_number = ?", number).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// filtered applies a MemberFilter to a query
func (r *memberRepository) filtered(ctx context.Context, filter MemberFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Member{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("full_name LIKE ? OR email LIKE ? OR member_number LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

// List lists members with pagination
func (r *memberRepository) List(ctx context.Context, filter MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	q := r.filtered(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListAll lists every member matching the filter, ordered by member number.
// Used by the document generator.
func (r *memberRepository) ListAll(ctx context.Context, filter MemberFilter) ([]*models.Member, error) {
	var members []*models.Member
	err := r.filtered(ctx, filter).
		Order("member_number ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Update saves all member fields
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// UpdateStatus updates only status and updated_at in a single statement
func (r *memberRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a member
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRegisteredInYear counts members registered in the given year.
// Used for member number allocation.
func (r *memberRepository) CountRegisteredInYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("member_number LIKE ?", "%/"+strconv.Itoa(year)).
		Count(&count).Error
	return count, err
}

// MaxSequenceInYear returns the highest per-year sequence already issued,
// zero when no member holds a number for the year. Deleted members leave
// gaps; the sequence never steps back into one.
func (r *memberRepository) MaxSequenceInYear(ctx context.Context, year int) (int, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("member_number LIKE ?", "%/"+strconv.Itoa(year)).
		Pluck("member_number", &numbers).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, number := range numbers {
		seq, _, ok := strings.Cut(number, "/")
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(seq); err == nil && v > max {
			max = v
		}
	}
	return max, nil
}

// CountByStatus counts members with the given status
func (r *memberRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
