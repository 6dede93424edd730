package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth tables
// ============================================================

// User represents users table (back-office accounts)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'ADMIN'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Membership tables
// ============================================================

// Member represents members table. member_number is assigned once at
// creation and never updated afterwards.
type Member struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MemberNumber string `gorm:"uniqueIndex;size:20;not null" json:"member_number"`

	FullName      string `gorm:"size:150;not null" json:"full_name"`
	BirthDate     string `gorm:"size:20" json:"birth_date"`
	BirthPlace    string `gorm:"size:100" json:"birth_place"`
	Nationality   string `gorm:"size:60" json:"nationality"`
	Gender        string `gorm:"size:20" json:"gender"`
	MaritalStatus string `gorm:"size:20" json:"marital_status"`

	DocumentNumber     string `gorm:"size:40" json:"document_number"`
	DocumentIssueDate  string `gorm:"size:20" json:"document_issue_date"`
	DocumentIssuePlace string `gorm:"size:100" json:"document_issue_place"`

	FatherName   string `gorm:"size:150" json:"father_name"`
	MotherName   string `gorm:"size:150" json:"mother_name"`
	Occupation   string `gorm:"size:100" json:"occupation"`
	WorkProvince string `gorm:"size:60" json:"work_province"`

	Phone        string `gorm:"size:30" json:"phone"`
	Email        string `gorm:"size:100" json:"email"`
	Address      string `gorm:"size:200" json:"address"`
	Municipality string `gorm:"size:100" json:"municipality"`

	PhotoURL  string `gorm:"size:255" json:"photo_url"`
	OtherInfo string `gorm:"type:text" json:"other_info"`

	Status       string    `gorm:"size:20;default:'pending';index" json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID           uint   `json:"id"`
	MemberNumber string `json:"member_number"`

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

	PhotoURL  string `json:"photo_url,omitempty"`
	OtherInfo string `json:"other_info,omitempty"`

	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:                 m.ID,
		MemberNumber:       m.MemberNumber,
		FullName:           m.FullName,
		BirthDate:          m.BirthDate,
		BirthPlace:         m.BirthPlace,
		Nationality:        m.Nationality,
		Gender:             m.Gender,
		MaritalStatus:      m.MaritalStatus,
		DocumentNumber:     m.DocumentNumber,
		DocumentIssueDate:  m.DocumentIssueDate,
		DocumentIssuePlace: m.DocumentIssuePlace,
		FatherName:         m.FatherName,
		MotherName:         m.MotherName,
		Occupation:         m.Occupation,
		WorkProvince:       m.WorkProvince,
		Phone:              m.Phone,
		Email:              m.Email,
		Address:            m.Address,
		Municipality:       m.Municipality,
		PhotoURL:           m.PhotoURL,
		OtherInfo:          m.OtherInfo,
		Status:             m.Status,
		RegisteredAt:       m.RegisteredAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ============================================================
// Notification & contact tables
// ============================================================

// Notification represents notifications table. related_id is a weak
// back-reference: the referenced row may be deleted without cascading.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Type      string     `gorm:"size:40;not null;index" json:"type"`
	Title     string     `gorm:"size:150;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Link      string     `gorm:"size:255" json:"link,omitempty"`
	RelatedID *uint      `json:"related_id,omitempty"`
	IsRead    bool       `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ContactMessage represents contact_messages table
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	Subject   string    `gorm:"size:150" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// ============================================================
// Migration
// ============================================================

// AutoMigrate migrates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Member{},
		&Notification{},
		&ContactMessage{},
	)
}
