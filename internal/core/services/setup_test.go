package services

import (
	"context"
	"fmt"
	"testing"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to a single connection so every query sees the
// same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// fakeMailSender records dispatched mail, failing on demand
type fakeMailSender struct {
	sent []string
	err  error
}

func (f *fakeMailSender) Send(to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

// testEnv bundles the wired services backed by one test database
type testEnv struct {
	db            *gorm.DB
	memberRepo    repositories.MemberRepository
	notifyRepo    repositories.NotificationRepository
	contactRepo   repositories.ContactRepository
	mail          *fakeMailSender
	notifyService *NotificationService
	memberService *MemberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	memberRepo := repositories.NewMemberRepository(db)
	notifyRepo := repositories.NewNotificationRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	mail := &fakeMailSender{}
	notifyService := NewNotificationService(notifyRepo)
	mailService := NewMailService(mail, "ANPERE")
	memberService := NewMemberService(memberRepo, notifyService, mailService, nil)

	return &testEnv{
		db:            db,
		memberRepo:    memberRepo,
		notifyRepo:    notifyRepo,
		contactRepo:   contactRepo,
		mail:          mail,
		notifyService: notifyService,
		memberService: memberService,
	}
}

func memberFilterOf(query, status string) repositories.MemberFilter {
	return repositories.MemberFilter{Query: query, Status: status}
}

// validMemberInput returns a complete enrollment form
func validMemberInput() *MemberInput {
	return &MemberInput{
		FullName:       "Domingos Paulo André",
		BirthDate:      "1958-03-14",
		BirthPlace:     "Malanje",
		Nationality:    "Angolana",
		Gender:         "Masculino",
		MaritalStatus:  "Casado(a)",
		DocumentNumber: "004573212LA041",
		FatherName:     "Paulo André",
		MotherName:     "Teresa Manuel",
		Occupation:     "Professor",
		Phone:          "+244 923 000 111",
		Email:          "domingos.andre@example.ao",
		Address:        "Rua da Missão, 12",
		Municipality:   "Luanda",
	}
}

// registerN registers n members through the public intake
func registerN(t *testing.T, env *testEnv, n int) []*models.Member {
	t.Helper()

	members := make([]*models.Member, 0, n)
	for i := 0; i < n; i++ {
		in := validMemberInput()
		in.FullName = fmt.Sprintf("Membro de Teste %02d", i+1)
		in.Email = fmt.Sprintf("membro%02d@example.ao", i+1)

		m, err := env.memberService.Register(context.Background(), in, nil)
		require.NoError(t, err)
		members = append(members, m)
	}
	return members
}
