package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"anpere-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("Register_AssignsSequentialNumbers", func(t *testing.T) {
		env := newTestEnv(t)
		year := time.Now().Year()

		members := registerN(t, env, 3)

		assert.Equal(t, fmt.Sprintf("0001/%d", year), members[0].MemberNumber)
		assert.Equal(t, fmt.Sprintf("0002/%d", year), members[1].MemberNumber)
		assert.Equal(t, fmt.Sprintf("0003/%d", year), members[2].MemberNumber)
	})

	t.Run("Register_ForcesPendingStatus", func(t *testing.T) {
		env := newTestEnv(t)

		in := validMemberInput()
		in.Status = "active" // must be ignored on public intake

		m, err := env.memberService.Register(context.Background(), in, nil)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), m.Status)
	})

	t.Run("Register_NumberNotReusedAfterDelete", func(t *testing.T) {
		env := newTestEnv(t)
		year := time.Now().Year()

		members := registerN(t, env, 2)
		require.NoError(t, env.memberService.Delete(context.Background(), members[0].ID))

		m, err := env.memberService.Register(context.Background(), validMemberInput(), nil)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("0003/%d", year), m.MemberNumber)
	})

	t.Run("Register_IgnoresBogusStatus", func(t *testing.T) {
		env := newTestEnv(t)

		in := validMemberInput()
		in.Status = "arquivado"

		m, err := env.memberService.Register(context.Background(), in, nil)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), m.Status)
	})

	t.Run("Register_EmitsOneNotification", func(t *testing.T) {
		env := newTestEnv(t)

		m, err := env.memberService.Register(context.Background(), validMemberInput(), nil)
		require.NoError(t, err)

		notifications, total, err := env.notifyRepo.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		n := notifications[0]
		assert.Equal(t, string(domain.NotificationMemberRegistration), n.Type)
		assert.False(t, n.IsRead)
		require.NotNil(t, n.RelatedID)
		assert.Equal(t, m.ID, *n.RelatedID)
	})

	t.Run("Register_MissingFields", func(t *testing.T) {
		env := newTestEnv(t)

		in := validMemberInput()
		in.FullName = ""
		in.Email = ""

		_, err := env.memberService.Register(context.Background(), in, nil)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "full_name")
		assert.Contains(t, vErr.Fields, "email")
	})

	t.Run("Register_InvalidEnums", func(t *testing.T) {
		env := newTestEnv(t)

		in := validMemberInput()
		in.Gender = "outro"
		in.MaritalStatus = "junto"

		_, err := env.memberService.Register(context.Background(), in, nil)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "gender")
		assert.Contains(t, vErr.Fields, "marital_status")
	})
}

func TestCreate(t *testing.T) {
	t.Run("Create_HonoursExplicitStatus", func(t *testing.T) {
		env := newTestEnv(t)

		in := validMemberInput()
		in.Status = "active"

		m, err := env.memberService.Create(context.Background(), in, nil)
		require.NoError(t, err)
		assert.Equal(t, "active", m.Status)
	})

	t.Run("Create_DefaultsToPending", func(t *testing.T) {
		env := newTestEnv(t)

		m, err := env.memberService.Create(context.Background(), validMemberInput(), nil)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), m.Status)
	})
}

func TestResolvePhotoURL(t *testing.T) {
	tests := []struct {
		name     string
		newFile  string
		supplied string
		existing string
		want     string
	}{
		{"NewFileWins", "/uploads/new.jpg", "/uploads/supplied.jpg", "/uploads/old.jpg", "/uploads/new.jpg"},
		{"SuppliedBeatsExisting", "", "/uploads/supplied.jpg", "/uploads/old.jpg", "/uploads/supplied.jpg"},
		{"ExistingPreserved", "", "", "/uploads/old.jpg", "/uploads/old.jpg"},
		{"AllEmpty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePhotoURL(tt.newFile, tt.supplied, tt.existing))
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("Update_MemberNumberImmutable", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]
		original := m.MemberNumber

		in := validMemberInput()
		in.FullName = "Nome Corrigido"

		updated, err := env.memberService.Update(context.Background(), m.ID, in, nil)
		require.NoError(t, err)
		assert.Equal(t, original, updated.MemberNumber)
		assert.Equal(t, "Nome Corrigido", updated.FullName)
	})

	t.Run("Update_PreservesPhotoWithoutNewOne", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		in := validMemberInput()
		in.PhotoURL = "/uploads/foto.jpg"
		_, err := env.memberService.Update(context.Background(), m.ID, in, nil)
		require.NoError(t, err)

		// A second update without any photo reference keeps the stored one
		in2 := validMemberInput()
		updated, err := env.memberService.Update(context.Background(), m.ID, in2, nil)
		require.NoError(t, err)
		assert.Equal(t, "/uploads/foto.jpg", updated.PhotoURL)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.memberService.Update(context.Background(), 999, validMemberInput(), nil)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}

func TestListAndDelete(t *testing.T) {
	t.Run("List_FiltersByQueryAndStatus", func(t *testing.T) {
		env := newTestEnv(t)
		members := registerN(t, env, 3)

		_, err := env.memberService.Approve(context.Background(), members[0].ID, false)
		require.NoError(t, err)

		active, total, err := env.memberService.List(context.Background(),
			memberFilterOf("", "active"), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, active, 1)
		assert.Equal(t, members[0].ID, active[0].ID)

		byName, total, err := env.memberService.List(context.Background(),
			memberFilterOf("Teste 02", ""), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, byName, 1)
		assert.Equal(t, members[1].ID, byName[0].ID)
	})

	t.Run("List_MatchesMemberNumber", func(t *testing.T) {
		env := newTestEnv(t)
		members := registerN(t, env, 2)

		found, total, err := env.memberService.List(context.Background(),
			memberFilterOf(members[1].MemberNumber, ""), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, members[1].ID, found[0].ID)
	})

	t.Run("Delete_RemovesMember", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		require.NoError(t, env.memberService.Delete(context.Background(), m.ID))

		_, err := env.memberService.GetByID(context.Background(), m.ID)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.memberService.Delete(context.Background(), 42)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}
