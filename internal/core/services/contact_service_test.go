package services

import (
	"context"
	"testing"

	"anpere-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContactService(t *testing.T) (*testEnv, *ContactService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewContactService(env.contactRepo, env.notifyService)
}

func validContactInput() *ContactInput {
	return &ContactInput{
		Name:    "Maria dos Santos",
		Email:   "maria.santos@example.ao",
		Phone:   "+244 924 555 333",
		Subject: "Pedido de informação",
		Message: "Gostaria de saber como actualizar os meus dados de membro.",
	}
}

func TestContact(t *testing.T) {
	t.Run("Submit_PersistsAndNotifies", func(t *testing.T) {
		env, svc := newTestContactService(t)

		msg, err := svc.Submit(context.Background(), validContactInput())
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)

		notifications, total, err := env.notifyRepo.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		n := notifications[0]
		assert.Equal(t, string(domain.NotificationContactMessage), n.Type)
		require.NotNil(t, n.RelatedID)
		assert.Equal(t, msg.ID, *n.RelatedID)
	})

	t.Run("Submit_MissingFields", func(t *testing.T) {
		_, svc := newTestContactService(t)

		in := validContactInput()
		in.Subject = ""
		in.Message = ""

		_, err := svc.Submit(context.Background(), in)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "subject")
		assert.Contains(t, vErr.Fields, "message")
	})

	t.Run("Submit_PhoneOptional", func(t *testing.T) {
		_, svc := newTestContactService(t)

		in := validContactInput()
		in.Phone = ""

		_, err := svc.Submit(context.Background(), in)
		assert.NoError(t, err)
	})

	t.Run("GetAndDelete", func(t *testing.T) {
		_, svc := newTestContactService(t)

		msg, err := svc.Submit(context.Background(), validContactInput())
		require.NoError(t, err)

		fetched, err := svc.GetByID(context.Background(), msg.ID)
		require.NoError(t, err)
		assert.Equal(t, msg.Subject, fetched.Subject)

		require.NoError(t, svc.Delete(context.Background(), msg.ID))

		_, err = svc.GetByID(context.Background(), msg.ID)
		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		_, svc := newTestContactService(t)

		err := svc.Delete(context.Background(), 55)
		assert.ErrorIs(t, err, domain.ErrContactNotFound)
	})
}
