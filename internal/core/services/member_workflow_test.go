package services

import (
	"context"
	"errors"
	"testing"

	"anpere-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow(t *testing.T) {
	t.Run("Approve_ActivatesMember", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		approved, err := env.memberService.Approve(context.Background(), m.ID, false)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusActive), approved.Status)
		assert.Empty(t, env.mail.sent)
	})

	t.Run("Approve_SendsMailWhenRequested", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		_, err := env.memberService.Approve(context.Background(), m.ID, true)
		require.NoError(t, err)
		require.Len(t, env.mail.sent, 1)
		assert.Equal(t, m.Email, env.mail.sent[0])
	})

	t.Run("Approve_SucceedsWhenMailFails", func(t *testing.T) {
		env := newTestEnv(t)
		env.mail.err = errors.New("smtp down")
		m := registerN(t, env, 1)[0]

		approved, err := env.memberService.Approve(context.Background(), m.ID, true)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusActive), approved.Status)
	})

	t.Run("Reject_DeactivatesMember", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		rejected, err := env.memberService.Reject(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusInactive), rejected.Status)
	})

	t.Run("DeactivateThenReactivate", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		_, err := env.memberService.Approve(context.Background(), m.ID, false)
		require.NoError(t, err)

		deactivated, err := env.memberService.Deactivate(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusInactive), deactivated.Status)

		reactivated, err := env.memberService.Reactivate(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusActive), reactivated.Status)
	})

	t.Run("Transitions_AllowAnyStartingState", func(t *testing.T) {
		env := newTestEnv(t)
		m := registerN(t, env, 1)[0]

		// Reactivating a pending member is permitted, the console keeps
		// the last action applied
		reactivated, err := env.memberService.Reactivate(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusActive), reactivated.Status)

		rejected, err := env.memberService.Reject(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusInactive), rejected.Status)
	})

	t.Run("Workflow_NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.memberService.Approve(context.Background(), 123, false)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)

		_, err = env.memberService.Deactivate(context.Background(), 123)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}
