package services

import (
	"context"
	"testing"
	"time"

	"anpere-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitTestNotifications(t *testing.T, env *testEnv, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := env.notifyService.Emit(context.Background(),
			domain.NotificationMemberRegistration,
			"Nova inscrição de membro", "mensagem", "/admin/members/1", nil)
		require.NoError(t, err)
	}
}

func TestNotifications(t *testing.T) {
	t.Run("UnreadCount_TracksEmits", func(t *testing.T) {
		env := newTestEnv(t)
		emitTestNotifications(t, env, 3)

		count, err := env.notifyService.UnreadCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("MarkRead_SetsReadAtOnce", func(t *testing.T) {
		env := newTestEnv(t)
		emitTestNotifications(t, env, 1)

		notifications, _, err := env.notifyService.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		id := notifications[0].ID

		first, err := env.notifyService.MarkRead(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, first.IsRead)
		require.NotNil(t, first.ReadAt)
		readAt := *first.ReadAt

		// Marking again succeeds and keeps the original timestamp
		second, err := env.notifyService.MarkRead(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, second.IsRead)
		require.NotNil(t, second.ReadAt)
		assert.WithinDuration(t, readAt, *second.ReadAt, time.Second)

		count, err := env.notifyService.UnreadCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("MarkRead_NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.notifyService.MarkRead(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})

	t.Run("MarkAllRead", func(t *testing.T) {
		env := newTestEnv(t)
		emitTestNotifications(t, env, 4)

		require.NoError(t, env.notifyService.MarkAllRead(context.Background()))

		count, err := env.notifyService.UnreadCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Delete", func(t *testing.T) {
		env := newTestEnv(t)
		emitTestNotifications(t, env, 1)

		notifications, _, err := env.notifyService.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, notifications, 1)

		require.NoError(t, env.notifyService.Delete(context.Background(), notifications[0].ID))

		_, total, err := env.notifyService.List(context.Background(), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.notifyService.Delete(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})
}
