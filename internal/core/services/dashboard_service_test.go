package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.memberRepo, env.notifyRepo, env.contactRepo)
	contactService := NewContactService(env.contactRepo, env.notifyService)

	members := registerN(t, env, 4)

	_, err := env.memberService.Approve(context.Background(), members[0].ID, false)
	require.NoError(t, err)
	_, err = env.memberService.Reject(context.Background(), members[1].ID)
	require.NoError(t, err)

	_, err = contactService.Submit(context.Background(), validContactInput())
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.MembersPending)
	assert.Equal(t, int64(1), stats.MembersActive)
	assert.Equal(t, int64(1), stats.MembersInactive)
	assert.Equal(t, int64(1), stats.ContactMessages)
	assert.Equal(t, int64(4), stats.RecentRegistrations)
	// 4 registrations plus 1 contact message, none read yet
	assert.Equal(t, int64(5), stats.UnreadNotifications)
}
