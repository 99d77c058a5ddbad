package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/palette/internal/inbox"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
	"github.com/existflow/palette/internal/settings"
)

var (
	_ inbox.Remote    = (*Notifications)(nil)
	_ settings.Remote = (*Settings)(nil)
)

func setupNotifications(t *testing.T) *Notifications {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	n := NewNotifications(db)
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return n
}

func post(t *testing.T, n *Notifications, userID, title string) model.Notification {
	t.Helper()
	item, err := n.InsertNotification(context.Background(), remote.NewNotificationRow{
		UserID: userID, Title: title, Type: model.NotificationReminder,
	})
	require.NoError(t, err)
	return item
}

func TestNotificationsNewestFirstWithLimit(t *testing.T) {
	n := setupNotifications(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		post(t, n, "alice", fmt.Sprintf("N%d", i))
	}
	post(t, n, "bob", "Bob's")

	items, err := n.ListNotifications(ctx, "alice", 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "N5", items[0].Title)
	assert.Equal(t, "N3", items[2].Title)
	assert.False(t, items[0].Read)
	assert.Equal(t, model.NotificationReminder, items[0].Type)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC), items[0].CreatedAt)
}

func TestMarkReadAndDelete(t *testing.T) {
	n := setupNotifications(t)
	ctx := context.Background()
	first := post(t, n, "alice", "First")
	post(t, n, "alice", "Second")
	bob := post(t, n, "bob", "Bob's")

	require.NoError(t, n.MarkNotificationRead(ctx, first.ID))
	items, err := n.ListNotifications(ctx, "alice", 20)
	require.NoError(t, err)
	assert.False(t, items[0].Read)
	assert.True(t, items[1].Read)

	require.NoError(t, n.MarkAllNotificationsRead(ctx, "alice"))
	items, err = n.ListNotifications(ctx, "alice", 20)
	require.NoError(t, err)
	for _, item := range items {
		assert.True(t, item.Read, item.Title)
	}
	bobs, err := n.ListNotifications(ctx, "bob", 20)
	require.NoError(t, err)
	assert.False(t, bobs[0].Read)

	require.NoError(t, n.DeleteNotification(ctx, bob.ID))
	require.NoError(t, n.DeleteNotification(ctx, "missing"))
	require.NoError(t, n.MarkNotificationRead(ctx, "missing"))
	bobs, err = n.ListNotifications(ctx, "bob", 20)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestNotificationConstraints(t *testing.T) {
	n := setupNotifications(t)
	ctx := context.Background()

	_, err := n.InsertNotification(ctx, remote.NewNotificationRow{UserID: "alice", Title: " "})
	assert.Equal(t, remote.KindCheckViolation, remote.KindOf(err))
	assert.ErrorContains(t, err, "insert notifications")

	_, err = n.InsertNotification(ctx, remote.NewNotificationRow{UserID: "alice", Title: "Hi", Type: "digest"})
	assert.Equal(t, remote.KindCheckViolation, remote.KindOf(err))

	_, err = n.InsertNotification(ctx, remote.NewNotificationRow{Title: "Hi"})
	assert.Equal(t, remote.KindPermissionDenied, remote.KindOf(err))

	item, err := n.InsertNotification(ctx, remote.NewNotificationRow{UserID: "alice", Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationSystem, item.Type)
}

func TestInboxOverSQLite(t *testing.T) {
	n := setupNotifications(t)
	ctx := context.Background()
	post(t, n, "local", "Morning review")

	s := inbox.New(n, inbox.Options{})
	require.NoError(t, s.Load(ctx, model.Identity{ID: "local"}))
	assert.Equal(t, 1, s.UnreadCount())

	_, err := s.Post(ctx, "Evening review", "", model.NotificationReminder)
	require.NoError(t, err)
	require.NoError(t, s.MarkAllAsRead(ctx))

	fresh := inbox.New(n, inbox.Options{})
	require.NoError(t, fresh.Load(ctx, model.Identity{ID: "local"}))
	assert.Equal(t, s.Notifications(), fresh.Notifications())
	assert.Zero(t, fresh.UnreadCount())
}

func TestSettingsUpsert(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := NewSettings(db)
	ctx := context.Background()

	got, found, err := st.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, model.DefaultSettings(), got)

	want := model.DefaultSettings()
	want.CompactMode = true
	want.MorningReminder = "06:45"
	require.NoError(t, st.UpsertSettings(ctx, "alice", want))

	want.QuickCapture = false
	require.NoError(t, st.UpsertSettings(ctx, "alice", want))

	got, found, err = st.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	bad := want
	bad.EveningReminder = "25:00"
	err = st.UpsertSettings(ctx, "alice", bad)
	assert.Equal(t, remote.KindCheckViolation, remote.KindOf(err))
	assert.ErrorContains(t, err, "update user_settings")

	s := settings.New(st, nil)
	require.NoError(t, s.Load(ctx, model.Identity{ID: "alice"}))
	assert.Equal(t, want, s.Current())
}
