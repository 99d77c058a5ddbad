package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// Notifications implements the inbox Remote on top of SQLite
type Notifications struct {
	db  *DB
	now func() time.Time
}

// NewNotifications returns a notification repository over db
func NewNotifications(db *DB) *Notifications {
	return &Notifications{db: db, now: time.Now}
}

// ListNotifications returns up to limit notifications of userID, newest first
func (n *Notifications) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	rows, err := n.db.QueryContext(ctx, `
		SELECT id, user_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, n.classify(remote.OpQuery, err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var item model.Notification
		var created string
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Message, &item.Type, &item.Read, &created); err != nil {
			return nil, n.classify(remote.OpQuery, err)
		}
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, remote.On(remote.TableNotifications, remote.Wrap(remote.OpQuery, remote.KindUnknown,
				fmt.Errorf("decode created_at of notification %s: %w", item.ID, err)))
		}
		item.CreatedAt = t
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, n.classify(remote.OpQuery, err)
	}
	return out, nil
}

// InsertNotification stores an unread notification
func (n *Notifications) InsertNotification(ctx context.Context, in remote.NewNotificationRow) (model.Notification, error) {
	if in.UserID == "" {
		return model.Notification{}, remote.On(remote.TableNotifications,
			remote.Errorf(remote.OpInsert, remote.KindPermissionDenied, "no owner"))
	}

	item := model.Notification{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		Type:      in.Type,
		CreatedAt: n.now().UTC(),
	}
	if item.Type == "" {
		item.Type = model.NotificationSystem
	}

	_, err := n.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		item.ID, item.UserID, item.Title, item.Message, item.Type, item.CreatedAt.Format(timeLayout))
	if err != nil {
		return model.Notification{}, n.classify(remote.OpInsert, err)
	}
	return item, nil
}

// MarkNotificationRead flags one notification. A missing one is not an error.
func (n *Notifications) MarkNotificationRead(ctx context.Context, id string) error {
	if _, err := n.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id); err != nil {
		return n.classify(remote.OpUpdate, err)
	}
	return nil
}

// MarkAllNotificationsRead flags the unread notifications of userID
func (n *Notifications) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := n.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID)
	if err != nil {
		return n.classify(remote.OpUpdate, err)
	}
	return nil
}

// DeleteNotification removes a notification. A missing one is not an error.
func (n *Notifications) DeleteNotification(ctx context.Context, id string) error {
	if _, err := n.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id); err != nil {
		return n.classify(remote.OpDelete, err)
	}
	return nil
}

func (n *Notifications) classify(op string, err error) error {
	return remote.On(remote.TableNotifications, classify(op, err))
}
