package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// ListNotifications returns up to limit notifications of owner, newest first
func (r *Repository) ListNotifications(ctx context.Context, owner string, limit int) ([]model.Notification, error) {
	if _, err := uuid.Parse(owner); err != nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, owner, limit)
	if err != nil {
		return nil, remote.On(remote.TableNotifications, classify(remote.OpQuery, err))
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, remote.On(remote.TableNotifications, classify(remote.OpQuery, err))
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, remote.On(remote.TableNotifications, classify(remote.OpQuery, err))
	}
	return out, nil
}

// InsertNotification adds an unread notification for owner
func (r *Repository) InsertNotification(ctx context.Context, owner string, in remote.NewNotificationRow) (model.Notification, error) {
	if in.UserID != owner {
		return model.Notification{}, remote.On(remote.TableNotifications, remote.Errorf(remote.OpInsert, remote.KindPermissionDenied,
			"new row violates row-level security policy for table \"notifications\""))
	}

	n := model.Notification{
		UserID:  owner,
		Title:   strings.TrimSpace(in.Title),
		Message: in.Message,
		Type:    in.Type,
	}
	if n.Type == "" {
		n.Type = model.NotificationSystem
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		owner, n.Title, n.Message, n.Type,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return model.Notification{}, remote.On(remote.TableNotifications, classify(remote.OpInsert, err))
	}
	return n, nil
}

// MarkNotificationRead flags a notification of owner as read
func (r *Repository) MarkNotificationRead(ctx context.Context, owner, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpUpdate, err))
	}
	return r.checkOwned(ctx, remote.TableNotifications, remote.OpUpdate, res, id)
}

// MarkAllNotificationsRead flags the unread notifications of owner
func (r *Repository) MarkAllNotificationsRead(ctx context.Context, owner string) error {
	if _, err := uuid.Parse(owner); err != nil {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, owner)
	if err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpUpdate, err))
	}
	return nil
}

// DeleteNotification removes a notification of owner
func (r *Repository) DeleteNotification(ctx context.Context, owner, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpDelete, err))
	}
	return r.checkOwned(ctx, remote.TableNotifications, remote.OpDelete, res, id)
}
