package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// ListNotifications returns the newest notifications of the token's user
func (c *Client) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	path := "/api/v1/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var items []model.Notification
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, remote.On(remote.TableNotifications, classify(remote.OpQuery, err))
	}
	return items, nil
}

// InsertNotification posts a notification
func (c *Client) InsertNotification(ctx context.Context, row remote.NewNotificationRow) (model.Notification, error) {
	var out model.Notification
	if err := c.do(ctx, http.MethodPost, "/api/v1/notifications", row, &out); err != nil {
		return model.Notification{}, remote.On(remote.TableNotifications, classify(remote.OpInsert, err))
	}
	return out, nil
}

// MarkNotificationRead flags one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/api/v1/notifications/" + url.PathEscape(id) + "/read"
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpUpdate, err))
	}
	return nil
}

// MarkAllNotificationsRead flags every unread notification of the token's user
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/notifications/read-all", nil, nil); err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpUpdate, err))
	}
	return nil
}

// DeleteNotification removes a notification
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/notifications/"+url.PathEscape(id), nil, nil); err != nil {
		return remote.On(remote.TableNotifications, classify(remote.OpDelete, err))
	}
	return nil
}

// GetSettings returns the settings of the token's user
func (c *Client) GetSettings(ctx context.Context, userID string) (model.Settings, bool, error) {
	var out struct {
		model.Settings
		Saved bool `json:"saved"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/settings", nil, &out); err != nil {
		return model.Settings{}, false, remote.On(remote.TableSettings, classify(remote.OpQuery, err))
	}
	return out.Settings, out.Saved, nil
}

// UpsertSettings replaces the settings of the token's user
func (c *Client) UpsertSettings(ctx context.Context, userID string, s model.Settings) error {
	if err := c.do(ctx, http.MethodPut, "/api/v1/settings", s, nil); err != nil {
		return remote.On(remote.TableSettings, classify(remote.OpUpdate, err))
	}
	return nil
}
