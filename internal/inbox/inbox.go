// Package inbox holds the newest notifications of the current identity.
// Like the board store, local state changes only after the remote call it
// depends on has succeeded.
package inbox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// Remote persists notifications
type Remote interface {
	// ListNotifications returns up to limit notifications of userID, newest first
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	InsertNotification(ctx context.Context, row remote.NewNotificationRow) (model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	// MarkAllNotificationsRead flags every unread notification of userID
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error
}

// Options configures a Store
type Options struct {
	Limit    int
	Notifier board.Notifier
	Logger   *logger.Logger
}

// Store is the inbox of one identity at a time
type Store struct {
	remote Remote
	limit  int
	notify board.Notifier
	log    *logger.Logger

	mu       sync.Mutex
	identity *model.Identity
	items    []model.Notification
	gen      uint64
}

// New creates an empty Store
func New(r Remote, opts Options) *Store {
	if opts.Limit <= 0 {
		opts.Limit = remote.DefaultNotificationLimit
	}
	if opts.Notifier == nil {
		opts.Notifier = board.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logger.L()
	}
	return &Store{
		remote: r,
		limit:  opts.Limit,
		notify: opts.Notifier,
		log:    opts.Logger.WithFields(logger.F("component", "inbox")),
	}
}

// Load replaces the inbox with the newest notifications of ident
func (s *Store) Load(ctx context.Context, ident model.Identity) error {
	if ident.ID == "" {
		s.Clear()
		return nil
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.identity = &ident
	s.mu.Unlock()

	items, err := s.remote.ListNotifications(ctx, ident.ID, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.log.Error("Failed to load notifications", logger.F("user", ident.ID), logger.F("error", err))
		return fmt.Errorf("load notifications: %w", err)
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	s.items = append([]model.Notification(nil), items...)
	return nil
}

// Clear drops the identity and every notification
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.identity = nil
	s.items = nil
}

// Notifications returns a copy of the inbox, newest first
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.items...)
}

// UnreadCount counts the unread notifications in the inbox
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// Post adds a notification to the current identity's inbox and puts it on
// top of the local list
func (s *Store) Post(ctx context.Context, title, message string, typ model.NotificationType) (model.Notification, error) {
	s.mu.Lock()
	ident := s.identity
	gen := s.gen
	s.mu.Unlock()

	if ident == nil {
		return model.Notification{}, board.ErrNotAuthenticated
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Notification{}, fmt.Errorf("notification title required")
	}
	if typ == "" {
		typ = model.NotificationSystem
	}

	n, err := s.remote.InsertNotification(ctx, remote.NewNotificationRow{
		UserID:  ident.ID,
		Title:   title,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		return model.Notification{}, s.fail("post notification", err)
	}

	s.mu.Lock()
	if gen == s.gen {
		s.items = append([]model.Notification{n}, s.items...)
		if len(s.items) > s.limit {
			s.items = s.items[:s.limit]
		}
	}
	s.mu.Unlock()

	s.log.Info("Notification posted", logger.F("notification", n.ID))
	return n, nil
}

// MarkAsRead flags one notification as read
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	gen := s.generation()

	if err := s.remote.MarkNotificationRead(ctx, id); err != nil {
		return s.fail("mark notification as read", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
		}
	}
	return nil
}

// MarkAllAsRead flags every unread notification of the identity as read
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	s.mu.Lock()
	ident := s.identity
	gen := s.gen
	s.mu.Unlock()

	if ident == nil {
		return board.ErrNotAuthenticated
	}

	if err := s.remote.MarkAllNotificationsRead(ctx, ident.ID); err != nil {
		return s.fail("mark all notifications as read", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	for i := range s.items {
		s.items[i].Read = true
	}
	return nil
}

// Delete removes a notification
func (s *Store) Delete(ctx context.Context, id string) error {
	gen := s.generation()

	if err := s.remote.DeleteNotification(ctx, id); err != nil {
		return s.fail("delete notification", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Store) fail(action string, err error) error {
	s.log.Error("Remote call failed",
		logger.F("action", action),
		logger.F("kind", remote.KindOf(err).String()),
		logger.F("error", err))
	if remote.KindOf(err) == remote.KindPermissionDenied {
		s.notify.Error("Permission denied. Check your login status.")
	} else {
		s.notify.Error(fmt.Sprintf("Failed to %s: %s", action, err))
	}
	return fmt.Errorf("%s: %w", action, err)
}
