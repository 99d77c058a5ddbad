// Package settings keeps the preferences of the current identity. A user
// without a saved row sees model.DefaultSettings.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
)

// Remote persists one settings row per user
type Remote interface {
	// GetSettings reports found=false when userID never saved settings
	GetSettings(ctx context.Context, userID string) (s model.Settings, found bool, err error)
	UpsertSettings(ctx context.Context, userID string, s model.Settings) error
}

// Store holds the settings of one identity at a time
type Store struct {
	remote Remote
	notify board.Notifier
	log    *logger.Logger

	mu       sync.Mutex
	identity *model.Identity
	current  model.Settings
	saved    bool
	gen      uint64
}

// New creates a Store holding the defaults. notifier may be nil.
func New(r Remote, notifier board.Notifier) *Store {
	if notifier == nil {
		notifier = board.Discard
	}
	return &Store{
		remote:  r,
		notify:  notifier,
		log:     logger.WithFields(logger.F("component", "settings")),
		current: model.DefaultSettings(),
	}
}

// Load fetches the settings of ident
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

	got, found, err := s.remote.GetSettings(ctx, ident.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	if err != nil {
		s.log.Error("Failed to load settings", logger.F("user", ident.ID), logger.F("error", err))
		return fmt.Errorf("load settings: %w", err)
	}
	if !found {
		got = model.DefaultSettings()
	}
	s.current, s.saved = got, found
	return nil
}

// Clear drops the identity and returns to the defaults
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.identity = nil
	s.current = model.DefaultSettings()
	s.saved = false
}

// Current returns the settings in effect
func (s *Store) Current() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Saved reports whether the identity has a stored settings row
func (s *Store) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// Save validates and upserts next, then makes it current
func (s *Store) Save(ctx context.Context, next model.Settings) error {
	s.mu.Lock()
	ident := s.identity
	gen := s.gen
	s.mu.Unlock()

	if ident == nil {
		return board.ErrNotAuthenticated
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if err := s.remote.UpsertSettings(ctx, ident.ID, next); err != nil {
		s.log.Error("Failed to save settings", logger.F("user", ident.ID), logger.F("error", err))
		s.notify.Error("Failed to save settings")
		return fmt.Errorf("save settings: %w", err)
	}

	s.mu.Lock()
	if gen == s.gen {
		s.current, s.saved = next, true
	}
	s.mu.Unlock()

	s.notify.Success("Settings saved")
	return nil
}

// Update saves the current settings with fn applied
func (s *Store) Update(ctx context.Context, fn func(*model.Settings)) error {
	next := s.Current()
	fn(&next)
	return s.Save(ctx, next)
}
