package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// Settings implements the settings Remote on top of SQLite
type Settings struct {
	db  *DB
	now func() time.Time
}

// NewSettings returns a settings repository over db
func NewSettings(db *DB) *Settings {
	return &Settings{db: db, now: time.Now}
}

// GetSettings returns the row of userID; found is false when there is none
func (s *Settings) GetSettings(ctx context.Context, userID string) (model.Settings, bool, error) {
	var out model.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT compact_mode, quick_capture, morning_reminder, evening_reminder, reminders_enabled
		FROM user_settings
		WHERE user_id = ?`, userID,
	).Scan(&out.CompactMode, &out.QuickCapture, &out.MorningReminder, &out.EveningReminder, &out.RemindersEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), false, nil
	}
	if err != nil {
		return model.Settings{}, false, remote.On(remote.TableSettings, classify(remote.OpQuery, err))
	}
	return out, true, nil
}

// UpsertSettings writes the whole row of userID
func (s *Settings) UpsertSettings(ctx context.Context, userID string, in model.Settings) error {
	if userID == "" {
		return remote.On(remote.TableSettings, remote.Errorf(remote.OpUpdate, remote.KindPermissionDenied, "no owner"))
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings
			(user_id, compact_mode, quick_capture, morning_reminder, evening_reminder, reminders_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			compact_mode = excluded.compact_mode,
			quick_capture = excluded.quick_capture,
			morning_reminder = excluded.morning_reminder,
			evening_reminder = excluded.evening_reminder,
			reminders_enabled = excluded.reminders_enabled,
			updated_at = excluded.updated_at`,
		userID, in.CompactMode, in.QuickCapture, in.MorningReminder, in.EveningReminder, in.RemindersEnabled,
		s.now().UTC().Format(timeLayout))
	if err != nil {
		return remote.On(remote.TableSettings, classify(remote.OpUpdate, err))
	}
	return nil
}
