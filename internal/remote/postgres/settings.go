package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// GetSettings returns the settings row of owner; found is false when the
// owner never saved any
func (r *Repository) GetSettings(ctx context.Context, owner string) (model.Settings, bool, error) {
	var s model.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT compact_mode, quick_capture, morning_reminder, evening_reminder, reminders_enabled
		FROM user_settings
		WHERE user_id = $1`, owner,
	).Scan(&s.CompactMode, &s.QuickCapture, &s.MorningReminder, &s.EveningReminder, &s.RemindersEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), false, nil
	}
	if err != nil {
		return model.Settings{}, false, remote.On(remote.TableSettings, classify(remote.OpQuery, err))
	}
	return s, true, nil
}

// UpsertSettings writes the whole settings row of owner
func (r *Repository) UpsertSettings(ctx context.Context, owner string, s model.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings
			(user_id, compact_mode, quick_capture, morning_reminder, evening_reminder, reminders_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			compact_mode = EXCLUDED.compact_mode,
			quick_capture = EXCLUDED.quick_capture,
			morning_reminder = EXCLUDED.morning_reminder,
			evening_reminder = EXCLUDED.evening_reminder,
			reminders_enabled = EXCLUDED.reminders_enabled,
			updated_at = EXCLUDED.updated_at`,
		owner, s.CompactMode, s.QuickCapture, s.MorningReminder, s.EveningReminder, s.RemindersEnabled)
	if err != nil {
		return remote.On(remote.TableSettings, classify(remote.OpUpdate, err))
	}
	return nil
}
