package postgres

import "fmt"

// MaxBoardsPerUser is enforced by the boards_limit trigger
const MaxBoardsPerUser = 100

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		migrationUsers,
		migrationSessions,
		migrationBoards,
		migrationBoardLimit,
		migrationNotifications,
		migrationUserSettings,
	}

	for i, m := range migrations {
		if _, err := r.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationUsers = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(255) UNIQUE NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
`

const migrationSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    token VARCHAR(64) UNIQUE NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
`

const migrationBoards = `
CREATE TABLE IF NOT EXISTS boards (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL CHECK (btrim(name) <> ''),
    color TEXT NOT NULL DEFAULT 'coral',
    columns JSONB NOT NULL DEFAULT '[]',
    is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
    UNIQUE (user_id, name)
);

CREATE INDEX IF NOT EXISTS idx_boards_user ON boards(user_id, created_at DESC);
`

var migrationBoardLimit = fmt.Sprintf(`
CREATE OR REPLACE FUNCTION boards_limit() RETURNS trigger AS $$
BEGIN
    IF (SELECT COUNT(*) FROM boards WHERE user_id = NEW.user_id) >= %d THEN
        RAISE EXCEPTION 'board limit reached' USING ERRCODE = 'check_violation';
    END IF;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS boards_limit ON boards;
CREATE TRIGGER boards_limit BEFORE INSERT ON boards
    FOR EACH ROW EXECUTE FUNCTION boards_limit();
`, MaxBoardsPerUser)

const migrationNotifications = `
CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL CHECK (btrim(title) <> ''),
    message TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT 'system' CHECK (type IN ('reminder', 'system', 'alert')),
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC);
`

const migrationUserSettings = `
CREATE TABLE IF NOT EXISTS user_settings (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    compact_mode BOOLEAN NOT NULL DEFAULT FALSE,
    quick_capture BOOLEAN NOT NULL DEFAULT TRUE,
    morning_reminder TEXT NOT NULL DEFAULT '09:00'
        CHECK (morning_reminder ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
    evening_reminder TEXT NOT NULL DEFAULT '17:00'
        CHECK (evening_reminder ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
    reminders_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
