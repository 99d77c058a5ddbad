package db

import "fmt"

// MaxBoardsPerUser is enforced by a trigger, independently of the client cap
const MaxBoardsPerUser = 100

// migrate runs all database migrations
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateBoards,
		migrationBoardLimitTrigger,
		migrationCreateNotifications,
		migrationCreateUserSettings,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateBoards = `
CREATE TABLE IF NOT EXISTS boards (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL CHECK (length(trim(name)) > 0),
    color TEXT NOT NULL DEFAULT 'coral',
    columns TEXT NOT NULL DEFAULT '[]',
    is_favorite INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    user_id TEXT NOT NULL,
    UNIQUE (user_id, name)
);

CREATE INDEX IF NOT EXISTS idx_boards_user ON boards(user_id, created_at);
`

var migrationBoardLimitTrigger = fmt.Sprintf(`
CREATE TRIGGER IF NOT EXISTS boards_limit
BEFORE INSERT ON boards
WHEN (SELECT COUNT(*) FROM boards WHERE user_id = NEW.user_id) >= %d
BEGIN
    SELECT RAISE(ABORT, 'board limit reached');
END;
`, MaxBoardsPerUser)

const migrationCreateNotifications = `
CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL CHECK (length(trim(title)) > 0),
    message TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT 'system' CHECK (type IN ('reminder', 'system', 'alert')),
    read INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at);
`

const migrationCreateUserSettings = `
CREATE TABLE IF NOT EXISTS user_settings (
    user_id TEXT PRIMARY KEY,
    compact_mode INTEGER NOT NULL DEFAULT 0,
    quick_capture INTEGER NOT NULL DEFAULT 1,
    morning_reminder TEXT NOT NULL DEFAULT '09:00'
        CHECK (morning_reminder GLOB '[0-2][0-9]:[0-5][0-9]' AND morning_reminder < '24:00'),
    evening_reminder TEXT NOT NULL DEFAULT '17:00'
        CHECK (evening_reminder GLOB '[0-2][0-9]:[0-5][0-9]' AND evening_reminder < '24:00'),
    reminders_enabled INTEGER NOT NULL DEFAULT 1,
    updated_at TEXT NOT NULL
);
`
