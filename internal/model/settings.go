package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidReminder is returned for reminder times not in HH:MM form
var ErrInvalidReminder = errors.New("reminder time must be HH:MM")

// Settings are the per-user preferences
type Settings struct {
	CompactMode      bool   `json:"compact_mode"`
	QuickCapture     bool   `json:"quick_capture"`
	MorningReminder  string `json:"morning_reminder"`
	EveningReminder  string `json:"evening_reminder"`
	RemindersEnabled bool   `json:"reminders_enabled"`
}

// DefaultSettings applies to users that never saved any
func DefaultSettings() Settings {
	return Settings{
		CompactMode:      false,
		QuickCapture:     true,
		MorningReminder:  "09:00",
		EveningReminder:  "17:00",
		RemindersEnabled: true,
	}
}

// Validate checks the reminder times
func (s Settings) Validate() error {
	if !ValidReminder(s.MorningReminder) {
		return fmt.Errorf("morning reminder %q: %w", s.MorningReminder, ErrInvalidReminder)
	}
	if !ValidReminder(s.EveningReminder) {
		return fmt.Errorf("evening reminder %q: %w", s.EveningReminder, ErrInvalidReminder)
	}
	return nil
}

// ValidReminder reports whether v is a 24-hour HH:MM time
func ValidReminder(v string) bool {
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
