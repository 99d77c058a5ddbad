package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/palette/internal/model"
)

const (
	settingCompactMode  = "compact_mode"
	settingQuickCapture = "quick_capture"
	settingMorning      = "morning_reminder"
	settingEvening      = "evening_reminder"
	settingReminders    = "reminders_enabled"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"prefs"},
	Short:   "Show your settings",
	Args:    cobra.NoArgs,
	RunE:    runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Keys:
  compact_mode       true/false, hide card descriptions in 'board show'
  quick_capture      true/false
  morning_reminder   HH:MM, 24-hour
  evening_reminder   HH:MM, 24-hour
  reminders_enabled  true/false

Examples:
  palette settings set compact_mode true
  palette settings set morning_reminder 07:30`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	return withSettings(cmd.Context(), func(a *app) error {
		printSettings(cmd.OutOrStdout(), a.prefs.Current(), a.prefs.Saved())
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	apply, err := settingSetter(strings.ToLower(args[0]), strings.TrimSpace(args[1]))
	if err != nil {
		return err
	}

	return withSettings(cmd.Context(), func(a *app) error {
		return a.prefs.Update(cmd.Context(), apply)
	})
}

// settingSetter parses value for key into an update of the settings
func settingSetter(key, value string) (func(*model.Settings), error) {
	switch key {
	case settingCompactMode, settingQuickCapture, settingReminders:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s takes true or false, not %q", key, value)
		}
		return func(s *model.Settings) {
			switch key {
			case settingCompactMode:
				s.CompactMode = b
			case settingQuickCapture:
				s.QuickCapture = b
			default:
				s.RemindersEnabled = b
			}
		}, nil

	case settingMorning, settingEvening:
		if !model.ValidReminder(value) {
			return nil, fmt.Errorf("%s %q: %w", key, value, model.ErrInvalidReminder)
		}
		return func(s *model.Settings) {
			if key == settingMorning {
				s.MorningReminder = value
			} else {
				s.EveningReminder = value
			}
		}, nil

	default:
		return nil, fmt.Errorf("unknown setting %q (want %s, %s, %s, %s or %s)", key,
			settingCompactMode, settingQuickCapture, settingMorning, settingEvening, settingReminders)
	}
}
