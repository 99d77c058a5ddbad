package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/tui"
)

func printBoards(w io.Writer, boards []model.Board, limit int) {
	fmt.Fprintf(w, "\n%s (%d/%d)\n", lipgloss.NewStyle().Bold(true).Render("Boards"), len(boards), limit)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, b := range boards {
		star := " "
		if b.IsFavorite {
			star = "★"
		}
		fmt.Fprintf(w, "  %s %s  %-8s  %-28s  %2d cols  %3d cards  %s\n",
			tui.Dot(b.Color), star, shortID(b.ID), truncate(b.Name, 28),
			len(b.Columns), b.CardCount(), b.CreatedAt.Local().Format("Jan 2"))
	}
	fmt.Fprintln(w)
}

// printBoard lists columns and cards; compact leaves out descriptions
func printBoard(w io.Writer, b model.Board, compact bool) {
	title := lipgloss.NewStyle().Bold(true).Foreground(tui.Swatch(b.Color)).Render(b.Name)
	if b.IsFavorite {
		title += " ★"
	}
	fmt.Fprintf(w, "\n%s  %s\n", title, tui.HelpStyle.Render(fmt.Sprintf("%s · %s", b.ID, b.Color)))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(b.Columns) == 0 {
		fmt.Fprintln(w, "  No columns. Add one with: palette column add BOARD TITLE")
	}

	for _, col := range b.Columns {
		fmt.Fprintf(w, "\n  %s %s  %s\n", lipgloss.NewStyle().Bold(true).Render(col.Title),
			tui.HelpStyle.Render(fmt.Sprintf("(%d)", len(col.Cards))), tui.HelpStyle.Render(shortID(col.ID)))
		for _, card := range col.Cards {
			due := ""
			if card.DueDate != nil {
				due = card.DueDate.Format("Jan 2")
				if card.IsOverdue() {
					due = tui.OverdueStyle.Render(due)
				}
			}
			fmt.Fprintf(w, "    • %-8s  %-36s  %s\n", shortID(card.ID), truncate(card.Title, 36), due)
			if card.Description != "" && !compact {
				fmt.Fprintf(w, "      %s\n", tui.HelpStyle.Render(truncate(card.Description, 60)))
			}
		}
	}
	fmt.Fprintln(w)
}

// truncate shortens s to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func printNotifications(w io.Writer, items []model.Notification, unread int) {
	fmt.Fprintf(w, "\n%s (%d unread)\n", lipgloss.NewStyle().Bold(true).Render("Notifications"), unread)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, n := range items {
		mark := "•"
		title := lipgloss.NewStyle().Bold(true).Render(truncate(n.Title, 36))
		if n.Read {
			mark = " "
			title = tui.HelpStyle.Render(truncate(n.Title, 36))
		}
		fmt.Fprintf(w, "  %s %-8s  %-8s  %s  %s\n", mark, shortID(n.ID), n.Type, title,
			tui.HelpStyle.Render(n.CreatedAt.Local().Format("Jan 2 15:04")))
		if n.Message != "" {
			fmt.Fprintf(w, "               %s\n", truncate(n.Message, 60))
		}
	}
	fmt.Fprintln(w)
}

func printSettings(w io.Writer, s model.Settings, saved bool) {
	header := lipgloss.NewStyle().Bold(true).Render("Settings")
	if !saved {
		header += tui.HelpStyle.Render("  (defaults)")
	}
	fmt.Fprintf(w, "\n%s\n", header)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  %-18s %t\n", settingCompactMode, s.CompactMode)
	fmt.Fprintf(w, "  %-18s %t\n", settingQuickCapture, s.QuickCapture)
	fmt.Fprintf(w, "  %-18s %s\n", settingMorning, s.MorningReminder)
	fmt.Fprintf(w, "  %-18s %s\n", settingEvening, s.EveningReminder)
	fmt.Fprintf(w, "  %-18s %t\n", settingReminders, s.RemindersEnabled)
	fmt.Fprintln(w)
}
