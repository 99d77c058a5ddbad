package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/palette/internal/model"
)

const sidebarWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHelp(), m.renderStatusBar())
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderBoard())

	switch m.mode {
	case ModeNewBoard, ModeRenameBoard, ModeAddColumn, ModeAddCard:
		main = m.place(m.renderModal())
	case ModeConfirmDelete:
		main = m.place(m.renderConfirm())
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) place(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderSidebar() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Palette") + "\n")
	if ident, ok := m.store.Identity(); ok {
		name := ident.Name
		if name == "" {
			name = ident.ID
		}
		s.WriteString(HelpStyle.Render(truncate(name, sidebarWidth-4)) + "\n")
	} else {
		s.WriteString(HelpStyle.Render("signed out") + "\n")
	}
	s.WriteString(HelpStyle.Render(fmt.Sprintf("%d/%d boards", len(m.boards), m.store.Limit())) + "\n\n")

	if m.loading() {
		s.WriteString(HelpStyle.Render("Loading boards...") + "\n")
	}

	for i, b := range m.boards {
		cursor := "  "
		style := BoardItemStyle
		if i == m.boardCursor {
			cursor = "❯ "
			if m.pane == PaneBoards {
				style = BoardItemSelectedStyle
			}
		}
		star := " "
		if b.IsFavorite {
			star = "★"
		}
		line := fmt.Sprintf("%s%s %s %-14s %2d", cursor, Dot(b.Color), star, truncate(b.Name, 14), b.CardCount())
		s.WriteString(style.Render(line) + "\n")
	}

	if len(m.boards) == 0 && !m.loading() {
		s.WriteString(HelpStyle.Render("No boards yet.\nPress n to create one.") + "\n")
	}

	return SidebarStyle.Width(sidebarWidth).Height(max(m.height-4, 1)).Render(s.String())
}

func (m Model) renderBoard() string {
	width := max(m.width-sidebarWidth-4, 10)
	b := m.currentBoard()
	if b == nil {
		return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(HelpStyle.Render("No board selected"))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(Swatch(b.Color)).Render(b.Name)
	if b.IsFavorite {
		header += " ★"
	}

	var cols []string
	for i, col := range b.Columns {
		cols = append(cols, m.renderColumn(col, i == m.colCursor && m.pane == PaneColumns))
	}
	body := HelpStyle.Render("No columns. Press A to add one.")
	if len(cols) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(header + "\n\n" + body)
}

func (m Model) renderColumn(col model.Column, selected bool) string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Render(truncate(col.Title, 18)))
	s.WriteString(HelpStyle.Render(fmt.Sprintf(" %d", len(col.Cards))) + "\n")

	for i, card := range col.Cards {
		style := CardStyle
		prefix := "  "
		if selected && i == m.cardCursor {
			style = CardSelectedStyle
			prefix = "❯ "
		}
		line := prefix + truncate(card.Title, 18)
		if card.DueDate != nil {
			due := card.DueDate.Format("Jan 2")
			if card.IsOverdue() {
				due = OverdueStyle.Render(due)
			}
			line += " " + due
		}
		s.WriteString(style.Render(line) + "\n")
	}

	if selected {
		return ColumnSelectedStyle.Render(s.String())
	}
	return ColumnStyle.Render(s.String())
}

func (m Model) renderModal() string {
	title := map[Mode]string{
		ModeNewBoard:    "New board",
		ModeRenameBoard: "Rename board",
		ModeAddColumn:   "Add column",
		ModeAddCard:     "Add card",
	}[m.mode]

	content := HeaderStyle.Render(title) + "\n\n" + m.input.View() + "\n\n" +
		HelpStyle.Render("enter confirm • esc cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderConfirm() string {
	name := ""
	if b := m.currentBoard(); b != nil {
		name = b.Name
	}
	content := ErrorStyle.Render(fmt.Sprintf("Delete board %q?", name)) + "\n\n" +
		HelpStyle.Render("y delete • any other key cancels")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Keys") + "\n\n")
	for _, k := range helpKeys {
		h := k.Help()
		s.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
	}
	s.WriteString("\n" + HelpStyle.Render("press any key to return"))
	return lipgloss.NewStyle().Padding(1, 2).Height(max(m.height-2, 1)).Render(s.String())
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = "? help • n new board • tab switch pane • q quit"
	}
	return StatusBarStyle.Width(max(m.width, 1)).Render(left)
}
