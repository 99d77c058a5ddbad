package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
)

// opDoneMsg is sent when a store operation returns
type opDoneMsg struct {
	err error
}

// startedMsg is sent when the startup function returns
type startedMsg struct {
	err error
}

// noticeMsg carries a store notification
type noticeMsg notice

// Init runs the startup function, if any, and starts listening for notices
func (m Model) Init() tea.Cmd {
	if m.startup == nil {
		return m.waitForNotice()
	}
	startup := m.startup
	return tea.Batch(func() tea.Msg {
		return startedMsg{err: startup(context.Background())}
	}, m.waitForNotice())
}

func (m Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.notices.ch)
	}
}

// run performs a store operation off the UI goroutine
func (m Model) run(op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: op(context.Background())}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case opDoneMsg:
		m.refresh()
		if errors.Is(msg.err, board.ErrNotAuthenticated) {
			m.message = ErrorStyle.Render("Not logged in. Run 'palette auth login'.")
		}
		if msg.err != nil {
			m.log.Debug("Operation failed", logger.F("error", msg.err))
		}
		return m, nil

	case startedMsg:
		m.starting = false
		m.refresh()
		if msg.err != nil {
			m.log.Warn("Startup failed", logger.F("error", msg.err))
		}
		return m, nil

	case noticeMsg:
		m.message = notice(msg).String()
		return m, m.waitForNotice()

	case tea.KeyMsg:
		switch m.mode {
		case ModeNewBoard, ModeRenameBoard, ModeAddColumn, ModeAddCard:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.currentBoard()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneBoards && b != nil {
			m.pane = PaneColumns
		} else {
			m.pane = PaneBoards
		}

	case key.Matches(msg, keys.Up):
		if m.pane == PaneBoards {
			m.boardCursor = clamp(m.boardCursor-1, len(m.boards))
			m.colCursor, m.cardCursor = 0, 0
		} else if m.cardCursor > 0 {
			m.cardCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.pane == PaneBoards {
			m.boardCursor = clamp(m.boardCursor+1, len(m.boards))
			m.colCursor, m.cardCursor = 0, 0
		} else if col := m.currentColumn(); col != nil {
			m.cardCursor = clamp(m.cardCursor+1, len(col.Cards))
		}

	case m.pane == PaneColumns && key.Matches(msg, keys.Left):
		if b != nil {
			m.colCursor = clamp(m.colCursor-1, len(b.Columns))
			m.cardCursor = 0
		}

	case m.pane == PaneColumns && key.Matches(msg, keys.Right):
		if b != nil {
			m.colCursor = clamp(m.colCursor+1, len(b.Columns))
			m.cardCursor = 0
		}

	case key.Matches(msg, keys.NewBoard):
		return m.startInput(ModeNewBoard, "Board name", "")

	case key.Matches(msg, keys.Refresh):
		ident, ok := m.store.Identity()
		if !ok {
			return m, nil
		}
		m.message = HelpStyle.Render("Reloading...")
		return m, m.run(func(ctx context.Context) error {
			return m.store.Load(ctx, ident)
		})
	}

	if b == nil {
		return m, nil
	}
	boardID := b.ID

	switch {
	case key.Matches(msg, keys.Rename):
		return m.startInput(ModeRenameBoard, "Rename board", b.Name)

	case key.Matches(msg, keys.Color):
		next := nextColor(b.Color)
		return m, m.run(func(ctx context.Context) error {
			return m.store.UpdateBoard(ctx, boardID, model.SetColor(next))
		})

	case key.Matches(msg, keys.Favorite):
		return m, m.run(func(ctx context.Context) error {
			return m.store.ToggleFavorite(ctx, boardID)
		})

	case key.Matches(msg, keys.Delete):
		m.mode = ModeConfirmDelete

	case key.Matches(msg, keys.AddColumn):
		return m.startInput(ModeAddColumn, "Column title", "")

	case key.Matches(msg, keys.DelColumn):
		if col := m.currentColumn(); col != nil && m.pane == PaneColumns {
			colID := col.ID
			return m, m.run(func(ctx context.Context) error {
				return m.store.DeleteColumn(ctx, boardID, colID)
			})
		}

	case key.Matches(msg, keys.AddCard):
		if m.currentColumn() != nil {
			return m.startInput(ModeAddCard, "Card title", "")
		}

	case m.pane == PaneColumns && key.Matches(msg, keys.MoveLeft):
		return m.moveCard(-1)

	case m.pane == PaneColumns && key.Matches(msg, keys.MoveRight):
		return m.moveCard(1)
	}

	return m, nil
}

// moveCard sends the selected card to the end of the neighbouring column
// and follows it there
func (m Model) moveCard(delta int) (tea.Model, tea.Cmd) {
	b := m.currentBoard()
	card := m.currentCard()
	to := m.colCursor + delta
	if b == nil || card == nil || to < 0 || to >= len(b.Columns) {
		return m, nil
	}

	boardID, fromID, toID, cardID := b.ID, b.Columns[m.colCursor].ID, b.Columns[to].ID, card.ID
	m.colCursor = to
	m.cardCursor = len(b.Columns[to].Cards)
	return m, m.run(func(ctx context.Context) error {
		return m.store.MoveCard(ctx, boardID, fromID, toID, cardID)
	})
}

func (m Model) startInput(mode Mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// updateInput handles the text prompt modes
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		m.input.SetValue("")
		if value == "" {
			return m, nil
		}
		return m, m.submit(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(mode Mode, value string) tea.Cmd {
	if mode == ModeNewBoard {
		return m.run(func(ctx context.Context) error {
			_, err := m.store.CreateBoard(ctx, value, model.DefaultColor, model.TemplateKanban)
			return err
		})
	}

	b := m.currentBoard()
	if b == nil {
		return nil
	}
	boardID := b.ID

	switch mode {
	case ModeRenameBoard:
		if value == b.Name {
			return nil
		}
		return m.run(func(ctx context.Context) error {
			return m.store.UpdateBoard(ctx, boardID, model.SetName(value))
		})

	case ModeAddColumn:
		return m.run(func(ctx context.Context) error {
			return m.store.AddColumn(ctx, boardID, value)
		})

	case ModeAddCard:
		col := m.currentColumn()
		if col == nil {
			return nil
		}
		colID := col.ID
		return m.run(func(ctx context.Context) error {
			return m.store.AddCard(ctx, boardID, colID, model.CardFields{Title: value})
		})
	}
	return nil
}

// updateConfirm handles the delete confirmation
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	b := m.currentBoard()
	if b == nil || msg.String() != "y" {
		return m, nil
	}

	boardID := b.ID
	m.pane = PaneBoards
	return m, m.run(func(ctx context.Context) error {
		return m.store.DeleteBoard(ctx, boardID)
	})
}
