// Package tui is the interactive board browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneBoards Pane = iota
	PaneColumns
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeNewBoard
	ModeRenameBoard
	ModeAddColumn
	ModeAddCard
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	store   *board.Store
	notices *Notifier
	log     *logger.Logger

	boards []model.Board

	// startup runs once from Init; starting stays set until it returns
	startup  func(ctx context.Context) error
	starting bool

	// UI state
	width       int
	height      int
	pane        Pane
	mode        Mode
	boardCursor int
	colCursor   int
	cardCursor  int

	input textinput.Model

	message string
}

// NewModel creates a TUI model over store. notices should be the Notifier
// the store was created with.
func NewModel(store *board.Store, notices *Notifier) Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40

	if notices == nil {
		notices = NewNotifier()
	}

	m := Model{
		store:   store,
		notices: notices,
		log:     logger.WithFields(logger.F("component", "tui")),
		pane:    PaneBoards,
		input:   ti,
	}
	m.refresh()
	return m
}

// WithStartup schedules fn to run when the program starts, typically the
// first board load. The sidebar shows a loading line until it returns.
func (m Model) WithStartup(fn func(ctx context.Context) error) Model {
	m.startup = fn
	m.starting = fn != nil
	return m
}

// loading reports whether boards are still on their way
func (m *Model) loading() bool {
	return m.starting || m.store.Loading()
}

// refresh copies the store's boards and keeps cursors in range
func (m *Model) refresh() {
	m.boards = m.store.Boards()
	m.boardCursor = clamp(m.boardCursor, len(m.boards))

	b := m.currentBoard()
	if b == nil {
		m.colCursor, m.cardCursor = 0, 0
		return
	}
	m.colCursor = clamp(m.colCursor, len(b.Columns))
	if col := m.currentColumn(); col != nil {
		m.cardCursor = clamp(m.cardCursor, len(col.Cards))
	} else {
		m.cardCursor = 0
	}
}

func (m *Model) currentBoard() *model.Board {
	if m.boardCursor < len(m.boards) {
		return &m.boards[m.boardCursor]
	}
	return nil
}

func (m *Model) currentColumn() *model.Column {
	b := m.currentBoard()
	if b == nil || m.colCursor >= len(b.Columns) {
		return nil
	}
	return &b.Columns[m.colCursor]
}

func (m *Model) currentCard() *model.Card {
	col := m.currentColumn()
	if col == nil || m.cardCursor >= len(col.Cards) {
		return nil
	}
	return &col.Cards[m.cardCursor]
}
