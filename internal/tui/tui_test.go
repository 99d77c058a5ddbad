package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/db"
	"github.com/existflow/palette/internal/model"
)

func setupModel(t *testing.T) (Model, *board.Store) {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	notices := NewNotifier()
	store := board.New(db.NewBoards(database), board.Options{Notifier: notices})
	require.NoError(t, store.Load(context.Background(), model.Identity{ID: "local", Name: "local"}))

	m := NewModel(store, notices)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}, false)
	return m, store
}

// step sends msg and, when run is set, executes the resulting command and
// feeds its message back in
func step(t *testing.T, m Model, msg tea.Msg, run bool) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)
	if run {
		require.NotNil(t, cmd)
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = step(t, m, keyPress(string(r)), false)
	}
	return m
}

func TestCreateBoardFromPrompt(t *testing.T) {
	m, store := setupModel(t)

	m = step(t, m, keyPress("n"), false)
	assert.Equal(t, ModeNewBoard, m.mode)

	m = typeText(t, m, "Roadmap")
	m = step(t, m, keyPress("enter"), true)

	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.boards, 1)
	assert.Equal(t, "Roadmap", m.boards[0].Name)
	assert.Len(t, m.boards[0].Columns, 3)
	assert.Len(t, store.Boards(), 1)
	assert.Contains(t, m.View(), "Roadmap")
}

func TestEscapeCancelsPrompt(t *testing.T) {
	m, store := setupModel(t)

	m = step(t, m, keyPress("n"), false)
	m = typeText(t, m, "Nope")
	m = step(t, m, keyPress("esc"), false)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, store.Boards())
}

func TestFavoriteColorAndRename(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.CreateBoard(context.Background(), "Roadmap", model.ColorCoral, model.TemplateBasic)
	require.NoError(t, err)
	m.refresh()

	m = step(t, m, keyPress("f"), true)
	assert.True(t, m.boards[0].IsFavorite)

	m = step(t, m, keyPress("c"), true)
	assert.Equal(t, model.ColorLavender, m.boards[0].Color)

	m = step(t, m, keyPress("r"), false)
	assert.Equal(t, "Roadmap", m.input.Value())
	m = typeText(t, m, " 2")
	m = step(t, m, keyPress("enter"), true)
	assert.Equal(t, "Roadmap 2", m.boards[0].Name)
}

func TestCardsAndColumns(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.CreateBoard(context.Background(), "Roadmap", model.ColorSky, model.TemplateKanban)
	require.NoError(t, err)
	m.refresh()

	m = step(t, m, keyPress("tab"), false)
	assert.Equal(t, PaneColumns, m.pane)

	m = step(t, m, keyPress("a"), false)
	m = typeText(t, m, "Write docs")
	m = step(t, m, keyPress("enter"), true)
	require.Len(t, m.boards[0].Columns[0].Cards, 1)

	m = step(t, m, keyPress(">"), true)
	assert.Empty(t, m.boards[0].Columns[0].Cards)
	require.Len(t, m.boards[0].Columns[1].Cards, 1)
	assert.Equal(t, 1, m.colCursor)
	assert.Equal(t, 0, m.cardCursor)

	m = step(t, m, keyPress("A"), false)
	m = typeText(t, m, "Blocked")
	m = step(t, m, keyPress("enter"), true)
	require.Len(t, m.boards[0].Columns, 4)
	assert.Equal(t, "Blocked", m.boards[0].Columns[3].Title)

	m = step(t, m, keyPress("X"), true)
	assert.Len(t, m.boards[0].Columns, 3)
	assert.Empty(t, m.boards[0].Columns[1].Cards, "deleting a column drops its cards")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, store := setupModel(t)
	_, err := store.CreateBoard(context.Background(), "Roadmap", model.ColorSky, model.TemplateBasic)
	require.NoError(t, err)
	m.refresh()

	m = step(t, m, keyPress("D"), false)
	assert.Equal(t, ModeConfirmDelete, m.mode)
	m = step(t, m, keyPress("n"), false)
	assert.Len(t, store.Boards(), 1)

	m = step(t, m, keyPress("D"), false)
	m = step(t, m, keyPress("y"), true)
	assert.Empty(t, m.boards)
	assert.Empty(t, store.Boards())
}

func TestStartupLoadRunsFromInit(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	ident := model.Identity{ID: "local", Name: "local"}
	seed := board.New(db.NewBoards(database), board.Options{})
	require.NoError(t, seed.Load(context.Background(), ident))
	_, err = seed.CreateBoard(context.Background(), "Roadmap", model.ColorMint, model.TemplateKanban)
	require.NoError(t, err)

	notices := NewNotifier()
	store := board.New(db.NewBoards(database), board.Options{Notifier: notices})
	m := NewModel(store, notices).WithStartup(func(ctx context.Context) error {
		return store.Load(ctx, ident)
	})
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}, false)

	assert.Contains(t, m.View(), "Loading boards...")
	assert.NotContains(t, m.View(), "No boards yet.")

	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	m = step(t, m, batch[0](), false)
	assert.NotContains(t, m.View(), "Loading boards...")
	require.Len(t, m.boards, 1)
	assert.Equal(t, "Roadmap", m.boards[0].Name)
}

func TestNoticesReachStatusBar(t *testing.T) {
	m, _ := setupModel(t)

	m.notices.Warn("Board limit reached (50). Delete old boards to create new ones.")
	cmd := m.Init()
	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.Contains(t, m.View(), "Board limit reached (50)")
}

func TestNextColorWraps(t *testing.T) {
	assert.Equal(t, model.ColorLavender, nextColor(model.ColorCoral))
	assert.Equal(t, model.ColorCoral, nextColor(model.ColorRose))
	assert.Equal(t, model.ColorCoral, nextColor(model.Color("teal")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
