package board

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/existflow/palette/internal/id"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory Remote that records every call
type fakeRemote struct {
	mu      sync.Mutex
	rows    map[string]remote.BoardRow
	calls   []string
	fail    map[string]error // op -> error returned once
	nextID  int
	clock   time.Time
	gate    chan struct{} // when set, ListBoards and UpdateBoard wait on it
	entered chan string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		rows:  map[string]remote.BoardRow{},
		fail:  map[string]error{},
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if err, ok := f.fail[op]; ok {
		delete(f.fail, op)
		return err
	}
	return nil
}

func (f *fakeRemote) wait(op string) {
	if f.gate == nil {
		return
	}
	if f.entered != nil {
		f.entered <- op
	}
	<-f.gate
}

func (f *fakeRemote) failOnce(op string, kind remote.Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = remote.Errorf(op, kind, "simulated %s", kind)
}

func (f *fakeRemote) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeRemote) seed(userID, name string, cols ...model.Column) remote.BoardRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	if cols == nil {
		cols = []model.Column{}
	}
	row := remote.BoardRow{
		ID:        fmt.Sprintf("board-%d", f.nextID),
		Name:      name,
		Color:     string(model.ColorMint),
		Columns:   model.CloneColumns(cols),
		CreatedAt: f.clock,
		UserID:    userID,
	}
	f.rows[row.ID] = row
	return row
}

func (f *fakeRemote) ListBoards(ctx context.Context, userID string) ([]remote.BoardRow, error) {
	f.wait(remote.OpQuery)
	if err := f.record(remote.OpQuery); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.BoardRow
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRemote) InsertBoard(ctx context.Context, row remote.NewBoardRow) (remote.BoardRow, error) {
	if err := f.record(remote.OpInsert); err != nil {
		return remote.BoardRow{}, err
	}
	out := f.seed(row.UserID, row.Name, row.Columns...)
	f.mu.Lock()
	defer f.mu.Unlock()
	out.Color = row.Color
	out.IsFavorite = row.IsFavorite
	f.rows[out.ID] = out
	return out, nil
}

func (f *fakeRemote) UpdateBoard(ctx context.Context, id string, patch remote.BoardPatch) error {
	f.wait(remote.OpUpdate)
	if err := f.record(remote.OpUpdate); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Color != nil {
		row.Color = *patch.Color
	}
	if patch.IsFavorite != nil {
		row.IsFavorite = *patch.IsFavorite
	}
	if patch.Columns != nil {
		row.Columns = model.CloneColumns(*patch.Columns)
	}
	f.rows[id] = row
	return nil
}

func (f *fakeRemote) DeleteBoard(ctx context.Context, id string) error {
	if err := f.record(remote.OpDelete); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

// recorder collects notifier messages
type recorder struct {
	mu       sync.Mutex
	success  []string
	warnings []string
	errors   []string
}

func (r *recorder) Success(msg string) { r.mu.Lock(); r.success = append(r.success, msg); r.mu.Unlock() }
func (r *recorder) Warn(msg string)    { r.mu.Lock(); r.warnings = append(r.warnings, msg); r.mu.Unlock() }
func (r *recorder) Error(msg string)   { r.mu.Lock(); r.errors = append(r.errors, msg); r.mu.Unlock() }

var alice = model.Identity{ID: "user-alice", Name: "alice"}

func setupStore(t *testing.T, limit int) (*Store, *fakeRemote, *recorder) {
	t.Helper()
	r := newFakeRemote()
	rec := &recorder{}
	s := New(r, Options{BoardLimit: limit, Notifier: rec, IDs: id.Sequence()})
	return s, r, rec
}

func loadAs(t *testing.T, s *Store, ident model.Identity) {
	t.Helper()
	require.NoError(t, s.Load(context.Background(), ident))
}

func TestLoadOrdersNewestFirstAndTranslatesRows(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	r.seed(alice.ID, "First")
	r.seed(alice.ID, "Second")
	r.seed("user-bob", "Bob's")
	fav := r.seed(alice.ID, "Third")
	fav.IsFavorite = true
	r.rows[fav.ID] = fav

	loadAs(t, s, alice)

	boards := s.Boards()
	require.Len(t, boards, 3)
	assert.Equal(t, []string{"Third", "Second", "First"}, []string{boards[0].Name, boards[1].Name, boards[2].Name})
	assert.True(t, boards[0].IsFavorite)
	for _, b := range boards {
		assert.Equal(t, alice.ID, b.UserID)
	}
	assert.False(t, s.Loading())

	ident, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, alice, ident)
}

func TestLoadReplacesPreviousIdentity(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	r.seed(alice.ID, "Alice board")
	r.seed("user-bob", "Bob board")

	loadAs(t, s, alice)
	loadAs(t, s, model.Identity{ID: "user-bob"})

	boards := s.Boards()
	require.Len(t, boards, 1)
	assert.Equal(t, "Bob board", boards[0].Name)
}

func TestLoadFailureKeepsOnlyOwnBoards(t *testing.T) {
	s, r, rec := setupStore(t, 50)
	r.seed(alice.ID, "Alice board")
	loadAs(t, s, alice)

	r.failOnce(remote.OpQuery, remote.KindUnknown)
	err := s.Load(context.Background(), model.Identity{ID: "user-bob"})
	require.Error(t, err)

	assert.Empty(t, s.Boards())
	assert.False(t, s.Loading())
	assert.Len(t, rec.errors, 1)
}

// P6
func TestClearEmptiesWithoutRemoteCall(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	r.seed(alice.ID, "One")
	loadAs(t, s, alice)
	before := len(r.calls)

	s.Clear()

	assert.Empty(t, s.Boards())
	_, ok := s.Identity()
	assert.False(t, ok)
	assert.Equal(t, before, len(r.calls))
}

func TestLoadWithEmptyIdentityClears(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	r.seed(alice.ID, "One")
	loadAs(t, s, alice)

	require.NoError(t, s.Load(context.Background(), model.Identity{}))
	assert.Empty(t, s.Boards())
	assert.Equal(t, 1, r.callCount(remote.OpQuery))
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	r.seed(alice.ID, "Alice board")
	r.gate = make(chan struct{})
	r.entered = make(chan string, 1)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background(), alice) }()

	<-r.entered
	assert.True(t, s.Loading())
	s.Clear()
	close(r.gate)

	require.NoError(t, <-done)
	assert.Empty(t, s.Boards())
	assert.False(t, s.Loading())
}

// Scenario A
func TestCreateBoardWithoutTemplate(t *testing.T) {
	s, r, rec := setupStore(t, 50)
	r.seed(alice.ID, "Existing")
	loadAs(t, s, alice)

	b, err := s.CreateBoard(context.Background(), "Groceries", model.ColorSky, model.TemplateBasic)
	require.NoError(t, err)

	boards := s.Boards()
	require.Len(t, boards, 2)
	assert.Equal(t, b.ID, boards[0].ID)
	require.Len(t, boards[0].Columns, 1)
	assert.Equal(t, "Tasks", boards[0].Columns[0].Title)
	assert.Empty(t, boards[0].Columns[0].Cards)
	assert.Equal(t, model.ColorSky, boards[0].Color)
	assert.False(t, boards[0].IsFavorite)
	assert.Equal(t, alice.ID, boards[0].UserID)
	assert.Equal(t, []string{"Board created!"}, rec.success)
}

// P4
func TestCreateBoardTemplates(t *testing.T) {
	s, _, _ := setupStore(t, 50)
	loadAs(t, s, alice)

	kanban, err := s.CreateBoard(context.Background(), "Sprint", model.ColorCoral, model.TemplateKanban)
	require.NoError(t, err)
	require.Len(t, kanban.Columns, 3)
	for i, title := range []string{"To Do", "In Progress", "Done"} {
		assert.Equal(t, title, kanban.Columns[i].Title)
		assert.Empty(t, kanban.Columns[i].Cards)
	}
	assert.Equal(t, "col-1", kanban.Columns[0].ID)
	assert.Equal(t, "col-3", kanban.Columns[2].ID)

	other, err := s.CreateBoard(context.Background(), "Misc", model.ColorCoral, model.Template("roadmap"))
	require.NoError(t, err)
	require.Len(t, other.Columns, 1)
	assert.Equal(t, "Tasks", other.Columns[0].Title)
}

func TestCreateBoardKeepsUnknownColor(t *testing.T) {
	s, _, _ := setupStore(t, 50)
	loadAs(t, s, alice)

	b, err := s.CreateBoard(context.Background(), "Odd", model.Color("ultraviolet"), model.TemplateBasic)
	require.NoError(t, err)
	assert.Equal(t, model.Color("ultraviolet"), b.Color)
}

func TestCreateBoardRequiresIdentity(t *testing.T) {
	s, r, _ := setupStore(t, 50)

	_, err := s.CreateBoard(context.Background(), "Nope", model.ColorSky, model.TemplateBasic)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, r.callCount(remote.OpInsert))
}

// P1
func TestCreateBoardRejectsAtCap(t *testing.T) {
	s, r, rec := setupStore(t, 3)
	for i := 0; i < 3; i++ {
		r.seed(alice.ID, fmt.Sprintf("B%d", i))
	}
	loadAs(t, s, alice)

	_, err := s.CreateBoard(context.Background(), "One too many", model.ColorSky, model.TemplateBasic)
	assert.ErrorIs(t, err, ErrBoardLimit)
	assert.Zero(t, r.callCount(remote.OpInsert))
	assert.Len(t, s.Boards(), 3)
	require.Len(t, rec.warnings, 1)
	assert.Contains(t, rec.warnings[0], "Board limit reached (3)")
}

// Scenario B
func TestCreateBoardUpToCap(t *testing.T) {
	s, r, rec := setupStore(t, 2)
	r.seed(alice.ID, "Only")
	loadAs(t, s, alice)

	_, err := s.CreateBoard(context.Background(), "Last slot", model.ColorSky, model.TemplateBasic)
	require.NoError(t, err)

	_, err = s.CreateBoard(context.Background(), "Over", model.ColorSky, model.TemplateBasic)
	assert.ErrorIs(t, err, ErrBoardLimit)
	assert.Equal(t, 1, r.callCount(remote.OpInsert))
	assert.Len(t, rec.warnings, 1)
}

func TestCreateBoardRemoteFailures(t *testing.T) {
	cases := []struct {
		kind remote.Kind
		want string
	}{
		{remote.KindPermissionDenied, "Permission denied. Check your login status."},
		{remote.KindUniqueViolation, "Board with this name already exists."},
		{remote.KindCheckViolation, "Board limit reached for your account"},
		{remote.KindNotNullViolation, "Missing required fields."},
		{remote.KindUnknown, "Failed to create board: insert boards: simulated unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			s, r, rec := setupStore(t, 50)
			loadAs(t, s, alice)
			r.failOnce(remote.OpInsert, tc.kind)

			_, err := s.CreateBoard(context.Background(), "X", model.ColorSky, model.TemplateBasic)
			require.Error(t, err)
			assert.Equal(t, tc.kind, remote.KindOf(err))
			assert.Empty(t, s.Boards())
			require.Len(t, rec.errors, 1)
			assert.Contains(t, rec.errors[0], tc.want)
		})
	}
}

func TestUpdateBoardMergesOnlyGivenFields(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "Before")
	loadAs(t, s, alice)

	require.NoError(t, s.UpdateBoard(context.Background(), row.ID, model.SetName("After")))

	b, ok := s.Board(row.ID)
	require.True(t, ok)
	assert.Equal(t, "After", b.Name)
	assert.Equal(t, model.ColorMint, b.Color)
	assert.Equal(t, "After", r.rows[row.ID].Name)
}

func TestUpdateBoardUnknownLocallyStillCallsRemote(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	loadAs(t, s, alice)

	require.NoError(t, s.UpdateBoard(context.Background(), "ghost", model.SetColor(model.ColorRose)))
	assert.Equal(t, 1, r.callCount(remote.OpUpdate))
	assert.Empty(t, s.Boards())
}

func TestEmptyUpdateIsNoop(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B")
	loadAs(t, s, alice)

	require.NoError(t, s.UpdateBoard(context.Background(), row.ID, model.BoardUpdate{}))
	assert.Zero(t, r.callCount(remote.OpUpdate))
}

func TestDeleteBoard(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	keep := r.seed(alice.ID, "Keep")
	drop := r.seed(alice.ID, "Drop")
	loadAs(t, s, alice)

	require.NoError(t, s.DeleteBoard(context.Background(), drop.ID))

	boards := s.Boards()
	require.Len(t, boards, 1)
	assert.Equal(t, keep.ID, boards[0].ID)
}

// P3
func TestFailedMutationsLeaveStateUntouched(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.Column{ID: "c1", Title: "Tasks", Cards: []model.Card{{ID: "k1", Title: "one"}}}, model.NewColumn("c2", "Done"))
	loadAs(t, s, alice)
	ctx := context.Background()

	mutations := map[string]func() error{
		"update":        func() error { return s.UpdateBoard(ctx, row.ID, model.SetName("new")) },
		"toggle":        func() error { return s.ToggleFavorite(ctx, row.ID) },
		"add column":    func() error { return s.AddColumn(ctx, row.ID, "Later") },
		"rename column": func() error { return s.UpdateColumn(ctx, row.ID, "c1", "Renamed") },
		"delete column": func() error { return s.DeleteColumn(ctx, row.ID, "c1") },
		"add card":      func() error { return s.AddCard(ctx, row.ID, "c1", model.CardFields{Title: "two"}) },
		"move card":     func() error { return s.MoveCard(ctx, row.ID, "c1", "c2", "k1") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			before := s.Boards()
			r.failOnce(remote.OpUpdate, remote.KindPermissionDenied)

			err := mutate()
			require.Error(t, err)
			assert.Equal(t, remote.KindPermissionDenied, remote.KindOf(err))
			assert.Equal(t, before, s.Boards())
		})
	}

	t.Run("delete", func(t *testing.T) {
		before := s.Boards()
		r.failOnce(remote.OpDelete, remote.KindUnknown)
		require.Error(t, s.DeleteBoard(ctx, row.ID))
		assert.Equal(t, before, s.Boards())
	})
}

// Scenario D
func TestToggleFavoriteRejectedKeepsFlag(t *testing.T) {
	s, r, rec := setupStore(t, 50)
	row := r.seed(alice.ID, "B")
	loadAs(t, s, alice)
	r.failOnce(remote.OpUpdate, remote.KindPermissionDenied)

	err := s.ToggleFavorite(context.Background(), row.ID)
	require.Error(t, err)

	b, _ := s.Board(row.ID)
	assert.False(t, b.IsFavorite)
	assert.Equal(t, []string{"Permission denied. Check your login status."}, rec.errors)
}

func TestToggleFavorite(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B")
	loadAs(t, s, alice)
	ctx := context.Background()

	require.NoError(t, s.ToggleFavorite(ctx, row.ID))
	b, _ := s.Board(row.ID)
	assert.True(t, b.IsFavorite)
	assert.True(t, r.rows[row.ID].IsFavorite)

	require.NoError(t, s.ToggleFavorite(ctx, row.ID))
	b, _ = s.Board(row.ID)
	assert.False(t, b.IsFavorite)

	require.NoError(t, s.ToggleFavorite(ctx, "missing"))
	assert.Equal(t, 2, r.callCount(remote.OpUpdate))
}

func TestFavorites(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	for i := 0; i < 7; i++ {
		row := r.seed(alice.ID, fmt.Sprintf("B%d", i))
		if i != 3 {
			row.IsFavorite = true
			r.rows[row.ID] = row
		}
	}
	loadAs(t, s, alice)

	assert.Len(t, s.Favorites(5), 5)
	assert.Len(t, s.Favorites(0), 6)
	assert.Equal(t, "B6", s.Favorites(1)[0].Name)
}

func TestColumnOperations(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"))
	loadAs(t, s, alice)
	ctx := context.Background()

	require.NoError(t, s.AddColumn(ctx, row.ID, "Later"))
	b, _ := s.Board(row.ID)
	require.Len(t, b.Columns, 2)
	assert.Equal(t, "Later", b.Columns[1].Title)
	assert.Equal(t, "col-1", b.Columns[1].ID)
	assert.NotNil(t, b.Columns[1].Cards)

	require.NoError(t, s.UpdateColumn(ctx, row.ID, "c1", "Now"))
	b, _ = s.Board(row.ID)
	assert.Equal(t, "Now", b.Columns[0].Title)
	assert.Equal(t, "Later", b.Columns[1].Title)

	require.NoError(t, s.DeleteColumn(ctx, row.ID, "c1"))
	b, _ = s.Board(row.ID)
	require.Len(t, b.Columns, 1)
	assert.Equal(t, "col-1", b.Columns[0].ID)

	assert.Equal(t, b.Columns, r.rows[row.ID].Columns)
}

func TestMutationsOnUnknownBoardAreSilent(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	loadAs(t, s, alice)
	ctx := context.Background()

	assert.NoError(t, s.AddColumn(ctx, "ghost", "x"))
	assert.NoError(t, s.UpdateColumn(ctx, "ghost", "c", "x"))
	assert.NoError(t, s.DeleteColumn(ctx, "ghost", "c"))
	assert.NoError(t, s.AddCard(ctx, "ghost", "c", model.CardFields{Title: "x"}))
	assert.NoError(t, s.MoveCard(ctx, "ghost", "a", "b", "k"))
	assert.Zero(t, r.callCount(remote.OpUpdate))
}

// Scenario C
func TestAddCardToEmptyColumn(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"))
	loadAs(t, s, alice)

	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddCard(context.Background(), row.ID, "c1", model.CardFields{Title: "X", Description: "d", DueDate: &due}))

	b, _ := s.Board(row.ID)
	require.Len(t, b.Columns[0].Cards, 1)
	card := b.Columns[0].Cards[0]
	assert.Equal(t, "X", card.Title)
	assert.Equal(t, "card-1", card.ID)
	assert.Equal(t, "d", card.Description)
	assert.Equal(t, due, *card.DueDate)
}

func TestAddCardToMissingColumnPersistsUnchanged(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"))
	loadAs(t, s, alice)

	require.NoError(t, s.AddCard(context.Background(), row.ID, "nope", model.CardFields{Title: "X"}))

	b, _ := s.Board(row.ID)
	assert.Equal(t, 0, b.CardCount())
	assert.Equal(t, 1, r.callCount(remote.OpUpdate))
}

// P5
func TestMoveCardKeepsTotalAndAppends(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B",
		model.Column{ID: "todo", Title: "To Do", Cards: []model.Card{{ID: "a", Title: "A"}, {ID: "x", Title: "X"}, {ID: "b", Title: "B"}}},
		model.Column{ID: "done", Title: "Done", Cards: []model.Card{{ID: "c", Title: "C"}}},
	)
	loadAs(t, s, alice)

	require.NoError(t, s.MoveCard(context.Background(), row.ID, "todo", "done", "x"))

	b, _ := s.Board(row.ID)
	assert.Equal(t, 4, b.CardCount())
	assert.Equal(t, []string{"a", "b"}, cardIDs(b.Columns[0]))
	assert.Equal(t, []string{"c", "x"}, cardIDs(b.Columns[1]))
}

func TestMoveCardWithinSameColumnGoesToEnd(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B",
		model.Column{ID: "todo", Cards: []model.Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
	)
	loadAs(t, s, alice)

	require.NoError(t, s.MoveCard(context.Background(), row.ID, "todo", "todo", "a"))

	b, _ := s.Board(row.ID)
	assert.Equal(t, []string{"b", "c", "a"}, cardIDs(b.Columns[0]))
}

func TestMoveCardNoops(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B",
		model.Column{ID: "todo", Cards: []model.Card{{ID: "a"}}},
		model.Column{ID: "done", Cards: []model.Card{{ID: "z"}}},
	)
	loadAs(t, s, alice)
	ctx := context.Background()

	require.NoError(t, s.MoveCard(ctx, row.ID, "todo", "done", "z"))
	require.NoError(t, s.MoveCard(ctx, row.ID, "todo", "gone", "a"))
	assert.Zero(t, r.callCount(remote.OpUpdate))

	b, _ := s.Board(row.ID)
	assert.Equal(t, []string{"a"}, cardIDs(b.Columns[0]))
}

// A move into a column that does not exist keeps the card in its source
// column. Removing the card first and then appending it to a missing
// column would lose it, so no columns value is built at all.
func TestMoveCardToMissingColumnKeepsCard(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B",
		model.Column{ID: "todo", Cards: []model.Card{{ID: "a"}, {ID: "b"}}},
	)
	loadAs(t, s, alice)

	require.NoError(t, s.MoveCard(context.Background(), row.ID, "todo", "archived", "a"))
	assert.Zero(t, r.callCount(remote.OpUpdate))

	b, _ := s.Board(row.ID)
	assert.Equal(t, []string{"a", "b"}, cardIDs(b.Columns[0]))
	assert.Equal(t, 2, b.CardCount())
}

// P2: every successful mutation leaves the local board equal to the remote row
func TestLocalMatchesRemoteAfterSuccess(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"), model.NewColumn("c2", "Done"))
	loadAs(t, s, alice)
	ctx := context.Background()

	steps := []func() error{
		func() error { return s.AddCard(ctx, row.ID, "c1", model.CardFields{Title: "one"}) },
		func() error { return s.AddCard(ctx, row.ID, "c1", model.CardFields{Title: "two"}) },
		func() error { return s.MoveCard(ctx, row.ID, "c1", "c2", "card-1") },
		func() error { return s.AddColumn(ctx, row.ID, "Later") },
		func() error { return s.UpdateColumn(ctx, row.ID, "c2", "Finished") },
		func() error { return s.UpdateBoard(ctx, row.ID, model.SetColor(model.ColorPeach)) },
		func() error { return s.ToggleFavorite(ctx, row.ID) },
	}
	for _, step := range steps {
		require.NoError(t, step())
		local, _ := s.Board(row.ID)
		assert.Equal(t, r.rows[row.ID].ToBoard(), local)
	}
}

func TestReturnedBoardsAreCopies(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.Column{ID: "c1", Cards: []model.Card{{ID: "a", Title: "A"}}})
	loadAs(t, s, alice)

	boards := s.Boards()
	boards[0].Name = "hacked"
	boards[0].Columns[0].Cards[0].Title = "hacked"

	b, _ := s.Board(row.ID)
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, "A", b.Columns[0].Cards[0].Title)
}

// Two overlapping card additions both derive from the same snapshot, so
// one of them is lost locally and remotely.
func TestOverlappingMutationsAreLastWriterWins(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"))
	loadAs(t, s, alice)

	r.gate = make(chan struct{})
	r.entered = make(chan string, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = s.AddCard(ctx, row.ID, "c1", model.CardFields{Title: "first"}) }()
	<-r.entered
	go func() { defer wg.Done(); _ = s.AddCard(ctx, row.ID, "c1", model.CardFields{Title: "second"}) }()
	<-r.entered

	r.gate <- struct{}{}
	r.gate <- struct{}{}
	wg.Wait()

	b, _ := s.Board(row.ID)
	assert.Len(t, b.Columns[0].Cards, 1)
	assert.Len(t, r.rows[row.ID].Columns[0].Cards, 1)
	assert.Equal(t, 2, r.callCount(remote.OpUpdate))
}

func TestMutationAfterIdentityChangeSkipsLocalPatch(t *testing.T) {
	s, r, _ := setupStore(t, 50)
	row := r.seed(alice.ID, "B", model.NewColumn("c1", "Tasks"))
	loadAs(t, s, alice)

	r.gate = make(chan struct{})
	r.entered = make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- s.AddCard(context.Background(), row.ID, "c1", model.CardFields{Title: "late"}) }()

	<-r.entered
	s.Clear()
	close(r.gate)

	require.NoError(t, <-done)
	assert.Empty(t, s.Boards())
	assert.Len(t, r.rows[row.ID].Columns[0].Cards, 1)
}

func TestMessage(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "Failed to delete board: boom", Message("delete board", err))
}

func cardIDs(c model.Column) []string {
	ids := make([]string, 0, len(c.Cards))
	for _, card := range c.Cards {
		ids = append(ids, card.ID)
	}
	return ids
}
