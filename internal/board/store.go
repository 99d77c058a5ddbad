// Package board holds the in-memory board collection of the current
// identity and keeps it in step with a Remote Store. Local state changes
// only after the remote call it depends on has succeeded.
package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/palette/internal/id"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// DefaultBoardLimit is used when Options.BoardLimit is not set
const DefaultBoardLimit = 50

// Remote is the persistence service the Store mirrors. Boards are the only
// unit sent over it; column and card changes travel as a full columns value.
type Remote interface {
	// ListBoards returns every board owned by userID, newest first
	ListBoards(ctx context.Context, userID string) ([]remote.BoardRow, error)
	InsertBoard(ctx context.Context, row remote.NewBoardRow) (remote.BoardRow, error)
	UpdateBoard(ctx context.Context, id string, patch remote.BoardPatch) error
	DeleteBoard(ctx context.Context, id string) error
}

// Options configures a Store
type Options struct {
	BoardLimit int
	Notifier   Notifier
	Logger     *logger.Logger
	IDs        id.Generator
}

// Store is the board collection of one identity at a time.
//
// The mutex guards local state only and is never held across a remote
// call, so overlapping mutations of the same board are last-writer-wins.
type Store struct {
	remote Remote
	limit  int
	notify Notifier
	log    *logger.Logger
	newID  id.Generator

	mu       sync.Mutex
	identity *model.Identity
	boards   []model.Board
	loading  bool
	gen      uint64 // bumped on every Load and Clear
}

// New creates an empty Store with no identity
func New(r Remote, opts Options) *Store {
	if opts.BoardLimit <= 0 {
		opts.BoardLimit = DefaultBoardLimit
	}
	if opts.Notifier == nil {
		opts.Notifier = Discard
	}
	if opts.Logger == nil {
		opts.Logger = logger.L()
	}
	if opts.IDs == nil {
		opts.IDs = id.Generate
	}
	return &Store{
		remote: r,
		limit:  opts.BoardLimit,
		notify: opts.Notifier,
		log:    opts.Logger.WithFields(logger.F("component", "board-store")),
		newID:  opts.IDs,
	}
}

// Load replaces the collection with the boards of ident. A Load that is
// superseded by another Load or Clear before it resolves is dropped.
func (s *Store) Load(ctx context.Context, ident model.Identity) error {
	if ident.ID == "" {
		s.Clear()
		return nil
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.identity = &ident
	s.loading = true
	s.mu.Unlock()

	s.log.Debug("Loading boards", logger.F("user", ident.ID))
	rows, err := s.remote.ListBoards(ctx, ident.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("Discarding superseded load", logger.F("user", ident.ID))
		return nil
	}
	s.loading = false

	if err != nil {
		s.boards = ownedBy(s.boards, ident.ID)
		s.log.Error("Failed to load boards", logger.F("user", ident.ID), logger.F("error", err))
		s.notify.Error(fmt.Sprintf("Failed to load boards: %s", err))
		return fmt.Errorf("load boards: %w", err)
	}

	boards := make([]model.Board, 0, len(rows))
	for _, row := range rows {
		if row.UserID != ident.ID {
			s.log.Warn("Skipping board owned by another user", logger.F("board", row.ID))
			continue
		}
		boards = append(boards, row.ToBoard())
	}
	s.boards = boards

	s.log.Info("Boards loaded", logger.F("user", ident.ID), logger.F("count", len(boards)))
	return nil
}

// Clear drops the identity and every board, without a remote call
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.identity = nil
	s.boards = nil
	s.loading = false
}

// Identity returns the identity the collection belongs to
func (s *Store) Identity() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

// Loading reports whether a Load is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Limit returns the per-identity board cap
func (s *Store) Limit() int {
	return s.limit
}

// Boards returns a copy of the collection in display order
func (s *Store) Boards() []model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Board, len(s.boards))
	for i, b := range s.boards {
		out[i] = b.Clone()
	}
	return out
}

// Board returns a copy of the board with the given id
func (s *Store) Board(id string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.boards[i].Clone(), true
	}
	return model.Board{}, false
}

// Favorites returns up to limit favorite boards in display order.
// A limit of zero or less returns all of them.
func (s *Store) Favorites(limit int) []model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Board
	for _, b := range s.boards {
		if limit > 0 && len(out) == limit {
			break
		}
		if b.IsFavorite {
			out = append(out, b.Clone())
		}
	}
	return out
}

// CreateBoard inserts a board seeded from template and prepends it locally.
// The identity and cap checks happen before any remote call.
func (s *Store) CreateBoard(ctx context.Context, name string, color model.Color, template model.Template) (model.Board, error) {
	s.mu.Lock()
	ident := s.identity
	count := len(s.boards)
	gen := s.gen
	s.mu.Unlock()

	if ident == nil {
		return model.Board{}, ErrNotAuthenticated
	}
	if count >= s.limit {
		s.notify.Warn(fmt.Sprintf("Board limit reached (%d). Delete old boards to create new ones.", s.limit))
		return model.Board{}, fmt.Errorf("%w (%d)", ErrBoardLimit, s.limit)
	}

	titles := template.SeedColumnTitles()
	columns := make([]model.Column, 0, len(titles))
	for _, title := range titles {
		colID, err := s.newID(id.PrefixColumn)
		if err != nil {
			return model.Board{}, err
		}
		columns = append(columns, model.NewColumn(colID, title))
	}

	row, err := s.remote.InsertBoard(ctx, remote.NewBoardRow{
		Name:       name,
		Color:      string(color),
		Columns:    columns,
		UserID:     ident.ID,
		IsFavorite: false,
	})
	if err != nil {
		return model.Board{}, s.fail("create board", err)
	}

	b := row.ToBoard()

	s.mu.Lock()
	if gen == s.gen {
		s.boards = append([]model.Board{b.Clone()}, s.boards...)
	}
	s.mu.Unlock()

	s.log.Info("Board created", logger.F("board", b.ID), logger.F("name", b.Name))
	s.notify.Success("Board created!")
	return b, nil
}

// UpdateBoard persists the set fields of u and then merges them locally.
// An empty update is a no-op.
func (s *Store) UpdateBoard(ctx context.Context, id string, u model.BoardUpdate) error {
	return s.update(ctx, s.generation(), id, u)
}

func (s *Store) update(ctx context.Context, gen uint64, id string, u model.BoardUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	if err := s.remote.UpdateBoard(ctx, id, remote.PatchFrom(u)); err != nil {
		return s.fail("update board", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("Identity changed during update, skipping local patch", logger.F("board", id))
		return nil
	}
	if i := s.indexOf(id); i >= 0 {
		u.Apply(&s.boards[i])
	}
	return nil
}

// DeleteBoard removes the board remotely and then locally
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	gen := s.generation()

	if err := s.remote.DeleteBoard(ctx, id); err != nil {
		return s.fail("delete board", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	if i := s.indexOf(id); i >= 0 {
		s.boards = append(s.boards[:i:i], s.boards[i+1:]...)
	}
	s.log.Info("Board deleted", logger.F("board", id))
	return nil
}

// ToggleFavorite flips the favorite flag of a locally known board
func (s *Store) ToggleFavorite(ctx context.Context, id string) error {
	s.mu.Lock()
	gen := s.gen
	i := s.indexOf(id)
	var fav bool
	if i >= 0 {
		fav = s.boards[i].IsFavorite
	}
	s.mu.Unlock()

	if i < 0 {
		return nil
	}
	return s.update(ctx, gen, id, model.SetFavorite(!fav))
}

// AddColumn appends an empty column to the board
func (s *Store) AddColumn(ctx context.Context, boardID, title string) error {
	colID, err := s.newID(id.PrefixColumn)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, boardID, func(cols []model.Column) ([]model.Column, bool) {
		return appendColumn(cols, model.NewColumn(colID, title)), true
	})
}

// UpdateColumn renames a column in place
func (s *Store) UpdateColumn(ctx context.Context, boardID, columnID, title string) error {
	return s.updateColumns(ctx, boardID, func(cols []model.Column) ([]model.Column, bool) {
		return renameColumn(cols, columnID, title), true
	})
}

// DeleteColumn removes a column together with its cards
func (s *Store) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	return s.updateColumns(ctx, boardID, func(cols []model.Column) ([]model.Column, bool) {
		return removeColumn(cols, columnID), true
	})
}

// AddCard appends a new card to the end of a column
func (s *Store) AddCard(ctx context.Context, boardID, columnID string, fields model.CardFields) error {
	cardID, err := s.newID(id.PrefixCard)
	if err != nil {
		return err
	}
	card := model.NewCard(cardID, fields)
	return s.updateColumns(ctx, boardID, func(cols []model.Column) ([]model.Column, bool) {
		return appendCard(cols, columnID, card), true
	})
}

// MoveCard moves a card to the end of another column. Moving within the
// same column sends the card to its end. Unknown cards are a no-op.
func (s *Store) MoveCard(ctx context.Context, boardID, fromColumnID, toColumnID, cardID string) error {
	return s.updateColumns(ctx, boardID, func(cols []model.Column) ([]model.Column, bool) {
		return moveCard(cols, fromColumnID, toColumnID, cardID)
	})
}

// updateColumns derives a new columns value from the current local board
// and persists it. Boards unknown locally are a silent no-op.
func (s *Store) updateColumns(ctx context.Context, boardID string, patch func([]model.Column) ([]model.Column, bool)) error {
	s.mu.Lock()
	gen := s.gen
	i := s.indexOf(boardID)
	var current []model.Column
	if i >= 0 {
		current = model.CloneColumns(s.boards[i].Columns)
	}
	s.mu.Unlock()

	if i < 0 {
		s.log.Debug("Board not loaded, skipping column change", logger.F("board", boardID))
		return nil
	}

	next, ok := patch(current)
	if !ok {
		return nil
	}
	return s.update(ctx, gen, boardID, model.BoardUpdate{Columns: &next})
}

func (s *Store) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// indexOf must be called with mu held
func (s *Store) indexOf(id string) int {
	for i := range s.boards {
		if s.boards[i].ID == id {
			return i
		}
	}
	return -1
}

func ownedBy(boards []model.Board, userID string) []model.Board {
	var out []model.Board
	for _, b := range boards {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}
