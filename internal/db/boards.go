package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// timeLayout is fixed-width so created_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Boards implements the board store's Remote on top of SQLite
type Boards struct {
	db  *DB
	now func() time.Time
}

// NewBoards returns a board repository over db
func NewBoards(db *DB) *Boards {
	return &Boards{db: db, now: time.Now}
}

// ListBoards returns the boards of userID, newest first
func (b *Boards) ListBoards(ctx context.Context, userID string) ([]remote.BoardRow, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id, name, color, columns, is_favorite, created_at, user_id
		FROM boards
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, classify(remote.OpQuery, err)
	}
	defer rows.Close()

	var out []remote.BoardRow
	for rows.Next() {
		row, err := scanBoard(rows)
		if err != nil {
			return nil, remote.Wrap(remote.OpQuery, remote.KindUnknown, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(remote.OpQuery, err)
	}
	return out, nil
}

// InsertBoard stores a new board and returns it with its assigned id and
// creation time
func (b *Boards) InsertBoard(ctx context.Context, in remote.NewBoardRow) (remote.BoardRow, error) {
	if in.UserID == "" {
		return remote.BoardRow{}, remote.Errorf(remote.OpInsert, remote.KindPermissionDenied, "no owner")
	}

	cols, err := encodeColumns(in.Columns)
	if err != nil {
		return remote.BoardRow{}, remote.Wrap(remote.OpInsert, remote.KindUnknown, err)
	}

	row := remote.BoardRow{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Color:      in.Color,
		Columns:    model.CloneColumns(in.Columns),
		IsFavorite: in.IsFavorite,
		CreatedAt:  b.now().UTC(),
		UserID:     in.UserID,
	}
	if row.Columns == nil {
		row.Columns = []model.Column{}
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO boards (id, name, color, columns, is_favorite, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Name, row.Color, cols, row.IsFavorite, row.CreatedAt.Format(timeLayout), row.UserID)
	if err != nil {
		return remote.BoardRow{}, classify(remote.OpInsert, err)
	}
	return row, nil
}

// UpdateBoard writes the set fields of patch. A missing board is not an error.
func (b *Boards) UpdateBoard(ctx context.Context, id string, patch remote.BoardPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if patch.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, *patch.IsFavorite)
	}
	if patch.Columns != nil {
		cols, err := encodeColumns(*patch.Columns)
		if err != nil {
			return remote.Wrap(remote.OpUpdate, remote.KindUnknown, err)
		}
		sets = append(sets, "columns = ?")
		args = append(args, cols)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE boards SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return classify(remote.OpUpdate, err)
	}
	return nil
}

// DeleteBoard removes a board. A missing board is not an error.
func (b *Boards) DeleteBoard(ctx context.Context, id string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id); err != nil {
		return classify(remote.OpDelete, err)
	}
	return nil
}

func scanBoard(rows *sql.Rows) (remote.BoardRow, error) {
	var row remote.BoardRow
	var cols, created string
	if err := rows.Scan(&row.ID, &row.Name, &row.Color, &cols, &row.IsFavorite, &created, &row.UserID); err != nil {
		return row, err
	}

	if err := json.Unmarshal([]byte(cols), &row.Columns); err != nil {
		return row, fmt.Errorf("decode columns of board %s: %w", row.ID, err)
	}
	if row.Columns == nil {
		row.Columns = []model.Column{}
	}

	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return row, fmt.Errorf("decode created_at of board %s: %w", row.ID, err)
	}
	row.CreatedAt = t
	return row, nil
}

func encodeColumns(cols []model.Column) (string, error) {
	if cols == nil {
		cols = []model.Column{}
	}
	data, err := json.Marshal(cols)
	if err != nil {
		return "", fmt.Errorf("encode columns: %w", err)
	}
	return string(data), nil
}

// classify maps SQLite extended result codes onto remote kinds
func classify(op string, err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return remote.Wrap(op, remote.KindUnknown, err)
	}

	kind := remote.KindUnknown
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		kind = remote.KindUniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
		kind = remote.KindCheckViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		kind = remote.KindNotNullViolation
	case sqlite3.SQLITE_CONSTRAINT:
		kind = constraintKind(se.Error())
	}
	return remote.Wrap(op, kind, err)
}

// constraintKind reads the kind from the message when only the primary
// result code is available
func constraintKind(msg string) remote.Kind {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return remote.KindUniqueViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return remote.KindNotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "board limit reached"):
		return remote.KindCheckViolation
	}
	return remote.KindUnknown
}
