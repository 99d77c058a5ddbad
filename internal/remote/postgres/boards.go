package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// ListBoards returns the boards of owner, newest first
func (r *Repository) ListBoards(ctx context.Context, owner string) ([]remote.BoardRow, error) {
	if _, err := uuid.Parse(owner); err != nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color, columns, is_favorite, created_at, user_id
		FROM boards
		WHERE user_id = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, classify(remote.OpQuery, err)
	}
	defer rows.Close()

	var out []remote.BoardRow
	for rows.Next() {
		var row remote.BoardRow
		var cols []byte
		if err := rows.Scan(&row.ID, &row.Name, &row.Color, &cols, &row.IsFavorite, &row.CreatedAt, &row.UserID); err != nil {
			return nil, classify(remote.OpQuery, err)
		}
		if err := json.Unmarshal(cols, &row.Columns); err != nil {
			return nil, remote.Wrap(remote.OpQuery, remote.KindUnknown, fmt.Errorf("decode columns of board %s: %w", row.ID, err))
		}
		if row.Columns == nil {
			row.Columns = []model.Column{}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(remote.OpQuery, err)
	}
	return out, nil
}

// InsertBoard creates a board for owner. A row claiming another owner is
// refused.
func (r *Repository) InsertBoard(ctx context.Context, owner string, in remote.NewBoardRow) (remote.BoardRow, error) {
	if in.UserID != owner {
		return remote.BoardRow{}, remote.Errorf(remote.OpInsert, remote.KindPermissionDenied,
			"new row violates row-level security policy for table \"boards\"")
	}

	cols, err := encodeColumns(in.Columns)
	if err != nil {
		return remote.BoardRow{}, remote.Wrap(remote.OpInsert, remote.KindUnknown, err)
	}

	row := remote.BoardRow{
		Name:       in.Name,
		Color:      in.Color,
		Columns:    model.CloneColumns(in.Columns),
		IsFavorite: in.IsFavorite,
		UserID:     owner,
	}
	if row.Columns == nil {
		row.Columns = []model.Column{}
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO boards (user_id, name, color, columns, is_favorite)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		owner, in.Name, in.Color, cols, in.IsFavorite,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return remote.BoardRow{}, classify(remote.OpInsert, err)
	}
	return row, nil
}

// UpdateBoard writes the set fields of patch to a board of owner. Missing
// boards are not an error; boards of other owners are refused.
func (r *Repository) UpdateBoard(ctx context.Context, owner, id string, patch remote.BoardPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	if patch.Columns != nil {
		cols, err := encodeColumns(*patch.Columns)
		if err != nil {
			return remote.Wrap(remote.OpUpdate, remote.KindUnknown, err)
		}
		add("columns", cols)
	}
	args = append(args, id, owner)

	query := fmt.Sprintf("UPDATE boards SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(remote.OpUpdate, err)
	}
	return r.checkOwned(ctx, remote.TableBoards, remote.OpUpdate, res, id)
}

// DeleteBoard removes a board of owner
func (r *Repository) DeleteBoard(ctx context.Context, owner, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return classify(remote.OpDelete, err)
	}
	return r.checkOwned(ctx, remote.TableBoards, remote.OpDelete, res, id)
}

// checkOwned turns a zero-row write on a row of someone else into a
// permission error. table is one of the remote table names.
func (r *Repository) checkOwned(ctx context.Context, table, op string, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil || n > 0 {
		return remote.On(table, classify(op, err))
	}

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return remote.On(table, classify(op, err))
	}
	if exists {
		return remote.On(table, remote.Errorf(op, remote.KindPermissionDenied,
			"permission denied for %s %s", strings.TrimSuffix(table, "s"), id))
	}
	return nil
}

// encodeColumns returns text; lib/pq would send []byte as bytea
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
