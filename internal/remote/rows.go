// Package remote defines the row shapes and error kinds shared by the
// Remote Store adapters.
package remote

import (
	"time"

	"github.com/existflow/palette/internal/model"
)

// BoardRow is a board as the remote store returns it
type BoardRow struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Columns    []model.Column `json:"columns"`
	IsFavorite bool           `json:"is_favorite"`
	CreatedAt  time.Time      `json:"created_at"`
	UserID     string         `json:"user_id"`
}

// NewBoardRow is the payload of an insert
type NewBoardRow struct {
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Columns    []model.Column `json:"columns"`
	UserID     string         `json:"user_id"`
	IsFavorite bool           `json:"is_favorite"`
}

// BoardPatch carries only the fields being changed
type BoardPatch struct {
	Name       *string         `json:"name,omitempty"`
	Color      *string         `json:"color,omitempty"`
	IsFavorite *bool           `json:"is_favorite,omitempty"`
	Columns    *[]model.Column `json:"columns,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p BoardPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.IsFavorite == nil && p.Columns == nil
}

// PatchFrom converts a model update to its row form
func PatchFrom(u model.BoardUpdate) BoardPatch {
	p := BoardPatch{Name: u.Name, IsFavorite: u.IsFavorite}
	if u.Color != nil {
		c := string(*u.Color)
		p.Color = &c
	}
	if u.Columns != nil {
		cols := model.CloneColumns(*u.Columns)
		if cols == nil {
			cols = []model.Column{}
		}
		p.Columns = &cols
	}
	return p
}

// ToBoard translates a row into the local board shape
func (r BoardRow) ToBoard() model.Board {
	cols := model.CloneColumns(r.Columns)
	if cols == nil {
		cols = []model.Column{}
	}
	return model.Board{
		ID:         r.ID,
		Name:       r.Name,
		Color:      model.Color(r.Color),
		IsFavorite: r.IsFavorite,
		Columns:    cols,
		CreatedAt:  r.CreatedAt,
		UserID:     r.UserID,
	}
}

// DefaultNotificationLimit is how many notifications an inbox shows
const DefaultNotificationLimit = 20

// NewNotificationRow is the payload of a notification insert
type NewNotificationRow struct {
	UserID  string                 `json:"user_id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    model.NotificationType `json:"type"`
}
