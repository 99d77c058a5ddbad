package model

import "time"

// Color is a board color tag from the fixed palette
type Color string

// Board palette
const (
	ColorCoral    Color = "coral"
	ColorLavender Color = "lavender"
	ColorMint     Color = "mint"
	ColorSky      Color = "sky"
	ColorPeach    Color = "peach"
	ColorRose     Color = "rose"
)

// DefaultColor is used when no color is given on creation
const DefaultColor = ColorCoral

// Palette lists the recognized colors in display order
var Palette = []Color{ColorCoral, ColorLavender, ColorMint, ColorSky, ColorPeach, ColorRose}

// Known reports whether c is part of the palette. Unknown tags are kept
// as-is in data and only fall back to a default swatch when rendered.
func (c Color) Known() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Template selects the columns a new board is seeded with
type Template string

const (
	TemplateKanban Template = "kanban"
	TemplateBasic  Template = ""
)

// SeedColumnTitles returns the column titles a board created from t starts with
func (t Template) SeedColumnTitles() []string {
	if t == TemplateKanban {
		return []string{"To Do", "In Progress", "Done"}
	}
	return []string{"Tasks"}
}

// Board is the top-level aggregate and the unit of persistence
type Board struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      Color     `json:"color"`
	IsFavorite bool      `json:"isFavorite"`
	Columns    []Column  `json:"columns"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     string    `json:"userId"`
}

// Column returns the column with the given id
func (b *Board) Column(id string) (Column, bool) {
	for _, c := range b.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// CardCount returns the total number of cards across all columns
func (b *Board) CardCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	b.Columns = CloneColumns(b.Columns)
	return b
}
