package model

import "time"

// Column is an ordered container of cards within a board
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Card is a single work item
type Card struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// CardFields holds the caller-supplied fields of a new card
type CardFields struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// NewColumn creates an empty column
func NewColumn(id, title string) Column {
	return Column{ID: id, Title: title, Cards: []Card{}}
}

// NewCard creates a card from its fields
func NewCard(id string, f CardFields) Card {
	return Card{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
	}
}

// IsOverdue returns true if the card is past its due date
func (c *Card) IsOverdue() bool {
	if c.DueDate == nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return c.DueDate.Before(today)
}

// CloneColumns deep-copies a column sequence. A nil card slice comes back
// empty so the JSON form is always an array.
func CloneColumns(cols []Column) []Column {
	if cols == nil {
		return nil
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		cards := make([]Card, len(c.Cards))
		for j, card := range c.Cards {
			if card.DueDate != nil {
				due := *card.DueDate
				card.DueDate = &due
			}
			cards[j] = card
		}
		out[i] = Column{ID: c.ID, Title: c.Title, Cards: cards}
	}
	return out
}
