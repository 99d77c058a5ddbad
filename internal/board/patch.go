package board

import "github.com/existflow/palette/internal/model"

// The functions below are the local patches behind the column and card
// operations. Each takes a columns value it may modify and returns the
// columns to persist.

func appendColumn(cols []model.Column, col model.Column) []model.Column {
	return append(cols, col)
}

func renameColumn(cols []model.Column, columnID, title string) []model.Column {
	for i := range cols {
		if cols[i].ID == columnID {
			cols[i].Title = title
		}
	}
	return cols
}

func removeColumn(cols []model.Column, columnID string) []model.Column {
	out := make([]model.Column, 0, len(cols))
	for _, c := range cols {
		if c.ID != columnID {
			out = append(out, c)
		}
	}
	return out
}

func appendCard(cols []model.Column, columnID string, card model.Card) []model.Column {
	for i := range cols {
		if cols[i].ID == columnID {
			cols[i].Cards = append(cols[i].Cards, card)
		}
	}
	return cols
}

// moveCard reports false when the card is not in the source column or the
// destination column does not exist; nothing is persisted then.
func moveCard(cols []model.Column, fromColumnID, toColumnID, cardID string) ([]model.Column, bool) {
	from, to := -1, -1
	for i := range cols {
		if cols[i].ID == fromColumnID {
			from = i
		}
		if cols[i].ID == toColumnID {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return cols, false
	}

	pos := -1
	for j, c := range cols[from].Cards {
		if c.ID == cardID {
			pos = j
			break
		}
	}
	if pos < 0 {
		return cols, false
	}

	card := cols[from].Cards[pos]
	src := cols[from].Cards
	cols[from].Cards = append(src[:pos:pos], src[pos+1:]...)
	cols[to].Cards = append(cols[to].Cards, card)
	return cols, true
}
