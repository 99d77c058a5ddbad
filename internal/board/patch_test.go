package board

import (
	"testing"

	"github.com/existflow/palette/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleColumns() []model.Column {
	return []model.Column{
		{ID: "a", Title: "A", Cards: []model.Card{{ID: "1"}, {ID: "2"}}},
		{ID: "b", Title: "B", Cards: []model.Card{}},
	}
}

func TestRenameColumnLeavesOthers(t *testing.T) {
	cols := renameColumn(sampleColumns(), "b", "Bee")
	assert.Equal(t, "A", cols[0].Title)
	assert.Equal(t, "Bee", cols[1].Title)
	assert.Len(t, cols[0].Cards, 2)

	unchanged := renameColumn(sampleColumns(), "zzz", "x")
	assert.Equal(t, sampleColumns(), unchanged)
}

func TestRemoveColumnDropsCards(t *testing.T) {
	cols := removeColumn(sampleColumns(), "a")
	assert.Len(t, cols, 1)
	assert.Equal(t, "b", cols[0].ID)
}

func TestAppendCardTargetsColumn(t *testing.T) {
	cols := appendCard(sampleColumns(), "a", model.Card{ID: "3"})
	assert.Len(t, cols[0].Cards, 3)
	assert.Equal(t, "3", cols[0].Cards[2].ID)
	assert.Empty(t, cols[1].Cards)
}

func TestMoveCardPatch(t *testing.T) {
	cols, ok := moveCard(sampleColumns(), "a", "b", "1")
	assert.True(t, ok)
	assert.Equal(t, []string{"2"}, cardIDs(cols[0]))
	assert.Equal(t, []string{"1"}, cardIDs(cols[1]))

	_, ok = moveCard(sampleColumns(), "b", "a", "1")
	assert.False(t, ok)

	_, ok = moveCard(sampleColumns(), "a", "missing", "1")
	assert.False(t, ok)
}

func TestMoveCardDoesNotAliasSource(t *testing.T) {
	src := sampleColumns()
	original := src[0].Cards
	cols, _ := moveCard(src, "a", "a", "1")

	assert.Equal(t, []string{"2", "1"}, cardIDs(cols[0]))
	assert.Equal(t, "1", original[0].ID)
}
