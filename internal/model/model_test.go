package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorKnown(t *testing.T) {
	for _, c := range Palette {
		assert.True(t, c.Known(), c)
	}
	assert.False(t, Color("chartreuse").Known())
	assert.False(t, Color("").Known())
}

func TestSeedColumnTitles(t *testing.T) {
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, TemplateKanban.SeedColumnTitles())
	assert.Equal(t, []string{"Tasks"}, TemplateBasic.SeedColumnTitles())
	assert.Equal(t, []string{"Tasks"}, Template("scrum").SeedColumnTitles())
}

func TestBoardCardCount(t *testing.T) {
	b := Board{Columns: []Column{
		{ID: "a", Cards: []Card{{ID: "1"}, {ID: "2"}}},
		{ID: "b"},
		{ID: "c", Cards: []Card{{ID: "3"}}},
	}}
	assert.Equal(t, 3, b.CardCount())

	col, ok := b.Column("c")
	require.True(t, ok)
	assert.Len(t, col.Cards, 1)

	_, ok = b.Column("missing")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	b := Board{ID: "b1", Columns: []Column{{ID: "c1", Cards: []Card{{ID: "x", Title: "X", DueDate: &due}}}}}

	cp := b.Clone()
	cp.Columns[0].Title = "changed"
	cp.Columns[0].Cards[0].Title = "changed"
	*cp.Columns[0].Cards[0].DueDate = due.Add(24 * time.Hour)

	assert.Equal(t, "", b.Columns[0].Title)
	assert.Equal(t, "X", b.Columns[0].Cards[0].Title)
	assert.Equal(t, due, *b.Columns[0].Cards[0].DueDate)
}

func TestCloneColumnsNormalizesNilCards(t *testing.T) {
	cols := CloneColumns([]Column{{ID: "c1"}})
	require.NotNil(t, cols[0].Cards)
	assert.Empty(t, cols[0].Cards)
	assert.Nil(t, CloneColumns(nil))
}

func TestBoardUpdateApply(t *testing.T) {
	b := Board{Name: "Old", Color: ColorMint}

	assert.True(t, BoardUpdate{}.IsEmpty())
	assert.False(t, SetName("New").IsEmpty())

	SetName("New").Apply(&b)
	SetFavorite(true).Apply(&b)
	assert.Equal(t, "New", b.Name)
	assert.Equal(t, ColorMint, b.Color)
	assert.True(t, b.IsFavorite)

	cols := []Column{NewColumn("c1", "Tasks")}
	u := SetColumns(cols)
	cols[0].Title = "mutated after"
	u.Apply(&b)
	require.Len(t, b.Columns, 1)
	assert.Equal(t, "Tasks", b.Columns[0].Title)
}

func TestCardIsOverdue(t *testing.T) {
	past := time.Now().AddDate(0, 0, -2)
	future := time.Now().AddDate(0, 0, 2)

	assert.True(t, (&Card{DueDate: &past}).IsOverdue())
	assert.False(t, (&Card{DueDate: &future}).IsOverdue())
	assert.False(t, (&Card{}).IsOverdue())
}

func TestNotificationTypeKnown(t *testing.T) {
	assert.True(t, NotificationReminder.Known())
	assert.True(t, NotificationAlert.Known())
	assert.False(t, NotificationType("digest").Known())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.False(t, s.CompactMode)
	assert.True(t, s.QuickCapture)
	assert.Equal(t, "09:00", s.MorningReminder)
	assert.Equal(t, "17:00", s.EveningReminder)
	assert.True(t, s.RemindersEnabled)
	assert.NoError(t, s.Validate())
}

func TestSettingsValidate(t *testing.T) {
	for _, v := range []string{"00:00", "07:30", "23:59"} {
		assert.True(t, ValidReminder(v), v)
	}
	for _, v := range []string{"", "9:00", "24:00", "12:60", "noon", "09:00:00"} {
		assert.False(t, ValidReminder(v), v)
	}

	s := DefaultSettings()
	s.EveningReminder = "25:00"
	assert.ErrorIs(t, s.Validate(), ErrInvalidReminder)
}
