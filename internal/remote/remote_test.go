package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/existflow/palette/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{KindUnknown, KindPermissionDenied, KindUniqueViolation, KindCheckViolation, KindNotNullViolation} {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, KindUnknown, ParseKind("teapot"))
}

func TestKindOfWrappedError(t *testing.T) {
	base := errors.New("duplicate key")
	err := fmt.Errorf("create board: %w", Wrap(OpInsert, KindUniqueViolation, base))

	assert.Equal(t, KindUniqueViolation, KindOf(err))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "insert boards: duplicate key")
	assert.Equal(t, KindUnknown, KindOf(base))
	assert.Nil(t, Wrap(OpInsert, KindUnknown, nil))
}

func TestPatchFromSendsOnlySetFields(t *testing.T) {
	p := PatchFrom(model.SetFavorite(true))
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_favorite":true}`, string(data))

	p = PatchFrom(model.SetColumns(nil))
	data, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":[]}`, string(data))

	assert.True(t, PatchFrom(model.BoardUpdate{}).IsEmpty())
}

func TestRowToBoard(t *testing.T) {
	row := BoardRow{ID: "b1", Name: "Work", Color: "magenta", IsFavorite: true, UserID: "u1"}
	b := row.ToBoard()

	assert.Equal(t, model.Color("magenta"), b.Color)
	assert.True(t, b.IsFavorite)
	assert.Equal(t, "u1", b.UserID)
	assert.NotNil(t, b.Columns)
}

func TestOnNamesTable(t *testing.T) {
	err := On(TableNotifications, Errorf(OpDelete, KindPermissionDenied, "not yours"))
	assert.EqualError(t, err, "delete notifications: not yours")
	assert.Equal(t, KindPermissionDenied, KindOf(err))

	err = On(TableSettings, On(TableNotifications, Wrap(OpQuery, KindUnknown, errors.New("boom"))))
	assert.EqualError(t, err, "query notifications: boom", "the first table wins")

	plain := errors.New("plain")
	assert.Equal(t, plain, On(TableSettings, plain))
	assert.Nil(t, On(TableSettings, nil))
}
