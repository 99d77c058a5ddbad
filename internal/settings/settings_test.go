package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/model"
)

type fakeRemote struct {
	rows    map[string]model.Settings
	upserts int
	failGet error
	failPut error
}

func (f *fakeRemote) GetSettings(_ context.Context, userID string) (model.Settings, bool, error) {
	if f.failGet != nil {
		return model.Settings{}, false, f.failGet
	}
	s, ok := f.rows[userID]
	return s, ok, nil
}

func (f *fakeRemote) UpsertSettings(_ context.Context, userID string, s model.Settings) error {
	f.upserts++
	if f.failPut != nil {
		return f.failPut
	}
	f.rows[userID] = s
	return nil
}

type recorder struct {
	success []string
	errors  []string
}

func (r *recorder) Success(msg string) { r.success = append(r.success, msg) }
func (r *recorder) Warn(string)        {}
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

var alice = model.Identity{ID: "user-alice"}

func setupSettings(t *testing.T) (*Store, *fakeRemote, *recorder) {
	t.Helper()
	r := &fakeRemote{rows: map[string]model.Settings{}}
	rec := &recorder{}
	return New(r, rec), r, rec
}

func TestMissingRowMeansDefaults(t *testing.T) {
	s, _, _ := setupSettings(t)
	require.NoError(t, s.Load(context.Background(), alice))

	assert.Equal(t, model.DefaultSettings(), s.Current())
	assert.False(t, s.Saved())
}

func TestLoadSavedRow(t *testing.T) {
	s, r, _ := setupSettings(t)
	saved := model.DefaultSettings()
	saved.CompactMode = true
	saved.MorningReminder = "07:15"
	r.rows[alice.ID] = saved

	require.NoError(t, s.Load(context.Background(), alice))
	assert.Equal(t, saved, s.Current())
	assert.True(t, s.Saved())

	s.Clear()
	assert.Equal(t, model.DefaultSettings(), s.Current())
	assert.False(t, s.Saved())
}

func TestLoadFailureKeepsCurrent(t *testing.T) {
	s, r, _ := setupSettings(t)
	r.failGet = errors.New("offline")

	err := s.Load(context.Background(), alice)
	assert.ErrorContains(t, err, "load settings: offline")
	assert.Equal(t, model.DefaultSettings(), s.Current())
}

func TestUpdateUpserts(t *testing.T) {
	s, r, rec := setupSettings(t)
	require.NoError(t, s.Load(context.Background(), alice))

	require.NoError(t, s.Update(context.Background(), func(st *model.Settings) {
		st.RemindersEnabled = false
		st.EveningReminder = "18:30"
	}))

	want := model.DefaultSettings()
	want.RemindersEnabled = false
	want.EveningReminder = "18:30"
	assert.Equal(t, want, r.rows[alice.ID])
	assert.Equal(t, want, s.Current())
	assert.True(t, s.Saved())
	assert.Equal(t, []string{"Settings saved"}, rec.success)
}

func TestFailedSaveKeepsCurrent(t *testing.T) {
	s, r, rec := setupSettings(t)
	require.NoError(t, s.Load(context.Background(), alice))
	r.failPut = errors.New("offline")

	err := s.Update(context.Background(), func(st *model.Settings) { st.CompactMode = true })
	assert.ErrorContains(t, err, "save settings")
	assert.False(t, s.Current().CompactMode)
	assert.Equal(t, []string{"Failed to save settings"}, rec.errors)
}

func TestSaveRejectsBeforeRemoteCall(t *testing.T) {
	s, r, _ := setupSettings(t)

	assert.ErrorIs(t, s.Save(context.Background(), model.DefaultSettings()), board.ErrNotAuthenticated)

	require.NoError(t, s.Load(context.Background(), alice))
	err := s.Update(context.Background(), func(st *model.Settings) { st.MorningReminder = "9am" })
	assert.ErrorIs(t, err, model.ErrInvalidReminder)
	assert.Zero(t, r.upserts)
}
