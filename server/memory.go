package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
	"github.com/existflow/palette/internal/remote/postgres"
)

// MemoryRepository keeps everything in process. It enforces the same
// ownership and constraint rules as the Postgres repository and backs
// palette-server when DATABASE_URL is "memory".
type MemoryRepository struct {
	mu       sync.Mutex
	users    map[string]model.User
	sessions map[string]model.Session
	boards   map[string]remote.BoardRow
	inbox    map[string]model.Notification
	settings map[string]model.Settings
	seq      map[string]int // insertion order, for created_at ties
	next     int
	now      func() time.Time
}

// NewMemoryRepository returns an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    map[string]model.User{},
		sessions: map[string]model.Session{},
		boards:   map[string]remote.BoardRow{},
		inbox:    map[string]model.Notification{},
		settings: map[string]model.Settings{},
		seq:      map[string]int{},
		now:      time.Now,
	}
}

func (m *MemoryRepository) Ping() error  { return nil }
func (m *MemoryRepository) Close() error { return nil }

func (m *MemoryRepository) ListBoards(_ context.Context, owner string) ([]remote.BoardRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []remote.BoardRow
	for _, row := range m.boards {
		if row.UserID == owner {
			row.Columns = model.CloneColumns(row.Columns)
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *MemoryRepository) InsertBoard(_ context.Context, owner string, in remote.NewBoardRow) (remote.BoardRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in.UserID != owner {
		return remote.BoardRow{}, remote.Errorf(remote.OpInsert, remote.KindPermissionDenied,
			"new row violates row-level security policy for table \"boards\"")
	}

	count := 0
	for _, row := range m.boards {
		if row.UserID != owner {
			continue
		}
		count++
		if row.Name == in.Name {
			return remote.BoardRow{}, remote.Errorf(remote.OpInsert, remote.KindUniqueViolation,
				"duplicate key value violates unique constraint \"boards_user_id_name_key\"")
		}
	}
	if err := checkName(remote.OpInsert, in.Name); err != nil {
		return remote.BoardRow{}, err
	}
	if count >= postgres.MaxBoardsPerUser {
		return remote.BoardRow{}, remote.Errorf(remote.OpInsert, remote.KindCheckViolation, "board limit reached")
	}

	row := remote.BoardRow{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Color:      in.Color,
		Columns:    model.CloneColumns(in.Columns),
		IsFavorite: in.IsFavorite,
		CreatedAt:  m.now().UTC(),
		UserID:     owner,
	}
	if row.Columns == nil {
		row.Columns = []model.Column{}
	}
	m.boards[row.ID] = row
	m.next++
	m.seq[row.ID] = m.next

	row.Columns = model.CloneColumns(row.Columns)
	return row, nil
}

func (m *MemoryRepository) UpdateBoard(_ context.Context, owner, id string, patch remote.BoardPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.boards[id]
	if !ok || patch.IsEmpty() {
		return nil
	}
	if row.UserID != owner {
		return remote.Errorf(remote.OpUpdate, remote.KindPermissionDenied, "permission denied for board %s", id)
	}

	if patch.Name != nil {
		if err := checkName(remote.OpUpdate, *patch.Name); err != nil {
			return err
		}
		for otherID, other := range m.boards {
			if otherID != id && other.UserID == owner && other.Name == *patch.Name {
				return remote.Errorf(remote.OpUpdate, remote.KindUniqueViolation,
					"duplicate key value violates unique constraint \"boards_user_id_name_key\"")
			}
		}
		row.Name = *patch.Name
	}
	if patch.Color != nil {
		row.Color = *patch.Color
	}
	if patch.IsFavorite != nil {
		row.IsFavorite = *patch.IsFavorite
	}
	if patch.Columns != nil {
		row.Columns = model.CloneColumns(*patch.Columns)
		if row.Columns == nil {
			row.Columns = []model.Column{}
		}
	}
	m.boards[id] = row
	return nil
}

func (m *MemoryRepository) DeleteBoard(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.boards[id]
	if !ok {
		return nil
	}
	if row.UserID != owner {
		return remote.Errorf(remote.OpDelete, remote.KindPermissionDenied, "permission denied for board %s", id)
	}
	delete(m.boards, id)
	delete(m.seq, id)
	return nil
}

func (m *MemoryRepository) ListNotifications(_ context.Context, owner string, limit int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Notification
	for _, n := range m.inbox {
		if n.UserID == owner {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) InsertNotification(_ context.Context, owner string, in remote.NewNotificationRow) (model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in.UserID != owner {
		return model.Notification{}, remote.On(remote.TableNotifications, remote.Errorf(remote.OpInsert, remote.KindPermissionDenied,
			"new row violates row-level security policy for table \"notifications\""))
	}

	n := model.Notification{
		ID:        uuid.NewString(),
		UserID:    owner,
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		Type:      in.Type,
		CreatedAt: m.now().UTC(),
	}
	if n.Type == "" {
		n.Type = model.NotificationSystem
	}
	if n.Title == "" {
		return model.Notification{}, remote.On(remote.TableNotifications, remote.Errorf(remote.OpInsert, remote.KindCheckViolation,
			"new row for relation \"notifications\" violates check constraint \"notifications_title_check\""))
	}
	if !n.Type.Known() {
		return model.Notification{}, remote.On(remote.TableNotifications, remote.Errorf(remote.OpInsert, remote.KindCheckViolation,
			"new row for relation \"notifications\" violates check constraint \"notifications_type_check\""))
	}

	m.inbox[n.ID] = n
	m.next++
	m.seq[n.ID] = m.next
	return n, nil
}

func (m *MemoryRepository) MarkNotificationRead(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.inbox[id]
	if !ok {
		return nil
	}
	if n.UserID != owner {
		return remote.On(remote.TableNotifications, remote.Errorf(remote.OpUpdate, remote.KindPermissionDenied,
			"permission denied for notification %s", id))
	}
	n.Read = true
	m.inbox[id] = n
	return nil
}

func (m *MemoryRepository) MarkAllNotificationsRead(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, n := range m.inbox {
		if n.UserID == owner && !n.Read {
			n.Read = true
			m.inbox[id] = n
		}
	}
	return nil
}

func (m *MemoryRepository) DeleteNotification(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.inbox[id]
	if !ok {
		return nil
	}
	if n.UserID != owner {
		return remote.On(remote.TableNotifications, remote.Errorf(remote.OpDelete, remote.KindPermissionDenied,
			"permission denied for notification %s", id))
	}
	delete(m.inbox, id)
	delete(m.seq, id)
	return nil
}

func (m *MemoryRepository) GetSettings(_ context.Context, owner string) (model.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.settings[owner]
	if !ok {
		return model.DefaultSettings(), false, nil
	}
	return s, true, nil
}

func (m *MemoryRepository) UpsertSettings(_ context.Context, owner string, s model.Settings) error {
	if err := s.Validate(); err != nil {
		return remote.On(remote.TableSettings, remote.Wrap(remote.OpUpdate, remote.KindCheckViolation, err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[owner] = s
	return nil
}

func (m *MemoryRepository) CreateUser(_ context.Context, username, email, passwordHash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return model.User{}, remote.Errorf(remote.OpInsert, remote.KindUniqueViolation, "duplicate user")
		}
	}

	u := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    m.now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryRepository) UserByName(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, postgres.ErrNotFound
}

func (m *MemoryRepository) UserByID(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return model.User{}, postgres.ErrNotFound
	}
	return u, nil
}

func (m *MemoryRepository) CreateSession(_ context.Context, userID string) (model.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return model.Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     hex.EncodeToString(tokenBytes),
		ExpiresAt: now.Add(postgres.SessionTTL),
		CreatedAt: now,
	}
	m.sessions[s.Token] = s
	return s, nil
}

func (m *MemoryRepository) SessionByToken(_ context.Context, token string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return model.Session{}, postgres.ErrNotFound
	}
	return s, nil
}

func (m *MemoryRepository) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func checkName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return remote.Errorf(op, remote.KindCheckViolation,
			"new row for relation \"boards\" violates check constraint \"boards_name_check\"")
	}
	return nil
}
