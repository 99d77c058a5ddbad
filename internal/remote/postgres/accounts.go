package postgres

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// SessionTTL is how long a login stays valid
const SessionTTL = 30 * 24 * time.Hour

// CreateUser stores a new account and returns it
func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash string) (model.User, error) {
	u := model.User{Username: username, Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		username, email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return model.User{}, classify(remote.OpInsert, err)
	}
	return u, nil
}

// UserByName looks up an account by username
func (r *Repository) UserByName(ctx context.Context, username string) (model.User, error) {
	return r.user(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

// UserByID looks up an account by id
func (r *Repository) UserByID(ctx context.Context, id string) (model.User, error) {
	return r.user(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *Repository) user(ctx context.Context, query string, arg string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, classify(remote.OpQuery, err)
	}
	return u, nil
}

// CreateSession issues a new bearer token for userID
func (r *Repository) CreateSession(ctx context.Context, userID string) (model.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return model.Session{}, err
	}

	s := model.Session{
		UserID:    userID,
		Token:     hex.EncodeToString(tokenBytes),
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		s.UserID, s.Token, s.ExpiresAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return model.Session{}, classify(remote.OpInsert, err)
	}
	return s, nil
}

// SessionByToken returns the session for token, expired or not
func (r *Repository) SessionByToken(ctx context.Context, token string) (model.Session, error) {
	var s model.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions WHERE token = $1`, token,
	).Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrNotFound
	}
	if err != nil {
		return model.Session{}, classify(remote.OpQuery, err)
	}
	return s, nil
}

// DeleteSession revokes a token
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return classify(remote.OpDelete, err)
}
