// Package rest is the Remote Store adapter for palette-server.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// DefaultTimeout bounds every request
const DefaultTimeout = 30 * time.Second

// Client talks to palette-server. It implements the board store's Remote.
type Client struct {
	baseURL    string
	token      func() string
	httpClient *http.Client
}

// New creates a client for baseURL. token is read before every request;
// it may be nil for the public endpoints.
func New(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Auth is the result of a login or registration
type Auth struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// StatusError is a non-2xx response
type StatusError struct {
	Status  int
	Message string
	Code    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Kind maps the response onto a remote kind, preferring the server's code
func (e *StatusError) Kind() remote.Kind {
	if k := remote.ParseKind(e.Code); k != remote.KindUnknown {
		return k
	}
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return remote.KindPermissionDenied
	case http.StatusConflict:
		return remote.KindUniqueViolation
	case http.StatusUnprocessableEntity:
		return remote.KindCheckViolation
	default:
		return remote.KindUnknown
	}
}

// ListBoards returns the boards of the token's user. The server scopes the
// listing by token, so userID only guards against a stale token.
func (c *Client) ListBoards(ctx context.Context, userID string) ([]remote.BoardRow, error) {
	var rows []remote.BoardRow
	if err := c.do(ctx, http.MethodGet, "/api/v1/boards", nil, &rows); err != nil {
		return nil, classify(remote.OpQuery, err)
	}
	return rows, nil
}

// InsertBoard creates a board
func (c *Client) InsertBoard(ctx context.Context, row remote.NewBoardRow) (remote.BoardRow, error) {
	if row.Columns == nil {
		row.Columns = []model.Column{}
	}
	var out remote.BoardRow
	if err := c.do(ctx, http.MethodPost, "/api/v1/boards", row, &out); err != nil {
		return remote.BoardRow{}, classify(remote.OpInsert, err)
	}
	return out, nil
}

// UpdateBoard sends a partial update
func (c *Client) UpdateBoard(ctx context.Context, id string, patch remote.BoardPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := c.do(ctx, http.MethodPatch, "/api/v1/boards/"+url.PathEscape(id), patch, nil); err != nil {
		return classify(remote.OpUpdate, err)
	}
	return nil
}

// DeleteBoard removes a board
func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/boards/"+url.PathEscape(id), nil, nil); err != nil {
		return classify(remote.OpDelete, err)
	}
	return nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, username, email, password string) (Auth, error) {
	var out Auth
	err := c.do(ctx, http.MethodPost, "/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return Auth{}, fmt.Errorf("register failed: %w", err)
	}
	return out, nil
}

// Login authenticates with username and password
func (c *Client) Login(ctx context.Context, username, password string) (Auth, error) {
	var out Auth
	err := c.do(ctx, http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return Auth{}, fmt.Errorf("login failed: %w", err)
	}
	return out, nil
}

// Logout revokes the current token on the server
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/logout", nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Me returns the user behind the current token
func (c *Client) Me(ctx context.Context) (model.Identity, error) {
	var out struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &out); err != nil {
		return model.Identity{}, err
	}
	return model.Identity{ID: out.ID, Name: out.Username}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &payload) == nil {
			serr.Message, serr.Code = payload.Error, payload.Code
		} else {
			serr.Message = strings.TrimSpace(string(data))
		}
		return serr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func classify(op string, err error) error {
	var serr *StatusError
	if errors.As(err, &serr) {
		return &remote.Error{Op: op, Kind: serr.Kind(), Message: serr.Error(), Err: err}
	}
	return remote.Wrap(op, remote.KindUnknown, err)
}
