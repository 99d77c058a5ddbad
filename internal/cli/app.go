package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/existflow/palette/internal/board"
	"github.com/existflow/palette/internal/config"
	"github.com/existflow/palette/internal/db"
	"github.com/existflow/palette/internal/inbox"
	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote/rest"
	"github.com/existflow/palette/internal/session"
	"github.com/existflow/palette/internal/settings"
)

// errNotLoggedIn is returned by server-backed commands without a session
var errNotLoggedIn = errors.New("not logged in; run 'palette auth login'")

// app is the board store, inbox and settings wired to the configured backend
type app struct {
	cfg     *config.Config
	session *session.Provider
	store   *board.Store
	inbox   *inbox.Store
	prefs   *settings.Store
	client  *rest.Client // nil for the local backend
	closers []func() error
}

// openApp wires the stores to SQLite or palette-server per c.Backend
func openApp(c *config.Config, notifier board.Notifier) (*app, error) {
	a := &app{cfg: c}

	var (
		r  board.Remote
		ir inbox.Remote
		sr settings.Remote
	)
	switch c.Backend {
	case config.BackendServer:
		sess, err := openSession()
		if err != nil {
			return nil, err
		}
		a.session = sess
		a.client = newClient(c, sess)
		r, ir, sr = a.client, a.client, a.client

	default:
		database, err := db.Open(c.DBPath)
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, database.Close)

		a.session = session.New()
		a.session.Assume(model.Identity{ID: c.LocalUser, Name: c.LocalUser})
		r = db.NewBoards(database)
		ir = db.NewNotifications(database)
		sr = db.NewSettings(database)
	}

	a.store = board.New(r, board.Options{
		BoardLimit: c.BoardLimit,
		Notifier:   notifier,
		Logger:     logger.L(),
	})
	a.inbox = inbox.New(ir, inbox.Options{Notifier: notifier, Logger: logger.L()})
	a.prefs = settings.New(sr, notifier)
	return a, nil
}

func openSession() (*session.Provider, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	sess, err := session.Open(filepath.Join(dir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return sess, nil
}

func newClient(c *config.Config, sess *session.Provider) *rest.Client {
	return rest.New(serverURL(c, sess), func() string { return sess.Credentials().Token })
}

// serverURL prefers the URL saved with the session over the config
func serverURL(c *config.Config, sess *session.Provider) string {
	if url := sess.Credentials().ServerURL; url != "" {
		return url
	}
	return c.ServerURL
}

// identity returns who the commands act for
func (a *app) identity() (model.Identity, error) {
	ident, ok := a.session.Current()
	if !ok {
		return model.Identity{}, errNotLoggedIn
	}
	return ident, nil
}

// Close releases the backend
func (a *app) Close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			logger.Warn("Close failed", logger.F("error", err))
		}
	}
}

// withApp opens the app and runs fn for the current identity
func withApp(fn func(a *app, ident model.Identity) error) error {
	a, err := openApp(cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	ident, err := a.identity()
	if err != nil {
		return err
	}
	return fn(a, ident)
}

// withStore opens the app, loads the boards and runs fn
func withStore(ctx context.Context, fn func(a *app) error) error {
	return withApp(func(a *app, ident model.Identity) error {
		if err := a.store.Load(ctx, ident); err != nil {
			return err
		}
		return fn(a)
	})
}

// withInbox opens the app, loads the notifications and runs fn
func withInbox(ctx context.Context, fn func(a *app) error) error {
	return withApp(func(a *app, ident model.Identity) error {
		if err := a.inbox.Load(ctx, ident); err != nil {
			return err
		}
		return fn(a)
	})
}

// withSettings opens the app, loads the settings and runs fn
func withSettings(ctx context.Context, fn func(a *app) error) error {
	return withApp(func(a *app, ident model.Identity) error {
		if err := a.prefs.Load(ctx, ident); err != nil {
			return err
		}
		return fn(a)
	})
}
