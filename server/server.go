// Package server is the Palette REST backend. It owns accounts, sessions,
// boards, notifications and user settings, and reports failures with a
// stable error code the REST adapter maps back onto remote kinds.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// BoardRepository stores boards scoped by owner
type BoardRepository interface {
	ListBoards(ctx context.Context, owner string) ([]remote.BoardRow, error)
	InsertBoard(ctx context.Context, owner string, row remote.NewBoardRow) (remote.BoardRow, error)
	UpdateBoard(ctx context.Context, owner, id string, patch remote.BoardPatch) error
	DeleteBoard(ctx context.Context, owner, id string) error
}

// AccountStore stores users and their sessions
type AccountStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (model.User, error)
	UserByName(ctx context.Context, username string) (model.User, error)
	UserByID(ctx context.Context, id string) (model.User, error)
	CreateSession(ctx context.Context, userID string) (model.Session, error)
	SessionByToken(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// NotificationRepository stores the inbox of each owner
type NotificationRepository interface {
	ListNotifications(ctx context.Context, owner string, limit int) ([]model.Notification, error)
	InsertNotification(ctx context.Context, owner string, row remote.NewNotificationRow) (model.Notification, error)
	MarkNotificationRead(ctx context.Context, owner, id string) error
	MarkAllNotificationsRead(ctx context.Context, owner string) error
	DeleteNotification(ctx context.Context, owner, id string) error
}

// SettingsRepository stores one preferences row per owner
type SettingsRepository interface {
	GetSettings(ctx context.Context, owner string) (model.Settings, bool, error)
	UpsertSettings(ctx context.Context, owner string, s model.Settings) error
}

// Repository is everything the server persists
type Repository interface {
	BoardRepository
	NotificationRepository
	SettingsRepository
	AccountStore
	Ping() error
	Close() error
}

// Server is the board server
type Server struct {
	repo Repository
	log  *logger.Logger
	echo *echo.Echo
}

// New creates a server over repo
func New(repo Repository) *Server {
	s := &Server{
		repo: repo,
		log:  logger.WithFields(logger.F("component", "server")),
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.POST("/logout", s.handleLogout)
	protected.GET("/boards", s.handleListBoards)
	protected.POST("/boards", s.handleCreateBoard)
	protected.PATCH("/boards/:id", s.handleUpdateBoard)
	protected.DELETE("/boards/:id", s.handleDeleteBoard)
	protected.GET("/notifications", s.handleListNotifications)
	protected.POST("/notifications", s.handleCreateNotification)
	protected.POST("/notifications/read-all", s.handleMarkAllRead)
	protected.POST("/notifications/:id/read", s.handleMarkRead)
	protected.DELETE("/notifications/:id", s.handleDeleteNotification)
	protected.GET("/settings", s.handleGetSettings)
	protected.PUT("/settings", s.handlePutSettings)

	s.echo = e
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)

		res := c.Response()
		s.log.Info("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

// Close closes the repository
func (s *Server) Close() error {
	return s.repo.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.repo.Ping(); err != nil {
		s.log.Error("Health check failed", logger.F("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
