package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
	"github.com/existflow/palette/internal/remote"
)

// maxNotificationLimit caps ?limit on GET /notifications
const maxNotificationLimit = 100

// SettingsResponse is the body of GET /settings
type SettingsResponse struct {
	model.Settings
	Saved bool `json:"saved"`
}

// handleListNotifications returns the caller's newest notifications
func (s *Server) handleListNotifications(c echo.Context) error {
	limit := remote.DefaultNotificationLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return errorJSON(c, http.StatusBadRequest, "invalid limit")
		}
		limit = min(n, maxNotificationLimit)
	}

	items, err := s.repo.ListNotifications(c.Request().Context(), userID(c), limit)
	if err != nil {
		return s.remoteError(c, err)
	}
	if items == nil {
		items = []model.Notification{}
	}
	return c.JSON(http.StatusOK, items)
}

// handleCreateNotification posts a notification to the caller's inbox
func (s *Server) handleCreateNotification(c echo.Context) error {
	var req remote.NewNotificationRow
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	item, err := s.repo.InsertNotification(c.Request().Context(), userID(c), req)
	if err != nil {
		return s.remoteError(c, err)
	}

	s.log.Info("Notification created", logger.F("user", item.UserID), logger.F("notification", item.ID))
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) handleMarkRead(c echo.Context) error {
	if err := s.repo.MarkNotificationRead(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return s.remoteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(c echo.Context) error {
	if err := s.repo.MarkAllNotificationsRead(c.Request().Context(), userID(c)); err != nil {
		return s.remoteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteNotification(c echo.Context) error {
	if err := s.repo.DeleteNotification(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return s.remoteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleGetSettings returns the caller's settings, defaults when never saved
func (s *Server) handleGetSettings(c echo.Context) error {
	st, found, err := s.repo.GetSettings(c.Request().Context(), userID(c))
	if err != nil {
		return s.remoteError(c, err)
	}
	return c.JSON(http.StatusOK, SettingsResponse{Settings: st, Saved: found})
}

// handlePutSettings replaces the caller's settings row
func (s *Server) handlePutSettings(c echo.Context) error {
	var req model.Settings
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if err := s.repo.UpsertSettings(c.Request().Context(), userID(c), req); err != nil {
		return s.remoteError(c, err)
	}

	s.log.Info("Settings saved", logger.F("user", userID(c)))
	return c.NoContent(http.StatusNoContent)
}
