package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/palette/internal/remote/postgres"
)

const (
	ctxUserID = "user_id"
	ctxToken  = "token"
)

// authMiddleware checks for valid session token
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return errorJSON(c, http.StatusUnauthorized, "authorization required")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return errorJSON(c, http.StatusUnauthorized, "invalid authorization format")
		}

		session, err := s.repo.SessionByToken(c.Request().Context(), token)
		if errors.Is(err, postgres.ErrNotFound) {
			return errorJSON(c, http.StatusUnauthorized, "invalid token")
		}
		if err != nil {
			return s.remoteError(c, err)
		}

		if session.IsExpired() {
			return errorJSON(c, http.StatusUnauthorized, "token expired")
		}

		c.Set(ctxUserID, session.UserID)
		c.Set(ctxToken, token)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}
