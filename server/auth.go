package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/remote"
	"github.com/existflow/palette/internal/remote/postgres"
)

// MinPasswordLength applies to registration
const MinPasswordLength = 8

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// UserResponse is returned by /me
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// handleRegister handles user registration
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "username, email, and password required")
	}

	if len(req.Password) < MinPasswordLength {
		return errorJSON(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("bcrypt error", logger.F("error", err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	ctx := c.Request().Context()
	user, err := s.repo.CreateUser(ctx, req.Username, req.Email, string(hash))
	if remote.KindOf(err) == remote.KindUniqueViolation {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: "username or email already exists",
			Code:  remote.KindUniqueViolation.String(),
		})
	}
	if err != nil {
		return s.remoteError(c, err)
	}

	s.log.Info("User registered", logger.F("username", req.Username))
	return s.issueSession(c, user.ID, user.Username)
}

// handleLogin handles user login
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	user, err := s.repo.UserByName(c.Request().Context(), req.Username)
	if errors.Is(err, postgres.ErrNotFound) {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return s.remoteError(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	s.log.Info("User logged in", logger.F("username", req.Username))
	return s.issueSession(c, user.ID, user.Username)
}

func (s *Server) issueSession(c echo.Context, userID, username string) error {
	session, err := s.repo.CreateSession(c.Request().Context(), userID)
	if err != nil {
		return s.remoteError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		UserID:    userID,
		Username:  username,
	})
}

// handleLogout revokes the caller's token
func (s *Server) handleLogout(c echo.Context) error {
	token, _ := c.Get(ctxToken).(string)
	if err := s.repo.DeleteSession(c.Request().Context(), token); err != nil {
		return s.remoteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleMe returns current user info
func (s *Server) handleMe(c echo.Context) error {
	user, err := s.repo.UserByID(c.Request().Context(), userID(c))
	if errors.Is(err, postgres.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}
	if err != nil {
		return s.remoteError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
