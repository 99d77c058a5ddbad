package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/remote"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Error: msg})
}

// remoteError reports a classified repository failure
func (s *Server) remoteError(c echo.Context, err error) error {
	kind := remote.KindOf(err)
	status := statusOf(kind)

	msg := err.Error()
	var re *remote.Error
	if errors.As(err, &re) && re.Message != "" {
		msg = re.Message
	}
	if status == http.StatusInternalServerError {
		s.log.Error("Repository error", logger.F("uri", c.Request().RequestURI), logger.F("error", err))
		msg = "internal error"
	}

	return c.JSON(status, ErrorResponse{Error: msg, Code: kind.String()})
}

func statusOf(kind remote.Kind) int {
	switch kind {
	case remote.KindPermissionDenied:
		return http.StatusForbidden
	case remote.KindUniqueViolation:
		return http.StatusConflict
	case remote.KindCheckViolation:
		return http.StatusUnprocessableEntity
	case remote.KindNotNullViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
