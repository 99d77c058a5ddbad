package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/remote"
)

// handleListBoards returns the caller's boards, newest first
func (s *Server) handleListBoards(c echo.Context) error {
	rows, err := s.repo.ListBoards(c.Request().Context(), userID(c))
	if err != nil {
		return s.remoteError(c, err)
	}
	if rows == nil {
		rows = []remote.BoardRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// handleCreateBoard inserts a board owned by the caller
func (s *Server) handleCreateBoard(c echo.Context) error {
	var req remote.NewBoardRow
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	row, err := s.repo.InsertBoard(c.Request().Context(), userID(c), req)
	if err != nil {
		return s.remoteError(c, err)
	}

	s.log.Info("Board created", logger.F("user", row.UserID), logger.F("board", row.ID))
	return c.JSON(http.StatusCreated, row)
}

// handleUpdateBoard applies a partial update
func (s *Server) handleUpdateBoard(c echo.Context) error {
	var patch remote.BoardPatch
	if err := c.Bind(&patch); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if err := s.repo.UpdateBoard(c.Request().Context(), userID(c), c.Param("id"), patch); err != nil {
		return s.remoteError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleDeleteBoard removes a board
func (s *Server) handleDeleteBoard(c echo.Context) error {
	if err := s.repo.DeleteBoard(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return s.remoteError(c, err)
	}

	s.log.Info("Board deleted", logger.F("user", userID(c)), logger.F("board", c.Param("id")))
	return c.NoContent(http.StatusNoContent)
}
