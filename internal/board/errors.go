package board

import (
	"errors"
	"fmt"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/remote"
)

// Precondition failures, raised before any remote call
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrBoardLimit       = errors.New("board limit reached")
)

// Message returns the user-facing text for a failed remote action
func Message(action string, err error) string {
	switch remote.KindOf(err) {
	case remote.KindPermissionDenied:
		return "Permission denied. Check your login status."
	case remote.KindUniqueViolation:
		return "Board with this name already exists."
	case remote.KindCheckViolation:
		return "Board limit reached for your account, or a value was rejected by the server."
	case remote.KindNotNullViolation:
		return "Missing required fields."
	default:
		return fmt.Sprintf("Failed to %s: %s", action, err)
	}
}

// fail logs and presents a remote failure and returns it wrapped
func (s *Store) fail(action string, err error) error {
	s.log.Error("Remote call failed",
		logger.F("action", action),
		logger.F("kind", remote.KindOf(err).String()),
		logger.F("error", err))
	s.notify.Error(Message(action, err))
	return fmt.Errorf("%s: %w", action, err)
}
