package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/existflow/palette/internal/remote"
)

// SQLSTATE codes the board store distinguishes
const (
	codeInsufficientPrivilege = "42501"
	codeUniqueViolation       = "23505"
	codeCheckViolation        = "23514"
	codeNotNullViolation      = "23502"
)

// classify maps a Postgres error onto a remote kind
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return remote.Wrap(op, remote.KindUnknown, err)
	}
	return &remote.Error{Op: op, Kind: kindOf(pqErr.Code), Message: pqErr.Message, Err: err}
}

func kindOf(code pq.ErrorCode) remote.Kind {
	switch code {
	case codeInsufficientPrivilege:
		return remote.KindPermissionDenied
	case codeUniqueViolation:
		return remote.KindUniqueViolation
	case codeCheckViolation:
		return remote.KindCheckViolation
	case codeNotNullViolation:
		return remote.KindNotNullViolation
	default:
		return remote.KindUnknown
	}
}
