package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote failure independently of the backend's own codes
type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindUniqueViolation
	KindCheckViolation
	KindNotNullViolation
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindUniqueViolation:
		return "unique_violation"
	case KindCheckViolation:
		return "check_violation"
	case KindNotNullViolation:
		return "not_null_violation"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String; unrecognized names map to KindUnknown
func ParseKind(s string) Kind {
	switch s {
	case "permission_denied":
		return KindPermissionDenied
	case "unique_violation":
		return KindUniqueViolation
	case "check_violation":
		return KindCheckViolation
	case "not_null_violation":
		return KindNotNullViolation
	default:
		return KindUnknown
	}
}

// Error is a classified failure returned by a Remote Store adapter
type Error struct {
	Op      string // query, insert, update, delete
	Table   string // boards when empty
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	table := e.Table
	if table == "" {
		table = TableBoards
	}
	return fmt.Sprintf("%s %s: %s", e.Op, table, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error with a formatted message
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an operation and kind to err. A nil err stays nil.
func Wrap(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Message: err.Error(), Err: err}
}

// On names the table of the first *Error in err's chain that has none
func On(table string, err error) error {
	var re *Error
	if errors.As(err, &re) && re.Table == "" {
		re.Table = table
	}
	return err
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// Operation names
const (
	OpQuery  = "query"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Tables
const (
	TableBoards        = "boards"
	TableNotifications = "notifications"
	TableSettings      = "user_settings"
)
