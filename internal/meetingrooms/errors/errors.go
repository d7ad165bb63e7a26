package errors

import "errors"

var (
	// ErrDuplicateName is returned when the partial unique index on active
	// room names rejects a write that raced past the duplicate guard.
	ErrDuplicateName = errors.New("meeting room name already in use")
)
