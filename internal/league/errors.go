package league

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrValidation      = errors.New("invalid value")
	ErrCounterMismatch = errors.New("player counter out of sync with event log")
)
