package store

import "errors"

var (
	ErrNotFound            = errors.New("store: resource not found")
	ErrDuplicate           = errors.New("store: duplicate resource")
	ErrConflict            = errors.New("store: conflicting resource state")
	ErrForeignKeyViolation = errors.New("store: foreign key constraint violation")
	// ErrTaskIndexOutOfRange is returned when a task toggle references an
	// index the note does not have.
	ErrTaskIndexOutOfRange = errors.New("store: task index out of range")
)
