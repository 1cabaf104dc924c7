package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEntityID    = errors.New("entity id is empty")
	ErrEntityIDTooLong  = errors.New("entity id is too long")
	ErrInvalidEntityID  = errors.New("entity id contains invalid characters")
	ErrNegativeCount    = errors.New("count must not be negative")
	ErrEmptyActorID     = errors.New("actor id is empty")
	ErrInvalidTimestamp = errors.New("timestamp must be positive")
)
