package store

import "errors"

// Sentinel errors returned by storage backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnknownDriver is returned by [NewLocalStorage] for an unsupported
	// storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrEmptyEntityID is returned when an action without entity id is put.
	ErrEmptyEntityID = errors.New("empty entity id")

	// ErrDecodingAction is returned when a persisted action cannot be decoded.
	ErrDecodingAction = errors.New("failed to decode persisted action")
)

// Low-level database operation errors, wrapped by the sqlite backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
