package routes

import "errors"

var (
	// ErrDuplicateHandler reports a second handler registration for a
	// method that already has one.
	ErrDuplicateHandler = errors.New("handler already registered for method")

	// ErrDuplicateSchema reports a second schema set registration for a
	// method that already has one.
	ErrDuplicateSchema = errors.New("schema already registered for method")

	// ErrEmptySchema reports a schema set with no sub-schemas configured.
	ErrEmptySchema = errors.New("schema set has no sub-schemas")
)
