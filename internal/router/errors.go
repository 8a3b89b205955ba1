package router

import "errors"

var (
	// ErrPatternCollision reports two route modules deriving the same URL
	// pattern. Assembly fails rather than letting walk order pick a winner.
	ErrPatternCollision = errors.New("endpoint pattern collision")

	// ErrTableFrozen reports a write to the table after assembly completed.
	ErrTableFrozen = errors.New("route table is frozen")
)
