package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound    = errors.New("entity not found")
	ErrValidation  = errors.New("invalid request")
	ErrForbidden   = errors.New("caller does not own this record")
	ErrEmptyDraft  = errors.New("drafting service returned no text")
	ErrRendering   = errors.New("document rendering failed")
	ErrPersistence = errors.New("artifact persistence failed")
	ErrRateLimited = errors.New("too many generation requests")

	// Infra-level errors surfaced by the postgres executor helpers
	ErrInvalidExecContext = errors.New("invalid database execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
