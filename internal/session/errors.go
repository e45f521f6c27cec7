package session

import "errors"

var (
	// ErrNotFound marks lookups for decisions that do not exist.
	ErrNotFound = errors.New("decision not found")
	// ErrNoSelection marks selection updates that reference an invalid
	// candidate index.
	ErrNoSelection = errors.New("invalid candidate selection")
	// ErrLocked marks a session directory already held by another process.
	ErrLocked = errors.New("session store locked by another process")
	// ErrSchemaMismatch indicates the database schema version doesn't match
	// the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
