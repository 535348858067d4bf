package query

import "errors"

var (
	// ErrNoSubjects is returned when a multi-subject query is built from an empty list.
	ErrNoSubjects = errors.New("no subjects to describe")

	// ErrInvalidFilter is returned when a filter expression cannot be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
)
