package repository

import "errors"

var (
	// ErrUUIDLookupDisabled is returned by GetByUuid on a repository built
	// without WithUUIDLookup.
	ErrUUIDLookupDisabled = errors.New("uuid lookup not configured")

	// ErrInvalidUUID is returned when GetByUuid receives a malformed id.
	ErrInvalidUUID = errors.New("invalid uuid")
)
