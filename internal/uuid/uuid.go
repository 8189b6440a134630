// Package uuid wraps google/uuid so that UUIDs can be bound directly
// from URI parameters with gin's ShouldBindUri.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID embeds google/uuid's UUID to add URI parameter binding.
type UUID struct {
	google_uuid.UUID
}

// Nil is the zero UUID.
var Nil UUID

// New returns a random UUID.
func New() UUID {
	return UUID{google_uuid.New()}
}

// NewString returns a random UUID as a string.
func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements the uuid.Parse method
// from https://pkg.go.dev/github.com/google/uuid#Parse
// for UUID
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
