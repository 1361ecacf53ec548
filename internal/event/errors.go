package event

import (
	"errors"
)

// ErrEventNotFound covers both a missing id and, for owner-scoped lookups, an
// event that belongs to someone else. Handlers map it to 404; the old behavior
// of letting the lookup failure escape unhandled is deliberately not kept.
var ErrEventNotFound = errors.New("event not found")

// ValidationErrors carries the field -> messages map produced by
// Event.Validate so handlers can render it as the 422 body.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	return "event validation failed"
}
