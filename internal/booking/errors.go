package booking

import (
	"errors"
	"fmt"
)

// ErrInvalidDate rejects input that is not a real calendar date in
// YYYY-MM-DD form. Raised before any storage access.
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// AlreadyBookedError reports a create that lost the uniqueness race or
// targeted an already-booked date. It carries the conflicting date so
// the boundary layer can display it; callers branch on the type with
// errors.As, never on the message text.
type AlreadyBookedError struct {
	Date string
}

func (e *AlreadyBookedError) Error() string {
	return fmt.Sprintf("date %s is already booked", e.Date)
}
