package db

import "errors"

var (
	// ErrDateTaken signals the UNIQUE constraint on bookings.date.
	ErrDateTaken = errors.New("date already taken")
	// ErrBookingNotFound signals a point lookup that matched no row.
	ErrBookingNotFound = errors.New("booking not found")
)
