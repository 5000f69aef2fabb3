package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BookingRequest is the JSON body accepted by POST /api/bookings.
type BookingRequest struct {
	Date          string  `json:"date"`
	EmployeeName  *string `json:"employee_name"`
	EmployeeEmail *string `json:"employee_email"`
}

// Booking is one reservation of a calendar date. The date column carries
// a UNIQUE constraint; the id is an AUTOINCREMENT rowid and is never
// reused after a delete.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Date          string    `bun:"date,notnull,unique" json:"date"`
	EmployeeName  *string   `bun:"employee_name" json:"employee_name"`
	EmployeeEmail *string   `bun:"employee_email" json:"employee_email"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}
