package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"
	sqlite "modernc.org/sqlite"

	"booking-desk/internal/models"
)

// DB is the only component that touches the bookings table.
type DB struct {
	Bun *bun.DB
}

// InsertBooking inserts a new booking as a single atomic statement. The
// UNIQUE constraint on the date column is the double-booking guard: a
// racing duplicate insert surfaces here as ErrDateTaken. On success the
// model's ID is populated from the assigned rowid.
func (d *DB) InsertBooking(ctx context.Context, booking *models.Booking) error {
	_, err := d.Bun.NewInsert().
		Model(booking).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDateTaken
		}
		return err
	}
	return nil
}

// GetBookingByDate fetches the booking for an exact date key.
func (d *DB) GetBookingByDate(ctx context.Context, date string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("date = ?", date).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns all bookings ascending by date. Lexicographic
// order on YYYY-MM-DD keys is chronological order.
func (d *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := d.Bun.NewSelect().
		Model(&bookings).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// DeleteBookingByDate removes the booking at date as a single atomic
// DELETE ... RETURNING statement and hands back the row that was
// actually removed, so a concurrent delete-and-recreate of the same
// date can never attribute the removal to the wrong booking.
// ErrBookingNotFound when no row existed.
func (d *DB) DeleteBookingByDate(ctx context.Context, date string) (*models.Booking, error) {
	var booking models.Booking
	_, err := d.Bun.NewDelete().
		Model((*models.Booking)(nil)).
		Where("date = ?", date).
		Returning("*").
		Exec(ctx, &booking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// SQLite extended result codes for constraint failures on a unique
// column or the primary key.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// isUniqueViolation recognizes SQLite's unique-constraint failure. The
// typed check covers the modernc driver sqliteshim selects on supported
// platforms; the text both drivers emit is the fallback for cgo builds
// where the shim picks mattn instead. The raw error never leaves this
// package.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
