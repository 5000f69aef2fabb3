package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-desk/internal/booking/db"
	"booking-desk/internal/logger"
	"booking-desk/internal/models"
)

type DBLayer interface {
	InsertBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByDate(ctx context.Context, date string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBookingByDate(ctx context.Context, date string) (*models.Booking, error)
}

type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishBookingCancelled(booking models.Booking) error
}

// Service is the booking ledger. It owns the validation and error
// taxonomy of the write path; the atomic check-and-insert itself lives
// in the storage layer's UNIQUE constraint.
type Service struct {
	DB     DBLayer
	Events EventPublisher
	Log    *logger.Logger
}

func NewService(db DBLayer, events EventPublisher, log *logger.Logger) *Service {
	return &Service{DB: db, Events: events, Log: log}
}

// CreateBooking validates the requested date, then attempts the atomic
// insert. A uniqueness violation from storage is translated into
// *AlreadyBookedError; every other storage error propagates opaque. The
// returned booking is the stored record including the assigned id.
func (s *Service) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if !validDate(req.Date) {
		return nil, ErrInvalidDate
	}

	booking := &models.Booking{
		Date:          req.Date,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.DB.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, db.ErrDateTaken) {
			return nil, &AlreadyBookedError{Date: req.Date}
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	s.Log.LogBooking("CREATE", booking.Date, fmt.Sprintf("booking %d created", booking.ID))
	if err := s.Events.PublishBookingCreated(*booking); err != nil {
		s.Log.Error("KAFKA", fmt.Sprintf("publish booking created for %s: %v", booking.Date, err))
	}

	return booking, nil
}

// GetBooking looks up the booking for an exact date. An absent booking
// is (nil, nil), not an error.
func (s *Service) GetBooking(ctx context.Context, date string) (*models.Booking, error) {
	booking, err := s.DB.GetBookingByDate(ctx, date)
	if err != nil {
		if errors.Is(err, db.ErrBookingNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns every live booking ascending by date.
func (s *Service) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.DB.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// DeleteBooking removes the booking at date if present and reports
// whether a row was removed. Idempotent: a second call returns false.
// The storage delete returns the removed row in the same statement, so
// the log line and cancellation event always carry the booking that was
// actually removed even when a concurrent caller recreates the date.
func (s *Service) DeleteBooking(ctx context.Context, date string) (bool, error) {
	booking, err := s.DB.DeleteBookingByDate(ctx, date)
	if err != nil {
		if errors.Is(err, db.ErrBookingNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete booking: %w", err)
	}

	s.Log.LogBooking("DELETE", date, fmt.Sprintf("booking %d removed", booking.ID))
	if err := s.Events.PublishBookingCancelled(*booking); err != nil {
		s.Log.Error("KAFKA", fmt.Sprintf("publish booking cancelled for %s: %v", date, err))
	}

	return true, nil
}
