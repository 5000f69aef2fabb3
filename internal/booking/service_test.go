package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"booking-desk/internal/booking"
	"booking-desk/internal/booking/db"
	"booking-desk/internal/logger"
	"booking-desk/internal/models"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) InsertBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockDBLayer) GetBookingByDate(ctx context.Context, date string) (*models.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockDBLayer) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockDBLayer) DeleteBookingByDate(ctx context.Context, date string) (*models.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingCreated(b models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockPublisher) PublishBookingCancelled(b models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func newTestService(dbLayer *MockDBLayer, publisher *MockPublisher) *booking.Service {
	return booking.NewService(dbLayer, publisher, logger.NewNop())
}

func strPtr(s string) *string {
	return &s
}

func TestCreateBookingRejectsInvalidDates(t *testing.T) {
	invalidDates := []string{
		"2025/12/03",
		"12-03-2025",
		"not-a-date",
		"2025-02-30",
		"2025-13-01",
		"2025-12-021",
		"",
	}

	for _, date := range invalidDates {
		dbLayer := new(MockDBLayer)
		publisher := new(MockPublisher)
		service := newTestService(dbLayer, publisher)

		created, err := service.CreateBooking(context.Background(), models.BookingRequest{Date: date})
		assert.ErrorIs(t, err, booking.ErrInvalidDate, "date %q should be rejected", date)
		assert.Nil(t, created)

		// Validation fails before any storage access
		dbLayer.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
	}
}

func TestCreateBookingDefaultsToNilEmployeeFields(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	dbLayer.On("InsertBooking", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Booking).ID = 1
		}).
		Return(nil)
	publisher.On("PublishBookingCreated", mock.AnythingOfType("models.Booking")).Return(nil)

	created, err := service.CreateBooking(context.Background(), models.BookingRequest{Date: "2025-12-02"})
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "2025-12-02", created.Date)
	assert.Nil(t, created.EmployeeName)
	assert.Nil(t, created.EmployeeEmail)
	assert.False(t, created.CreatedAt.IsZero())

	dbLayer.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateBookingTranslatesDateTaken(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	dbLayer.On("InsertBooking", mock.Anything, mock.Anything).Return(db.ErrDateTaken)

	created, err := service.CreateBooking(context.Background(), models.BookingRequest{Date: "2025-12-03"})
	assert.Nil(t, created)

	var alreadyBooked *booking.AlreadyBookedError
	assert.ErrorAs(t, err, &alreadyBooked)
	assert.Equal(t, "2025-12-03", alreadyBooked.Date)

	publisher.AssertNotCalled(t, "PublishBookingCreated", mock.Anything)
}

func TestCreateBookingPropagatesOpaqueStorageErrors(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	storageErr := errors.New("database is locked")
	dbLayer.On("InsertBooking", mock.Anything, mock.Anything).Return(storageErr)

	created, err := service.CreateBooking(context.Background(), models.BookingRequest{Date: "2025-12-03"})
	assert.Nil(t, created)
	assert.ErrorIs(t, err, storageErr)

	var alreadyBooked *booking.AlreadyBookedError
	assert.False(t, errors.As(err, &alreadyBooked))
	assert.NotErrorIs(t, err, booking.ErrInvalidDate)
}

func TestCreateBookingPublishFailureDoesNotFailCreate(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	dbLayer.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishBookingCreated", mock.Anything).Return(errors.New("broker down"))

	created, err := service.CreateBooking(context.Background(), models.BookingRequest{
		Date:         "2025-12-02",
		EmployeeName: strPtr("Alice"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestGetBookingAbsentIsNotAnError(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	dbLayer.On("GetBookingByDate", mock.Anything, "2025-12-02").Return(nil, db.ErrBookingNotFound)

	found, err := service.GetBooking(context.Background(), "2025-12-02")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetBookingReturnsStoredRecord(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	stored := &models.Booking{ID: 7, Date: "2025-12-02", EmployeeName: strPtr("Alice")}
	dbLayer.On("GetBookingByDate", mock.Anything, "2025-12-02").Return(stored, nil)

	found, err := service.GetBooking(context.Background(), "2025-12-02")
	assert.NoError(t, err)
	assert.Equal(t, stored, found)
}

func TestListBookings(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	stored := []models.Booking{
		{ID: 2, Date: "2025-12-08"},
		{ID: 3, Date: "2025-12-09"},
		{ID: 1, Date: "2025-12-10"},
	}
	dbLayer.On("ListBookings", mock.Anything).Return(stored, nil)

	bookings, err := service.ListBookings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, stored, bookings)
}

func TestDeleteBookingAbsentReturnsFalse(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	dbLayer.On("DeleteBookingByDate", mock.Anything, "2025-12-02").Return(nil, db.ErrBookingNotFound)

	removed, err := service.DeleteBooking(context.Background(), "2025-12-02")
	assert.NoError(t, err)
	assert.False(t, removed)

	publisher.AssertNotCalled(t, "PublishBookingCancelled", mock.Anything)
}

func TestDeleteBookingRemovesAndPublishes(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	stored := &models.Booking{ID: 4, Date: "2025-12-02"}
	dbLayer.On("DeleteBookingByDate", mock.Anything, "2025-12-02").Return(stored, nil)
	publisher.On("PublishBookingCancelled", *stored).Return(nil)

	removed, err := service.DeleteBooking(context.Background(), "2025-12-02")
	assert.NoError(t, err)
	assert.True(t, removed)

	dbLayer.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeleteBookingPublishesTheRemovedRow(t *testing.T) {
	dbLayer := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := newTestService(dbLayer, publisher)

	// The storage delete hands back the row it removed; the event must
	// carry that row, not the result of a separate lookup that a
	// concurrent recreate of the same date could have replaced.
	removedRow := &models.Booking{ID: 4, Date: "2025-12-02", EmployeeName: strPtr("Alice")}
	dbLayer.On("DeleteBookingByDate", mock.Anything, "2025-12-02").Return(removedRow, nil)
	publisher.On("PublishBookingCancelled", mock.AnythingOfType("models.Booking")).
		Run(func(args mock.Arguments) {
			published := args.Get(0).(models.Booking)
			assert.Equal(t, int64(4), published.ID)
			assert.Equal(t, "Alice", *published.EmployeeName)
		}).
		Return(nil)

	removed, err := service.DeleteBooking(context.Background(), "2025-12-02")
	assert.NoError(t, err)
	assert.True(t, removed)

	dbLayer.AssertNotCalled(t, "GetBookingByDate", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}
