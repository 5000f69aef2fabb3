package kafka

import (
	"fmt"

	"booking-desk/internal/logger"
	"booking-desk/internal/models"
)

// MockProducer backs KAFKA_MOCK_MODE and deployments without a broker.
// It satisfies the service's publisher interface by logging the events
// it would have streamed.
type MockProducer struct {
	Log *logger.Logger
}

func NewMockProducer(log *logger.Logger) *MockProducer {
	return &MockProducer{Log: log}
}

func (m *MockProducer) PublishBookingCreated(booking models.Booking) error {
	m.Log.Info("KAFKA", fmt.Sprintf("[mock] %s for %s", EventBookingCreated, booking.Date))
	return nil
}

func (m *MockProducer) PublishBookingCancelled(booking models.Booking) error {
	m.Log.Info("KAFKA", fmt.Sprintf("[mock] %s for %s", EventBookingCancelled, booking.Date))
	return nil
}
