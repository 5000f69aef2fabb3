package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"booking-desk/internal/models"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the envelope streamed for every ledger write. Messages
// are keyed by the booking date so events for one date stay in order.
type BookingEvent struct {
	EventID    string         `json:"event_id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    models.Booking `json:"booking"`
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

// PublishBookingCreated streams the booking creation event.
func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	return p.publish(EventBookingCreated, booking)
}

// PublishBookingCancelled streams the booking removal event.
func (p *Producer) PublishBookingCancelled(booking models.Booking) error {
	return p.publish(EventBookingCancelled, booking)
}

func (p *Producer) publish(eventType string, booking models.Booking) error {
	event := BookingEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Booking:    booking,
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(booking.Date),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
