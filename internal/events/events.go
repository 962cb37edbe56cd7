// Package events publishes booking and payment lifecycle events to Kafka.
// Publishing is fire-and-forget: a broker failure is logged and never fails
// the operation that produced the event.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/shared/constant"
	"rental/shared/timezone"
)

const (
	TopicBookings = "rental.bookings"
	TopicPayments = "rental.payments"
)

const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"

	PaymentSubmitted = "payment.submitted"
	PaymentApproved  = "payment.approved"
	PaymentRejected  = "payment.rejected"
	PaymentRefunded  = "payment.refunded"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	VehicleID  string    `json:"vehicle_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PaymentEvent struct {
	Type       string    `json:"type"`
	PaymentID  string    `json:"payment_id"`
	BookingID  string    `json:"booking_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Booking(ctx context.Context, event BookingEvent)
	Payment(ctx context.Context, event PaymentEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, ot otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   ot,
	}
}

func (p *publisherImpl) Booking(ctx context.Context, event BookingEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	p.send(ctx, TopicBookings, event.BookingID, event)
}

func (p *publisherImpl) Payment(ctx context.Context, event PaymentEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	p.send(ctx, TopicPayments, event.PaymentID, event)
}

func (p *publisherImpl) send(ctx context.Context, topic, key string, value any) {
	if !p.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		c, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".send")
		defer scope.End()

		err := p.client.SendMessages(c, topic, kafka.Message{Key: key, Value: value})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to publish event")
		}
	}()
}
