// Package events publishes audit and notification events. Delivery is fire
// and forget: a broker failure is logged and never fails the operation that
// produced the event.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/kafka"
	"bookit/infras/otel"
	"bookit/shared/constant"
	"bookit/shared/timezone"
)

const (
	TypeBookingCreated      = "booking.created"
	TypeBookingTransitioned = "booking.transitioned"
	TypeBookingDeleted      = "booking.deleted"
	TypeRequestCreated      = "booking_request.created"
	TypeRequestConfirmed    = "booking_request.confirmed"
	TypeRequestCancelled    = "booking_request.cancelled"
	TypeRequestStatus       = "booking_request.status_changed"
	TypeRequestTimerStarted = "booking_request.payment_timer_started"
	TypeRequestConverted    = "booking_request.converted"
	TypeRequestExpired      = "booking_request.expired"
	TypeRoomStatusSet       = "room_status.set"
	TypeSequenceIssued      = "sequence.issued"

	EntityBooking        = "booking"
	EntityBookingRequest = "booking_request"
	EntityRoom           = "room"
	EntitySequence       = "sequence"
)

type Audit struct {
	Type        string    `json:"type"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	StoreID     string    `json:"store_id"`
	ActorID     string    `json:"actor_id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// RequestCreated is the notification sent for every new booking request.
type RequestCreated struct {
	RequestID       string    `json:"request_id"`
	BID             string    `json:"bid"`
	StoreID         string    `json:"store_id"`
	Category        *string   `json:"category"`
	Room            *string   `json:"room"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Duration        int       `json:"duration"`
	Price           float64   `json:"price"`
	ExpiredAt       time.Time `json:"expired_at"`
	ConfirmationURL string    `json:"confirmation_url"`
}

type Publisher interface {
	Audit(ctx context.Context, event Audit)
	RequestCreated(ctx context.Context, event RequestCreated)
}

type kafkaPublisher struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Audit(ctx context.Context, event Audit) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	p.publish(ctx, p.cfg.Kafka.Topics.Audit, event.EntityID, event.Type, event)
}

func (p *kafkaPublisher) RequestCreated(ctx context.Context, event RequestCreated) {
	p.publish(ctx, p.cfg.Kafka.Topics.Notification, event.StoreID, TypeRequestCreated, event)
}

func (p *kafkaPublisher) publish(ctx context.Context, topic, key, eventType string, payload any) {
	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+"."+eventType)
		defer scope.End()

		err := p.client.SendMessages(c, topic, kafka.Message{
			Key:     key,
			Value:   payload,
			Headers: map[string]string{"event_type": eventType},
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", topic).Str("event_type", eventType).Msg("failed to publish event")
		}
	}()
}
