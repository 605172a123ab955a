package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookit/config"
	"bookit/infras/kafka"
	kafkaMocks "bookit/infras/kafka/mocks"
	"bookit/infras/otel/mocks"
	"bookit/internal/events"
)

func newPublisher(t *testing.T) (events.Publisher, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Audit = "bookit.audit"
	cfg.Kafka.Topics.Notification = "bookit.notification"

	return events.NewPublisher(client, cfg, mocks.NewOtel()), client
}

func TestPublisher_Audit(t *testing.T) {
	publisher, client := newPublisher(t)

	done := make(chan struct{})

	client.EXPECT().
		SendMessages(gomock.Any(), "bookit.audit", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			defer close(done)

			assert.Len(t, messages, 1)
			assert.Equal(t, "booking-1", messages[0].Key)
			assert.Equal(t, events.TypeBookingTransitioned, messages[0].Headers["event_type"])

			event, ok := messages[0].Value.(events.Audit)
			assert.True(t, ok)
			assert.False(t, event.OccurredAt.IsZero())

			return nil
		})

	publisher.Audit(context.Background(), events.Audit{
		Type:       events.TypeBookingTransitioned,
		EntityType: events.EntityBooking,
		EntityID:   "booking-1",
		ActorID:    "staff-1",
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("audit event was not published")
	}
}

func TestPublisher_RequestCreatedIsKeyedByStore(t *testing.T) {
	publisher, client := newPublisher(t)

	done := make(chan struct{})

	client.EXPECT().
		SendMessages(gomock.Any(), "bookit.notification", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			defer close(done)

			assert.Equal(t, "store-1", messages[0].Key)

			return assert.AnError
		})

	publisher.RequestCreated(context.Background(), events.RequestCreated{RequestID: "request-1", StoreID: "store-1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notification was not published")
	}
}
