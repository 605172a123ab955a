package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/infras/kafka"
)

func TestToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "store-1",
		Value:   map[string]string{"action": "booking.checked_in"},
		Headers: map[string]string{"event": "audit"},
	}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("store-1"), out.Key)
	assert.JSONEq(t, `{"action":"booking.checked_in"}`, string(out.Value))
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "event", out.Headers[0].Key)
	assert.Equal(t, []byte("audit"), out.Headers[0].Value)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
