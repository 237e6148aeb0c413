package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"hms/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("res-1").
		WithValue(map[string]string{"booking_code": "SGH-20250101-ABC123"}).
		WithEventType("reservation.created").
		WithCorrelationID("req-9").
		WithSource("hms-api").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "res-1", msg.Key)
	assert.JSONEq(t, `{"booking_code":"SGH-20250101-ABC123"}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "reservation.created", msg.GetEventType())
	assert.Equal(t, "req-9", msg.GetCorrelationID())
	assert.Equal(t, "1", msg.Headers[HeaderSchemaVersion])
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])
}

func TestMessageBuilderReportsEncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.Error(t, err)
}

func TestRetryCount(t *testing.T) {
	msg := Message{}
	assert.Equal(t, 0, msg.GetRetryCount())

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestKafkaMessageRoundTripKeepsHeaders(t *testing.T) {
	msg := Message{
		Key:       "k",
		Value:     []byte(`{}`),
		Headers:   map[string]string{HeaderEventType: "x"},
		Timestamp: time.Now(),
	}
	back := fromKafkaMessage(toKafkaMessage(msg))
	assert.Equal(t, msg.Key, back.Key)
	assert.Equal(t, msg.Headers, back.Headers)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, ClassifyError(nil))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(errors.New("dial tcp: Connection Refused")))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(NewTransientError("smtp", errors.New("x"))))
	assert.Equal(t, ErrorTypePermanent, ClassifyError(errors.New("invalid character in JSON")))
	assert.Equal(t, ErrorTypePermanent, ClassifyError(NewPermanentError("bad payload", nil)))
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("timeout", nil)
	assert.True(t, ShouldRetry(transient, 0, 3))
	assert.False(t, ShouldRetry(transient, 3, 3))
	assert.False(t, ShouldRetry(NewPermanentError("bad", nil), 0, 3))
	assert.False(t, ShouldRetry(nil, 0, 3))
}

func TestChainRunsMiddlewareInOrder(t *testing.T) {
	var order []string
	mw := func(name string) ProducerMiddleware {
		return func(ctx context.Context, msg Message, next MessageHandler) error {
			order = append(order, name)
			return next(ctx, msg)
		}
	}

	handler := chain([]ProducerMiddleware{mw("a"), mw("b")}, func(context.Context, Message) error {
		order = append(order, "final")
		return nil
	})
	require.NoError(t, handler(context.Background(), Message{}))
	assert.Equal(t, []string{"a", "b", "final"}, order)
}

func TestConsumerProcessRetriesTransientErrors(t *testing.T) {
	c := &Consumer{maxRetries: 3, log: logger.Nop()}

	calls := 0
	handler := func(context.Context, Message) error {
		calls++
		if calls < 3 {
			return NewTransientError("smtp timeout", nil)
		}
		return nil
	}

	err := c.process(context.Background(), handler, Message{Headers: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestConsumerProcessGivesUpOnPermanentErrors(t *testing.T) {
	c := &Consumer{maxRetries: 3, log: logger.Nop()}

	calls := 0
	err := c.process(context.Background(), func(context.Context, Message) error {
		calls++
		return NewPermanentError("undecodable", nil)
	}, Message{Headers: map[string]string{}})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestProducerPublishValidation(t *testing.T) {
	p := &Producer{topic: "t", log: logger.Nop()}
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	p.closed = true
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}), ErrProducerClosed)
}
