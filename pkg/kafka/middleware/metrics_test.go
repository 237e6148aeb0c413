package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"hms/pkg/kafka"
	"hms/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCountOutcomes(t *testing.T) {
	m := NewMetrics()
	ok := func(context.Context, kafka.Message) error { return nil }
	fail := func(context.Context, kafka.Message) error { return errors.New("boom") }

	_ = m.ProducerMiddleware()(context.Background(), kafka.Message{}, ok)
	_ = m.ProducerMiddleware()(context.Background(), kafka.Message{}, fail)
	_ = m.ConsumerMiddleware()(context.Background(), kafka.Message{}, ok)

	s := m.Snapshot()
	assert.Equal(t, int64(1), s.Published)
	assert.Equal(t, int64(1), s.PublishFailed)
	assert.Equal(t, int64(1), s.Consumed)
	assert.Equal(t, int64(0), s.ConsumeFailed)

	m.Reset()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestLoggingMiddlewarePassesErrorThrough(t *testing.T) {
	want := errors.New("boom")
	err := LoggingConsumerMiddleware(logger.Nop())(context.Background(), kafka.Message{}, func(context.Context, kafka.Message) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
