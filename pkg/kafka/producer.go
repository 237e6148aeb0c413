package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafka_config "hms/pkg/kafka/config"
	"hms/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Publisher is the narrow surface services depend on.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Producer struct {
	writer     *kafka.Writer
	dlqWriter  *kafka.Writer
	topic      string
	log        *logger.Logger
	middleware []ProducerMiddleware
	closed     bool
	mu         sync.RWMutex
}

type ProducerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewProducer(cfg *kafka_config.Config, log *logger.Logger, topic string, dlqTopic string) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	producer := &Producer{
		writer: newWriter(cfg, log, topic, requiredAcks(cfg.ProducerRequireAcks), cfg.ProducerMaxAttempts),
		topic:  topic,
		log:    log,
	}
	producer.writer.BatchTimeout = cfg.ProducerBatchTimeout
	producer.writer.Async = cfg.ProducerAsync

	if dlqTopic != "" {
		producer.dlqWriter = newWriter(cfg, log, dlqTopic, kafka.RequireAll, 3)
	}

	return producer, nil
}

func newWriter(cfg *kafka_config.Config, log *logger.Logger, topic string, acks kafka.RequiredAcks, attempts int) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: acks,
		Compression:  compression(cfg.ProducerCompression),
		MaxAttempts:  attempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		Async:        cfg.ProducerAsync,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  errorLogger(log, topic),
	}
}

func errorLogger(log *logger.Logger, topic string) kafka.LoggerFunc {
	return func(msg string, args ...any) {
		log.Error("kafka client error", "topic", topic, "detail", fmt.Sprintf(msg, args...))
	}
}

func compression(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none":
		return compress.None
	default:
		return compress.Snappy
	}
}

func requiredAcks(n int) kafka.RequiredAcks {
	switch n {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	closed := p.closed
	middleware := p.middleware
	p.mu.RUnlock()
	if closed {
		return ErrProducerClosed
	}

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	msg.Topic = p.topic

	return chain(middleware, p.publishInternal)(ctx, msg)
}

// chain wraps final so that middleware[0] runs first.
func chain[M ~func(context.Context, Message, MessageHandler) error](middleware []M, final MessageHandler) MessageHandler {
	handler := final
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return mw(ctx, m, next)
		}
	}
	return handler
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := writeDLQ(ctx, p.dlqWriter, p.topic, msg, err, nil); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
		}
	}
	return err
}

func writeDLQ(ctx context.Context, w *kafka.Writer, topic string, msg Message, cause error, extra map[string]string) error {
	headers := make(map[string]string, len(msg.Headers)+3+len(extra))
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = topic
	headers[HeaderDLQError] = cause.Error()
	headers[HeaderDLQTimestamp] = time.Now().UTC().Format(time.RFC3339)
	for k, v := range extra {
		headers[k] = v
	}
	msg.Headers = headers
	msg.Timestamp = time.Now().UTC()

	return w.WriteMessages(ctx, toKafkaMessage(msg))
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.writer.Close()
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}
