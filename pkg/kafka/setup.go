package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// Logger defines the interface for logging operations in the kafka package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Encoder turns a run event into a message value.
type Encoder interface {
	Encode(ctx context.Context, event runs.Event) ([]byte, error)
	ContentType() string
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(_ context.Context, event runs.Event) ([]byte, error) {
	return json.Marshal(event)
}

func (jsonEncoder) ContentType() string { return "application/json" }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes run events to a Kafka topic, keyed by perturbation so that
// events of one perturbation stay ordered within a partition.
type Producer struct {
	cfg     Config
	writer  messageWriter
	encoder Encoder
	logger  Logger
}

// NewProducer builds a synchronous writer with JSON values by default. Connections are
// opened lazily on first write.
func NewProducer(cfg Config, logger Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		MaxAttempts:            cfg.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: cfg.AllowAutoTopicCreation,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error("Kafka internal error", nil, map[string]interface{}{
				"error": fmt.Sprintf(msg, args...),
			})
		}),
	}

	switch cfg.CompressionCodec {
	case "":
	case "gzip":
		w.Compression = compress.Gzip
	case "snappy":
		w.Compression = compress.Snappy
	case "lz4":
		w.Compression = compress.Lz4
	case "zstd":
		w.Compression = compress.Zstd
	default:
		return nil, fmt.Errorf("kafka: unknown compression codec %q", cfg.CompressionCodec)
	}

	logger.Info("kafka producer configured", nil, map[string]interface{}{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	})
	return &Producer{cfg: cfg, writer: w, encoder: jsonEncoder{}, logger: logger}, nil
}

// WithEncoder replaces the value encoding.
func (p *Producer) WithEncoder(e Encoder) *Producer {
	p.encoder = e
	return p
}

// PublishRun writes an event keyed by its perturbation.
func (p *Producer) PublishRun(ctx context.Context, event runs.Event) error {
	value, err := p.encoder.Encode(ctx, event)
	if err != nil {
		return fmt.Errorf("encoding run event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Perturbation),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte(p.encoder.ContentType())},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka: writing to %s: %w", p.cfg.Topic, err)
	}
	return nil
}

// Close flushes pending writes and closes broker connections.
func (p *Producer) Close() error {
	return p.writer.Close()
}
