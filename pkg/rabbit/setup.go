package rabbit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger defines the interface for logging operations in the rabbit package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Rabbit publishes run events to a RabbitMQ exchange with publisher confirms.
type Rabbit struct {
	cfg Config

	Channel *amqp.Channel
	conn    *amqp.Connection

	logger Logger

	// mu serializes publishes; an amqp channel is not safe for concurrent use.
	mu sync.Mutex
}

// NewClient connects, enables confirms and declares the durable events exchange.
func NewClient(cfg Config, logger Logger) (*Rabbit, error) {
	conn, err := newConnection(cfg, logger)
	if err != nil {
		return nil, err
	}

	ch, err := connectToChannel(conn, cfg, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Rabbit{cfg: cfg, conn: conn, Channel: ch, logger: logger}, nil
}

func connectToChannel(conn *amqp.Connection, cfg Config, logger Logger) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		logger.Error("failed to declare exchange", err, map[string]interface{}{
			"exchange": cfg.Channel.ExchangeName,
		})
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return ch, nil
}

func newConnection(cfg Config, logger Logger) (*amqp.Connection, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Connection.Host, cfg.Connection.Port)
	logger.Info("Connecting to Rabbit", nil, map[string]interface{}{"rabbit_addr": addr})

	conn, err := amqp.DialConfig(cfg.Connection.URL(), amqp.Config{
		Heartbeat: 2 * time.Second,
	})
	if err != nil {
		logger.Error("error in connecting to rabbit", err, map[string]interface{}{"rabbit_addr": addr})
		return nil, fmt.Errorf("failed to connect to Rabbit: %w", err)
	}

	logger.Info("Connected to Rabbit", nil, map[string]interface{}{"rabbit_addr": addr})
	return conn, nil
}

// Close closes the channel and the connection.
func (rb *Rabbit) Close() error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if err := rb.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	if err := rb.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
