package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Connection wraps a RabbitMQ connection and channel with reconnection logic.
type Connection struct {
	mu          sync.Mutex
	conn        *amqp091.Connection
	channel     *amqp091.Channel
	url         string
	exchange    string
	retries     int
	dialTimeout time.Duration // per attempt; the caller's deadline caps the total
	log         *zap.Logger
}

// Dial connects and declares the ticket exchange. Retries stop when ctx is done.
func Dial(ctx context.Context, url, exchange string, log *zap.Logger) (*Connection, error) {
	c := newConnection(url, exchange, log)
	if err := c.connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}
	return c, nil
}

func newConnection(url, exchange string, log *zap.Logger) *Connection {
	if log == nil {
		log = zap.NewNop()
	}
	return &Connection{url: url, exchange: exchange, retries: 3, dialTimeout: 5 * time.Second, log: log}
}

func (c *Connection) connect(ctx context.Context) error {
	var err error
	for i := 0; i < c.retries; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("connect to RabbitMQ: %w", ctxErr)
		}
		if err = c.dialOnce(ctx); err == nil {
			return nil
		}
		if i < c.retries-1 {
			wait := time.Duration(i+1) * time.Second
			c.log.Warn("rabbitmq connection failed, retrying",
				zap.Duration("wait", wait),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return fmt.Errorf("connect to RabbitMQ: %w (last error: %v)", ctx.Err(), err)
			case <-time.After(wait):
			}
		}
	}
	return fmt.Errorf("connect to RabbitMQ after %d attempts: %w", c.retries, err)
}

func (c *Connection) dialOnce(ctx context.Context) error {
	timeout := c.dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	conn, err := amqp091.DialConfig(c.url, amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp091.DefaultDial(timeout),
	})
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}
	c.conn, c.channel = conn, ch
	return nil
}

// Channel returns the current channel.
func (c *Connection) Channel() *amqp091.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

func (c *Connection) Exchange() string { return c.exchange }

func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == nil || c.conn.IsClosed() || c.channel == nil || c.channel.IsClosed()
}

// Reconnect drops whatever is left of the old connection and dials again.
func (c *Connection) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return c.connect(ctx)
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	var err error
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	return err
}
