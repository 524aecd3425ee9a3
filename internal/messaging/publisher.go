// Package messaging publishes kitchen tickets for submitted orders over AMQP.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Ticket is what the kitchen needs to assemble a tray.
type Ticket struct {
	OrderID     string       `json:"order_id"`
	Items       []TicketItem `json:"items"`
	Total       string       `json:"total"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

type TicketItem struct {
	Course string `json:"course"`
	Name   string `json:"name"`
}

// RoutingKey is kitchen.<first word of the entree>, or kitchen.tray when
// there is no entree.
func RoutingKey(t Ticket) string {
	for _, it := range t.Items {
		if it.Course != "entree" {
			continue
		}
		if fields := strings.Fields(strings.ToLower(it.Name)); len(fields) > 0 {
			return "kitchen." + fields[0]
		}
	}
	return "kitchen.tray"
}

const publishTimeout = 10 * time.Second

// Publisher sends tickets to the exchange of its connection.
type Publisher struct {
	conn *Connection
	log  *zap.Logger
}

func NewPublisher(conn *Connection, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{conn: conn, log: log}
}

func newPublishing(t Ticket, now time.Time) (amqp091.Publishing, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("failed to marshal ticket: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		MessageId:    t.OrderID,
		Timestamp:    now,
	}, nil
}

// PublishTicket sends t, reconnecting first when needed. The reconnect and the
// publish share one publishTimeout budget.
func (p *Publisher) PublishTicket(ctx context.Context, t Ticket) error {
	publishing, err := newPublishing(t, time.Now())
	if err != nil {
		return err
	}
	key := RoutingKey(t)

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(ctx); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	if err := p.conn.Channel().PublishWithContext(
		ctx,
		p.conn.Exchange(), // exchange
		key,               // routing key
		false,             // mandatory
		false,             // immediate
		publishing,
	); err != nil {
		p.log.Error("ticket publish failed",
			zap.String("exchange", p.conn.Exchange()),
			zap.String("routing_key", key),
			zap.Error(err))
		return fmt.Errorf("failed to publish ticket: %w", err)
	}

	p.log.Debug("ticket published",
		zap.String("order_id", t.OrderID),
		zap.String("routing_key", key),
		zap.Int("message_size", len(publishing.Body)))
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
