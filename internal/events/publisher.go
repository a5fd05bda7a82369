// Package events publishes completed sales to RabbitMQ so that downstream
// consumers (accounting, turnstile sync) can follow the ticket offices.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

// SaleEvent is the JSON body of a sale message
type SaleEvent struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	Kind        models.SaleKind `json:"kind"`
	Station     string          `json:"station"`
	FromStation *string         `json:"from_station,omitempty"`
	ToStation   *string         `json:"to_station,omitempty"`
	Hops        *int            `json:"hops,omitempty"`
	PassSerial  *string         `json:"pass_serial,omitempty"`
	ExpiresOn   *models.Date    `json:"expires_on,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	SaleDate    models.Date     `json:"sale_date"`
	TerminalID  *string         `json:"terminal_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewSaleEvent builds the event for a journaled sale
func NewSaleEvent(sale *models.Sale, expiresOn *models.Date) SaleEvent {
	return SaleEvent{
		SaleID:      sale.ID,
		Kind:        sale.Kind,
		Station:     sale.Station,
		FromStation: sale.FromStation,
		ToStation:   sale.ToStation,
		Hops:        sale.Hops,
		PassSerial:  sale.PassSerial,
		ExpiresOn:   expiresOn,
		Amount:      sale.Amount,
		SaleDate:    sale.SaleDate,
		TerminalID:  sale.TerminalID,
		OccurredAt:  sale.CreatedAt,
	}
}

// SalePublisher delivers sale events
type SalePublisher interface {
	PublishSale(ctx context.Context, event SaleEvent) error
	Close() error
}

// NoopPublisher drops every event. Used when RABBITMQ_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) PublishSale(context.Context, SaleEvent) error { return nil }
func (NoopPublisher) Close() error                                 { return nil }

// AMQPPublisher publishes sale events to a durable queue over one long-lived
// connection. The channel is reopened after a broker-side close.
type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQPPublisher dials the broker and declares the sales queue
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	p := &AMQPPublisher{conn: conn, queue: queue}
	if err := p.openChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	// Durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	p.ch = ch
	return nil
}

// PublishSale sends one persistent message to the sales queue
func (p *AMQPPublisher) PublishSale(ctx context.Context, event SaleEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if p.conn.IsClosed() {
			return fmt.Errorf("rabbitmq: connection closed")
		}
		if err := p.openChannel(); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.SaleID.String(),
		Type:         string(event.Kind),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}
