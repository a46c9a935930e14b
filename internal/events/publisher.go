// Package events publishes ledger events to RabbitMQ.
package events

import (
	"context" // Context for publishing
	"fmt"     // Error wrapping
	"time"    // Publish timeout

	"github.com/rabbitmq/amqp091-go" // RabbitMQ client
	"github.com/sirupsen/logrus"     // Logrus for structured logging
)

// Publisher announces ledger writes to other systems
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, msg *TransactionCreated) error
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

// PublishTransactionCreated implements Publisher
func (NopPublisher) PublishTransactionCreated(context.Context, *TransactionCreated) error {
	return nil
}

// Close implements Publisher
func (NopPublisher) Close() error { return nil }

// AMQPPublisher publishes events to a durable topic exchange
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPPublisher dials url and declares the exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// PublishTransactionCreated implements Publisher
func (p *AMQPPublisher) PublishTransactionCreated(ctx context.Context, msg *TransactionCreated) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,                // exchange
		RoutingTransactionCreated, // routing key
		false,                     // mandatory
		false,                     // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent, // survive broker restarts
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": msg.ID,                    // Transaction id
		"exchange":       p.exchange,                // Exchange name
		"routing_key":    RoutingTransactionCreated, // Routing key
	}).Debug("Published transaction event")
	return nil
}

// Close implements Publisher
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
