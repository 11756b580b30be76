package export

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher hands a message to a durable queue. The call returns once
// the broker has accepted the message; a failure is an infrastructure
// error for the caller to surface, never to swallow.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// RabbitPublisher is a managed AMQP publisher. One connection and
// channel are reused across publishes and re-dialed lazily after a
// failure, instead of opening a connection per message.
type RabbitPublisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher creates a publisher for the given broker URL. The
// connection is established on first publish.
func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url}
}

// Publish declares the durable queue and sends the message with
// persistent delivery. On any broker error the cached connection is
// discarded so the next attempt redials.
func (p *RabbitPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.reset()
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("failed to publish to queue %s: %w", queue, err)
	}
	return nil
}

// Close shuts the connection down.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	p.ch = nil
	return err
}

// channel returns the cached channel, dialing if necessary. Caller
// holds the mutex.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p.conn = conn
	p.ch = ch
	return ch, nil
}

// reset drops the cached connection after a failure. Caller holds the mutex.
func (p *RabbitPublisher) reset() {
	if p.conn != nil {
		p.conn.Close()
	}
	p.conn = nil
	p.ch = nil
}
