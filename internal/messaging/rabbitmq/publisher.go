package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-inventory/internal/messaging/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends outbox events to a queue named after the event topic on the
// default exchange. The session is opened lazily and reopened after a
// failure.
type Publisher struct {
	dial   Dialer
	logger *zap.Logger

	mu       sync.Mutex
	session  Session
	channel  Channel
	declared map[string]bool
}

func NewPublisher(dial Dialer, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.L()
	}
	return &Publisher{
		dial:     dial,
		logger:   logger.Named("rabbitmq.publisher"),
		declared: make(map[string]bool),
	}
}

func (p *Publisher) Publish(ctx context.Context, event outbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	if !p.declared[event.Topic] {
		if _, err := ch.QueueDeclare(event.Topic, false, false, false, false, nil); err != nil {
			p.reset()
			return fmt.Errorf("declare queue %s: %w", event.Topic, err)
		}
		p.declared[event.Topic] = true
	}

	err = ch.PublishWithContext(ctx, "", event.Topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.ID,
		Type:        event.EventType,
		Timestamp:   time.Now().UTC(),
		Headers: amqp.Table{
			"aggregate_type": event.AggregateType,
			"aggregate_id":   event.AggregateID,
			"request_id":     event.RequestID,
		},
		Body: event.Payload,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("publish to %s: %w", event.Topic, err)
	}
	return nil
}

func (p *Publisher) ensureChannel() (Channel, error) {
	if p.channel != nil && p.session != nil && !p.session.IsClosed() {
		return p.channel, nil
	}
	p.reset()

	session, err := p.dial()
	if err != nil {
		return nil, err
	}
	ch, err := session.Channel()
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p.session = session
	p.channel = ch
	p.logger.Info("rabbitmq channel opened")
	return ch, nil
}

func (p *Publisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.session != nil {
		_ = p.session.Close()
		p.session = nil
	}
	p.declared = make(map[string]bool)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
