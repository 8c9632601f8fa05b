// Package rabbitmq publishes outbox events to RabbitMQ queues and drains
// queues on demand.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-inventory/internal/shared/connection"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrBrokerUnavailable is returned when no connection to the broker could be
// established.
var ErrBrokerUnavailable = errors.New("rabbitmq broker unavailable")

// Channel is the subset of *amqp.Channel used here.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Close() error
}

type Session interface {
	Channel() (Channel, error)
	IsClosed() bool
	Close() error
}

// Dialer opens a new broker session.
type Dialer func() (Session, error)

type connSession struct {
	conn *amqp.Connection
}

func (s connSession) Channel() (Channel, error) {
	ch, err := s.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (s connSession) IsClosed() bool {
	return s.conn.IsClosed()
}

func (s connSession) Close() error {
	return s.conn.Close()
}

// NewDialer returns a Dialer for amqpURL that gives up after timeout. Dial
// failures are wrapped with ErrBrokerUnavailable.
func NewDialer(amqpURL string, timeout time.Duration) Dialer {
	return func() (Session, error) {
		conn, err := connection.DialAMQP(amqpURL, timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
		}
		return connSession{conn: conn}, nil
	}
}

// URL builds an amqp URL from its parts. An empty or "/" vhost selects the
// broker default.
func URL(host string, port int, user, pass, vhost string) string {
	u := url.URL{
		Scheme: "amqp",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/",
	}
	if vhost != "" && vhost != "/" {
		u.Path = "/" + strings.TrimPrefix(vhost, "/")
	}
	if user != "" {
		u.User = url.UserPassword(user, pass)
	}
	return u.String()
}
