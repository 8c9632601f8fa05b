package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Reader drains messages from a queue with auto-ack, one session per call.
type Reader struct {
	dial Dialer
}

func NewReader(dial Dialer) *Reader {
	return &Reader{dial: dial}
}

// Read fetches at most max messages from queue and returns their bodies as
// text. A queue that does not exist yet reads as empty. Messages are acked on
// receipt, so when a later fetch fails the ones already read are returned
// together with the error.
func (r *Reader) Read(ctx context.Context, queue string, max int) ([]string, error) {
	session, err := r.dial()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	ch, err := session.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	messages := make([]string, 0, max)
	for len(messages) < max {
		if err := ctx.Err(); err != nil {
			return messages, err
		}

		d, ok, err := ch.Get(queue, true)
		if err != nil {
			var amqpErr *amqp.Error
			if errors.As(err, &amqpErr) && amqpErr.Code == amqp.NotFound {
				return messages, nil
			}
			return messages, fmt.Errorf("get from %s: %w", queue, err)
		}
		if !ok {
			break
		}
		messages = append(messages, string(d.Body))
	}
	return messages, nil
}
