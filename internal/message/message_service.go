package message

import (
	"context"
	"errors"

	messageerrors "go-inventory/internal/message/errors"
	"go-inventory/internal/messaging/rabbitmq"
	"go-inventory/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	DefaultMax = 10
	MaxLimit   = 100
)

//go:generate mockgen -source=message_service.go -destination=mock/message_service_mock.go -package=mock
type QueueReader interface {
	Read(ctx context.Context, queue string, max int) ([]string, error)
}

type Service interface {
	Read(ctx context.Context, max int) ([]string, error)
}

type service struct {
	reader QueueReader
	queue  string
	logger *zap.Logger
}

func NewService(reader QueueReader, queue string, logger ...*zap.Logger) Service {
	l := zap.L().Named("message.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("message.service")
	}
	return &service{reader: reader, queue: queue, logger: l}
}

// Read drains up to max messages from the configured queue. max is clamped
// to [1, MaxLimit]. Messages already taken off the queue are returned even
// if the read is cut short.
func (s *service) Read(ctx context.Context, max int) ([]string, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	max = Clamp(max)

	messages, err := s.reader.Read(ctx, s.queue, max)
	if err != nil && len(messages) > 0 {
		log.Warn("rabbitmq read interrupted, returning partial batch",
			zap.String("queue", s.queue),
			zap.Int("count", len(messages)),
			zap.Error(err),
		)
		return messages, nil
	}
	if err != nil {
		if errors.Is(err, rabbitmq.ErrBrokerUnavailable) {
			log.Warn("rabbitmq unreachable", zap.String("queue", s.queue), zap.Error(err))
			return nil, messageerrors.ErrBrokerUnavailable.WithCause(err)
		}
		log.Error("rabbitmq read failed", zap.String("queue", s.queue), zap.Error(err))
		return nil, messageerrors.ErrReadFailed.WithCause(err)
	}

	log.Debug("rabbitmq messages read",
		zap.String("queue", s.queue),
		zap.Int("requested", max),
		zap.Int("count", len(messages)),
	)
	return messages, nil
}

func Clamp(max int) int {
	switch {
	case max < 1:
		return 1
	case max > MaxLimit:
		return MaxLimit
	default:
		return max
	}
}
