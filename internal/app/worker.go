package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-inventory/internal/config"
	"go-inventory/internal/messaging/outbox"
	"go-inventory/internal/messaging/producer"
	"go-inventory/internal/messaging/rabbitmq"
	"go-inventory/internal/shared/connection"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewPublisher returns the outbox publisher for the configured broker.
func NewPublisher(cfg *config.Config, logger *zap.Logger) (producer.Publisher, error) {
	switch cfg.Messaging.Broker {
	case config.BrokerKafka:
		writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, connectRetries)
		if err != nil {
			return nil, err
		}
		return producer.NewKafkaPublisher(writer), nil
	case config.BrokerRabbitMQ:
		url := rabbitmq.URL(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.VHost)
		return rabbitmq.NewPublisher(rabbitmq.NewDialer(url, cfg.RabbitMQ.DialTimeout), logger), nil
	default:
		return nil, fmt.Errorf("unknown broker %q", cfg.Messaging.Broker)
	}
}

func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), connectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	pub, err := NewPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer pub.Close()

	outboxRepo := outbox.NewRepository(sqlx.NewDb(sqlDB, "pgx"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			pub,
			logger,
			cfg.Worker.PollInterval,
		)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down", zap.String("broker", cfg.Messaging.Broker))
	cancel()
	<-done

	return nil
}
