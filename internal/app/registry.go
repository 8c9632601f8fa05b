package app

import (
	"net/http"

	"go-inventory/internal/auth"
	"go-inventory/internal/config"
	"go-inventory/internal/department"
	"go-inventory/internal/message"
	"go-inventory/internal/messaging/outbox"
	"go-inventory/internal/messaging/rabbitmq"
	"go-inventory/internal/middleware"
	"go-inventory/internal/product"
	"go-inventory/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	infra *Infra,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(infra.GormDB)
	productRepo := product.NewRepository(infra.GormDB)
	userRepo := user.NewRepository(infra.GormDB)
	outboxRepo := outbox.NewRepository(infra.SQLX)

	// --- Auth ---
	tokens := auth.NewTokenManager([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	authMiddleware := middleware.Auth(tokens)
	idempotency := middleware.Idempotency(infra.Redis)

	// --- Services ---
	authService := auth.NewService(userRepo, tokens, logger)
	departmentService := department.NewService(infra.SQLDB, departmentRepo, infra.Redis, logger)
	productService := product.NewService(infra.SQLDB, productRepo, outboxRepo, logger)
	userService := user.NewService(infra.SQLDB, userRepo, logger)

	amqpURL := rabbitmq.URL(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.VHost)
	queueReader := rabbitmq.NewReader(rabbitmq.NewDialer(amqpURL, cfg.RabbitMQ.DialTimeout))
	messageService := message.NewService(queueReader, cfg.RabbitMQ.Queue, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	productHandler := product.NewHandler(productService, logger)
	userHandler := user.NewHandler(userService, logger)
	messageHandler := message.NewHandler(messageService)

	// --- Routes ---
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API online!")
	})

	root := &router.RouterGroup
	auth.RegisterRoutes(root, authHandler, authMiddleware, middleware.RateLimitByIP(0.08, 5))
	department.RegisterRoutes(root, departmentHandler, authMiddleware, idempotency)
	product.RegisterRoutes(root, productHandler, authMiddleware, idempotency)
	user.RegisterRoutes(root, userHandler, authMiddleware, idempotency)
	message.RegisterRoutes(root, messageHandler, authMiddleware)

	return nil
}
