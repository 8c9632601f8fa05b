package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"

	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"

	MinJWTSecretLength = 32
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	TTL      time.Duration `mapstructure:"ttl"`

	// Ephemeral is set when a development secret was generated at startup.
	Ephemeral bool `mapstructure:"-"`
}

type RabbitMQConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Pass        string        `mapstructure:"pass"`
	VHost       string        `mapstructure:"vhost"`
	Queue       string        `mapstructure:"queue"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type MessagingConfig struct {
	Broker string `mapstructure:"broker"`
}

type KafkaConfig struct {
	Broker string `mapstructure:"broker"`
}

type WorkerConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"app.env":                 "APP_ENV",
	"server.port":             "PORT",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.idle_timeout":     "SERVER_IDLE_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
	"db.host":                 "DB_HOST",
	"db.port":                 "DB_PORT",
	"db.user":                 "DB_USER",
	"db.password":             "DB_PASSWORD",
	"db.name":                 "DB_NAME",
	"db.sslmode":              "DB_SSLMODE",
	"db.auto_migrate":         "DB_AUTO_MIGRATE",
	"redis.addr":              "REDIS_ADDR",
	"jwt.secret":              "JWT_SECRET",
	"jwt.issuer":              "JWT_ISSUER",
	"jwt.audience":            "JWT_AUDIENCE",
	"jwt.ttl":                 "JWT_TTL",
	"rabbitmq.host":           "RABBITMQ_HOST",
	"rabbitmq.port":           "RABBITMQ_PORT",
	"rabbitmq.user":           "RABBITMQ_USER",
	"rabbitmq.pass":           "RABBITMQ_PASS",
	"rabbitmq.vhost":          "RABBITMQ_VHOST",
	"rabbitmq.queue":          "RABBITMQ_QUEUE",
	"rabbitmq.dial_timeout":   "RABBITMQ_DIAL_TIMEOUT",
	"messaging.broker":        "MESSAGING_BROKER",
	"kafka.broker":            "KAFKA_BROKER",
	"worker.poll_interval":    "WORKER_POLL_INTERVAL",
	"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "inventory")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "inventory-api")
	v.SetDefault("jwt.audience", "inventory-api")
	v.SetDefault("jwt.ttl", "2h")

	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "")
	v.SetDefault("rabbitmq.pass", "")
	v.SetDefault("rabbitmq.vhost", "/")
	v.SetDefault("rabbitmq.queue", "test-queue")
	v.SetDefault("rabbitmq.dial_timeout", "5s")

	v.SetDefault("messaging.broker", BrokerRabbitMQ)
	v.SetDefault("kafka.broker", "")
	v.SetDefault("worker.poll_interval", "3s")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads .env (if present), then defaults < config file < environment.
// path may be empty, in which case ./config.yaml and ./config/config.yaml are
// tried.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.normalize()

	if err := cfg.resolveJWTSecret(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func (c *Config) normalize() {
	c.App.Env = strings.ToLower(strings.TrimSpace(c.App.Env))
	c.Messaging.Broker = strings.ToLower(strings.TrimSpace(c.Messaging.Broker))

	origins := c.CORS.AllowedOrigins[:0]
	for _, o := range c.CORS.AllowedOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORS.AllowedOrigins = origins
}

// resolveJWTSecret generates a throwaway secret in development when none is
// configured. Tokens signed with it do not survive a restart.
func (c *Config) resolveJWTSecret() error {
	if c.JWT.Secret != "" || !c.IsDevelopment() {
		return nil
	}
	buf := make([]byte, MinJWTSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate jwt secret: %w", err)
	}
	c.JWT.Secret = hex.EncodeToString(buf)
	c.JWT.Ephemeral = true
	return nil
}

func (c *Config) Validate() error {
	if len(c.JWT.Secret) < MinJWTSecretLength {
		if c.JWT.Secret == "" {
			return errors.New("config: JWT_SECRET is required")
		}
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("config: PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 ||
		c.Server.IdleTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("config: server timeouts must be positive")
	}
	switch c.Messaging.Broker {
	case BrokerRabbitMQ:
	case BrokerKafka:
		if c.Kafka.Broker == "" {
			return errors.New("config: KAFKA_BROKER is required when MESSAGING_BROKER=kafka")
		}
	default:
		return fmt.Errorf("config: unknown MESSAGING_BROKER %q", c.Messaging.Broker)
	}
	if c.Worker.PollInterval <= 0 {
		return errors.New("config: WORKER_POLL_INTERVAL must be positive")
	}
	if c.RabbitMQ.DialTimeout <= 0 {
		return errors.New("config: RABBITMQ_DIAL_TIMEOUT must be positive")
	}
	return nil
}
