package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/palazzem/cash-register/internal/core"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
	pkgredis "github.com/palazzem/cash-register/internal/pkg/redis"
)

// Adapter names accepted in PUSH_ADAPTERS.
const (
	AdapterCashRegister = "cash_register"
	AdapterStats        = "stats"
	AdapterWebhook      = "webhook"
	AdapterEvents       = "events"
)

type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	MaxConns int32  `envconfig:"DATABASE_MAX_CONNS" default:"10"`
}

type SerialConfig struct {
	Port     string        `envconfig:"SERIAL_PORT" default:"/dev/ttyUSB0"`
	BaudRate int           `envconfig:"SERIAL_BAUDRATE" default:"9600"`
	Timeout  time.Duration `envconfig:"SERIAL_TIMEOUT" default:"1s"`
}

type WebhookConfig struct {
	URL     string        `envconfig:"WEBHOOK_URL"`
	Secret  string        `envconfig:"WEBHOOK_SECRET"`
	Timeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"5s"`
}

type KafkaConfig struct {
	Brokers      string        `envconfig:"KAFKA_BROKERS"`
	Topic        string        `envconfig:"KAFKA_TOPIC" default:"register.receipts"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"5s"`
}

type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"3000"`
	GRPCAddr string `envconfig:"GRPC_ADDR"`

	Database DatabaseConfig
	Redis    pkgredis.Config

	// sha256 hex of the admin API key, see cmd/keygen
	AdminAPIKeyHash string `envconfig:"ADMIN_API_KEY_HASH"`

	// The first currency is the default one.
	Currencies   []string `envconfig:"CURRENCIES" default:"EUR"`
	PushAdapters []string `envconfig:"PUSH_ADAPTERS" default:"stats"`
	RegisterName string   `envconfig:"REGISTER_NAME" default:"Shop"`

	Serial  SerialConfig
	Webhook WebhookConfig
	Kafka   KafkaConfig

	CatalogCacheTTL   time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
	BackfillQueueSize int           `envconfig:"BACKFILL_QUEUE_SIZE" default:"256"`
}

// LoadConfig reads the .env file when present and fills Config from the environment.
func LoadConfig() (*Config, error) {
	// Try loading .env file (it might not exist in Production, which is fine)
	if err := godotenv.Load(); err != nil {
		logx.Warn().Msg("No .env file found, relying on System Env Variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

func (c *Config) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("CURRENCIES must list at least one currency")
	}
	seen := map[string]bool{}
	for _, name := range c.PushAdapters {
		switch name {
		case AdapterCashRegister, AdapterStats, AdapterEvents:
		case AdapterWebhook:
			if c.Webhook.URL == "" {
				return fmt.Errorf("WEBHOOK_URL is required by the %s adapter", name)
			}
		default:
			return fmt.Errorf("unknown push adapter %q", name)
		}
		if seen[name] {
			return fmt.Errorf("push adapter %q listed twice", name)
		}
		seen[name] = true
	}
	if seen[AdapterEvents] && c.Kafka.Brokers == "" {
		return fmt.Errorf("KAFKA_BROKERS is required by the %s adapter", AdapterEvents)
	}
	if c.Environment().IsProduction() && c.AdminAPIKeyHash == "" {
		return fmt.Errorf("ADMIN_API_KEY_HASH is required in production")
	}
	return nil
}
