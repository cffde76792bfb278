package config

import (
	"testing"
	"time"

	"github.com/palazzem/cash-register/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PUSH_ADAPTERS", "")
	t.Setenv("ENV", "testing")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"EUR"}, cfg.Currencies)
	assert.Equal(t, "Shop", cfg.RegisterName)
	assert.Equal(t, time.Second, cfg.Serial.Timeout)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "register.receipts", cfg.Kafka.Topic)
	assert.Equal(t, 3, cfg.Redis.ReadTimeout)
	assert.Equal(t, core.Testing, cfg.Environment())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "testing")
	t.Setenv("PUSH_ADAPTERS", "cash_register,stats,webhook")
	t.Setenv("WEBHOOK_URL", "http://example.test/hook")
	t.Setenv("SERIAL_PORT", "/dev/ttyS1")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CURRENCIES", "EUR,CHF")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"cash_register", "stats", "webhook"}, cfg.PushAdapters)
	assert.Equal(t, "/dev/ttyS1", cfg.Serial.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, []string{"EUR", "CHF"}, cfg.Currencies)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Env: "development", Currencies: []string{"EUR"}, PushAdapters: []string{"stats"}}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.PushAdapters = []string{"datadog"}
	assert.ErrorContains(t, cfg.Validate(), "unknown push adapter")

	cfg = base()
	cfg.PushAdapters = []string{"stats", "stats"}
	assert.ErrorContains(t, cfg.Validate(), "listed twice")

	cfg = base()
	cfg.PushAdapters = []string{"webhook"}
	assert.ErrorContains(t, cfg.Validate(), "WEBHOOK_URL")

	cfg = base()
	cfg.PushAdapters = []string{"events"}
	assert.ErrorContains(t, cfg.Validate(), "KAFKA_BROKERS")

	cfg = base()
	cfg.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "ADMIN_API_KEY_HASH")

	cfg = base()
	cfg.Currencies = nil
	assert.Error(t, cfg.Validate())
}
