package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	c, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "order-events", c.Kafka.Topic)
	assert.Equal(t, "notifier", c.Kafka.ConsumerGroup)
	assert.Equal(t, "file://db/migrations", c.Db.MigrationsPath)
	assert.Equal(t, 30*24*time.Hour, c.Redis.CartTTL)
	assert.Equal(t, 3*time.Second, c.Redis.Timeout)
	assert.Equal(t, 15*time.Minute, c.Workers.OrphanAge)
	assert.Equal(t, "slog", c.Log.Backend)
	assert.Empty(t, c.Mailer.URL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CART_TTL", "0s")
	t.Setenv("WRITE_TIMEOUT", "7s")
	t.Setenv("LOG_BACKEND", "ZAP")
	t.Setenv("ORPHAN_BATCH_SIZE", "5")

	c, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Zero(t, c.Redis.CartTTL)
	assert.Equal(t, 7*time.Second, c.Redis.Timeout)
	assert.Equal(t, "zap", c.Log.Backend)
	assert.Equal(t, 5, c.Workers.OrphanBatchSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing postgres user", func(t *testing.T) {
		t.Setenv("POSTGRES_USER", "")
		_, err := Load(logger.Nop())
		assert.ErrorContains(t, err, "POSTGRES_USER")
	})

	t.Run("bad int", func(t *testing.T) {
		setRequired(t)
		t.Setenv("OUTBOX_BATCH_SIZE", "many")
		_, err := Load(logger.Nop())
		assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})

	t.Run("missing brokers", func(t *testing.T) {
		setRequired(t)
		t.Setenv("KAFKA_BROKERS", "")
		_, err := Load(logger.Nop())
		assert.ErrorContains(t, err, "KAFKA_BROKERS")
	})
}
