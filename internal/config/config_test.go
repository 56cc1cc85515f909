package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"RABBITMQ_ENABLED", "RABBITMQ_HOST", "RABBITMQ_PORT", "RABBITMQ_USER",
	"RABBITMQ_PASSWORD", "RABBITMQ_VHOST", "RABBITMQ_TLS", "RABBITMQ_EXCHANGE",
	"RABBITMQ_QUEUE", "RABBITMQ_PREFETCH", "LOG_LEVEL",
}

// clearEnv unsets every key for the duration of the test. godotenv never
// overrides a variable that exists, even an empty one.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeEnv(t, "# nothing\n"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "admin_events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "/", cfg.RabbitMQ.VHost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("RABBITMQ_HOST", "mq.local")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load(writeEnv(t, "LOG_LEVEL=debug\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "mq.local", cfg.RabbitMQ.Host)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("RABBITMQ_ENABLED", "maybe")

	_, err := Load(writeEnv(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "RABBITMQ_ENABLED")
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{RabbitMQ: RabbitMQConfig{Enabled: true, Host: "mq", User: ""}}
	assert.EqualError(t, cfg.Validate(), "rabbitmq config incomplete")

	cfg.RabbitMQ.User, cfg.RabbitMQ.Exchange = "guest", "admin_events"
	assert.NoError(t, cfg.Validate())
}
