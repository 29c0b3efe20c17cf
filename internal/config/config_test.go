package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "brivamart")
	t.Setenv("DB_NAME", "brivamart")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENCRYPTION_KEY", "test-encryption-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	require.Equal(t, 10*time.Minute, cfg.Auth.OTPTTL)
	require.False(t, cfg.Auth.InsecureOTPEcho)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, "products", cfg.Elastic.Index)
}

func TestLoadRequiresSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsOTPEchoInProduction(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_INSECURE_OTP_ECHO", "true")
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Auth.InsecureOTPEcho)
}

func TestKafkaBrokerSplitting(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}
