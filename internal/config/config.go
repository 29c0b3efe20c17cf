package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	DB      DatabaseConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Kafka   KafkaConfig
	Elastic ElasticConfig
	S3      S3Config
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig contains secrets and lifetimes for the authentication flow.
type AuthConfig struct {
	JWTSecret     string
	EncryptionKey string
	AccessTTL     time.Duration
	SessionTTL    time.Duration
	OTPTTL        time.Duration

	// InsecureOTPEcho makes signup and password-reset responses include the
	// plain OTP code instead of delivering it out of band. Demo/test only,
	// must stay off in production.
	InsecureOTPEcho bool
}

// KafkaConfig contains broker addresses for the storefront event stream.
// An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ElasticConfig contains Elasticsearch connection parameters for product search.
// An empty URL disables the search index.
type ElasticConfig struct {
	URL      string
	Username string
	Password string
	Index    string
}

// S3Config contains AWS S3 configuration for avatar storage.
type S3Config struct {
	Region string
	Bucket string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis (cart/wishlist storage)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Auth
	cfg.Auth = AuthConfig{
		JWTSecret:       getEnv("JWT_SECRET", ""),
		EncryptionKey:   getEnv("ENCRYPTION_KEY", ""),
		InsecureOTPEcho: getEnvBool("AUTH_INSECURE_OTP_ECHO", false),
	}

	var err error
	if cfg.Auth.AccessTTL, err = parseDurationEnv("AUTH_ACCESS_TTL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid AUTH_ACCESS_TTL: %w", err)
	}
	if cfg.Auth.SessionTTL, err = parseDurationEnv("AUTH_SESSION_TTL", "720h"); err != nil {
		return nil, fmt.Errorf("invalid AUTH_SESSION_TTL: %w", err)
	}
	if cfg.Auth.OTPTTL, err = parseDurationEnv("AUTH_OTP_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid AUTH_OTP_TTL: %w", err)
	}

	// Kafka
	cfg.Kafka = KafkaConfig{
		Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", ""), ","),
		Topic:   getEnv("KAFKA_TOPIC", "storefront_events"),
	}

	// Elasticsearch (optional)
	cfg.Elastic = ElasticConfig{
		URL:      getEnv("ES_URL", ""),
		Username: getEnv("ES_USER", ""),
		Password: getEnv("ES_PASSWORD", ""),
		Index:    getEnv("ES_PRODUCT_INDEX", "products"),
	}

	// S3 (avatar storage)
	cfg.S3 = S3Config{
		Region: getEnv("S3_REGION", "us-east-1"),
		Bucket: getEnv("S3_BUCKET", "brivamart-avatars"),
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate auth secrets
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}
	if cfg.Auth.EncryptionKey == "" {
		return nil, errors.New("ENCRYPTION_KEY must be set for profile encryption")
	}
	if cfg.Auth.InsecureOTPEcho && cfg.Env == "production" {
		return nil, errors.New("AUTH_INSECURE_OTP_ECHO must not be enabled in production")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a boolean or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

// splitNonEmpty splits s by sep and drops empty segments.
func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
