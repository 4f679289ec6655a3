package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretLength = 32

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrWeakJWTSecret    = fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
)

type Config struct {
	AppEnv string
	Port   string

	StoreDriver   string
	StoreTimeout  time.Duration
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string
	MigrationsDir string

	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	LoginRatePerMinute int
	LoginRateBurst     int

	OriginURL      string
	TrustedProxies []string
}

var AppConfig *Config

// Load reads .env (when present) and the process environment. It fails when
// the signing secret is absent or too short instead of falling back to a
// built-in value.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("APP_PORT", getEnv("PORT", "3000")),
		StoreDriver:        getEnv("STORE_DRIVER", "mongo"),
		StoreTimeout:       getDuration("STORE_TIMEOUT", 5*time.Second),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "orders_api"),
		DatabaseURL:        buildDSN(),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "database/migration"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiry:          getDuration("JWT_EXPIRY", 30*time.Minute),
		JWTIssuer:          getEnv("JWT_ISSUER", "orders-api"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		LoginRatePerMinute: getInt("LOGIN_RATE_LIMIT_PER_MIN", 10),
		LoginRateBurst:     getInt("LOGIN_RATE_LIMIT_BURST", 5),
		OriginURL:          os.Getenv("ORIGIN_URL"),
		TrustedProxies:     getList("TRUSTED_PROXIES"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", cfg.AppEnv)
	log.Printf("Store driver: %s", cfg.StoreDriver)
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return ErrMissingJWTSecret
	case len(c.JWTSecret) < minSecretLength:
		return ErrWeakJWTSecret
	}

	switch c.StoreDriver {
	case "mongo", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func buildDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "orders_api"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getList splits a comma separated value; empty items are dropped.
func getList(key string) []string {
	var values []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	return values
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return value
}
