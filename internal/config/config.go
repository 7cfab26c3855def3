package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Tx        TxConfig
	Messaging MessagingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	DialTimeoutMS int
}

// CacheConfig controls the hotel catalogue cache.
type CacheConfig struct {
	HotelsTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level   string
	Service string
	Version string
	Env     string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// DefaultTxMaxRetries is used when TX_MAX_RETRIES is unset.
const DefaultTxMaxRetries = 3

// TxConfig bounds the retry of serialization failures and deadlocks.
type TxConfig struct {
	MaxRetries       int
	RetryBaseDelayMS int
}

// MessagingConfig holds the RabbitMQ endpoint. An empty URL disables publishing.
type MessagingConfig struct {
	RabbitURL string
	Exchange  string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "lodging-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "4000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			DialTimeoutMS: getEnvAsInt("REDIS_DIAL_TIMEOUT_MS", 2000),
		},
		Cache: CacheConfig{
			HotelsTTLSeconds: getEnvAsInt("CACHE_HOTELS_TTL_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Tx: TxConfig{
			MaxRetries:       getEnvAsInt("TX_MAX_RETRIES", DefaultTxMaxRetries),
			RetryBaseDelayMS: getEnvAsInt("TX_RETRY_BASE_DELAY_MS", 20),
		},
		Messaging: MessagingConfig{
			RabbitURL: os.Getenv("RABBITMQ_URL"),
			Exchange:  getEnv("RABBITMQ_EXCHANGE", "lodging.events"),
		},
	}
	cfg.Logger.Service = cfg.App.Name
	cfg.Logger.Version = cfg.App.Version
	cfg.Logger.Env = cfg.App.Env

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// HotelsTTL returns the hotel catalogue cache lifetime.
func (c CacheConfig) HotelsTTL() time.Duration {
	if c.HotelsTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HotelsTTLSeconds) * time.Second
}

// DialTimeout bounds connection attempts and the startup ping.
func (r RedisConfig) DialTimeout() time.Duration {
	if r.DialTimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(r.DialTimeoutMS) * time.Millisecond
}

// RetryBaseDelay returns the first backoff interval for transaction retries.
func (t TxConfig) RetryBaseDelay() time.Duration {
	if t.RetryBaseDelayMS <= 0 {
		return 10 * time.Millisecond
	}
	return time.Duration(t.RetryBaseDelayMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
