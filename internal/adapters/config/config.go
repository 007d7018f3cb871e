package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	// BaseURL of the remote inventory API. Blank selects the local ledger.
	BaseURL string
	Timeout time.Duration
}

// RemoteMode reports whether a remote inventory API is configured.
func (c APIConfig) RemoteMode() bool {
	return strings.TrimSpace(c.BaseURL) != ""
}

const (
	StoreDriverFile   = "file"
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
	StoreDriverMongo  = "mongo"
)

type StoreConfig struct {
	Driver       string
	Path         string
	Prefix       string
	Latency      time.Duration
	StrictWrites bool
	SeedDefaults bool
}

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

// Enabled reports whether movement events are relayed to a broker.
func (c RabbitMQConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type IdempotencyConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	Level        string
	Console      bool
}

type Config struct {
	API         APIConfig
	Store       StoreConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Idempotency IdempotencyConfig
	RateLimit   RateLimitConfig
	Outbox      OutboxConfig
	HTTP        HTTPConfig
	Logger      LoggerConfig
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		API: APIConfig{
			BaseURL: getStringEnv("INVENTORY_API_URL", ""),
			Timeout: getDurationEnv("INVENTORY_API_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:       getStringEnv("STORE_DRIVER", StoreDriverFile),
			Path:         getStringEnv("STORE_PATH", "data/store.json"),
			Prefix:       getStringEnv("STORE_PREFIX", "controle-estok"),
			Latency:      getDurationEnv("STORE_LATENCY", 150*time.Millisecond),
			StrictWrites: getBoolEnv("STORE_STRICT_WRITES", false),
			SeedDefaults: getBoolEnv("STORE_SEED_DEFAULTS", true),
		},
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "stock_control"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", ""),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", ""),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_MOVEMENT_EXCHANGE", "exchange.movement"),
					Type:       "direct",
					Durable:    true,
					AutoDelete: false,
				},
				{
					Name:       getStringEnv("RABBITMQ_PRODUCT_EXCHANGE", "exchange.product"),
					Type:       "direct",
					Durable:    true,
					AutoDelete: false,
				},
			},
		},
		Idempotency: IdempotencyConfig{
			TTL:          getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
			PollInterval: getDurationEnv("IDEMPOTENCY_POLL_INTERVAL", 100*time.Millisecond),
			PollTimeout:  getDurationEnv("IDEMPOTENCY_POLL_TIMEOUT", 5*time.Second),
		},
		RateLimit: RateLimitConfig{
			Limit:  getIntEnv("RATE_LIMIT_REQUESTS", 60),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  time.Duration(getIntEnv("OUTBOX_INTERVAL", 500)) * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "stock-control"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			Level:        getStringEnv("LOG_LEVEL", "debug"),
			Console:      getBoolEnv("LOG_CONSOLE", true),
		},
	}
}
