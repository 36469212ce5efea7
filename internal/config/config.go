package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CooldownBackendMemory = "memory"
	CooldownBackendRedis  = "redis"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Postgres (необязателен, без него счетчики живут только в памяти)
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Corroboration Config
	ZonesSeedFile         string        `env:"ZONES_SEED_FILE" envDefault:"configs/zones.json"`
	PromotionThreshold    int           `env:"PROMOTION_THRESHOLD" envDefault:"3"`
	ReportCooldown        time.Duration `env:"REPORT_COOLDOWN" envDefault:"300s"`
	CooldownBackend       string        `env:"COOLDOWN_BACKEND" envDefault:"memory"`
	CooldownSweepInterval time.Duration `env:"COOLDOWN_SWEEP_INTERVAL" envDefault:"1m"`

	// Webhook Config
	EventsRedisEnabled bool          `env:"EVENTS_REDIS_ENABLED" envDefault:"false"`
	WebhookURL         string        `env:"WEBHOOK_URL"`
	WebhookSecret      string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout     time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries  int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay   time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Kafka Config
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"zone-events"`

	// MinIO Config
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"zone-snapshots"`

	// API Keys для административных маршрутов
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		ZonesSeedFile:         getEnv("ZONES_SEED_FILE", "configs/zones.json"),
		PromotionThreshold:    getEnvAsInt("PROMOTION_THRESHOLD", 3),
		ReportCooldown:        getEnvAsDuration("REPORT_COOLDOWN", 300*time.Second),
		CooldownBackend:       strings.ToLower(getEnv("COOLDOWN_BACKEND", CooldownBackendMemory)),
		CooldownSweepInterval: getEnvAsDuration("COOLDOWN_SWEEP_INTERVAL", time.Minute),
		EventsRedisEnabled:    getEnvAsBool("EVENTS_REDIS_ENABLED", false),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		KafkaBrokers:          getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:            getEnv("KAFKA_TOPIC", "zone-events"),
		MinioEndpoint:         os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:           getEnvAsBool("MINIO_USE_SSL", false),
		MinioBucket:           getEnv("MINIO_BUCKET", "zone-snapshots"),
		APIKeys:               getEnvAsList("API_KEYS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.PromotionThreshold < 1 {
		return fmt.Errorf("PROMOTION_THRESHOLD must be at least 1, got %d", c.PromotionThreshold)
	}
	if c.ReportCooldown < 0 {
		return fmt.Errorf("REPORT_COOLDOWN must not be negative, got %s", c.ReportCooldown)
	}
	if c.CooldownSweepInterval <= 0 {
		return fmt.Errorf("COOLDOWN_SWEEP_INTERVAL must be positive, got %s", c.CooldownSweepInterval)
	}
	switch c.CooldownBackend {
	case CooldownBackendMemory, CooldownBackendRedis:
	default:
		return fmt.Errorf("COOLDOWN_BACKEND must be %q or %q, got %q", CooldownBackendMemory, CooldownBackendRedis, c.CooldownBackend)
	}
	if c.ZonesSeedFile == "" {
		return fmt.Errorf("ZONES_SEED_FILE environment variable is required")
	}
	return nil
}

// RedisRequired сообщает, нужен ли процессу Redis
func (c *Config) RedisRequired() bool {
	return c.CooldownBackend == CooldownBackendRedis || c.EventsRedisEnabled
}

// SnapshotsEnabled сообщает, настроено ли хранилище снимков
func (c *Config) SnapshotsEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список значений через запятую
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
