package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

// Config is loaded from an optional YAML file and then overridden by environment variables.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Port                       string `yaml:"port"`
	TrackingRateLimitPerMinute int64  `yaml:"tracking_rate_limit_per_minute"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type RedisConfig struct {
	Addr                    string `yaml:"addr"`
	TrackingCacheTTLSeconds int    `yaml:"tracking_cache_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers             []string `yaml:"brokers"`
	TrackingEventsTopic string   `yaml:"tracking_events_topic"`
}

type JobsConfig struct {
	RelaySchedule        string `yaml:"relay_schedule"`
	RelayBatchSize       int    `yaml:"relay_batch_size"`
	PurgeSchedule        string `yaml:"purge_schedule"`
	OutboxRetentionHours int    `yaml:"outbox_retention_hours"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:                       "8080",
			TrackingRateLimitPerMinute: 60,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Addr:                    "localhost:6379",
			TrackingCacheTTLSeconds: 300,
		},
		Kafka: KafkaConfig{
			Brokers:             []string{"localhost:9092"},
			TrackingEventsTopic: "parcel.tracking-events",
		},
		Jobs: JobsConfig{
			RelaySchedule:        "@every 2s",
			RelayBatchSize:       100,
			PurgeSchedule:        "0 30 3 * * *",
			OutboxRetentionHours: 72,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig starts from the defaults, overlays the YAML file at path (if
// path is not empty) and then the environment. A .env file in the working
// directory is loaded first when present; it never overrides variables that
// are already set.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTP.Port, "HTTP_PORT")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Kafka.TrackingEventsTopic, "KAFKA_TRACKING_EVENTS_TOPIC")
	setString(&c.Jobs.RelaySchedule, "RELAY_SCHEDULE")
	setString(&c.Jobs.PurgeSchedule, "PURGE_SCHEDULE")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		c.Kafka.Brokers = splitList(v)
	}

	return errors.Join(
		setInt(&c.Redis.TrackingCacheTTLSeconds, "TRACKING_CACHE_TTL_SECONDS"),
		setInt(&c.Jobs.RelayBatchSize, "RELAY_BATCH_SIZE"),
		setInt(&c.Jobs.OutboxRetentionHours, "OUTBOX_RETENTION_HOURS"),
		setInt64(&c.HTTP.TrackingRateLimitPerMinute, "TRACKING_RATE_LIMIT_PER_MINUTE"),
	)
}

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var problems []error
	if c.HTTP.Port == "" {
		problems = append(problems, errors.New("http port is required"))
	}
	if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
		problems = append(problems, errors.New("database host, name and user are required"))
	}
	if c.Redis.Addr == "" {
		problems = append(problems, errors.New("redis addr is required"))
	}
	if len(c.Kafka.Brokers) == 0 {
		problems = append(problems, errors.New("at least one kafka broker is required"))
	}
	if c.Jobs.RelayBatchSize < 1 {
		problems = append(problems, fmt.Errorf("relay batch size %d must be positive", c.Jobs.RelayBatchSize))
	}
	if c.Jobs.OutboxRetentionHours < 1 {
		problems = append(problems, fmt.Errorf("outbox retention %dh must be at least 1h", c.Jobs.OutboxRetentionHours))
	}
	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection URL.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c RedisConfig) TrackingCacheTTL() time.Duration {
	return time.Duration(c.TrackingCacheTTLSeconds) * time.Second
}

func (c JobsConfig) OutboxRetention() time.Duration {
	return time.Duration(c.OutboxRetentionHours) * time.Hour
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
