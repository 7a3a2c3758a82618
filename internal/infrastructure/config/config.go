package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory    = "memory"
	DriverCassandra = "cassandra"
	DriverRedis     = "redis"
)

type Config struct {
	Server   ServerConfig
	OTLP     OTLPConfig
	Store    StoreConfig
	Seed     SeedConfig
	LogLevel string
}

type ServerConfig struct {
	Port                 string
	Host                 string
	ShutdownTimeout      time.Duration
	DurationMillisMetric bool
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type StoreConfig struct {
	Driver    string
	Cassandra CassandraConfig
	Redis     RedisConfig
}

type CassandraConfig struct {
	Hosts             []string
	Keyspace          string
	Consistency       string
	Timeout           time.Duration
	Username          string
	Password          string
	ReplicationFactor int
	CreateSchema      bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SeedConfig struct {
	Enabled bool
	Count   int
}

// LoadConfig loads configuration from environment variables, after reading an optional .env file
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:                 v.GetString("SERVER_HOST"),
			Port:                 v.GetString("SERVER_PORT"),
			ShutdownTimeout:      v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			DurationMillisMetric: v.GetBool("HTTP_DURATION_MS_METRIC"),
		},
		OTLP: OTLPConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
			Environment: v.GetString("OTEL_ENVIRONMENT"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
			Cassandra: CassandraConfig{
				Hosts:             splitList(v.GetString("CASSANDRA_HOSTS")),
				Keyspace:          v.GetString("CASSANDRA_KEYSPACE"),
				Consistency:       v.GetString("CASSANDRA_CONSISTENCY"),
				Timeout:           v.GetDuration("CASSANDRA_TIMEOUT"),
				Username:          v.GetString("CASSANDRA_USERNAME"),
				Password:          v.GetString("CASSANDRA_PASSWORD"),
				ReplicationFactor: v.GetInt("CASSANDRA_REPLICATION_FACTOR"),
				CreateSchema:      v.GetBool("CASSANDRA_CREATE_SCHEMA"),
			},
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
		},
		Seed: SeedConfig{
			Enabled: v.GetBool("SEED_ENABLED"),
			Count:   v.GetInt("SEED_COUNT"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("HTTP_DURATION_MS_METRIC", false)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SERVICE_NAME", "products-api")
	v.SetDefault("OTEL_ENVIRONMENT", "development")

	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("CASSANDRA_HOSTS", "127.0.0.1")
	v.SetDefault("CASSANDRA_KEYSPACE", "products")
	v.SetDefault("CASSANDRA_CONSISTENCY", "QUORUM")
	v.SetDefault("CASSANDRA_TIMEOUT", "5s")
	v.SetDefault("CASSANDRA_REPLICATION_FACTOR", 1)
	v.SetDefault("CASSANDRA_CREATE_SCHEMA", true)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SEED_ENABLED", true)
	v.SetDefault("SEED_COUNT", 10)
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverCassandra:
		if len(c.Store.Cassandra.Hosts) == 0 {
			return errors.New("CASSANDRA_HOSTS must list at least one host")
		}
		if c.Store.Cassandra.Keyspace == "" {
			return errors.New("CASSANDRA_KEYSPACE is required")
		}
		if _, err := gocql.ParseConsistencyWrapper(c.Store.Cassandra.Consistency); err != nil {
			return fmt.Errorf("invalid CASSANDRA_CONSISTENCY: %w", err)
		}
		if c.Store.Cassandra.ReplicationFactor < 1 {
			return errors.New("CASSANDRA_REPLICATION_FACTOR must be at least 1")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Seed.Count < 0 {
		return errors.New("SEED_COUNT cannot be negative")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
