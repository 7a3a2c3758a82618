package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"SERVER_HOST", "SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT", "HTTP_DURATION_MS_METRIC", "LOG_LEVEL",
	"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME", "OTEL_ENVIRONMENT",
	"STORE_DRIVER", "CASSANDRA_HOSTS", "CASSANDRA_KEYSPACE", "CASSANDRA_CONSISTENCY",
	"CASSANDRA_TIMEOUT", "CASSANDRA_USERNAME", "CASSANDRA_PASSWORD",
	"CASSANDRA_REPLICATION_FACTOR", "CASSANDRA_CREATE_SCHEMA",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SEED_ENABLED", "SEED_COUNT",
}

// clearEnv blanks every key; viper treats empty variables as unset
func clearEnv(t *testing.T) {
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.DurationMillisMetric)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.False(t, cfg.OTLP.Enabled)
	assert.Equal(t, "localhost:4317", cfg.OTLP.Endpoint)
	assert.Equal(t, "products-api", cfg.OTLP.ServiceName)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Store.Cassandra.Hosts)
	assert.Equal(t, "products", cfg.Store.Cassandra.Keyspace)
	assert.Equal(t, "QUORUM", cfg.Store.Cassandra.Consistency)
	assert.Equal(t, 5*time.Second, cfg.Store.Cassandra.Timeout)
	assert.Equal(t, 1, cfg.Store.Cassandra.ReplicationFactor)
	assert.True(t, cfg.Store.Cassandra.CreateSchema)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)

	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 10, cfg.Seed.Count)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Cassandra")
	t.Setenv("CASSANDRA_HOSTS", "cass-1, cass-2 ,,cass-3")
	t.Setenv("CASSANDRA_KEYSPACE", "shop")
	t.Setenv("CASSANDRA_CONSISTENCY", "local_quorum")
	t.Setenv("CASSANDRA_TIMEOUT", "750ms")
	t.Setenv("CASSANDRA_REPLICATION_FACTOR", "3")
	t.Setenv("SEED_ENABLED", "false")
	t.Setenv("SEED_COUNT", "25")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverCassandra, cfg.Store.Driver)
	assert.Equal(t, []string{"cass-1", "cass-2", "cass-3"}, cfg.Store.Cassandra.Hosts)
	assert.Equal(t, "shop", cfg.Store.Cassandra.Keyspace)
	assert.Equal(t, 750*time.Millisecond, cfg.Store.Cassandra.Timeout)
	assert.Equal(t, 3, cfg.Store.Cassandra.ReplicationFactor)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, 25, cfg.Seed.Count)
	assert.True(t, cfg.OTLP.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "unknown STORE_DRIVER"},
		{"bad consistency", map[string]string{"STORE_DRIVER": "cassandra", "CASSANDRA_CONSISTENCY": "most"}, "CASSANDRA_CONSISTENCY"},
		{"no hosts", map[string]string{"STORE_DRIVER": "cassandra", "CASSANDRA_HOSTS": " , "}, "CASSANDRA_HOSTS"},
		{"zero replication", map[string]string{"STORE_DRIVER": "cassandra", "CASSANDRA_REPLICATION_FACTOR": "0"}, "REPLICATION_FACTOR"},
		{"negative seed count", map[string]string{"SEED_COUNT": "-1"}, "SEED_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList(" a "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
}
