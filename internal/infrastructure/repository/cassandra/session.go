package cassandra

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/gocql/gocql"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/config"
)

const createTableCQL = `CREATE TABLE IF NOT EXISTS products (
	id uuid PRIMARY KEY,
	name text,
	price double,
	quantity int
)`

var keyspaceName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,47}$`)

// NewSession connects to the cluster, creating the keyspace and products table first
// when cfg.CreateSchema is set
func NewSession(cfg *config.CassandraConfig, logger *slog.Logger) (*gocql.Session, error) {
	if !keyspaceName.MatchString(cfg.Keyspace) {
		return nil, fmt.Errorf("invalid keyspace name %q", cfg.Keyspace)
	}

	consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
	if err != nil {
		return nil, fmt.Errorf("invalid consistency %q: %w", cfg.Consistency, err)
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Consistency = consistency
	cluster.Timeout = cfg.Timeout
	cluster.ConnectTimeout = cfg.Timeout
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	if cfg.CreateSchema {
		if err := createKeyspace(cluster, cfg); err != nil {
			return nil, err
		}
		logger.Info("Cassandra keyspace ready", slog.String("keyspace", cfg.Keyspace))
	}

	cluster.Keyspace = cfg.Keyspace
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %w", err)
	}

	if cfg.CreateSchema {
		if err := session.Query(createTableCQL).Exec(); err != nil {
			session.Close()
			return nil, fmt.Errorf("failed to create products table: %w", err)
		}
	}

	logger.Info("Connected to Cassandra",
		slog.Any("hosts", cfg.Hosts),
		slog.String("keyspace", cfg.Keyspace),
		slog.String("consistency", consistency.String()),
	)

	return session, nil
}

// createKeyspace uses a keyspace-less session, since the target keyspace may not exist yet
func createKeyspace(cluster *gocql.ClusterConfig, cfg *config.CassandraConfig) error {
	cluster.Keyspace = ""
	session, err := cluster.CreateSession()
	if err != nil {
		return fmt.Errorf("failed to connect to cassandra: %w", err)
	}
	defer session.Close()

	stmt := fmt.Sprintf(
		`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}`,
		cfg.Keyspace, cfg.ReplicationFactor,
	)
	if err := session.Query(stmt).Exec(); err != nil {
		return fmt.Errorf("failed to create keyspace %s: %w", cfg.Keyspace, err)
	}
	return nil
}
