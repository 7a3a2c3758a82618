package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/config"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/repository/cassandra"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/repository/memory"
	redisrepo "github.com/mrops-br/products-cassandra-api/internal/infrastructure/repository/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// CloseFunc releases the connections held by a store backend
type CloseFunc func() error

// Open builds the product repository selected by cfg.Driver
func Open(ctx context.Context, cfg *config.StoreConfig, tracer trace.Tracer, logger *slog.Logger) (domain.ProductRepository, CloseFunc, error) {
	logger.Info("Opening product store", slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewProductRepository(tracer, logger), func() error { return nil }, nil

	case config.DriverCassandra:
		session, err := cassandra.NewSession(&cfg.Cassandra, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() error {
			session.Close()
			return nil
		}
		return cassandra.NewProductRepository(session, tracer, logger), closeFn, nil

	case config.DriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return redisrepo.NewProductRepository(client, tracer, logger), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
