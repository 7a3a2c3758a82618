package repository

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/config"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestOpen_Memory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), &config.StoreConfig{Driver: config.DriverMemory},
		tracenoop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))

	require.NoError(t, err)
	assert.IsType(t, &memory.ProductRepository{}, repo)
	assert.NoError(t, closeFn())
}

func TestOpen_UnknownDriver(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), &config.StoreConfig{Driver: "dynamo"},
		tracenoop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))

	assert.Nil(t, repo)
	assert.Nil(t, closeFn)
	assert.ErrorContains(t, err, "unknown store driver")
}
