package redis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// newTestRepository connects to REDIS_ADDR and isolates keys under a unique prefix
func newTestRepository(t *testing.T) *ProductRepository {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())

	repo := NewProductRepository(client, tracenoop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))
	repo.prefix = fmt.Sprintf("products-test-%d:", time.Now().UnixNano())

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, repo.prefix+"*").Result()
		if len(keys) > 0 {
			_ = client.Del(ctx, keys...).Err()
		}
		_ = client.Close()
	})

	return repo
}

func TestRedisProductRepository_CRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	a := &domain.Product{ID: uuid.New(), Name: "Iphone 8", Price: 199, Quantity: 2}
	b := &domain.Product{ID: uuid.New(), Name: "HP eliteBook", Price: 1299.99, Quantity: 0}
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	found, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, found)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*domain.Product{a, b}, all)

	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	_, err = repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.NoError(t, repo.DeleteByID(ctx, a.ID))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Product{b}, all)
}

func TestRedisProductRepository_CorruptValueMarksSpan(t *testing.T) {
	repo := newTestRepository(t)
	recorder := tracetest.NewSpanRecorder()
	repo.tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.client.Set(ctx, repo.key(id), "{not json", 0).Err())
	require.NoError(t, repo.client.SAdd(ctx, repo.indexKey(), id.String()).Err())

	_, err := repo.FindByID(ctx, id)
	require.Error(t, err)
	_, err = repo.FindAll(ctx)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, codes.Error, span.Status().Code, span.Name())
		assert.Equal(t, "Failed to decode product", span.Status().Description, span.Name())
		require.NotEmpty(t, span.Events(), span.Name())
		assert.Equal(t, "exception", span.Events()[0].Name)
	}
}

func TestDecode(t *testing.T) {
	id := uuid.New()

	p, err := decode([]byte(fmt.Sprintf(`{"id":%q,"name":"Pixel 6a","price":12.5,"quantity":3}`, id)))
	require.NoError(t, err)
	assert.Equal(t, &domain.Product{ID: id, Name: "Pixel 6a", Price: 12.5, Quantity: 3}, p)

	_, err = decode([]byte(`{"id":`))
	assert.Error(t, err)
}
