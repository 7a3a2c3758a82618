package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// record is the JSON document stored per product
type record struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// ProductRepository keeps one JSON value per product plus a set of all IDs.
// Value and index are written in one MULTI/EXEC transaction.
type ProductRepository struct {
	client redis.UniversalClient
	prefix string
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository creates a redis-backed product repository under the "products:" key prefix
func NewProductRepository(client redis.UniversalClient, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		client: client,
		prefix: "products:",
		tracer: tracer,
		logger: logger,
	}
}

func (r *ProductRepository) key(id uuid.UUID) string {
	return r.prefix + "id:" + id.String()
}

func (r *ProductRepository) indexKey() string {
	return r.prefix + "ids"
}

// Save writes the product value and adds its ID to the index
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "RedisProductRepository.Save")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	data, err := json.Marshal(record{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode product")
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(product.ID), data, 0)
		pipe.SAdd(ctx, r.indexKey(), product.ID.String())
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save product")
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}

	r.logger.DebugContext(ctx, "Product saved in redis",
		slog.String("product_id", product.ID.String()),
	)

	span.SetStatus(codes.Ok, "Product saved")
	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "RedisProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load product")
		return nil, fmt.Errorf("failed to get product %s from redis: %w", id, err)
	}

	product, err := decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode product")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Product found")
	return product, nil
}

// FindAll retrieves every indexed product
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "RedisProductRepository.FindAll")
	defer span.End()

	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return nil, fmt.Errorf("failed to list product ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + "id:" + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]*domain.Product, 0, len(values))
	for _, v := range values {
		// a nil entry means the value vanished between SMEMBERS and MGET
		s, ok := v.(string)
		if !ok {
			continue
		}
		product, err := decode([]byte(s))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to decode product")
			return nil, err
		}
		products = append(products, product)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// DeleteByID removes the product value and its index entry
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	ctx, span := r.tracer.Start(ctx, "RedisProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(id))
		pipe.SRem(ctx, r.indexKey(), id.String())
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

func decode(data []byte) (*domain.Product, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &domain.Product{
		ID:       rec.ID,
		Name:     rec.Name,
		Price:    rec.Price,
		Quantity: rec.Quantity,
	}, nil
}
