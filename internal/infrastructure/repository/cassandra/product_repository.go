package cassandra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	insertProductCQL  = `INSERT INTO products (id, name, price, quantity) VALUES (?, ?, ?, ?)`
	selectProductCQL  = `SELECT id, name, price, quantity FROM products WHERE id = ?`
	selectProductsCQL = `SELECT id, name, price, quantity FROM products`
	deleteProductCQL  = `DELETE FROM products WHERE id = ?`
)

// ProductRepository stores products in a Cassandra table keyed by UUID.
// INSERT is an upsert in Cassandra, so Save covers both create and update.
type ProductRepository struct {
	session *gocql.Session
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewProductRepository creates a Cassandra-backed product repository on an open session
func NewProductRepository(session *gocql.Session, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		session: session,
		tracer:  tracer,
		logger:  logger,
	}
}

// Save upserts a product row
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "CassandraProductRepository.Save")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	err := r.session.Query(insertProductCQL,
		gocql.UUID(product.ID), product.Name, product.Price, product.Quantity,
	).WithContext(ctx).Exec()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save product")
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}

	r.logger.DebugContext(ctx, "Product saved in cassandra",
		slog.String("product_id", product.ID.String()),
	)

	span.SetStatus(codes.Ok, "Product saved")
	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "CassandraProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	var (
		rowID   gocql.UUID
		product domain.Product
	)
	err := r.session.Query(selectProductCQL, gocql.UUID(id)).
		WithContext(ctx).
		Scan(&rowID, &product.Name, &product.Price, &product.Quantity)
	if errors.Is(err, gocql.ErrNotFound) {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load product")
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	product.ID = uuid.UUID(rowID)

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "CassandraProductRepository.FindAll")
	defer span.End()

	iter := r.session.Query(selectProductsCQL).WithContext(ctx).Iter()

	var (
		products []*domain.Product
		rowID    gocql.UUID
		name     string
		price    float64
		quantity int
	)
	for iter.Scan(&rowID, &name, &price, &quantity) {
		products = append(products, &domain.Product{
			ID:       uuid.UUID(rowID),
			Name:     name,
			Price:    price,
			Quantity: quantity,
		})
	}
	if err := iter.Close(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// DeleteByID removes a product row. Deleting a missing row is not an error.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	ctx, span := r.tracer.Start(ctx, "CassandraProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	if err := r.session.Query(deleteProductCQL, gocql.UUID(id)).WithContext(ctx).Exec(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}
