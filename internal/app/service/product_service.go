package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mrops-br/products-cassandra-api/internal/app/dto"
	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// Create validates the input and stores a new product under a fresh ID
func (s *ProductService) Create(ctx context.Context, in *dto.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Create")
	defer span.End()

	name, price, quantity := in.NameOrEmpty(), in.PriceOrZero(), in.QuantityOrZero()

	span.SetAttributes(
		attribute.String("product.name", name),
		attribute.Float64("product.price", price),
		attribute.Int("product.quantity", quantity),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", name),
		slog.Float64("price", price),
		slog.Int("quantity", quantity),
	)

	product, err := domain.NewProduct(name, price, quantity)
	if err != nil {
		s.fail(ctx, span, "create", "invalid", "Validation failed", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	if err := s.repo.Save(ctx, product); err != nil {
		s.fail(ctx, span, "create", "failure", "Failed to store product", err)
		return nil, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.recordOperation(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID.String()),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return product, nil
}

// Update applies a partial update to an existing product.
// A field is only replaced when it carries a usable value: a non-blank name,
// or a strictly positive price or quantity. Zero is treated as "unchanged".
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in *dto.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	s.logger.InfoContext(ctx, "Updating product",
		slog.String("product_id", id.String()),
	)

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.fail(ctx, span, "update", resultFor(err), "Failed to load product", err)
		return nil, err
	}

	if in != nil {
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			current.Name = *in.Name
		}
		if in.Price != nil && *in.Price > 0 {
			current.Price = *in.Price
		}
		if in.Quantity != nil && *in.Quantity > 0 {
			current.Quantity = *in.Quantity
		}
	}

	if err := current.Validate(); err != nil {
		s.fail(ctx, span, "update", "invalid", "Validation failed", err)
		return nil, err
	}

	if err := s.repo.Save(ctx, current); err != nil {
		s.fail(ctx, span, "update", "failure", "Failed to store product", err)
		return nil, err
	}

	s.recordOperation(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.String("product_id", id.String()),
		slog.String("name", current.Name),
		slog.Float64("price", current.Price),
		slog.Int("quantity", current.Quantity),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return current, nil
}

// Delete removes a product. Deleting an unknown ID is not an error.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.fail(ctx, span, "delete", "failure", "Failed to delete product", err)
		return err
	}

	s.recordOperation(ctx, "delete", "success")

	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", id.String()),
	)

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Get")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	s.logger.InfoContext(ctx, "Getting product by ID",
		slog.String("product_id", id.String()),
	)

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.fail(ctx, span, "read", resultFor(err), "Failed to get product", err)
		return nil, err
	}

	s.recordOperation(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return product, nil
}

// GetAll retrieves every stored product in store order
func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAll")
	defer span.End()

	s.logger.InfoContext(ctx, "Listing all products")

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.fail(ctx, span, "list", "failure", "Failed to retrieve products", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOperation(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return products, nil
}

func (s *ProductService) recordOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// fail marks the span, logs and counts a failed operation.
// Expected outcomes (not found, invalid input) log at warn level.
func (s *ProductService) fail(ctx context.Context, span trace.Span, operation, result, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	level := slog.LevelError
	if result != "failure" {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, msg,
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)

	s.recordOperation(ctx, operation, result)
}

func resultFor(err error) string {
	if errors.Is(err, domain.ErrProductNotFound) {
		return "not_found"
	}
	return "failure"
}
