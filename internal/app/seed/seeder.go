package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Seeder fills the store with random demo products at startup
type Seeder struct {
	repo     domain.ProductRepository
	tracer   trace.Tracer
	logger   *slog.Logger
	generate func() *domain.Product
}

// NewSeeder creates a seeder that generates products with domain.RandomProduct
func NewSeeder(repo domain.ProductRepository, tracer trace.Tracer, logger *slog.Logger) *Seeder {
	return &Seeder{
		repo:     repo,
		tracer:   tracer,
		logger:   logger,
		generate: domain.RandomProduct,
	}
}

// Run saves count generated products straight through the repository.
// It stops at the first store error.
func (s *Seeder) Run(ctx context.Context, count int) error {
	ctx, span := s.tracer.Start(ctx, "Seeder.Run")
	defer span.End()

	span.SetAttributes(attribute.Int("seed.count", count))

	for i := 0; i < count; i++ {
		product := s.generate()
		if err := s.repo.Save(ctx, product); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Seeding failed")
			return fmt.Errorf("seed product %d of %d: %w", i+1, count, err)
		}

		s.logger.DebugContext(ctx, "Seeded product",
			slog.String("product_id", product.ID.String()),
			slog.String("name", product.Name),
		)
	}

	s.logger.InfoContext(ctx, "Seeded products", slog.Int("count", count))

	span.SetStatus(codes.Ok, "Seeding complete")
	return nil
}
