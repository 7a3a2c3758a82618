package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for product storage.
// Implementations store what they are given; validation belongs to the caller.
type ProductRepository interface {
	// Save inserts or overwrites the product under its ID
	Save(ctx context.Context, product *Product) error
	// FindByID returns ErrProductNotFound when no product has the given ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	// DeleteByID succeeds whether or not the product exists
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
