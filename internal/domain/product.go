package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidArgument is the sentinel behind every FieldError
	ErrInvalidArgument = errors.New("invalid argument")
)

// FieldError reports which product field failed validation and why
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidArgument
}

// Product represents the product entity
type Product struct {
	ID       uuid.UUID
	Name     string  `validate:"notblank"`
	Price    float64 `validate:"gte=0"`
	Quantity int     `validate:"gte=0,lte=2147483647"`
}

// NewProduct creates a new product with a fresh identifier and validates it
func NewProduct(name string, price float64, quantity int) (*Product, error) {
	product := &Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	return validateStruct(p)
}
