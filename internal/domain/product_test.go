package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/mrops-br/products-cassandra-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Valid(t *testing.T) {
	product, err := domain.NewProduct("Pixel 6a", 499.99, 3)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Pixel 6a", product.Name)
	assert.Equal(t, 499.99, product.Price)
	assert.Equal(t, 3, product.Quantity)
}

func TestNewProduct_ZeroPriceAndQuantityAllowed(t *testing.T) {
	product, err := domain.NewProduct("Free sample", 0, 0)

	require.NoError(t, err)
	assert.Zero(t, product.Price)
	assert.Zero(t, product.Quantity)
}

func TestNewProduct_QuantityAtInt32Limit(t *testing.T) {
	product, err := domain.NewProduct("Pixel 6a", 1, math.MaxInt32)

	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, product.Quantity)
}

func TestNewProduct_FreshIDs(t *testing.T) {
	a, err := domain.NewProduct("A", 1, 1)
	require.NoError(t, err)
	b, err := domain.NewProduct("A", 1, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewProduct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		prodName  string
		price     float64
		quantity  int
		wantField string
	}{
		{"empty name", "", 10, 1, "name"},
		{"blank name", "   \t", 10, 1, "name"},
		{"negative price", "Iphone 8", -0.01, 1, "price"},
		{"negative quantity", "Iphone 8", 10, -1, "quantity"},
		{"quantity beyond int32", "Iphone 8", 10, math.MaxInt32 + 1, "quantity"},
		{"name reported first", "", -1, -1, "name"},
		{"price before quantity", "Iphone 8", -1, -1, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := domain.NewProduct(tt.prodName, tt.price, tt.quantity)

			assert.Nil(t, product)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

			var fieldErr *domain.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantField, fieldErr.Field)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	err := &domain.FieldError{Field: "price", Reason: "cannot be negative"}

	assert.Equal(t, "invalid argument: price cannot be negative", err.Error())
	assert.False(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestRandomProduct_AlwaysValid(t *testing.T) {
	seen := make(map[uuid.UUID]bool)

	for i := 0; i < 1000; i++ {
		p := domain.RandomProduct()

		require.NoError(t, p.Validate())
		assert.Contains(t, domain.SampleNames, p.Name)
		assert.GreaterOrEqual(t, p.Quantity, 0)
		assert.Less(t, p.Quantity, 10)
		assert.GreaterOrEqual(t, p.Price, 0.0)
		assert.Less(t, p.Price, 10000.0)

		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
