package dto

import (
	"github.com/mrops-br/products-cassandra-api/internal/domain"
)

// ProductInput carries a create or update request.
// Every field is optional; nil means the caller did not send it.
type ProductInput struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// NameOrEmpty returns the supplied name, or "" when absent
func (in *ProductInput) NameOrEmpty() string {
	if in == nil || in.Name == nil {
		return ""
	}
	return *in.Name
}

// PriceOrZero returns the supplied price, or 0 when absent
func (in *ProductInput) PriceOrZero() float64 {
	if in == nil || in.Price == nil {
		return 0
	}
	return *in.Price
}

// QuantityOrZero returns the supplied quantity, or 0 when absent
func (in *ProductInput) QuantityOrZero() int {
	if in == nil || in.Quantity == nil {
		return 0
	}
	return *in.Quantity
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
