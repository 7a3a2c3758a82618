package domain

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	maxSampleQuantity = 10
	maxSamplePrice    = 10000
)

// SampleNames is the pool RandomProduct draws product names from
var SampleNames = []string{"Iphone 8", "Pixel 6a", "HP eliteBook"}

// RandomProduct builds a demo product for bootstrap seeding.
// Quantity is in [0, 10) and price in [0, 10000), so the result always passes Validate.
func RandomProduct() *Product {
	return &Product{
		ID:       uuid.New(),
		Name:     SampleNames[rand.IntN(len(SampleNames))],
		Quantity: rand.IntN(maxSampleQuantity),
		Price:    rand.Float64() * maxSamplePrice,
	}
}
