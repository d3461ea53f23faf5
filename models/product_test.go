package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductTableName(t *testing.T) {
	product := Product{}
	assert.Equal(t, "products", product.TableName(), "Table name should be 'products'")
}

func TestEffectivePrice(t *testing.T) {
	discount := 80.0

	tests := []struct {
		name     string
		product  Product
		expected float64
	}{
		{
			name:     "List price without discount",
			product:  Product{Price: 100},
			expected: 100,
		},
		{
			name:     "Discount price wins when set",
			product:  Product{Price: 100, DiscountPrice: &discount},
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.EffectivePrice())
		})
	}
}
