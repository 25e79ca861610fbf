package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog([]Product{
		{Name: "Arbitrage base", PriceID: "price_base"},
		{Name: "Arbitrage start", PriceID: "price_start"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.Len())

	p, ok := catalog.Lookup("Arbitrage start")
	assert.True(t, ok)
	assert.Equal(t, "price_start", p.PriceID)

	_, ok = catalog.Lookup("Arbitrage pro")
	assert.False(t, ok)
}

func TestCatalog_ProductsKeepsOrderAndIsACopy(t *testing.T) {
	catalog, err := NewCatalog([]Product{
		{Name: "b", PriceID: "price_b"},
		{Name: "a", PriceID: "price_a"},
	})
	require.NoError(t, err)

	products := catalog.Products()
	assert.Equal(t, "b", products[0].Name)
	assert.Equal(t, "a", products[1].Name)

	products[0].PriceID = "tampered"
	p, _ := catalog.Lookup("b")
	assert.Equal(t, "price_b", p.PriceID)
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
	}{
		{"empty", nil},
		{"missing price", []Product{{Name: "a"}}},
		{"missing name", []Product{{PriceID: "price_a"}}},
		{"duplicate", []Product{{Name: "a", PriceID: "price_1"}, {Name: "a", PriceID: "price_2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.products)
			assert.Error(t, err)
		})
	}
}
