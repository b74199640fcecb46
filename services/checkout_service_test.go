package services

import (
	"testing"

	"food-store/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"12.50", 1250},
		{"0.99", 99},
		{"10", 1000},
		{"10.005", 1001},
		{"0", 0},
	}
	for _, tc := range cases {
		got := ToCents(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.want, got, "amount %s", tc.amount)
	}
}

func TestBuildLineItems(t *testing.T) {
	items := []cart.Item{
		{
			ID:          "burger-1",
			Name:        "Classic Burger",
			Description: "Beef patty with cheddar",
			Price:       decimal.RequireFromString("12.50"),
			Image:       "https://cdn.example.com/burger.jpg",
			Quantity:    2,
		},
		{
			ID:       "soda-1",
			Name:     "Soda",
			Price:    decimal.RequireFromString("2.00"),
			Quantity: 1,
		},
	}

	lineItems := BuildLineItems(items)
	require.Len(t, lineItems, 2)

	first := lineItems[0]
	assert.Equal(t, "usd", *first.PriceData.Currency)
	assert.Equal(t, int64(1250), *first.PriceData.UnitAmount)
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "Classic Burger", *first.PriceData.ProductData.Name)
	require.NotNil(t, first.PriceData.ProductData.Description)
	assert.Equal(t, "Beef patty with cheddar", *first.PriceData.ProductData.Description)
	require.Len(t, first.PriceData.ProductData.Images, 1)
	assert.Equal(t, "https://cdn.example.com/burger.jpg", *first.PriceData.ProductData.Images[0])

	second := lineItems[1]
	assert.Equal(t, int64(200), *second.PriceData.UnitAmount)
	assert.Equal(t, int64(1), *second.Quantity)
	assert.Nil(t, second.PriceData.ProductData.Description)
	assert.Empty(t, second.PriceData.ProductData.Images)
}

func TestMetadataItemsRoundTrip(t *testing.T) {
	items := []cart.Item{
		{
			ID:          "burger-1",
			Name:        "Classic Burger",
			Description: "dropped from metadata",
			Price:       decimal.RequireFromString("12.50"),
			Image:       "https://cdn.example.com/burger.jpg",
			Quantity:    2,
		},
		{
			ID:       "soda-1",
			Name:     "Soda",
			Price:    decimal.RequireFromString("2.00"),
			Quantity: 1,
		},
	}

	raw, err := MetadataItems(items)
	require.NoError(t, err)

	lines, err := ParseMetadataItems(raw)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	for i, line := range lines {
		assert.Equal(t, items[i].ID, line.ID)
		assert.Equal(t, items[i].Name, line.Name)
		assert.Equal(t, items[i].Quantity, line.Quantity)
		assert.True(t, items[i].Price.Equal(line.Price))
	}
}

func TestParseMetadataItemsRejectsGarbage(t *testing.T) {
	_, err := ParseMetadataItems("not json")
	assert.Error(t, err)
}
