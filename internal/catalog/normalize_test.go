package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/apis/shop"
)

func entry(m map[string]any) shop.Entry {
	return shop.Entry{Raw: m}
}

func TestNormalize_FieldFallbacks(t *testing.T) {
	t.Run("canonical field names", func(t *testing.T) {
		got := Normalize([]shop.Entry{entry(map[string]any{
			"p_id":       "B3001",
			"p_type":     "Bike",
			"p_subtype":  "Mountain",
			"p_name":     "Summit Pro",
			"p_desc":     "Full suspension trail bike",
			"p_currency": "USD",
			"p_price":    1299.99,
			"p_img_url":  "https://img.example.com/b3001.jpg",
			"attribute":  map[string]any{"Color": "Red", "Size": "M"},
			"p_quantity": float64(7),
		})})
		require.Len(t, got, 1)

		p := got[0]
		assert.Equal(t, "B3001", p.ID)
		assert.Equal(t, "Bike", p.Type)
		assert.Equal(t, "Mountain", p.Subtype)
		assert.Equal(t, "Summit Pro", p.Name)
		assert.Equal(t, "Full suspension trail bike", p.Description)
		assert.Equal(t, "USD", p.Currency)
		assert.Equal(t, 1299.99, p.Price)
		assert.Equal(t, "https://img.example.com/b3001.jpg", p.ImageURL)
		assert.Equal(t, map[string]string{"Color": "Red", "Size": "M"}, p.Attributes)
		assert.Equal(t, 7, p.Quantity)
	})

	t.Run("alternate field names", func(t *testing.T) {
		got := Normalize([]shop.Entry{entry(map[string]any{
			"id":         float64(3002),
			"pType":      "Gear",
			"p_sub_type": "Helmet",
			"name":       "Trail Lid",
			"attributes": map[string]any{"Size": float64(58)},
			"quantity":   "12",
		})})
		require.Len(t, got, 1)

		p := got[0]
		assert.Equal(t, "3002", p.ID)
		assert.Equal(t, "Gear", p.Type)
		assert.Equal(t, "Helmet", p.Subtype)
		assert.Equal(t, "Trail Lid", p.Name)
		assert.Equal(t, map[string]string{"Size": "58"}, p.Attributes)
		assert.Equal(t, 12, p.Quantity)
	})

	t.Run("defaults for missing fields", func(t *testing.T) {
		got := Normalize([]shop.Entry{entry(map[string]any{"p_id": "X1"})})
		require.Len(t, got, 1)

		p := got[0]
		assert.Equal(t, "Unknown", p.Type)
		assert.Equal(t, "Unnamed", p.Name)
		assert.Zero(t, p.Price)
		assert.Zero(t, p.Quantity)
		assert.Empty(t, p.ImageURL)
	})
}

func TestNormalize_DropsRecordsWithoutID(t *testing.T) {
	got := Normalize([]shop.Entry{
		entry(map[string]any{"p_name": "orphan"}),
		entry(map[string]any{"p_id": "A1", "p_name": "keeper"}),
		entry(nil),
		entry(map[string]any{"p_id": "", "p_name": "empty id"}),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].ID)
}

func TestNormalize_PriceCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{"float", 49.5, 49.5},
		{"string number", "120.00", 120},
		{"string with spaces", " 75 ", 75},
		{"garbage string", "n/a", 0},
		{"missing", nil, 0},
		{"wrong type", []any{1}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize([]shop.Entry{entry(map[string]any{
				"p_id":    "P1",
				"p_price": tc.raw,
			})})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].Price)
		})
	}
}

func TestNormalize_ImageTakesFirstOfList(t *testing.T) {
	got := Normalize([]shop.Entry{entry(map[string]any{
		"p_id":      "P1",
		"p_img_url": []any{"first.jpg", "second.jpg"},
	})})
	require.Len(t, got, 1)
	assert.Equal(t, "first.jpg", got[0].ImageURL)
}
