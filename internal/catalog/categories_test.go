package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/config"
)

func testEntries() []config.CategoryEntry {
	return []config.CategoryEntry{
		{Label: "Bike", Group: "products", Path: "bikes"},
		{Label: "Accessories", Group: "products", Path: "accessories"},
		{Label: "Gear", Group: "products", Path: "gear"},
	}
}

func TestTable(t *testing.T) {
	table := NewTable(testEntries(), "Bike")

	t.Run("lookup known label", func(t *testing.T) {
		c := table.Lookup("Gear")
		assert.Equal(t, "products", c.Group)
		assert.Equal(t, "gear", c.Path)
	})

	t.Run("unknown label falls back to default", func(t *testing.T) {
		c := table.Lookup("Unicycles")
		assert.Equal(t, "Bike", c.Label)
		assert.Equal(t, "bikes", c.Path)
	})

	t.Run("empty label falls back to default", func(t *testing.T) {
		assert.Equal(t, "Bike", table.Lookup("").Label)
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, "Bike", table.Default().Label)
	})

	t.Run("all preserves config order", func(t *testing.T) {
		all := table.All()
		labels := make([]string, len(all))
		for i, c := range all {
			labels[i] = c.Label
		}
		assert.Equal(t, []string{"Bike", "Accessories", "Gear"}, labels)
	})
}

func TestNewTable_Degenerate(t *testing.T) {
	t.Run("missing default label falls back to first entry", func(t *testing.T) {
		table := NewTable(testEntries(), "Nope")
		assert.Equal(t, "Bike", table.Default().Label)
	})

	t.Run("duplicate labels keep the first", func(t *testing.T) {
		table := NewTable([]config.CategoryEntry{
			{Label: "Bike", Group: "products", Path: "bikes"},
			{Label: "Bike", Group: "products", Path: "bikes-v2"},
		}, "Bike")
		assert.Equal(t, "bikes", table.Lookup("Bike").Path)
		assert.Len(t, table.All(), 1)
	})
}
