package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

func TestBuildSweetListQuery(t *testing.T) {
	maxPrice := 9.5
	inStock := true
	outOfStock := false

	tests := []struct {
		name     string
		filter   inventory.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			filter:  inventory.Filter{},
			wantSQL: `SELECT ` + sweetColumns + ` FROM sweets ORDER BY id`,
		},
		{
			name:     "search",
			filter:   inventory.Filter{Search: "choco"},
			wantSQL:  `SELECT ` + sweetColumns + ` FROM sweets WHERE (name ILIKE $1 OR description ILIKE $1) ORDER BY id`,
			wantArgs: []any{"%choco%"},
		},
		{
			name:     "category",
			filter:   inventory.Filter{Category: "Traditional"},
			wantSQL:  `SELECT ` + sweetColumns + ` FROM sweets WHERE category = $1 ORDER BY id`,
			wantArgs: []any{"Traditional"},
		},
		{
			name:     "max price",
			filter:   inventory.Filter{MaxPrice: &maxPrice},
			wantSQL:  `SELECT ` + sweetColumns + ` FROM sweets WHERE price <= $1 ORDER BY id`,
			wantArgs: []any{9.5},
		},
		{
			name:    "in stock",
			filter:  inventory.Filter{InStock: &inStock},
			wantSQL: `SELECT ` + sweetColumns + ` FROM sweets WHERE quantity > 0 ORDER BY id`,
		},
		{
			name:    "out of stock",
			filter:  inventory.Filter{InStock: &outOfStock},
			wantSQL: `SELECT ` + sweetColumns + ` FROM sweets WHERE quantity = 0 ORDER BY id`,
		},
		{
			name:     "all filters compose with AND",
			filter:   inventory.Filter{Search: "jamun", Category: "Traditional", MaxPrice: &maxPrice, InStock: &inStock},
			wantSQL:  `SELECT ` + sweetColumns + ` FROM sweets WHERE (name ILIKE $1 OR description ILIKE $1) AND category = $2 AND price <= $3 AND quantity > 0 ORDER BY id`,
			wantArgs: []any{"%jamun%", "Traditional", 9.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildSweetListQuery(tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildSweetPatchQuery(t *testing.T) {
	name := "Ladoo"
	price := 3.5
	qty := 12
	desc := "ghee ladoo"

	tests := []struct {
		name     string
		patch    models.SweetPatch
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "single field",
			patch:    models.SweetPatch{Price: &price},
			wantSQL:  `UPDATE sweets SET price = $1, updated_at = now() WHERE id = $2`,
			wantArgs: []any{3.5, 7},
		},
		{
			name:     "several fields keep declaration order",
			patch:    models.SweetPatch{Name: &name, Price: &price, Quantity: &qty},
			wantSQL:  `UPDATE sweets SET name = $1, price = $2, quantity = $3, updated_at = now() WHERE id = $4`,
			wantArgs: []any{"Ladoo", 3.5, 12, 7},
		},
		{
			name:     "description only",
			patch:    models.SweetPatch{Description: &desc},
			wantSQL:  `UPDATE sweets SET description = $1, updated_at = now() WHERE id = $2`,
			wantArgs: []any{"ghee ladoo", 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildSweetPatchQuery(7, tt.patch)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
