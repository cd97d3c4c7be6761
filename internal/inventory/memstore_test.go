package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

func newTestStore(t *testing.T, sweets ...models.Sweet) *MemStore {
	t.Helper()
	s := NewMemStore()
	for i := range sweets {
		require.NoError(t, s.CreateSweet(context.Background(), &sweets[i]))
	}
	return s
}

func TestPurchaseSuccess(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Ladoo", Category: "Traditional", Price: 12.99, Quantity: 10})

	order, err := store.Purchase(ctx, 1, 2, 7)
	require.NoError(t, err)

	assert.InDelta(t, 25.98, order.Total, 1e-9)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 7, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].SweetID)
	assert.Equal(t, "Ladoo", order.Items[0].SweetName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 12.99, order.Items[0].Price, 1e-9)

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, sweet.Quantity)
}

func TestPurchaseInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Barfi", Category: "Traditional", Price: 5, Quantity: 10})

	_, err := store.Purchase(ctx, 1, 20, 1)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// Nothing changed, no order recorded.
	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, sweet.Quantity)
	orders, err := store.ListOrders(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPurchaseNotFound(t *testing.T) {
	store := NewMemStore()
	_, err := store.Purchase(context.Background(), 999, 1, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Jalebi", Category: "Traditional", Price: 3, Quantity: 10})

	for _, qty := range []int{0, -1, -10} {
		_, err := store.Purchase(ctx, 1, qty, 1)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "quantity %d", qty)
	}

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, sweet.Quantity)
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Peda", Category: "Traditional", Price: 4, Quantity: 5})

	require.NoError(t, store.Restock(ctx, 1, 5))

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, sweet.Quantity)

	// Restock never creates an order.
	orders, err := store.ListOrders(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)

	assert.ErrorIs(t, store.Restock(ctx, 1, 0), models.ErrInvalidInput)
	assert.ErrorIs(t, store.Restock(ctx, 1, -3), models.ErrInvalidInput)
	assert.ErrorIs(t, store.Restock(ctx, 999, 5), models.ErrNotFound)
}

func TestPriceSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Halwa", Category: "Traditional", Price: 6.50, Quantity: 10})

	order, err := store.Purchase(ctx, 1, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 6.50, order.Items[0].Price, 1e-9)

	newPrice := 9.99
	require.NoError(t, store.UpdateSweet(ctx, 1, models.SweetPatch{Price: &newPrice}))

	// The recorded line still carries the price at purchase time.
	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.50, got.Items[0].Price, 1e-9)
	assert.InDelta(t, 6.50, got.Total, 1e-9)
}

func TestCreateSweetValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	tests := []struct {
		name  string
		sweet models.Sweet
	}{
		{"missing name", models.Sweet{Category: "Chocolate", Price: 2, Quantity: 5}},
		{"missing category", models.Sweet{Name: "Fudge", Price: 2, Quantity: 5}},
		{"negative price", models.Sweet{Name: "Fudge", Category: "Chocolate", Price: -1, Quantity: 5}},
		{"negative quantity", models.Sweet{Name: "Fudge", Category: "Chocolate", Price: 2, Quantity: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweet := tt.sweet
			err := store.CreateSweet(ctx, &sweet)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	// Nothing was inserted by the rejected attempts.
	all, err := store.ListSweets(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateSweetPartialMerge(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Kaju Katli", Category: "Traditional", Price: 15, Quantity: 20, Description: "cashew diamonds"})

	price := 18.0
	require.NoError(t, store.UpdateSweet(ctx, 1, models.SweetPatch{Price: &price}))

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, sweet.Price, 1e-9)
	// Untouched fields survive the merge.
	assert.Equal(t, "Kaju Katli", sweet.Name)
	assert.Equal(t, 20, sweet.Quantity)
	assert.Equal(t, "cashew diamonds", sweet.Description)

	assert.ErrorIs(t, store.UpdateSweet(ctx, 1, models.SweetPatch{}), models.ErrInvalidInput)
	assert.ErrorIs(t, store.UpdateSweet(ctx, 999, models.SweetPatch{Price: &price}), models.ErrNotFound)
}

func TestDeleteSweet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Toffee", Category: "Candy", Price: 1, Quantity: 100})

	require.NoError(t, store.DeleteSweet(ctx, 1))
	_, err := store.GetSweet(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSweet(ctx, 1), models.ErrNotFound)
}

func TestListSweetsFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t,
		models.Sweet{Name: "Gulab Jamun", Category: "Traditional", Price: 12.99, Quantity: 50, Description: "rose syrup dumplings"},
		models.Sweet{Name: "Chocolate Truffle", Category: "Chocolate", Price: 8.50, Quantity: 30, Description: "dark ganache"},
		models.Sweet{Name: "Strawberry Cupcake", Category: "Bakery", Price: 4.25, Quantity: 0, Description: "vanilla base"},
	)

	maxPrice := 9.0
	inStock := true
	outOfStock := false

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
	}{
		{"no filter", Filter{}, []string{"Gulab Jamun", "Chocolate Truffle", "Strawberry Cupcake"}},
		{"search name case-insensitive", Filter{Search: "chocolate"}, []string{"Chocolate Truffle"}},
		{"search description", Filter{Search: "syrup"}, []string{"Gulab Jamun"}},
		{"category", Filter{Category: "Bakery"}, []string{"Strawberry Cupcake"}},
		{"max price", Filter{MaxPrice: &maxPrice}, []string{"Chocolate Truffle", "Strawberry Cupcake"}},
		{"in stock", Filter{InStock: &inStock}, []string{"Gulab Jamun", "Chocolate Truffle"}},
		{"out of stock", Filter{InStock: &outOfStock}, []string{"Strawberry Cupcake"}},
		{"max price and in stock", Filter{MaxPrice: &maxPrice, InStock: &inStock}, []string{"Chocolate Truffle"}},
		{"search and category", Filter{Search: "truffle", Category: "Chocolate"}, []string{"Chocolate Truffle"}},
		{"no match", Filter{Search: "pistachio"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListSweets(ctx, tt.filter)
			require.NoError(t, err)
			var names []string
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.wantNames, names)

			// Read-only: the same call returns the same result.
			again, err := store.ListSweets(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

// Two concurrent purchases of 6 against a stock of 10: exactly one wins and
// the final quantity is 4, never negative and never double-decremented.
func TestConcurrentPurchasesCannotOversell(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Ladoo", Category: "Traditional", Price: 2, Quantity: 10})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Purchase(ctx, 1, 6, i+1)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, models.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, sweet.Quantity)
}

// Hammer a single sweet from many goroutines; stock must never go negative
// and successful purchases must account exactly for the decrement.
func TestStockNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Ladoo", Category: "Traditional", Price: 1, Quantity: 25})

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Purchase(ctx, 1, 3, 1); err == nil {
				mu.Lock()
				sold += 3
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sweet, err := store.GetSweet(ctx, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sweet.Quantity, 0)
	assert.Equal(t, 25-sold, sweet.Quantity)
}

func TestListOrdersScopedToUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, models.Sweet{Name: "Ladoo", Category: "Traditional", Price: 2, Quantity: 10})

	_, err := store.Purchase(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = store.Purchase(ctx, 1, 2, 2)
	require.NoError(t, err)

	mine, err := store.ListOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].UserID)

	_, err = store.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
