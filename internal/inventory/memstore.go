package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// MemStore is a mutex-guarded in-memory Store. It backs the server when no
// DATABASE_URL is configured (local development, like the original's sqlite
// file) and the test suites. The mutex serializes the read-check-decrement
// sequence of Purchase, so the §5-style guarantee holds here too.
type MemStore struct {
	mu sync.Mutex

	sweets map[int]models.Sweet
	orders map[string]models.Order

	nextSweetID int
	nextItemID  int
}

func NewMemStore() *MemStore {
	return &MemStore{
		sweets:      make(map[int]models.Sweet),
		orders:      make(map[string]models.Order),
		nextSweetID: 1,
		nextItemID:  1,
	}
}

// Seed loads the sample catalogue the original seed script installs.
func (m *MemStore) Seed() {
	seeds := []models.Sweet{
		{Name: "Gulab Jamun", Category: "Traditional", Price: 12.99, Quantity: 50, Description: "Soft milk dumplings in rose-scented syrup"},
		{Name: "Chocolate Truffle", Category: "Chocolate", Price: 8.50, Quantity: 30, Description: "Dark chocolate ganache truffles"},
		{Name: "Rasgulla", Category: "Traditional", Price: 10.00, Quantity: 40, Description: "Spongy cottage cheese balls in light syrup"},
		{Name: "Strawberry Cupcake", Category: "Bakery", Price: 4.25, Quantity: 0, Description: "Vanilla cupcake with strawberry frosting"},
	}
	for i := range seeds {
		_ = m.CreateSweet(context.Background(), &seeds[i])
	}
}

func (m *MemStore) ListSweets(_ context.Context, f Filter) ([]models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Sweet, 0, len(m.sweets))
	for _, s := range m.sweets {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) GetSweet(_ context.Context, id int) (*models.Sweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sweets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (m *MemStore) CreateSweet(_ context.Context, s *models.Sweet) error {
	if err := ValidateNewSweet(s); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	s.ID = m.nextSweetID
	m.nextSweetID++
	s.CreatedAt = now
	s.UpdatedAt = now
	m.sweets[s.ID] = *s
	return nil
}

func (m *MemStore) UpdateSweet(_ context.Context, id int, patch models.SweetPatch) error {
	if err := ValidatePatch(patch); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sweets[id]
	if !ok {
		return models.ErrNotFound
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Category != nil {
		s.Category = *patch.Category
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.Quantity != nil {
		s.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		s.ImageURL = *patch.ImageURL
	}
	s.UpdatedAt = time.Now().UTC()
	m.sweets[id] = s
	return nil
}

func (m *MemStore) DeleteSweet(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sweets[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.sweets, id)
	return nil
}

func (m *MemStore) Purchase(_ context.Context, sweetID, quantity, userID int) (*models.Order, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sweets[sweetID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if s.Quantity < quantity {
		return nil, models.ErrInsufficientStock
	}

	s.Quantity -= quantity
	s.UpdatedAt = time.Now().UTC()
	m.sweets[sweetID] = s

	order := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Total:     s.Price * float64(quantity),
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
		Items: []models.OrderItem{{
			ID:        m.nextItemID,
			SweetID:   sweetID,
			SweetName: s.Name,
			Quantity:  quantity,
			Price:     s.Price,
		}},
	}
	order.Items[0].OrderID = order.ID
	m.nextItemID++
	m.orders[order.ID] = order
	return &order, nil
}

func (m *MemStore) Restock(_ context.Context, sweetID, quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sweets[sweetID]
	if !ok {
		return models.ErrNotFound
	}
	s.Quantity += quantity
	s.UpdatedAt = time.Now().UTC()
	m.sweets[sweetID] = s
	return nil
}

func (m *MemStore) ListOrders(_ context.Context, userID int) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &o, nil
}
