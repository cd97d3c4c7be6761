package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// MemStore is the in-memory Store used without a DATABASE_URL and in tests.
type MemStore struct {
	mu     sync.Mutex
	users  map[int]models.User
	nextID int
}

func NewMemStore() *MemStore {
	return &MemStore{users: make(map[int]models.User), nextID: 1}
}

func (m *MemStore) Create(_ context.Context, u *models.User) error {
	if err := ValidateNewUser(u); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return models.ErrConflict
		}
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}

func (m *MemStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemStore) GetByID(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *MemStore) ListEmployees(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.User
	for _, u := range m.users {
		if u.Role != models.RoleAdmin {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) GetEmployee(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.Role == models.RoleAdmin {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *MemStore) UpdateEmployee(_ context.Context, id int, name, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.Role == models.RoleAdmin {
		return nil, models.ErrNotFound
	}
	for otherID, other := range m.users {
		if otherID != id && other.Email == email {
			return nil, models.ErrConflict
		}
	}
	u.Name = name
	u.Email = email
	m.users[id] = u
	return &u, nil
}

func (m *MemStore) DeleteEmployee(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.Role == models.RoleAdmin {
		return models.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
