package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	u := models.User{Name: "Asha", Email: "asha@sweetshop.com", Password: "hash", Role: models.RoleEmployee}
	require.NoError(t, store.Create(ctx, &u))
	assert.Equal(t, 1, u.ID)

	byEmail, err := store.GetByEmail(ctx, "asha@sweetshop.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", byID.Name)

	dup := models.User{Name: "Other", Email: "asha@sweetshop.com", Password: "hash"}
	assert.ErrorIs(t, store.Create(ctx, &dup), models.ErrConflict)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	tests := []struct {
		name string
		user models.User
	}{
		{"missing name", models.User{Email: "a@b.c", Password: "x"}},
		{"missing email", models.User{Name: "A", Password: "x"}},
		{"missing password", models.User{Name: "A", Email: "a@b.c"}},
		{"bad role", models.User{Name: "A", Email: "a@b.c", Password: "x", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			assert.ErrorIs(t, store.Create(ctx, &u), models.ErrInvalidInput)
		})
	}

	// Role defaults to employee.
	u := models.User{Name: "A", Email: "a@b.c", Password: "x"}
	require.NoError(t, store.Create(ctx, &u))
	assert.Equal(t, models.RoleEmployee, u.Role)
}

func TestEmployeeManagementExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	admin := models.User{Name: "Boss", Email: "admin@sweetshop.com", Password: "x", Role: models.RoleAdmin}
	emp := models.User{Name: "Ravi", Email: "ravi@sweetshop.com", Password: "x", Role: models.RoleEmployee}
	require.NoError(t, store.Create(ctx, &admin))
	require.NoError(t, store.Create(ctx, &emp))

	list, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ravi", list[0].Name)

	_, err = store.GetEmployee(ctx, admin.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.UpdateEmployee(ctx, admin.ID, "X", "x@y.z")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, store.DeleteEmployee(ctx, admin.ID), models.ErrNotFound)
}

func TestUpdateEmployeeEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	a := models.User{Name: "A", Email: "a@sweetshop.com", Password: "x"}
	b := models.User{Name: "B", Email: "b@sweetshop.com", Password: "x"}
	require.NoError(t, store.Create(ctx, &a))
	require.NoError(t, store.Create(ctx, &b))

	_, err := store.UpdateEmployee(ctx, b.ID, "B", "a@sweetshop.com")
	assert.ErrorIs(t, err, models.ErrConflict)

	updated, err := store.UpdateEmployee(ctx, b.ID, "Bee", "bee@sweetshop.com")
	require.NoError(t, err)
	assert.Equal(t, "Bee", updated.Name)
	assert.Equal(t, "bee@sweetshop.com", updated.Email)
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	emp := models.User{Name: "Ravi", Email: "ravi@sweetshop.com", Password: "x"}
	require.NoError(t, store.Create(ctx, &emp))

	require.NoError(t, store.DeleteEmployee(ctx, emp.ID))
	_, err := store.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, store.DeleteEmployee(ctx, emp.ID), models.ErrNotFound)
}
