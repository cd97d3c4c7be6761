// Package users holds the user store behind registration, login and the
// admin-only employee management screens.
package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

type Store interface {
	// Create inserts a user; ErrConflict when the email is taken.
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)

	// Employee management never touches admin accounts.
	ListEmployees(ctx context.Context) ([]models.User, error)
	GetEmployee(ctx context.Context, id int) (*models.User, error)
	UpdateEmployee(ctx context.Context, id int, name, email string) (*models.User, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// ValidateNewUser checks the registration fields and normalizes the role.
func ValidateNewUser(u *models.User) error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" || u.Password == "" {
		return fmt.Errorf("%w: name, email, and password are required", models.ErrInvalidInput)
	}
	if u.Role == "" {
		u.Role = models.RoleEmployee
	}
	if u.Role != models.RoleAdmin && u.Role != models.RoleEmployee {
		return fmt.Errorf("%w: role must be admin or employee", models.ErrInvalidInput)
	}
	return nil
}
