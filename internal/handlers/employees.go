package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/users"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/utils"
)

// EmployeeHandler is the admin-only staff directory. Admin accounts are
// invisible to it: they cannot be listed, fetched, edited or deleted here.
type EmployeeHandler struct {
	Users users.Store
}

func NewEmployeeHandler(s users.Store) *EmployeeHandler {
	return &EmployeeHandler{Users: s}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.Users.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	employee, err := h.Users.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required"})
		return
	}
	if input.Role != "" && input.Role != models.RoleEmployee {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only employee role can be created"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	employee := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Role:     models.RoleEmployee,
	}
	if err := h.Users.Create(c.Request.Context(), &employee); err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}
	if input.Role != "" && input.Role != models.RoleEmployee {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only employee role is allowed"})
		return
	}

	employee, err := h.Users.UpdateEmployee(c.Request.Context(), id, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already used by another user"})
			return
		}
		respondStoreError(c, err, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	if err := h.Users.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
