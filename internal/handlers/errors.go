package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// respondStoreError maps a domain error onto the HTTP contract. notFound
// carries the resource-specific wording ("Sweet not found", "Order not
// found", ...); conflicts are handled inline by the few handlers that
// produce them because their messages differ per route.
func respondStoreError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": inputMessage(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}

// inputMessage strips the sentinel prefix so clients see "quantity must be
// a positive integer" rather than "invalid input: quantity must be ...".
func inputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), models.ErrInvalidInput.Error()+": ")
}
