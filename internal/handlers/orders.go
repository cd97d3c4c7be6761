package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// OrderHandler serves purchase history. Orders are scoped to the caller;
// admins can read any order.
type OrderHandler struct {
	Store inventory.Store
}

func NewOrderHandler(s inventory.Store) *OrderHandler {
	return &OrderHandler{Store: s}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Store.ListOrders(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// QR renders an order as a PNG QR code for pickup at the counter.
func (h *OrderHandler) QR(c *gin.Context) {
	order, ok := h.fetch(c)
	if !ok {
		return
	}

	payload := fmt.Sprintf("order:%s;total:%.2f;status:%s", order.ID, order.Total, order.Status)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// fetch loads the order and enforces ownership. A foreign order reads as
// 404 so the endpoint never confirms that someone else's id exists.
func (h *OrderHandler) fetch(c *gin.Context) (*models.Order, bool) {
	order, err := h.Store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return nil, false
	}
	if order.UserID != c.GetInt("user_id") && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	return order, true
}
