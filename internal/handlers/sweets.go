package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/cache"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/services"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/utils"
)

// SweetHandler serves the catalog and the stock operations. Everything
// stock-related goes through the injected Store; Redis, Elasticsearch and
// SMTP are best-effort side channels that never fail a request.
type SweetHandler struct {
	Store inventory.Store
}

func NewSweetHandler(s inventory.Store) *SweetHandler {
	return &SweetHandler{Store: s}
}

func (h *SweetHandler) GetAll(c *gin.Context) {
	var f inventory.Filter
	f.Search = c.Query("search")
	f.Category = c.Query("category")

	if raw := c.Query("maxPrice"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
			return
		}
		f.MaxPrice = &p
	}
	if raw := c.Query("inStock"); raw != "" {
		v := raw == "true"
		f.InStock = &v
	}

	// Only the unfiltered catalog is cached; filtered reads always hit
	// the store.
	cacheable := f == (inventory.Filter{})
	if cacheable {
		if sweets, ok := cache.GetSweetList(c.Request.Context()); ok {
			c.JSON(http.StatusOK, sweets)
			return
		}
	}

	sweets, err := h.Store.ListSweets(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if cacheable {
		cache.SetSweetList(c.Request.Context(), sweets)
	}

	c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}

	sweet, err := h.Store.GetSweet(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	c.JSON(http.StatusOK, sweet)
}

func (h *SweetHandler) Create(c *gin.Context) {
	var input struct {
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Category == "" || input.Price == nil || input.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, category, price, quantity"})
		return
	}

	sweet := models.Sweet{
		Name:        input.Name,
		Category:    input.Category,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := inventory.ValidateNewSweet(&sweet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": inputMessage(err)})
		return
	}

	if err := h.Store.CreateSweet(c.Request.Context(), &sweet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sweet"})
		return
	}

	go h.refreshSideChannels(sweet.ID)
	c.JSON(http.StatusCreated, sweet)
}

func (h *SweetHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}

	var patch models.SweetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	if err := inventory.ValidatePatch(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": inputMessage(err)})
		return
	}

	if err := h.Store.UpdateSweet(c.Request.Context(), id, patch); err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	go h.refreshSideChannels(id)
	c.JSON(http.StatusOK, gin.H{"message": "Sweet updated successfully"})
}

func (h *SweetHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}

	if err := h.Store.DeleteSweet(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	go func() {
		services.RemoveSweet(id)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cache.InvalidateSweets(ctx)
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"})
}

func (h *SweetHandler) Purchase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := inventory.ValidateQuantity(input.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": inputMessage(err)})
		return
	}

	userID := c.GetInt("user_id")
	order, err := h.Store.Purchase(c.Request.Context(), id, input.Quantity, userID)
	if err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	// Post-commit side effects run detached: no lock is held while we talk
	// to SMTP, Elasticsearch or Redis, and none of them can undo the sale.
	email := c.GetString("email")
	go func() {
		if email != "" {
			if err := utils.SendPurchaseConfirmation(email, *order); err != nil {
				log.Printf("⚠️ Confirmation email for order %s: %v", order.ID, err)
			}
		}
		h.refreshSideChannels(id)
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Purchase successful", "order": order})
}

func (h *SweetHandler) Restock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := inventory.ValidateQuantity(input.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": inputMessage(err)})
		return
	}

	if err := h.Store.Restock(c.Request.Context(), id, input.Quantity); err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	go h.refreshSideChannels(id)
	c.JSON(http.StatusOK, gin.H{"message": "Sweet restocked successfully"})
}

// Search answers /api/sweets/search. Elasticsearch first; when it is down
// or not configured the SQL ILIKE filter gives the same answer, just
// without fuzziness.
func (h *SweetHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		q = c.Query("search")
	}
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	if sweets, err := services.SearchSweets(q); err == nil {
		c.JSON(http.StatusOK, sweets)
		return
	}

	sweets, err := h.Store.ListSweets(c.Request.Context(), inventory.Filter{Search: q})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) UploadImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
		return
	}
	if _, err := h.Store.GetSweet(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}

	url, err := services.UploadSweetImage(c.Request.Context(), id, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	patch := models.SweetPatch{ImageURL: &url}
	if err := h.Store.UpdateSweet(c.Request.Context(), id, patch); err != nil {
		respondStoreError(c, err, "Sweet not found")
		return
	}

	go h.refreshSideChannels(id)
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// refreshSideChannels re-indexes one sweet in Elasticsearch and drops the
// cached catalog. Called from goroutines, so it builds its own context.
func (h *SweetHandler) refreshSideChannels(id int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sweet, err := h.Store.GetSweet(ctx, id); err == nil {
		services.IndexSweet(*sweet)
	}
	cache.InvalidateSweets(ctx)
}
