package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beststore/internal/middleware"
	"beststore/internal/models"
	"beststore/internal/storage"
)

type productJSON struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toJSON(p models.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    storage.URL(p.ImageFileName),
		CreatedAt:   p.CreatedAt,
	}
}

// APIProducts lists products as JSON, newest first.
func (h *Handler) APIProducts(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		middleware.Logger(c).Error().Err(err).Msg("list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
		return
	}
	out := make([]productJSON, 0, len(items))
	for _, p := range items {
		out = append(out, toJSON(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
