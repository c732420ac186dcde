package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

type HealthHandler struct {
	catalogs service.CatalogProvider
}

func NewHealthHandler(catalogs service.CatalogProvider) *HealthHandler {
	return &HealthHandler{catalogs: catalogs}
}

func (h *HealthHandler) Health(c *gin.Context) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		_, resp := middleware.MapError(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "unhealthy",
			"catalog":     "unavailable",
			"load_errors": resp.LoadErrors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"catalog":   "loaded",
		"mode":      catalog.Mode(),
		"providers": catalog.Providers(),
	})
}
