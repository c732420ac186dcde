package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

type CatalogHandler struct {
	catalogs service.CatalogProvider
}

func NewCatalogHandler(catalogs service.CatalogProvider) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

func (h *CatalogHandler) GetBrands(c *gin.Context) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": catalog.Providers(),
		"brands":    service.Brands(catalog),
	})
}

func (h *CatalogHandler) GetInstallments(c *gin.Context) {
	var q dto.InstallmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(&middleware.RequestError{Err: err})
		return
	}

	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := dto.InstallmentsResponse{
		Brand:        q.Brand,
		Installments: service.AvailableInstallments(catalog, q.Brand),
	}
	if resp.Installments == nil {
		resp.Installments = []int{}
	}
	if n, ok := service.DefaultInstallment(catalog, q.Brand).Get(); ok {
		resp.Default = &n
	}
	c.JSON(http.StatusOK, resp)
}
