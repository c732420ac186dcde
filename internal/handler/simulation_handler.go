package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

type SimulationHandler struct {
	svc      *service.SimulationService
	currency string
}

func NewSimulationHandler(svc *service.SimulationService, currency string) *SimulationHandler {
	return &SimulationHandler{svc: svc, currency: currency}
}

func (h *SimulationHandler) Simulate(c *gin.Context) {
	var q dto.SimulationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(&middleware.RequestError{Err: err})
		return
	}

	req, err := q.ToRequest()
	if err != nil {
		_ = c.Error(&middleware.RequestError{Err: err})
		return
	}

	ctx := c.Request.Context()
	catalog, err := h.svc.Catalog(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	presenter := dto.Presenter{Currency: h.currency, Mode: catalog.Mode()}

	if req.Installments.IsAll() {
		amount, _ := req.Amount.Get()
		brand, _ := req.Brand.Get()
		cmp, err := h.svc.Compare(ctx, amount, brand)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, presenter.Comparison(cmp))
		return
	}

	sim, err := h.svc.Simulate(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, presenter.Simulation(sim))
}

func (h *SimulationHandler) Compare(c *gin.Context) {
	var q dto.ComparisonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(&middleware.RequestError{Err: err})
		return
	}

	ctx := c.Request.Context()
	catalog, err := h.svc.Catalog(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	amount, _ := dto.ParseAmount(q.Amount).Get()
	cmp, err := h.svc.Compare(ctx, amount, q.Brand)
	if err != nil {
		_ = c.Error(err)
		return
	}

	presenter := dto.Presenter{Currency: h.currency, Mode: catalog.Mode()}
	c.JSON(http.StatusOK, presenter.Comparison(cmp))
}
