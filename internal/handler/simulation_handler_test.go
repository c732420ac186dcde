package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

func TestSimulationHandler_Simulate(t *testing.T) {
	router, auth := setupRouter(t, stubCatalogs{catalog: testCatalog()}, 0)
	token := staffToken(t, auth)

	t.Run("happy: one installment count on every provider", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=5000&brand=Visa&installments=3", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SimulationResponse](t, w)
		assert.Equal(t, "Visa", resp.Brand)
		assert.Equal(t, "surcharge", resp.Mode)
		require.NotNil(t, resp.Installments)
		assert.Equal(t, 3, *resp.Installments)
		require.Len(t, resp.Results, 2)

		pag := resp.Results[0]
		assert.Equal(t, "Pag Seguro", pag.Provider)
		require.True(t, pag.Available)
		assert.InDelta(t, 5225.0, pag.Quote.Total, 1e-9)
		assert.InDelta(t, 1741.67, pag.Quote.PerInstallment, 0.005)
		assert.InDelta(t, 225.0, pag.Quote.TransactionCost, 1e-9)
		assert.Equal(t, 5000.0, pag.Quote.NetReceived)
		assert.Equal(t, "R$5.225,00", pag.Quote.TotalDisplay)
		assert.Equal(t, "4,50%", pag.Quote.RateDisplay)

		inf := resp.Results[1]
		assert.Equal(t, "Infinity", inf.Provider)
		assert.False(t, inf.Available)
		assert.Equal(t, "installments_not_offered", inf.Reason)
		assert.Nil(t, inf.Quote)
	})

	t.Run("happy: decimal comma amount and default installment", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=100,50&brand=Visa", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SimulationResponse](t, w)
		require.NotNil(t, resp.Installments)
		assert.Equal(t, 1, *resp.Installments)
		assert.Equal(t, 100.5, resp.Amount)
		assert.True(t, resp.Results[0].Available)
		assert.True(t, resp.Results[1].Available)
	})

	t.Run("happy: thousands-grouped amount as displayed", func(t *testing.T) {
		for _, amount := range []string{"5.000,00", "5.000", "R$5.000,00"} {
			w := doGet(router, "/api/v1/simulations?brand=Visa&installments=3&provider=Pag+Seguro&amount="+url.QueryEscape(amount), token)
			require.Equal(t, http.StatusOK, w.Code, amount)

			resp := decode[dto.SimulationResponse](t, w)
			assert.Equal(t, 5000.0, resp.Amount, amount)
			require.Len(t, resp.Results, 1)
			require.True(t, resp.Results[0].Available, amount)
			assert.InDelta(t, 5225.0, resp.Results[0].Quote.Total, 1e-9, amount)
		}
	})

	t.Run("happy: provider filter", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=5000&brand=Visa&installments=2&provider=Infinity", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SimulationResponse](t, w)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Infinity", resp.Results[0].Provider)
		assert.InDelta(t, 5240.0, resp.Results[0].Quote.Total, 1e-9)
	})

	t.Run("happy: installments=all answers with a comparison", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=5000&brand=Visa&installments=all", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.ComparisonResponse](t, w)
		assert.Equal(t, []string{"Pag Seguro", "Infinity"}, resp.Providers)
		require.Len(t, resp.Rows, 3)
		assert.Equal(t, 1, resp.Rows[0].Installments)
		assert.Equal(t, 3, resp.Rows[2].Installments)
		assert.False(t, resp.Rows[2].Cells[1].Available)
	})

	t.Run("edge: unusable inputs give unavailable results, not errors", func(t *testing.T) {
		cases := []struct {
			query  string
			reason string
		}{
			{"amount=abc&brand=Visa&installments=1", "invalid_amount"},
			{"amount=0&brand=Visa&installments=1", "invalid_amount"},
			{"amount=-10&brand=Visa&installments=1", "invalid_amount"},
			{"amount=100&installments=1", "brand_not_selected"},
			{"amount=100&brand=Amex&installments=1", "brand_not_offered"},
			{"amount=100&brand=Amex", "installments_not_selected"},
			{"amount=100&brand=Visa&installments=12", "installments_not_offered"},
			{"amount=100&brand=Visa&installments=0", "installments_not_offered"},
		}
		for _, tc := range cases {
			t.Run(tc.query, func(t *testing.T) {
				w := doGet(router, "/api/v1/simulations?"+tc.query, token)
				require.Equal(t, http.StatusOK, w.Code)

				resp := decode[dto.SimulationResponse](t, w)
				require.NotEmpty(t, resp.Results)
				assert.False(t, resp.Results[0].Available)
				assert.Equal(t, tc.reason, resp.Results[0].Reason)
			})
		}
	})

	t.Run("edge: unknown provider", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=100&brand=Visa&installments=1&provider=Stone", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SimulationResponse](t, w)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "unknown_provider", resp.Results[0].Reason)
	})

	t.Run("bad: malformed installments", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=100&brand=Visa&installments=three", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode[middleware.ErrorResponse](t, w)
		assert.Equal(t, "invalid request", resp.Error)
		assert.Contains(t, resp.Details, "installments")
	})

	t.Run("bad: missing token", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=100&brand=Visa", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad: tampered token", func(t *testing.T) {
		w := doGet(router, "/api/v1/simulations?amount=100&brand=Visa", token+"x")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSimulationHandler_Compare(t *testing.T) {
	router, auth := setupRouter(t, stubCatalogs{catalog: testCatalog()}, 0)
	token := staffToken(t, auth)

	t.Run("happy: every installment count", func(t *testing.T) {
		w := doGet(router, "/api/v1/comparisons?amount=1000&brand=Visa", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.ComparisonResponse](t, w)
		require.Len(t, resp.Rows, 3)
		row := resp.Rows[1]
		assert.Equal(t, 2, row.Installments)
		require.Len(t, row.Cells, 2)
		assert.InDelta(t, 526.95, row.Cells[0].Quote.PerInstallment, 1e-9)
		assert.InDelta(t, 524.0, row.Cells[1].Quote.PerInstallment, 1e-9)
	})

	t.Run("edge: brand nobody offers has no rows", func(t *testing.T) {
		w := doGet(router, "/api/v1/comparisons?amount=1000&brand=Amex", token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.ComparisonResponse](t, w)
		assert.Empty(t, resp.Rows)
	})

	t.Run("bad: brand required", func(t *testing.T) {
		w := doGet(router, "/api/v1/comparisons?amount=1000", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSimulationHandler_CatalogUnavailable(t *testing.T) {
	loadErr := service.LoadErrors{
		{Kind: service.SourceNotFound, Source: model.RateSource{Provider: "Infinity", Brand: "Elo", Locator: "elo.csv"}},
	}
	router, auth := setupRouter(t, stubCatalogs{err: loadErr}, 0)
	token := staffToken(t, auth)

	for _, path := range []string{
		"/api/v1/simulations?amount=100&brand=Visa&installments=1",
		"/api/v1/comparisons?amount=100&brand=Visa",
		"/api/v1/catalog/brands",
	} {
		t.Run(path, func(t *testing.T) {
			w := doGet(router, path, token)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)

			resp := decode[middleware.ErrorResponse](t, w)
			assert.Equal(t, "rate catalog unavailable", resp.Error)
			require.Len(t, resp.LoadErrors, 1)
			assert.Equal(t, "source_not_found", resp.LoadErrors[0].Kind)
			assert.Equal(t, "elo.csv", resp.LoadErrors[0].Locator)
		})
	}
}
