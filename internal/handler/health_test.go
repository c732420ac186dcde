package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

type healthResponse struct {
	Status     string   `json:"status"`
	Catalog    string   `json:"catalog"`
	Mode       string   `json:"mode"`
	Providers  []string `json:"providers"`
	LoadErrors []struct {
		Kind  string `json:"kind"`
		Brand string `json:"brand"`
	} `json:"load_errors"`
}

func TestHealthHandler(t *testing.T) {
	t.Run("happy: catalog loaded", func(t *testing.T) {
		router, _ := setupRouter(t, stubCatalogs{catalog: testCatalog()}, 0)

		w := doGet(router, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decode[healthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "loaded", resp.Catalog)
		assert.Equal(t, "surcharge", resp.Mode)
		assert.Equal(t, []string{"Pag Seguro", "Infinity"}, resp.Providers)
	})

	t.Run("bad: load failure lists every source error", func(t *testing.T) {
		loadErr := service.LoadErrors{
			{Kind: service.SourceNotFound, Source: model.RateSource{Provider: "Infinity", Brand: "Elo", Locator: "elo.csv"}},
			{Kind: service.SourceParseError, Source: model.RateSource{Provider: "Pag Seguro", Brand: "Link", Locator: "link.csv"}, Err: assert.AnError},
		}
		router, _ := setupRouter(t, stubCatalogs{err: loadErr}, 0)

		w := doGet(router, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		resp := decode[healthResponse](t, w)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unavailable", resp.Catalog)
		if assert.Len(t, resp.LoadErrors, 2) {
			assert.Equal(t, "source_not_found", resp.LoadErrors[0].Kind)
			assert.Equal(t, "Link", resp.LoadErrors[1].Brand)
		}
	})
}
