package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anyulbade/card-fee-simulator/internal/middleware"
	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

const (
	testUser     = "maria silva"
	testPassword = "s3cret"
)

type stubCatalogs struct {
	catalog *model.RateCatalog
	err     error
}

func (s stubCatalogs) Catalog(context.Context) (*model.RateCatalog, error) {
	return s.catalog, s.err
}

func testCatalog() *model.RateCatalog {
	return model.NewRateCatalog(model.ModeSurcharge, []string{"Pag Seguro", "Infinity"}, map[string]map[string]model.RateTable{
		"Pag Seguro": {
			"Visa":   {1: 3.15, 2: 5.39, 3: 4.5},
			"Diners": {1: 3.6},
		},
		"Infinity": {
			"Visa": {1: 2.9, 2: 4.8},
		},
	})
}

func testAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService(map[string]string{testUser: string(hash)}, "test-secret", time.Hour)
}

// setupRouter wires the same routes and middleware as the server binary.
func setupRouter(t *testing.T, catalogs service.CatalogProvider, loginPerMinute int) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := testAuthService(t)
	simulationHandler := NewSimulationHandler(service.NewSimulationService(catalogs, time.Minute), "BRL")
	catalogHandler := NewCatalogHandler(catalogs)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.GET("/health", NewHealthHandler(catalogs).Health)

	api := router.Group("/api/v1")
	api.POST("/auth/login", middleware.RateLimit(loginPerMinute), NewAuthHandler(authService).Login)
	staff := api.Group("", middleware.Auth(authService))
	staff.GET("/catalog/brands", catalogHandler.GetBrands)
	staff.GET("/catalog/installments", catalogHandler.GetInstallments)
	staff.GET("/simulations", simulationHandler.Simulate)
	staff.GET("/comparisons", simulationHandler.Compare)

	return router, authService
}

func staffToken(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	token, _, err := auth.Login(testUser, testPassword)
	require.NoError(t, err)
	return token
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
