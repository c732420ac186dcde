package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/middleware"
)

func postLogin(router *gin.Engine, body any) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	router, _ := setupRouter(t, stubCatalogs{catalog: testCatalog()}, 0)

	t.Run("happy: token usable on staff routes", func(t *testing.T) {
		w := postLogin(router, dto.LoginRequest{Username: testUser, Password: testPassword})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.LoginResponse](t, w)
		require.NotEmpty(t, resp.Token)
		assert.False(t, resp.ExpiresAt.IsZero())

		w = doGet(router, "/api/v1/catalog/brands", resp.Token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("bad: wrong password", func(t *testing.T) {
		w := postLogin(router, dto.LoginRequest{Username: testUser, Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad: missing fields", func(t *testing.T) {
		w := postLogin(router, map[string]string{"username": testUser})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decode[middleware.ErrorResponse](t, w)
		assert.Contains(t, resp.Error, "validation failed")
	})
}

func TestAuthHandler_LoginRateLimited(t *testing.T) {
	router, _ := setupRouter(t, stubCatalogs{catalog: testCatalog()}, 2)

	for i := 0; i < 2; i++ {
		w := postLogin(router, dto.LoginRequest{Username: testUser, Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := postLogin(router, dto.LoginRequest{Username: testUser, Password: testPassword})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
