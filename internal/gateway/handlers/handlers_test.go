package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warehouse-system/internal/gateway/middleware"
	"warehouse-system/internal/services/inventory"
	"warehouse-system/internal/services/user"
	"warehouse-system/internal/utils"
)

type testEnv struct {
	router *gin.Engine
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := inventory.NewCatalog()
	require.NoError(t, inventory.Seed(catalog, inventory.DemoProducts()))
	ledger := inventory.NewLedger()
	queries := inventory.NewQueryService(catalog, ledger)
	adjustments := inventory.NewAdjustmentService(catalog, ledger)

	dir := user.NewDirectory(bcrypt.MinCost)
	require.NoError(t, user.SeedDemoUsers(dir))
	auth := user.NewAuthService(dir, utils.NewTokenIssuer("handler-secret", time.Hour), 100, nil)

	inv := NewInventoryHTTPHandler(queries, adjustments, nil)
	authHandler := NewAuthHTTPHandler(auth, nil)

	r := gin.New()
	r.POST("/api/v1/auth/login", authHandler.Login)
	protected := r.Group("/api/v1", middleware.JWTAuth(auth))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/auth/refresh", authHandler.Refresh)
	protected.POST("/auth/logout", authHandler.Logout)
	inv.Register(protected.Group("/products"))

	env := &testEnv{router: r}
	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"operator@warehouse.com","password":"operator123"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Data user.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	env.token = login.Data.Token
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (bool, T) {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Success, resp.Data
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"operator@warehouse.com","password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeRefreshLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	ok, me := decode[user.SafeUser](t, rec)
	assert.True(t, ok)
	assert.Equal(t, "operator@warehouse.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, tok := decode[user.TokenResult](t, rec)
	assert.NotEmpty(t, tok.Token)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out successfully")

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, all := decode[[]inventory.Product](t, rec)
	assert.Len(t, all, 6)

	rec = env.do(t, http.MethodGet, "/api/v1/products?category=electronics&maxStock=100", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, filtered := decode[[]inventory.Product](t, rec)
	require.Len(t, filtered, 2)
	assert.Equal(t, "ELEC-002", filtered[0].SKU)
	assert.Equal(t, "ELEC-003", filtered[1].SKU)

	rec = env.do(t, http.MethodGet, "/api/v1/products?query=forklift", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/products?minStock=lots", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/products", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/3", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, p := decode[inventory.Product](t, rec)
	assert.Equal(t, "FURN-001", p.SKU)
	assert.Equal(t, inventory.StatusOutOfStock, p.Status)

	rec = env.do(t, http.MethodGet, "/api/v1/products/sku/tool-001", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, p = decode[inventory.Product](t, rec)
	assert.Equal(t, "5", p.ID)

	rec = env.do(t, http.MethodGet, "/api/v1/products/999", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")

	rec = env.do(t, http.MethodGet, "/api/v1/products/sku/NOPE-1", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdjustStockAndHistory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPatch, "/api/v1/products/2/stock", `{"newStock":0,"adjustmentType":"decrease","reason":"sold","notes":"counter sale"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, adj := decode[inventory.Adjustment](t, rec)
	assert.Equal(t, 8, adj.PreviousStock)
	assert.Equal(t, 0, adj.NewStock)
	assert.Equal(t, "operator@warehouse.com", adj.AdjustedBy)
	assert.Equal(t, "ELEC-002", adj.ProductSKU)

	rec = env.do(t, http.MethodGet, "/api/v1/products/2", "", true)
	_, p := decode[inventory.Product](t, rec)
	assert.Equal(t, inventory.StatusOutOfStock, p.Status)

	rec = env.do(t, http.MethodGet, "/api/v1/products/2/adjustments", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	_, history := decode[[]inventory.Adjustment](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, adj.ID, history[0].ID)

	rec = env.do(t, http.MethodGet, "/api/v1/products/5/adjustments", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/products/999/adjustments", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdjustStockValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"negative stock", "/api/v1/products/1/stock", `{"newStock":-1,"adjustmentType":"decrease","reason":"lost"}`, http.StatusBadRequest},
		{"missing stock", "/api/v1/products/1/stock", `{"adjustmentType":"decrease","reason":"lost"}`, http.StatusBadRequest},
		{"unknown type", "/api/v1/products/1/stock", `{"newStock":3,"adjustmentType":"shrink","reason":"lost"}`, http.StatusBadRequest},
		{"unknown reason", "/api/v1/products/1/stock", `{"newStock":3,"adjustmentType":"decrease","reason":"stolen"}`, http.StatusBadRequest},
		{"malformed", "/api/v1/products/1/stock", `{"newStock":`, http.StatusBadRequest},
		{"unknown product", "/api/v1/products/nonexistent-id/stock", `{"newStock":10,"adjustmentType":"increase","reason":"other"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPatch, tt.path, tt.body, true)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}

	rec := env.do(t, http.MethodGet, "/api/v1/products/1/adjustments", "", true)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}
