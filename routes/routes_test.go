package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fusiongear-backend/billing"
	"fusiongear-backend/controllers"
	"fusiongear-backend/document"
	"fusiongear-backend/printing"
	"fusiongear-backend/receipt"
	"fusiongear-backend/store"
	"fusiongear-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := utils.NewTokenIssuer("routes-secret", 1)
	require.NoError(t, err)

	h := &controllers.Handler{
		Store:      store.NewMemoryStore(),
		Calculator: billing.NewCalculator(billing.DefaultPrices),
		Receipts:   receipt.NewRenderer(receipt.DefaultShop),
		Documents:  document.NewRenderer(receipt.DefaultShop, document.Options{}),
		Printer:    printing.NewSpoolOpener(""),
		Tokens:     tokens,
		Shop:       receipt.DefaultShop,
		Logger:     zap.NewNop(),
	}
	return SetupRouter(h, []string{"http://localhost:3000"}, zap.NewNop()), tokens
}

func TestAPIRequiresToken(t *testing.T) {
	r, tokens := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/invoices", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.GenerateToken("8d6f7c1e-1c7b-4c55-9a59-3f1f0d8f2b11", "admin")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	req = httptest.NewRequest(http.MethodPost, "/api/billing/calculate", strings.NewReader(`{"serviceType":{"engineRepair":true},"gstEnabled":true}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1416`)
}

func TestCORS(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/invoices", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/invoices", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
