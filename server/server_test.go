package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orders-api/config"
	"orders-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		Port:               "0",
		StoreDriver:        "memory",
		StoreTimeout:       time.Second,
		JWTSecret:          "0123456789abcdef0123456789abcdef",
		JWTExpiry:          30 * time.Minute,
		JWTIssuer:          "orders-api",
		LoginRatePerMinute: 1,
		LoginRateBurst:     2,
	}
}

func TestBuildWithMemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := Build(memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "req-42", resp.Header().Get(middleware.RequestIDHeader))
}

func TestLoginIsRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := Build(memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, http.StatusUnauthorized, login(app, ""))
	assert.Equal(t, http.StatusUnauthorized, login(app, ""))
	assert.Equal(t, http.StatusTooManyRequests, login(app, ""))
}

func TestLoginLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := Build(memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	var codes []int
	for i := 0; i < 5; i++ {
		codes = append(codes, login(app, fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestLoginLimitHonoursTrustedProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := memoryConfig()
	// httptest requests come from 192.0.2.1.
	cfg.TrustedProxies = []string{"192.0.2.1"}
	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, login(app, fmt.Sprintf("10.0.0.%d", i)))
	}
}

func login(app *App, forwardedFor string) int {
	body := strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/user/login", body)
	req.Header.Set("Content-Type", "application/json")
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp.Code
}

func TestBuildRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreDriver = "couchdb"

	_, err := Build(cfg)
	assert.ErrorContains(t, err, "couchdb")
}
