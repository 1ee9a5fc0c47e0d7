package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/config"
	"roombook/infras/jwt"
	"roombook/infras/otel/mocks"
	"roombook/permissions"
	transport "roombook/transport/http"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"
)

func testServer(corsEnabled bool) *transport.HTTP {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = corsEnabled
	cfg.App.CORS.AllowedOrigins = []string{"https://app.example.com"}
	cfg.App.CORS.AllowedMethods = []string{"GET", "POST"}
	cfg.App.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	cfg.App.CORS.AllowCredentials = true

	appMiddleware := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)
	authRole := middleware.NewAuthRoleMiddleware(jwt.New(cfg), mocks.NewOtel(), permissions.Get(), cfg)

	return transport.New(cfg, router.New(router.DomainHandlers{}), appMiddleware, authRole)
}

func preflight(server *transport.HTTP) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/v1/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func TestHTTP_CORS(t *testing.T) {
	t.Run("preflight reflects the configured origin", func(t *testing.T) {
		recorder := preflight(testServer(true))

		assert.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disabled CORS sets no headers", func(t *testing.T) {
		recorder := preflight(testServer(false))

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}
