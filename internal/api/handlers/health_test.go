package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"staff-backoffice-backend/internal/api/handlers"
	"staff-backoffice-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

func newHealthRouter(p handlers.Pinger) *testutils.HTTPTestSuite {
	h := handlers.NewHealthHandler(p, "test")
	ts := testutils.SetupHTTPTest()
	ts.Router.GET("/health", h.Health)
	ts.Router.GET("/health/ready", h.Ready)
	ts.Router.GET("/health/live", h.Live)
	return ts
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ts := newHealthRouter(stubPinger{})

		var response handlers.HealthResponse
		testutils.AssertJSONResponse(t, ts.MakeRequest(http.MethodGet, "/health", nil), http.StatusOK, &response)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "healthy", response.Services["database"])

		assert.Equal(t, http.StatusOK, ts.MakeRequest(http.MethodGet, "/health/ready", nil).Code)
	})

	t.Run("database down", func(t *testing.T) {
		ts := newHealthRouter(stubPinger{err: errors.New("dial tcp: connection refused")})

		var response handlers.HealthResponse
		testutils.AssertJSONResponse(t, ts.MakeRequest(http.MethodGet, "/health", nil), http.StatusServiceUnavailable, &response)
		assert.Equal(t, "unhealthy", response.Status)

		assert.Equal(t, http.StatusServiceUnavailable, ts.MakeRequest(http.MethodGet, "/health/ready", nil).Code)
		assert.Equal(t, http.StatusOK, ts.MakeRequest(http.MethodGet, "/health/live", nil).Code)
	})
}
