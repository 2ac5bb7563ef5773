package middleware

import (
	"net/http"
	"testing"

	"staff-backoffice-backend/internal/config"
	"staff-backoffice-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ts := testutils.SetupHTTPTest()
	ts.Router.Use(RequestID())
	ts.Router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})

	t.Run("assigned when missing", func(t *testing.T) {
		w := ts.MakeRequest(http.MethodGet, "/ping", nil)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("propagated when present", func(t *testing.T) {
		w := ts.MakeRequestWithHeaders(http.MethodGet, "/ping", nil, map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Contains(t, w.Body.String(), "abc-123")
	})
}

func TestRecovery(t *testing.T) {
	ts := testutils.SetupHTTPTest()
	ts.Router.Use(Recovery())
	ts.Router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := ts.MakeRequest(http.MethodGet, "/boom", nil)

	testutils.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
}

func TestCORS(t *testing.T) {
	ts := testutils.SetupHTTPTest()
	ts.Router.Use(CORS(&config.Config{AllowedOrigins: []string{"http://localhost:5173"}}))
	ts.Router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		w := ts.MakeRequestWithHeaders(http.MethodGet, "/ping", nil, map[string]string{"Origin": "http://localhost:5173"})
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		w := ts.MakeRequestWithHeaders(http.MethodGet, "/ping", nil, map[string]string{"Origin": "http://evil.example"})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := ts.MakeRequestWithHeaders(http.MethodOptions, "/ping", nil, map[string]string{"Origin": "http://localhost:5173"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLoggerPassesThrough(t *testing.T) {
	ts := testutils.SetupHTTPTest()
	ts.Router.Use(RequestID(), Logger())
	ts.Router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := ts.MakeRequest(http.MethodGet, "/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
