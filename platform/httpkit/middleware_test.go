package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"promopro_backend/platform/logger"
)

func TestRequestIDInstallsContextValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())

	var got string
	engine.GET("/ping", func(c *gin.Context) {
		got, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-123")
	engine.ServeHTTP(w, req)

	if got != "req-123" {
		t.Fatalf("expected request id on the context, got %q", got)
	}
	if w.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("expected the id echoed on the response, got %q", w.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id on the response")
	}
}
