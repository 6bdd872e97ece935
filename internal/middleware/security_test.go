package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/tenantadmin/internal/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeaders())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(middleware.BodyLimit(8, map[string]int64{"/big": 64}))

	echo := func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	}
	r.POST("/small", echo)
	r.POST("/big", echo)

	tests := []struct {
		path string
		body string
		want int
	}{
		{"/small", "tiny", http.StatusOK},
		{"/small", strings.Repeat("x", 20), http.StatusRequestEntityTooLarge},
		{"/big", strings.Repeat("x", 20), http.StatusOK},
		{"/big", strings.Repeat("x", 100), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

		if w.Code != tt.want {
			t.Errorf("POST %s with %d bytes: status %d, want %d", tt.path, len(tt.body), w.Code, tt.want)
		}
	}
}
