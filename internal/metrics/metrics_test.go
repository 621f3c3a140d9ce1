package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ecoscore/backend/internal/domain"
)

func TestObserveScore(t *testing.T) {
	m := New()

	m.ObserveScore("browser_text", &domain.EcoResult{Score: 90, Grade: domain.GradeA})
	m.ObserveScore("browser_text", &domain.EcoResult{Score: 30, Grade: domain.GradeF, GreenwashingDetected: true})
	m.ObserveScore("fetcher", &domain.EcoResult{Score: 55, Grade: domain.GradeD})
	m.ObserveScore("fetcher", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoresTotal.WithLabelValues("A", "browser_text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoresTotal.WithLabelValues("F", "browser_text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoresTotal.WithLabelValues("D", "fetcher")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GreenwashingTotal))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/health", "/api/health", "/missing"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "ecoscore_http_requests_total"))
}
