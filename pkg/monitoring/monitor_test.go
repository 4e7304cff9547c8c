package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAttemptCompleted(t *testing.T) {
	passed := testutil.ToFloat64(AttemptsCompleted.WithLabelValues("passed"))
	failed := testutil.ToFloat64(AttemptsCompleted.WithLabelValues("failed"))

	ObserveAttemptCompleted(75, true)
	ObserveAttemptCompleted(40, false)
	ObserveAttemptCompleted(90, true)

	assert.Equal(t, passed+2, testutil.ToFloat64(AttemptsCompleted.WithLabelValues("passed")))
	assert.Equal(t, failed+1, testutil.ToFloat64(AttemptsCompleted.WithLabelValues("failed")))
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/exams/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", PrometheusHandler())

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/exams/:id", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/exams/abc", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/exams/:id", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
