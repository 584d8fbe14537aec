package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	v1 "github.com/dmehra2102/prod-golang-projects/medschedule/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type rejectAll struct{}

func (rejectAll) ValidateAccessToken(string) (*domain.Claims, error) {
	return nil, errors.New("invalid")
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "medschedule-test", Environment: "test", Version: "1.2.3"},
		Tracing: config.TracingConfig{ServiceName: "medschedule-test"},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{"GET", "POST", "PUT"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         time.Hour,
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100, BookingRequestsPerMinute: 10},
	}
}

func newTestRouter(ping func() error) *gin.Engine {
	reg := prometheus.NewRegistry()
	return NewRouter(RouterDeps{
		Config:   testConfig(),
		Services: v1.Services{},
		Tokens:   rejectAll{},
		Metrics:  metrics.NewCollector("medschedule-test", reg),
		Gatherer: reg,
		Logger:   zap.NewNop(),
		Ping:     ping,
	})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	if w := get(newTestRouter(nil), "/healthz"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version":"1.2.3"`) {
		t.Errorf("healthy: status = %d, body = %s", w.Code, w.Body.String())
	}

	down := newTestRouter(func() error { return errors.New("connection refused") })
	if w := get(down, "/healthz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("db down: status = %d, want 503", w.Code)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	r := newTestRouter(nil)

	w := get(r, "/api/v1/patient/hospitals")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID on response")
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	r := newTestRouter(nil)
	get(r, "/healthz")

	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := `medschedule_test_http_requests_total{method="GET",path="/healthz",status="200"} 1`
	if !strings.Contains(w.Body.String(), want) {
		t.Errorf("metrics output missing %q", want)
	}
}

func TestUnknownRoute(t *testing.T) {
	if w := get(newTestRouter(nil), "/api/v2/anything"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patient/appointment/book", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
