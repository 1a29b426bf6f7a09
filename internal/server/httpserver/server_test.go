// Package httpserver provides the HTTP server for authgate.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/authgate-io/authgate/internal/core/domain"
	"github.com/authgate-io/authgate/internal/core/service"
	"github.com/authgate-io/authgate/internal/storage/memory"
	"github.com/authgate-io/authgate/internal/telemetry/metric"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	hash, err := domain.HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	creds := domain.NewCredentialStore([]*domain.Credential{
		{Username: "alice", PasswordHash: hash, Roles: []string{"admin"}},
	})

	store := memory.New()
	metrics := metric.New(metric.Options{
		ActiveTokens: func() float64 { return float64(store.Count()) },
	})

	svc, err := service.NewAuthService(creds, store, service.Config{
		LoginRate:  rate.Inf,
		LoginBurst: 100,
	}, metrics, nil)
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}

	return NewRouter(&RouterConfig{
		AuthService:  svc,
		Metrics:      metrics,
		MaxBodyBytes: 1 << 20,
	})
}

func TestRouter_LoginAndProtectedFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/?endpoint=login",
		strings.NewReader(`{"username":"alice","password":"password1"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("X-Request-ID"), "req-") {
		t.Error("login reply missing request ID")
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?endpoint=example", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("example status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Probes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate one observation first.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/?endpoint=login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authgate_logins_total") {
		t.Error("metrics output missing login counter")
	}
	if !strings.Contains(rec.Body.String(), "authgate_http_request_duration_seconds") {
		t.Error("metrics output missing request histogram")
	}
}

func TestServer_Shutdown(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler(), Options{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown of idle server failed: %v", err)
	}
}
