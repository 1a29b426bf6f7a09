// Package httpserver provides the HTTP server for authgate.
package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/authgate-io/authgate/internal/telemetry/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), mw("first"), mw("second"), mw("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if strings.Join(order, ",") != "first,second,third" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	RequestID()(inner).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	id := rec.Header().Get("X-Request-ID")
	if !strings.HasPrefix(id, "req-") {
		t.Errorf("X-Request-ID = %q, want req- prefix", id)
	}
	if seen != id {
		t.Errorf("context request ID %q != header %q", seen, id)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-client-chosen")

	rec := httptest.NewRecorder()
	RequestID()(okHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-client-chosen" {
		t.Errorf("X-Request-ID = %q, want client value", got)
	}
}

func TestRecover_PanicBecomes500(t *testing.T) {
	log, _ := logger.New(logger.Config{Level: "error", Output: &strings.Builder{}})
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recover(log)(panicking).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, want Internal server error", body["error"])
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value leaked to client")
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	h := RateLimit(rate.Limit(0.001), 2)(okHandler())

	request := func(ip string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := request("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
	if code := request("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("throttled status = %d, want 429", code)
	}

	// Another IP keeps its own bucket.
	if code := request("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "192.0.2.1:5000", nil, "192.0.2.1"},
		{"x-real-ip", "192.0.2.1:5000", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded single", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "198.51.100.9"}, "198.51.100.9"},
		{"forwarded chain", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.1"}, "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
