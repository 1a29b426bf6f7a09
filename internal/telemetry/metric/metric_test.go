// Package metric provides Prometheus metrics for authgate.
package metric

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegistry_Observations(t *testing.T) {
	r := New(Options{ActiveTokens: func() float64 { return 3 }})

	r.ObserveLogin(true)
	r.ObserveLogin(false)
	r.ObserveValidation(ResultValid)
	r.ObserveValidation(ResultRenewed)
	r.ObserveRequest("example", "GET", 200, 5*time.Millisecond)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	want := map[string]bool{
		"authgate_logins_total":                  false,
		"authgate_token_validations_total":       false,
		"authgate_token_renewals_total":          false,
		"authgate_http_request_duration_seconds": false,
		"authgate_tokens_active":                 false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric family %s not registered", name)
		}
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := New(Options{})
	r.ObserveLogin(true)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authgate_logins_total") {
		t.Error("metrics output missing login counter")
	}
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry

	// Must not panic.
	r.ObserveLogin(true)
	r.ObserveValidation(ResultExpired)
	r.ObserveRequest("example", "POST", 400, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil registry handler status = %d, want 404", rec.Code)
	}
}
