// Package metric provides Prometheus metrics for authgate.
//
// It exposes login outcomes, token validation results, renewal and
// expiry counts, the live token gauge, and HTTP request latencies in
// Prometheus format on the /metrics endpoint.
package metric
