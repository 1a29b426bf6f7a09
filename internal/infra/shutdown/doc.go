// Package shutdown provides graceful shutdown for authgate.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//
// Usage:
//
//	h := shutdown.NewHandler(15 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.Wait() // blocks until a signal arrives
package shutdown
