// Package httpserver wraps net/http with environment-driven timeouts,
// graceful shutdown on context cancellation or SIGINT/SIGTERM, and a
// health-check handler for liveness and readiness probes.
package httpserver
