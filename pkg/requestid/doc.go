// Package requestid propagates a per-request correlation ID through HTTP
// middleware, context, and structured logs.
package requestid
