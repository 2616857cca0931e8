// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - Health checks
//   - The home page
//   - Prometheus metrics
//
// Every request passes through the trace and metrics middleware before it
// reaches a handler.
package http
