// Package http provides the HTTP API implementation.
//
// The HTTP server exposes:
//   - A static greeting at /
//   - Liveness (/health) and readiness (/ready) checks
//   - Prometheus metrics at /metrics, when a collector is configured
//
// Every other path, and every non-GET method on the routes above, gets
// gin's default 404 response.
package http
