// Package middleware holds the HTTP middleware chain of the dashboard server:
// request IDs, structured request logging, tracing, rate limiting, timeouts,
// CORS, security headers and query parameter validation.
package middleware
