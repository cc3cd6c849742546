// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request IDs, request-scoped logging, New Relic tracing, Prometheus
// metrics, rate limiting, CORS, body limits and panic recovery.
package middleware
