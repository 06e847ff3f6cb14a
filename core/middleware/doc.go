// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RequestID: Tags every incoming request with a unique id, injecting it
//     into the context and response headers for tracing.
//
// These middleware components are designed to be registered globally or per-route group
// in the status server setup.
package middleware
