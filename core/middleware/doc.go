// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: Checks the X-API-Key header against the configured key.
//   - RayID: Tags every request with an X-Ray-ID (kept from the client or a new UUID),
//     stored in locals for logger.WithRayID and echoed in the response.
//
// These middleware components are designed to be registered globally or per-route group
// in the main application setup.
package middleware
