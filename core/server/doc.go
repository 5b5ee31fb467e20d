// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure for the HTTP import endpoint: listen port, API key and the
// maximum accepted snapshot size.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
