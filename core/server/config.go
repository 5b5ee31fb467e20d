package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of an uploaded snapshot.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
}

// Validate checks the server configuration before startup.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is empty")
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("server body limit must be positive, got %d", c.BodyLimitMB)
	}
	return nil
}

// BodyLimit returns the body limit in bytes.
func (c Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
