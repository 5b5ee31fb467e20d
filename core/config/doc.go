// Package config provides configuration management for teach-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, with defaults declared on the struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL/SQLite connection details or a connection URI
//   - Storage: S3/MinIO credentials for snapshots kept in a bucket
//   - Log: Logging level and format
//   - Teach: input source, worker count, timeout and dedupe for import runs
//
// # Database URI Resolution
//
// ResolveURI applies the lookup order of the import tool: the --uri flag, then the
// "default" entry of config/uris.json, then DATABASE_URI.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	uri, err := config.ResolveURI(".", flagURI, cfg)
package config
