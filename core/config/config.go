package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"teach-sync/core/database"
	"teach-sync/core/logger"
	"teach-sync/core/reconcile"
	"teach-sync/core/server"
	"teach-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Teach holds configuration for the import run.
	Teach reconcile.Config `mapstructure:"teach"`
}

// URIsFile is the location of the named connection URIs, relative to the config path.
const URIsFile = "config/uris.json"

// ErrNoURI is returned when no database URI can be resolved from any source.
var ErrNoURI = errors.New("no database URI: set --uri, the default entry of config/uris.json, or DATABASE_URI")

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath(path))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATABASE_URI -> database.uri)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadURIs reads the named connection URIs from config/uris.json under path.
// A missing file yields an empty map.
func LoadURIs(path string) (map[string]string, error) {
	file := filepath.Join(path, URIsFile)
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	uris := make(map[string]string)
	for _, key := range v.AllKeys() {
		uris[key] = strings.TrimSpace(v.GetString(key))
	}
	return uris, nil
}

// ResolveURI picks the database URI: the override if given, else the "default" entry of
// config/uris.json, else the configured database.uri (DATABASE_URI).
func ResolveURI(path, override string, cfg *Config) (string, error) {
	if uri := strings.TrimSpace(override); uri != "" {
		return uri, nil
	}

	uris, err := LoadURIs(path)
	if err != nil {
		return "", err
	}
	if uri := uris["default"]; uri != "" {
		return uri, nil
	}

	if uri := strings.TrimSpace(cfg.Database.URI); uri != "" {
		return uri, nil
	}
	return "", ErrNoURI
}

func envPath(path string) string {
	if path == "." {
		return ".env"
	}
	return path + "/.env"
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
