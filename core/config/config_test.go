package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 16, cfg.Server.BodyLimitMB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "data/teach.json", cfg.Teach.Source)
	assert.Equal(t, 16, cfg.Teach.Workers)
	assert.False(t, cfg.Teach.Dedupe)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URI", "sqlite://teach.db")
	t.Setenv("TEACH_WORKERS", "4")
	t.Setenv("TEACH_DEDUPE", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite://teach.db", cfg.Database.URI)
	assert.Equal(t, 4, cfg.Teach.Workers)
	assert.True(t, cfg.Teach.Dedupe)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "TEACH_TIMEOUT_SECONDS=9\n")
	t.Cleanup(func() { os.Unsetenv("TEACH_TIMEOUT_SECONDS") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Teach.TimeoutSeconds)
}

func TestLoadURIs(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		uris, err := LoadURIs(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, uris)
	})

	t.Run("named uris", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, URIsFile), `{"default": " mysql://root@localhost/teach ", "staging": "sqlite://staging.db"}`)

		uris, err := LoadURIs(dir)
		require.NoError(t, err)
		assert.Equal(t, "mysql://root@localhost/teach", uris["default"])
		assert.Equal(t, "sqlite://staging.db", uris["staging"])
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, URIsFile), `{"default": `)

		_, err := LoadURIs(dir)
		assert.Error(t, err)
	})
}

func TestResolveURI(t *testing.T) {
	withFile := t.TempDir()
	writeFile(t, filepath.Join(withFile, URIsFile), `{"default": "sqlite://from-file.db"}`)
	withoutFile := t.TempDir()

	cfg := &Config{}
	cfg.Database.URI = "sqlite://from-env.db"

	tests := []struct {
		name     string
		path     string
		override string
		cfg      *Config
		want     string
		wantErr  error
	}{
		{name: "flag wins", path: withFile, override: "sqlite://flag.db", cfg: cfg, want: "sqlite://flag.db"},
		{name: "file before env", path: withFile, cfg: cfg, want: "sqlite://from-file.db"},
		{name: "env fallback", path: withoutFile, cfg: cfg, want: "sqlite://from-env.db"},
		{name: "nothing", path: withoutFile, cfg: &Config{}, wantErr: ErrNoURI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURI(tt.path, tt.override, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
