package cmd

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"teach-sync/core/database"
	"teach-sync/core/middleware/auth"
	"teach-sync/core/middleware/rayid"
	"teach-sync/core/reconcile"
	"teach-sync/core/server"
	"teach-sync/feature/teach"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, withStore bool) *fiber.App {
	t.Helper()
	var svc *teach.Service
	if withStore {
		db, err := database.Connect(database.Config{
			Driver: database.DriverSQLite,
			Name:   filepath.Join(t.TempDir(), "teach.db"),
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		svc = teach.NewService(teach.NewStore(db, "", nil), nil, "", reconcile.Config{Workers: 2}, nil)
	}

	app, err := newServer(server.Config{Port: "0", ApiKey: "secret", BodyLimitMB: 1}, svc, zap.NewNop())
	require.NoError(t, err)
	return app
}

func TestServer_ImportRequiresAPIKey(t *testing.T) {
	app := newTestServer(t, true)
	body := `[{"q": "What is 2+2?", "a": "4"}]`

	req := httptest.NewRequest("POST", "/teach/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(rayid.HeaderName))

	req = httptest.NewRequest("POST", "/teach/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderName, "secret")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServer_WithoutStoreDisablesTeach(t *testing.T) {
	app := newTestServer(t, false)

	req := httptest.NewRequest("GET", "/teach/schema", nil)
	req.Header.Set(auth.HeaderName, "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
