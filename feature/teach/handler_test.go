package teach_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teach-sync/core/reconcile"
	"teach-sync/feature/teach"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, svc *teach.Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	teach.NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app
}

func postImport(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/teach/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandleImport(t *testing.T) {
	app := newApp(t, newService(t, newDB(t), zap.NewNop()))

	status, body := postImport(t, app, snapshot)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var got teach.ImportResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 2, got.Upserted)
	assert.Equal(t, 0, got.Modified)
	assert.Equal(t, 2, got.Matched)
	assert.Empty(t, got.Failures)

	status, body = postImport(t, app, snapshot)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 0, got.Upserted)
	assert.Equal(t, 2, got.Matched)
}

func TestHandleImport_InvalidInput(t *testing.T) {
	app := newApp(t, newService(t, newDB(t), zap.NewNop()))

	for _, body := range []string{`[]`, `{"q": "x"}`, `not json`} {
		status, data := postImport(t, app, body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)

		var got teach.ErrorResponse
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "empty_or_invalid_input", got.Kind)
	}
}

func TestHandleImport_RejectsLocalSource(t *testing.T) {
	db := newDB(t)
	app := newApp(t, newService(t, db, zap.NewNop()))

	local := filepath.Join(t.TempDir(), "elsewhere.json")
	require.NoError(t, os.WriteFile(local, []byte(snapshot), 0o600))

	for _, ref := range []string{local, "/etc/passwd", "data/teach.json"} {
		req := httptest.NewRequest("POST", "/teach/import?source="+url.QueryEscape(ref), nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, ref)

		var got teach.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "empty_or_invalid_input", got.Kind)
		assert.NotContains(t, got.Error, "invalid character")
	}

	assert.False(t, db.Migrator().HasTable(&teach.Record{}))
}

func TestHandleImport_SchemaConflict(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.AutoMigrate(&teach.Record{}))
	require.NoError(t, db.Exec(`CREATE INDEX "uq_teach_qa_question" ON "teach_qa" ("answer")`).Error)
	app := newApp(t, newService(t, db, zap.NewNop()))

	status, _ := postImport(t, app, snapshot)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestHandleImport_StoreUnreachable(t *testing.T) {
	db := newDB(t)
	svc := newService(t, db, zap.NewNop())
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, _ := postImport(t, newApp(t, svc), snapshot)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHandleGetSchema(t *testing.T) {
	app := newApp(t, newService(t, newDB(t), zap.NewNop()))

	resp, err := app.Test(httptest.NewRequest("GET", "/teach/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got reconcile.SchemaDecl
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, reconcile.DefaultSchema(), got)
}

func TestLoader(t *testing.T) {
	feature := teach.NewFeature(newService(t, newDB(t), zap.NewNop()), zap.NewNop())
	assert.Equal(t, "teach", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	assert.False(t, teach.NewFeature(nil, zap.NewNop()).IsEnabled())
}
