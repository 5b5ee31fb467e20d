package teach

import (
	"errors"
	"fmt"
	"strings"

	"teach-sync/core/logger"
	"teach-sync/core/reconcile"
	"teach-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for teach imports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the teach routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/teach")
	group.Post("/import", h.HandleImport)
	group.Get("/schema", h.HandleGetSchema)
}

// HandleImport reconciles a snapshot into the store.
// @Summary Import Q&A records
// @Description Normalize a JSON array of question/answer records and upsert it. With an empty body the object named by the source query parameter (or the configured source) is imported.
// @Tags teach
// @Accept json
// @Produce json
// @Param source query string false "Snapshot object, s3://bucket/key or s3:///key"
// @Param records body []map[string]interface{} false "Raw records"
// @Success 200 {object} ImportResponse "Import result"
// @Failure 400 {object} ErrorResponse "Empty or invalid input"
// @Failure 409 {object} ErrorResponse "Schema conflict"
// @Failure 502 {object} ErrorResponse "Batch submission failed"
// @Failure 503 {object} ErrorResponse "Store unreachable"
// @Router /teach/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var (
		report *Report
		err    error
	)
	if body := c.Body(); len(body) > 0 {
		var raw []reconcile.RawRecord
		raw, err = reconcile.DecodeRawRecords(body)
		if err == nil {
			report, err = h.service.Import(c.UserContext(), raw)
		}
	} else if ref := c.Query("source"); ref != "" && !strings.HasPrefix(ref, storage.ObjectURLScheme) {
		// Local paths are read only from the configured source or the CLI.
		err = fmt.Errorf("%w: source must be an %s reference", reconcile.ErrEmptyOrInvalidInput, storage.ObjectURLScheme)
	} else {
		report, err = h.service.ImportSource(c.UserContext(), ref)
	}
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		status, kind := classifyFatal(err)
		return c.Status(status).JSON(ErrorResponse{Error: err.Error(), Kind: kind})
	}

	return c.JSON(ImportResponse{
		Upserted: report.Created,
		Modified: report.Updated,
		Matched:  report.Matched,
		Dropped:  report.Stats.Dropped,
		Failures: report.Failures,
	})
}

// HandleGetSchema returns the declared schema.
// @Summary Get schema declaration
// @Description Returns the collection and index declaration the import establishes.
// @Tags teach
// @Produce json
// @Success 200 {object} reconcile.SchemaDecl "Schema declaration"
// @Router /teach/schema [get]
func (h *Handler) HandleGetSchema(c *fiber.Ctx) error {
	return c.JSON(h.service.Schema())
}

// classifyFatal maps a fatal import error to an HTTP status and kind label.
// Connection is checked first: a submission failure caused by a lost connection is a 503.
func classifyFatal(err error) (int, string) {
	switch {
	case errors.Is(err, reconcile.ErrEmptyOrInvalidInput):
		return fiber.StatusBadRequest, "empty_or_invalid_input"
	case errors.Is(err, reconcile.ErrConnection):
		return fiber.StatusServiceUnavailable, "connection"
	case errors.Is(err, reconcile.ErrSchemaConflict):
		return fiber.StatusConflict, "schema_conflict"
	case errors.Is(err, reconcile.ErrSubmission):
		return fiber.StatusBadGateway, "submission"
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}
