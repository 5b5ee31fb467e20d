package teach

import (
	"context"
	"time"

	"teach-sync/core/reconcile"
	"teach-sync/core/storage"

	"go.uber.org/zap"
)

// Service runs imports against one store.
type Service struct {
	gateway reconcile.Gateway
	client  storage.Client
	bucket  string
	schema  reconcile.SchemaDecl
	opts    reconcile.Options
	source  string
	logger  *zap.Logger
}

// NewService creates a teach service. client may be nil when no snapshot is read from
// object storage; bucket resolves s3:///key references.
func NewService(gateway reconcile.Gateway, client storage.Client, bucket string, cfg reconcile.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway: gateway,
		client:  client,
		bucket:  bucket,
		schema:  reconcile.DefaultSchema(),
		opts:    cfg.Options(),
		source:  cfg.Source,
		logger:  logger,
	}
}

// Report is the outcome of one import.
type Report struct {
	reconcile.Result
	Stats    reconcile.NormalizeStats
	Duration time.Duration
}

// Schema returns the declaration the service establishes before writing.
func (s *Service) Schema() reconcile.SchemaDecl {
	return s.schema
}

// Import normalizes raw, establishes the schema and reconciles the records.
// Returned errors are fatal; per-record failures are in the report.
func (s *Service) Import(ctx context.Context, raw []reconcile.RawRecord) (*Report, error) {
	start := time.Now()

	records, stats, err := reconcile.NormalizeWithStats(raw)
	if err != nil {
		return nil, err
	}
	if stats.Dropped > 0 {
		s.logger.Warn("Dropped records without question or answer",
			zap.Int("dropped", stats.Dropped),
			zap.Int("input", stats.Input),
		)
	}

	if err := reconcile.EnsureSchema(ctx, s.gateway, s.schema); err != nil {
		return nil, err
	}

	result, err := reconcile.Reconcile(ctx, s.gateway, records, s.opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Result: *result, Stats: stats, Duration: time.Since(start)}
	s.logger.Info("Import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("matched", result.Matched),
		zap.Int("failed", len(result.Failures)),
		zap.Duration("duration", report.Duration),
	)
	for _, f := range result.Failures {
		s.logger.Warn("Record failed",
			zap.String("question", f.Question),
			zap.String("kind", string(f.Kind)),
			zap.String("error", f.Message),
		)
	}
	return report, nil
}

// ImportSource loads the snapshot at ref and imports it. An empty ref uses the
// configured source.
func (s *Service) ImportSource(ctx context.Context, ref string) (*Report, error) {
	if ref == "" {
		ref = s.source
	}
	raw, err := LoadRecords(ctx, s.client, s.bucket, ref)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Loaded snapshot", zap.String("source", ref), zap.Int("records", len(raw)))
	return s.Import(ctx, raw)
}

// EnsureSchema establishes the schema without writing records.
func (s *Service) EnsureSchema(ctx context.Context) error {
	return reconcile.EnsureSchema(ctx, s.gateway, s.schema)
}
