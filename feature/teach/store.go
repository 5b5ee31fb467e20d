package teach

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"teach-sync/core/reconcile"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAttempts bounds how often one upsert is retried after losing a race on the
// question key or hitting a deadlock.
const maxAttempts = 3

// MySQL server error numbers the store classifies.
const (
	mysqlDuplicateKeyName = 1061
	mysqlLockWaitTimeout  = 1205
	mysqlDeadlock         = 1213
	mysqlDataTooLong      = 1406
)

// Store is the SQL implementation of reconcile.Gateway.
type Store struct {
	db     *gorm.DB
	table  string
	logger *zap.Logger
}

// NewStore returns a store over table. An empty table selects reconcile.DefaultCollection.
func NewStore(db *gorm.DB, table string, logger *zap.Logger) *Store {
	if table == "" {
		table = reconcile.DefaultCollection
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, table: table, logger: logger}
}

// Table returns the table the store writes to.
func (s *Store) Table() string {
	return s.table
}

// BulkUpsert applies ops, each in its own transaction.
//
// The store is pinged first; if that fails nothing is submitted and the error is
// reconcile.ErrConnection. After that every failure is reported per operation.
func (s *Store) BulkUpsert(ctx context.Context, ops []reconcile.UpsertOp, opts reconcile.BulkOptions) (*reconcile.BulkResult, error) {
	if err := s.ping(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := reconcile.RunBatch(ctx, ops, opts, s.upsertOne, classify)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Bulk upsert finished",
		zap.String("table", s.table),
		zap.Int("ops", len(ops)),
		zap.Int("inserted", result.InsertedCount),
		zap.Int("modified", result.ModifiedCount),
		zap.Int("matched", result.MatchedCount),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *Store) ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", reconcile.ErrConnection, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: ping: %w", reconcile.ErrConnection, err)
	}
	return nil
}

// upsertOne retries tryUpsert while the failure is a lost race or a deadlock.
// A lost insert race turns into an update of the winner's row on the next attempt.
func (s *Store) upsertOne(ctx context.Context, op reconcile.UpsertOp) (reconcile.Outcome, error) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var outcome reconcile.Outcome
		outcome, err = s.tryUpsert(ctx, op)
		if err == nil {
			return outcome, nil
		}
		if !retryable(err) || ctx.Err() != nil {
			return 0, err
		}
		s.logger.Debug("Retrying upsert",
			zap.String("question", op.Question),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return 0, err
}

func (s *Store) tryUpsert(ctx context.Context, op reconcile.UpsertOp) (reconcile.Outcome, error) {
	var outcome reconcile.Outcome

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Record
		err := tx.Table(s.table).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("question = ?", op.Question).
			Take(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec := Record{
				ID:       uuid.NewString(),
				Question: op.Set.Question,
				Answer:   op.Set.Answer,
				Tags:     tagsOrEmpty(op.Set.Tags),
			}
			if err := tx.Table(s.table).Create(&rec).Error; err != nil {
				return err
			}
			outcome = reconcile.OutcomeInserted
			return nil
		case err != nil:
			return err
		}

		if sameContent(existing, op.Set) {
			outcome = reconcile.OutcomeUnchanged
			return nil
		}

		err = tx.Table(s.table).
			Model(&existing).
			Select("question", "answer", "tags", "updated_at").
			Updates(Record{
				Question:  op.Set.Question,
				Answer:    op.Set.Answer,
				Tags:      tagsOrEmpty(op.Set.Tags),
				UpdatedAt: time.Now(),
			}).Error
		if err != nil {
			return err
		}
		outcome = reconcile.OutcomeModified
		return nil
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

func sameContent(rec Record, set reconcile.CanonicalRecord) bool {
	return rec.Question == set.Question &&
		rec.Answer == set.Answer &&
		slices.Equal(tagsOrEmpty(rec.Tags), tagsOrEmpty(set.Tags))
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func retryable(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return classify(err) == reconcile.KindConflict
}

// classify maps a per-operation store error to its kind.
func classify(err error) reconcile.ErrorKind {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return reconcile.KindDuplicateKey
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDeadlock, mysqlLockWaitTimeout:
			return reconcile.KindConflict
		case mysqlDataTooLong:
			return reconcile.KindInvalid
		}
	}

	if errors.Is(err, gorm.ErrInvalidData) || errors.Is(err, gorm.ErrInvalidValue) {
		return reconcile.KindInvalid
	}

	// The sqlite driver reports lock contention only through its message.
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked") {
		return reconcile.KindConflict
	}

	return reconcile.DefaultClassify(err)
}

// storeError marks connectivity failures as reconcile.ErrConnection and returns other
// errors unchanged.
func storeError(err error) error {
	if err == nil || errors.Is(err, reconcile.ErrConnection) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", reconcile.ErrConnection, err)
	}
	return err
}
