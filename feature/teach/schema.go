package teach

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"teach-sync/core/database"
	"teach-sync/core/reconcile"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	keyCollation      = "utf8mb4_bin"
	mysqlTableOptions = "DEFAULT CHARSET=utf8mb4 COLLATE=" + keyCollation
)

// indexSpec is a declared index resolved against the store's dialect.
type indexSpec struct {
	name    string
	unique  bool
	kind    string // expected IndexInfo.Type, empty when the dialect does not report one
	columns []string
	ddl     string
}

// EnsureIndexes creates the table and the declared indexes. Indexes that already exist
// with the declared definition are left alone, so repeated calls are no-ops.
//
// An existing index with the declared name but another definition, an existing index over
// the same columns with different uniqueness, or stored rows that violate a declared
// unique index are reported as reconcile.ErrSchemaConflict.
func (s *Store) EnsureIndexes(ctx context.Context, decl reconcile.SchemaDecl) error {
	if decl.Collection != s.table {
		return fmt.Errorf("%w: store serves table %s, not %s", reconcile.ErrSchemaConflict, s.table, decl.Collection)
	}

	specs := make([]indexSpec, 0, len(decl.Indexes))
	for _, idx := range decl.Indexes {
		spec, err := s.resolve(idx)
		if err != nil {
			return fmt.Errorf("%w: %w", reconcile.ErrSchemaConflict, err)
		}
		specs = append(specs, spec)
	}

	if err := s.ping(ctx); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if err := s.migrator(db).AutoMigrate(&Record{}); err != nil {
		return s.schemaError(ctx, fmt.Errorf("migrate table %s: %w", s.table, err))
	}
	if err := s.checkKeyCollation(ctx, db); err != nil {
		return err
	}

	existing, err := database.GetTableIndexes(db, s.table)
	if err != nil {
		return s.schemaError(ctx, err)
	}

	for _, spec := range specs {
		present, err := check(spec, existing)
		if err != nil {
			return fmt.Errorf("%w: %w", reconcile.ErrSchemaConflict, err)
		}
		if present {
			continue
		}

		if err := db.Exec(spec.ddl).Error; err != nil {
			// Another process may have created the same index in the meantime.
			if again, inspectErr := database.GetTableIndexes(db, s.table); inspectErr == nil {
				if ok, checkErr := check(spec, again); checkErr == nil && ok {
					continue
				}
			}
			if spec.unique && errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: stored records violate unique index %s: %w", reconcile.ErrSchemaConflict, spec.name, err)
			}
			return s.schemaError(ctx, fmt.Errorf("create index %s: %w", spec.name, err))
		}
		s.logger.Info("Created index",
			zap.String("table", s.table),
			zap.String("index", spec.name),
			zap.Strings("columns", spec.columns),
		)
	}

	return nil
}

// resolve turns a declaration into the dialect's expected definition and DDL.
func (s *Store) resolve(idx reconcile.IndexDecl) (indexSpec, error) {
	spec := indexSpec{name: idx.Name, unique: idx.Kind == reconcile.IndexUnique}
	for _, field := range idx.Fields {
		col, ok := columns[field]
		if !ok {
			return indexSpec{}, fmt.Errorf("index %s references unknown field %q", idx.Name, field)
		}
		spec.columns = append(spec.columns, col)
	}

	mysql := s.isMySQL()
	quote := func(name string) string {
		if mysql {
			return "`" + name + "`"
		}
		return `"` + name + `"`
	}
	quoted := make([]string, len(spec.columns))
	for i, col := range spec.columns {
		quoted[i] = quote(col)
	}

	var verb string
	switch {
	case idx.Kind == reconcile.IndexUnique:
		verb = "CREATE UNIQUE INDEX"
	case idx.Kind == reconcile.IndexFullText && mysql:
		verb = "CREATE FULLTEXT INDEX"
		spec.kind = "FULLTEXT"
	case idx.Kind == reconcile.IndexFullText:
		// sqlite has no full-text index type outside virtual tables.
		verb = "CREATE INDEX"
	default:
		return indexSpec{}, fmt.Errorf("index %s has unknown kind %q", idx.Name, idx.Kind)
	}

	spec.ddl = fmt.Sprintf("%s %s ON %s (%s)", verb, quote(spec.name), quote(s.table), strings.Join(quoted, ", "))
	return spec, nil
}

func (s *Store) isMySQL() bool {
	return s.db.Dialector.Name() != database.DriverSQLite
}

// migrator scopes db to the store's table. MySQL tables are created with a binary default
// collation so the question key compares exactly, as sqlite's BINARY default does.
func (s *Store) migrator(db *gorm.DB) *gorm.DB {
	tx := db.Table(s.table)
	if s.isMySQL() {
		tx = tx.Set("gorm:table_options", mysqlTableOptions)
	}
	return tx
}

// checkKeyCollation rejects a question column that ignores case or accents. Such a column
// would merge distinct questions into one row.
func (s *Store) checkKeyCollation(ctx context.Context, db *gorm.DB) error {
	column := columns[reconcile.FieldQuestion]
	collation, err := database.GetColumnCollation(db, s.table, column)
	if err != nil {
		return s.schemaError(ctx, err)
	}
	if !exactCollation(collation) {
		return fmt.Errorf("%w: column %s.%s compares with collation %s; the question key needs %s",
			reconcile.ErrSchemaConflict, s.table, column, collation, keyCollation)
	}
	return nil
}

func exactCollation(collation string) bool {
	c := strings.ToLower(collation)
	return c == "binary" || strings.HasSuffix(c, "_bin") || strings.HasSuffix(c, "_cs")
}

// check reports whether spec already exists in existing, or why it can never be created.
func check(spec indexSpec, existing []database.IndexInfo) (bool, error) {
	for _, info := range existing {
		if info.Name != spec.name {
			continue
		}
		if info.Unique != spec.unique ||
			!slices.Equal(info.Columns, spec.columns) ||
			(spec.kind != "" && info.Type != spec.kind) {
			return false, fmt.Errorf("index %s exists with a different definition (unique=%t type=%q columns=%v)",
				spec.name, info.Unique, info.Type, info.Columns)
		}
		return true, nil
	}

	if !spec.unique {
		return false, nil
	}
	for _, info := range existing {
		if info.Primary || info.Unique || info.Type == "FULLTEXT" {
			continue
		}
		if slices.Equal(info.Columns, spec.columns) {
			return false, fmt.Errorf("index %s covers %v without uniqueness, conflicting with unique index %s",
				info.Name, info.Columns, spec.name)
		}
	}
	return false, nil
}

// schemaError keeps cancellation and connectivity failures distinct from genuine conflicts.
func (s *Store) schemaError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateKeyName {
		return fmt.Errorf("%w: %w", reconcile.ErrSchemaConflict, err)
	}
	if wrapped := storeError(err); errors.Is(wrapped, reconcile.ErrConnection) {
		return wrapped
	}
	return fmt.Errorf("%w: %w", reconcile.ErrSchemaConflict, err)
}
