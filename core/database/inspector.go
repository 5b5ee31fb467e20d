package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// IndexInfo describes one existing index of a table.
type IndexInfo struct {
	// Name is the index name.
	Name string
	// Unique is true for unique and primary indexes.
	Unique bool
	// Primary is true for the primary key index.
	Primary bool
	// Type is the index method in upper case (BTREE, FULLTEXT, ...). Empty when the
	// dialect does not report one.
	Type string
	// Columns lists the indexed columns in key order, lower-cased.
	Columns []string
}

// mysqlIndexRow matches one row of the output of SHOW INDEX.
type mysqlIndexRow struct {
	KeyName    string `gorm:"column:Key_name"`
	NonUnique  int    `gorm:"column:Non_unique"`
	SeqInIndex int    `gorm:"column:Seq_in_index"`
	ColumnName string `gorm:"column:Column_name"`
	IndexType  string `gorm:"column:Index_type"`
}

type sqliteIndexListRow struct {
	Seq     int    `gorm:"column:seq"`
	Name    string `gorm:"column:name"`
	Unique  int    `gorm:"column:unique"`
	Origin  string `gorm:"column:origin"`
	Partial int    `gorm:"column:partial"`
}

type sqliteIndexInfoRow struct {
	SeqNo int    `gorm:"column:seqno"`
	Cid   int    `gorm:"column:cid"`
	Name  string `gorm:"column:name"`
}

// GetTableIndexes retrieves the index definitions of a table, sorted by name.
// A table without indexes, or one that does not exist, yields an empty list.
func GetTableIndexes(db *gorm.DB, tableName string) ([]IndexInfo, error) {
	if db.Dialector.Name() == "sqlite" {
		return sqliteIndexes(db, tableName)
	}
	return mysqlIndexes(db, tableName)
}

func mysqlIndexes(db *gorm.DB, tableName string) ([]IndexInfo, error) {
	var rows []mysqlIndexRow
	if err := db.Raw(fmt.Sprintf("SHOW INDEX FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].KeyName != rows[j].KeyName {
			return rows[i].KeyName < rows[j].KeyName
		}
		return rows[i].SeqInIndex < rows[j].SeqInIndex
	})

	var indexes []IndexInfo
	for _, row := range rows {
		if len(indexes) == 0 || indexes[len(indexes)-1].Name != row.KeyName {
			indexes = append(indexes, IndexInfo{
				Name:    row.KeyName,
				Unique:  row.NonUnique == 0,
				Primary: row.KeyName == "PRIMARY",
				Type:    strings.ToUpper(row.IndexType),
			})
		}
		last := &indexes[len(indexes)-1]
		last.Columns = append(last.Columns, strings.ToLower(row.ColumnName))
	}
	return indexes, nil
}

func sqliteIndexes(db *gorm.DB, tableName string) ([]IndexInfo, error) {
	var list []sqliteIndexListRow
	if err := db.Raw(fmt.Sprintf("PRAGMA index_list('%s')", tableName)).Scan(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
	}

	indexes := make([]IndexInfo, 0, len(list))
	for _, entry := range list {
		var cols []sqliteIndexInfoRow
		if err := db.Raw(fmt.Sprintf("PRAGMA index_info('%s')", entry.Name)).Scan(&cols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for index %s: %w", entry.Name, err)
		}
		sort.Slice(cols, func(i, j int) bool { return cols[i].SeqNo < cols[j].SeqNo })

		info := IndexInfo{
			Name:    entry.Name,
			Unique:  entry.Unique == 1,
			Primary: entry.Origin == "pk",
		}
		for _, col := range cols {
			info.Columns = append(info.Columns, strings.ToLower(col.Name))
		}
		indexes = append(indexes, info)
	}

	sort.Slice(indexes, func(i, j int) bool { return indexes[i].Name < indexes[j].Name })
	return indexes, nil
}

// GetColumnCollation returns the collation a column compares with. sqlite columns without
// a COLLATE clause compare as BINARY.
func GetColumnCollation(db *gorm.DB, tableName, column string) (string, error) {
	if db.Dialector.Name() == "sqlite" {
		return "BINARY", nil
	}

	var collation sql.NullString
	row := db.Raw("SELECT COLLATION_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?",
		tableName, column).Row()
	if err := row.Scan(&collation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("column %s.%s does not exist", tableName, column)
		}
		return "", fmt.Errorf("failed to get collation of %s.%s: %w", tableName, column, err)
	}
	return collation.String, nil
}
