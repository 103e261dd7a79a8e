package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"awardeda/internal/table"

	_ "modernc.org/sqlite"
)

const DefaultSQLiteTable = "awards_cleaned"

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func affinity(k table.Kind) string {
	switch k {
	case table.KindInt, table.KindBool:
		return "INTEGER"
	case table.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// WriteSQLite replaces tableName in the database at path with the rows of t.
// Rows are inserted in a single transaction.
func WriteSQLite(ctx context.Context, path string, t *table.Table, tableName string) error {
	if tableName == "" {
		tableName = DefaultSQLiteTable
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	cols := t.Columns()
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.Name)
		defs[i] = names[i] + " " + affinity(c.Kind)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(tableName)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+quoteIdent(tableName)+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+quoteIdent(tableName)+` (`+strings.Join(names, ", ")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			args[j] = sqliteValue(cols[j].Kind, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func sqliteValue(k table.Kind, v table.Value) any {
	x := typed(k, v)
	if b, ok := x.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return x
}
