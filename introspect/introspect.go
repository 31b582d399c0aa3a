// Package introspect builds a completion namespace from a live database
// connection. It speaks plain database/sql so any registered driver works;
// the flavor only selects which catalog queries to run.
package introspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sourcetable/lang-sql/complete"
)

// Flavor selects the catalog layout of the connected database.
type Flavor string

const (
	Postgres Flavor = "postgres"
	MySQL    Flavor = "mysql"
	SQLite   Flavor = "sqlite"
	DuckDB   Flavor = "duckdb"
)

// Build introspects the connected database and returns a namespace tree:
// schema → table → columns for catalog-bearing flavors, table → columns for
// SQLite and single-database MySQL connections.
func Build(ctx context.Context, db *sql.DB, flavor Flavor) (*complete.Namespace, error) {
	switch flavor {
	case Postgres, DuckDB:
		return buildInformationSchema(ctx, db, `
			SELECT table_schema, table_name, column_name, data_type
			FROM information_schema.columns
			WHERE table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
			ORDER BY table_schema, table_name, ordinal_position`)
	case MySQL:
		return buildMySQL(ctx, db)
	case SQLite:
		return buildSQLite(ctx, db)
	}
	return nil, fmt.Errorf("introspect: unknown flavor %q", flavor)
}

// columnRow is one (schema, table, column, type) tuple from a catalog query.
type columnRow struct {
	schema string
	table  string
	column string
	typ    string
}

// assemble turns the flat catalog rows into the nested namespace. Rows with
// an empty schema attach their tables at the top level.
func assemble(rows []columnRow) *complete.Namespace {
	type tableKey struct{ schema, table string }
	columns := make(map[tableKey][]complete.Candidate)
	order := make(map[string][]string) // schema -> table names in first-seen order
	for _, r := range rows {
		k := tableKey{r.schema, r.table}
		if _, seen := columns[k]; !seen {
			order[r.schema] = append(order[r.schema], r.table)
		}
		columns[k] = append(columns[k], complete.Candidate{
			Label:  r.column,
			Type:   "column",
			Detail: r.typ,
		})
	}

	top := make(map[string]*complete.Namespace)
	for schema, tables := range order {
		level := top
		if schema != "" {
			inner := make(map[string]*complete.Namespace, len(tables))
			top[schema] = complete.Children(inner)
			level = inner
		}
		for _, table := range tables {
			level[table] = complete.Options(columns[tableKey{schema, table}]...)
		}
	}
	return complete.Children(top)
}

func buildInformationSchema(ctx context.Context, db *sql.DB, query string, args ...any) (*complete.Namespace, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("introspect columns: %w", err)
	}
	defer rows.Close()

	var all []columnRow
	for rows.Next() {
		var r columnRow
		if err := rows.Scan(&r.schema, &r.table, &r.column, &r.typ); err != nil {
			return nil, fmt.Errorf("introspect columns scan: %w", err)
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect columns: %w", err)
	}
	return assemble(all), nil
}

// buildMySQL reads the current database's tables; the schema level is
// omitted since a MySQL connection is scoped to one database.
func buildMySQL(ctx context.Context, db *sql.DB) (*complete.Namespace, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT '', table_name, column_name, column_type
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		ORDER BY table_name, ordinal_position`)
	if err != nil {
		return nil, fmt.Errorf("introspect columns: %w", err)
	}
	defer rows.Close()

	var all []columnRow
	for rows.Next() {
		var r columnRow
		if err := rows.Scan(&r.schema, &r.table, &r.column, &r.typ); err != nil {
			return nil, fmt.Errorf("introspect columns scan: %w", err)
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect columns: %w", err)
	}
	return assemble(all), nil
}

func buildSQLite(ctx context.Context, db *sql.DB) (*complete.Namespace, error) {
	tableRows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("introspect tables: %w", err)
	}
	defer tableRows.Close()

	var tables []string
	for tableRows.Next() {
		var name string
		if err := tableRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("introspect tables scan: %w", err)
		}
		tables = append(tables, name)
	}
	if err := tableRows.Err(); err != nil {
		return nil, fmt.Errorf("introspect tables: %w", err)
	}

	var all []columnRow
	for _, table := range tables {
		cols, err := sqliteColumns(ctx, db, table)
		if err != nil {
			return nil, err
		}
		all = append(all, cols...)
	}
	return assemble(all), nil
}

func sqliteColumns(ctx context.Context, db *sql.DB, table string) ([]columnRow, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("introspect table_info: %w", err)
	}
	defer rows.Close()

	var out []columnRow
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("introspect table_info scan: %w", err)
		}
		out = append(out, columnRow{table: table, column: name, typ: colType})
	}
	return out, rows.Err()
}
