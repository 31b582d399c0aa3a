//go:build duckdb

package main

import (
	_ "github.com/marcboeker/go-duckdb"

	"github.com/sourcetable/lang-sql/introspect"
)

func init() {
	flavorDrivers[introspect.DuckDB] = "duckdb"
}
