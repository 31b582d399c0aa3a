//go:build !duckdb

package main

import (
	"errors"

	"github.com/sourcetable/lang-sql/introspect"
)

func init() {
	flavorUnavailable[introspect.DuckDB] = errors.New("DuckDB support not compiled in. Rebuild with -tags duckdb")
}
