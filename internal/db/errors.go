package db

import "fmt"

// ConnectionError indicates the database session could not be established
// or maintained. It aborts extraction before any catalog work begins.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot establish database connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CatalogError indicates a catalog metadata query failed for one table.
// It carries the schema and table identifiers plus the underlying cause so
// the failure can be located without losing context. Any CatalogError is
// fatal to the whole extraction run.
type CatalogError struct {
	Schema string
	Table  string
	Op     string
	Err    error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s lookup failed for %q.%q: %v", e.Op, e.Schema, e.Table, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
