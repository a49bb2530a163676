package db

import "context"

// ColumnRow is one column as reported by the catalog, in declaration order.
type ColumnRow struct {
	Name     string
	Type     string
	Nullable bool
	Default  *string
}

// ForeignKeyRow is one outgoing foreign-key fact: a local column referencing
// a column of another table. Composite constraints surface as one row per
// local column.
type ForeignKeyRow struct {
	Column       string
	TargetTable  string
	TargetColumn string
	Constraint   string
}

// IndexRow is one index as reported by the catalog. Columns keep catalog
// order. Type is the lower-cased access-method label, defaulted by the
// backend when the catalog does not report one.
type IndexRow struct {
	Name    string
	Columns []string
	Unique  bool
	Type    string
}

// ReferenceRow is one incoming-reference fact: a foreign key declared on
// another table pointing at the table being inspected.
type ReferenceRow struct {
	Table      string
	Columns    []string
	Constraint string
}

// CatalogReader reads structural facts from a database's system catalog.
//
// All lookups are scoped by schema and table name. An unknown schema or
// table yields an empty result, not an error. Implementations issue one
// read query per call on a single shared connection; callers invoke them
// strictly sequentially.
type CatalogReader interface {
	// Schemas returns the non-system schema names of the database.
	Schemas(ctx context.Context) ([]string, error)

	// Tables returns the base table names of one schema.
	Tables(ctx context.Context, schema string) ([]string, error)

	// Columns returns the columns of one table in declaration order.
	Columns(ctx context.Context, schema, table string) ([]ColumnRow, error)

	// PrimaryKeys returns the column names participating in the table's
	// primary key, in catalog-return order. Empty when the table has no
	// primary key.
	PrimaryKeys(ctx context.Context, schema, table string) ([]string, error)

	// ForeignKeys returns the table's outgoing foreign-key facts.
	ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKeyRow, error)

	// Indexes returns the table's indexes.
	Indexes(ctx context.Context, schema, table string) ([]IndexRow, error)

	// ReferencedBy returns foreign keys declared on other tables that point
	// into this one.
	ReferencedBy(ctx context.Context, schema, table string) ([]ReferenceRow, error)
}
