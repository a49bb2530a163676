package db

import (
	"context"
	"database/sql"
	"strings"
)

// MySQLCatalog reads catalog metadata from MySQL via information_schema.
// It implements CatalogReader.
//
// MySQL reports the implicit primary-key index under the literal name
// "PRIMARY"; the assembly layer filters that sentinel out of the index
// mapping.
type MySQLCatalog struct {
	client *MySQLClient
}

// NewMySQLCatalog creates a MySQL catalog reader.
func NewMySQLCatalog(client *MySQLClient) *MySQLCatalog {
	return &MySQLCatalog{client: client}
}

// Schemas returns all schema names except MySQL's system schemas.
func (c *MySQLCatalog) Schemas(ctx context.Context) ([]string, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'mysql', 'performance_schema', 'sys')
		ORDER BY schema_name
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		schemas = append(schemas, name)
	}

	return schemas, rows.Err()
}

// Tables returns the base table names of one schema.
func (c *MySQLCatalog) Tables(ctx context.Context, schema string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// Columns returns the columns of one table in declaration order. The
// rendered type is MySQL's full column_type (e.g. "int(11)",
// "varchar(255)"), which is stable for a given catalog type.
func (c *MySQLCatalog) Columns(ctx context.Context, schema, table string) ([]ColumnRow, error) {
	query := `
		SELECT
			c.column_name,
			c.column_type,
			c.is_nullable,
			c.column_default
		FROM information_schema.columns c
		WHERE c.table_schema = ? AND c.table_name = ?
		ORDER BY c.ordinal_position
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnRow
	for rows.Next() {
		var col ColumnRow
		var nullable string
		var defaultVal sql.NullString

		if err := rows.Scan(&col.Name, &col.Type, &nullable, &defaultVal); err != nil {
			return nil, err
		}

		col.Nullable = (nullable == "YES")
		if defaultVal.Valid {
			col.Default = &defaultVal.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// PrimaryKeys returns the columns of the table's PRIMARY constraint.
func (c *MySQLCatalog) PrimaryKeys(ctx context.Context, schema, table string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
			AND table_name = ?
			AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pk = append(pk, name)
	}

	return pk, rows.Err()
}

// ForeignKeys returns the table's outgoing foreign-key facts.
func (c *MySQLCatalog) ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKeyRow, error) {
	query := `
		SELECT
			kcu.column_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name,
			kcu.constraint_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.table_schema = ?
			AND kcu.table_name = ?
			AND kcu.referenced_table_name IS NOT NULL
		ORDER BY kcu.ordinal_position
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []ForeignKeyRow
	for rows.Next() {
		var fk ForeignKeyRow
		if err := rows.Scan(&fk.Column, &fk.TargetTable, &fk.TargetColumn, &fk.Constraint); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}

	return fks, rows.Err()
}

// Indexes returns the table's indexes with their lower-cased storage type
// (normally "btree"). The "PRIMARY" entry is already excluded here; the
// assembly layer filters it again for backends that report it.
func (c *MySQLCatalog) Indexes(ctx context.Context, schema, table string) ([]IndexRow, error) {
	query := `
		SELECT
			s.index_name,
			s.non_unique = 0 AS is_unique,
			LOWER(s.index_type) AS index_type,
			GROUP_CONCAT(s.column_name ORDER BY s.seq_in_index) AS column_names
		FROM information_schema.statistics s
		WHERE s.table_schema = ?
			AND s.table_name = ?
			AND s.index_name != 'PRIMARY'
		GROUP BY s.index_name, s.non_unique, s.index_type
		ORDER BY s.index_name
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []IndexRow
	for rows.Next() {
		var idx IndexRow
		var isUnique int
		var columnNames string

		if err := rows.Scan(&idx.Name, &isUnique, &idx.Type, &columnNames); err != nil {
			return nil, err
		}

		idx.Unique = (isUnique == 1)
		idx.Columns = strings.Split(columnNames, ",")
		if idx.Type == "" {
			idx.Type = "btree"
		}

		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}

// ReferencedBy returns foreign keys declared on other tables that point
// into this one, one row per referencing column.
func (c *MySQLCatalog) ReferencedBy(ctx context.Context, schema, table string) ([]ReferenceRow, error) {
	query := `
		SELECT
			kcu.table_name,
			kcu.column_name,
			kcu.constraint_name
		FROM information_schema.key_column_usage kcu
		WHERE kcu.referenced_table_schema = ?
			AND kcu.referenced_table_name = ?
		ORDER BY kcu.table_name, kcu.ordinal_position
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ReferenceRow
	for rows.Next() {
		var sourceTable, sourceColumn, constraint string
		if err := rows.Scan(&sourceTable, &sourceColumn, &constraint); err != nil {
			return nil, err
		}
		refs = append(refs, ReferenceRow{
			Table:      sourceTable,
			Columns:    []string{sourceColumn},
			Constraint: constraint,
		})
	}

	return refs, rows.Err()
}
