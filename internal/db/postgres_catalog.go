package db

import (
	"context"
	"fmt"
	"strings"
)

const varcharType = "varchar"

// PostgresCatalog reads catalog metadata from PostgreSQL. It implements
// CatalogReader over a single shared connection.
type PostgresCatalog struct {
	client *PostgresClient
}

// NewPostgresCatalog creates a PostgreSQL catalog reader.
func NewPostgresCatalog(client *PostgresClient) *PostgresCatalog {
	return &PostgresCatalog{client: client}
}

// Schemas returns all schema names except the SQL-standard information
// schema and the PostgreSQL internal catalog schema.
func (c *PostgresCatalog) Schemas(ctx context.Context) ([]string, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'pg_catalog')
		ORDER BY schema_name
	`

	rows, err := c.client.GetConnection().Query(ctx, query)
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
func (c *PostgresCatalog) Tables(ctx context.Context, schema string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := c.client.GetConnection().Query(ctx, query, schema)
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

// Columns returns the columns of one table in declaration order.
func (c *PostgresCatalog) Columns(ctx context.Context, schema, table string) ([]ColumnRow, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.udt_name,
			c.character_maximum_length
		FROM information_schema.columns c
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := c.client.GetConnection().Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnRow
	for rows.Next() {
		var col ColumnRow
		var dataType, nullable, udtName string
		var charMaxLength *int

		if err := rows.Scan(&col.Name, &dataType, &nullable, &col.Default, &udtName, &charMaxLength); err != nil {
			return nil, err
		}

		col.Nullable = (nullable == "YES")
		col.Type = normalizePostgresType(dataType, udtName, charMaxLength)

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// PrimaryKeys returns the columns participating in the table's primary-key
// index, in catalog-return order.
func (c *PostgresCatalog) PrimaryKeys(ctx context.Context, schema, table string) ([]string, error) {
	query := `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a
			ON a.attrelid = i.indrelid
			AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = CAST($1 AS regclass)
			AND i.indisprimary
	`

	rows, err := c.client.GetConnection().Query(ctx, query, fmt.Sprintf("%s.%s", schema, table))
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

// ForeignKeys returns the table's outgoing foreign-key facts, one row per
// local column.
func (c *PostgresCatalog) ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKeyRow, error) {
	query := `
		SELECT
			kcu.column_name,
			con.confrelid::regclass::text AS target_table,
			a.attname AS target_column,
			con.conname AS constraint_name
		FROM pg_constraint con
		JOIN pg_namespace nsp ON nsp.oid = con.connamespace
		JOIN pg_class cl ON cl.oid = con.conrelid
		JOIN pg_attribute a
			ON a.attnum = ANY(con.confkey)
			AND a.attrelid = con.confrelid
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = con.conname
			AND kcu.table_schema = nsp.nspname
		WHERE con.contype = 'f'
			AND nsp.nspname = $1
			AND cl.relname = $2
	`

	rows, err := c.client.GetConnection().Query(ctx, query, schema, table)
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

// Indexes returns the table's indexes, excluding the primary-key-backing
// index. The access method comes from pg_am, lower-cased; "btree" is the
// fallback when the catalog reports none.
func (c *PostgresCatalog) Indexes(ctx context.Context, schema, table string) ([]IndexRow, error) {
	query := `
		SELECT
			i.relname AS index_name,
			ix.indisunique AS is_unique,
			am.amname AS index_type,
			array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum)) AS column_names
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_am am ON am.oid = i.relam
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
			AND NOT ix.indisprimary
		GROUP BY i.relname, ix.indisunique, am.amname
		ORDER BY i.relname
	`

	rows, err := c.client.GetConnection().Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []IndexRow
	for rows.Next() {
		var idx IndexRow
		var indexType string
		if err := rows.Scan(&idx.Name, &idx.Unique, &indexType, &idx.Columns); err != nil {
			return nil, err
		}
		idx.Type = strings.ToLower(indexType)
		if idx.Type == "" {
			idx.Type = "btree"
		}
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}

// ReferencedBy returns foreign keys declared on other tables that point
// into this one, one row per referencing column.
func (c *PostgresCatalog) ReferencedBy(ctx context.Context, schema, table string) ([]ReferenceRow, error) {
	query := `
		SELECT
			con.conrelid::regclass::text AS source_table,
			a.attname AS source_column,
			con.conname AS constraint_name
		FROM pg_constraint con
		JOIN pg_namespace nsp ON nsp.oid = con.connamespace
		JOIN pg_class cl ON cl.oid = con.confrelid
		JOIN pg_attribute a
			ON a.attnum = ANY(con.conkey)
			AND a.attrelid = con.conrelid
		WHERE con.contype = 'f'
			AND nsp.nspname = $1
			AND cl.relname = $2
	`

	rows, err := c.client.GetConnection().Query(ctx, query, schema, table)
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

// normalizePostgresType maps verbose SQL type names to commonly-used
// PostgreSQL equivalents so the rendered type is compact and stable.
func normalizePostgresType(dataType, udtName string, charMaxLength *int) string {
	switch dataType {
	case "timestamp with time zone":
		return "timestamptz"
	case "timestamp without time zone":
		return "timestamp"
	case "time with time zone":
		return "timetz"
	case "time without time zone":
		return "time"
	case "character varying":
		if charMaxLength != nil {
			return fmt.Sprintf("varchar(%d)", *charMaxLength)
		}
		return varcharType
	case "character":
		if charMaxLength != nil {
			return fmt.Sprintf("char(%d)", *charMaxLength)
		}
		return "char"
	case "ARRAY":
		// udt_name has underscore prefix for arrays (e.g., "_text" for text[], "_int4" for integer[])
		if len(udtName) > 0 && udtName[0] == '_' {
			elementType := normalizeUdtName(udtName[1:])
			return fmt.Sprintf("%s[]", elementType)
		}
		return "array"
	case "USER-DEFINED":
		return udtName
	default:
		return dataType
	}
}

// normalizeUdtName converts PostgreSQL internal type names to more readable forms
func normalizeUdtName(udtName string) string {
	switch udtName {
	case "int4":
		return "integer"
	case "int8":
		return "bigint"
	case "int2":
		return "smallint"
	case "float4":
		return "real"
	case "float8":
		return "double precision"
	case "bool":
		return "boolean"
	case varcharType:
		return varcharType
	default:
		return udtName
	}
}
