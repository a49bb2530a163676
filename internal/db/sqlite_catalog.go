package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// sqliteSchemaName is the single schema SQLite exposes. SQLite has no real
// schema concept, so the whole database maps to one schema of this name.
const sqliteSchemaName = "main"

// SQLiteCatalog reads catalog metadata from SQLite through PRAGMA
// statements. It implements CatalogReader.
//
// SQLite does not name foreign-key constraints, so constraint names are
// synthesized from the declaring table and the PRAGMA-reported constraint
// id. Its only index structure is a b-tree, so the index type is always
// "btree".
type SQLiteCatalog struct {
	client *SQLiteClient
}

// NewSQLiteCatalog creates a SQLite catalog reader.
func NewSQLiteCatalog(client *SQLiteClient) *SQLiteCatalog {
	return &SQLiteCatalog{client: client}
}

// Schemas returns the single "main" schema.
func (c *SQLiteCatalog) Schemas(ctx context.Context) ([]string, error) {
	return []string{sqliteSchemaName}, nil
}

// Tables returns all user table names.
func (c *SQLiteCatalog) Tables(ctx context.Context, schema string) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := c.client.GetDB().QueryContext(ctx, query)
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
func (c *SQLiteCatalog) Columns(ctx context.Context, schema, table string) ([]ColumnRow, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", table)

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnRow
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		col := ColumnRow{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
		}
		if defaultValue.Valid {
			col.Default = &defaultValue.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// PrimaryKeys returns the table's primary-key columns in catalog order.
func (c *SQLiteCatalog) PrimaryKeys(ctx context.Context, schema, table string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", table)

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []string
	for rows.Next() {
		var cid, notNull, pkOrder int
		var name, colType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pkOrder); err != nil {
			return nil, err
		}

		if pkOrder > 0 {
			pk = append(pk, name)
		}
	}

	return pk, rows.Err()
}

// ForeignKeys returns the table's outgoing foreign-key facts with
// synthesized constraint names.
//
// The shorthand "REFERENCES users" form names no target column; SQLite
// reports it as NULL, meaning the target table's primary key. That primary
// key is resolved here; if it is composite, no single column can be named
// and the target column stays empty.
func (c *SQLiteCatalog) ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKeyRow, error) {
	rows, err := c.foreignKeyList(ctx, table)
	if err != nil {
		return nil, err
	}

	pkCache := make(map[string][]string)
	var fks []ForeignKeyRow
	for _, row := range rows {
		target := row.to
		if target == "" {
			pk, ok := pkCache[row.table]
			if !ok {
				pk, err = c.PrimaryKeys(ctx, schema, row.table)
				if err != nil {
					return nil, err
				}
				pkCache[row.table] = pk
			}
			if len(pk) == 1 {
				target = pk[0]
			}
		}
		fks = append(fks, ForeignKeyRow{
			Column:       row.from,
			TargetTable:  row.table,
			TargetColumn: target,
			Constraint:   sqliteConstraintName(table, row.id),
		})
	}

	return fks, nil
}

// Indexes returns the table's named indexes. Auto-generated
// sqlite_autoindex entries back primary keys and unique constraints and are
// skipped, matching the primary-key-index exclusion of the other backends.
func (c *SQLiteCatalog) Indexes(ctx context.Context, schema, table string) ([]IndexRow, error) {
	query := fmt.Sprintf("PRAGMA index_list(%q)", table)

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type indexEntry struct {
		name   string
		unique bool
	}
	var entries []indexEntry
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string

		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}

		if strings.HasPrefix(name, "sqlite_autoindex") {
			continue
		}
		entries = append(entries, indexEntry{name: name, unique: unique == 1})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var indexes []IndexRow
	for _, entry := range entries {
		columns, err := c.indexColumns(ctx, entry.name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, IndexRow{
			Name:    entry.name,
			Columns: columns,
			Unique:  entry.unique,
			Type:    "btree",
		})
	}

	return indexes, nil
}

// ReferencedBy scans every other table's foreign keys for references into
// this one. SQLite has no catalog view for incoming references, so the scan
// is table-by-table.
func (c *SQLiteCatalog) ReferencedBy(ctx context.Context, schema, table string) ([]ReferenceRow, error) {
	tables, err := c.Tables(ctx, schema)
	if err != nil {
		return nil, err
	}

	var refs []ReferenceRow
	for _, other := range tables {
		if other == table {
			continue
		}

		fkRows, err := c.foreignKeyList(ctx, other)
		if err != nil {
			return nil, err
		}
		for _, row := range fkRows {
			if row.table != table {
				continue
			}
			refs = append(refs, ReferenceRow{
				Table:      other,
				Columns:    []string{row.from},
				Constraint: sqliteConstraintName(other, row.id),
			})
		}
	}

	return refs, nil
}

// foreignKeyRow mirrors one row of PRAGMA foreign_key_list.
type foreignKeyRow struct {
	id    int
	table string
	from  string
	to    string
}

func (c *SQLiteCatalog) foreignKeyList(ctx context.Context, table string) ([]foreignKeyRow, error) {
	query := fmt.Sprintf("PRAGMA foreign_key_list(%q)", table)

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []foreignKeyRow
	for rows.Next() {
		var id, seq int
		var targetTable, from, onUpdate, onDelete, match string
		var to sql.NullString

		if err := rows.Scan(&id, &seq, &targetTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}

		row := foreignKeyRow{id: id, table: targetTable, from: from}
		// NULL marks a shorthand reference to the target's primary key;
		// the caller resolves it.
		if to.Valid {
			row.to = to.String
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (c *SQLiteCatalog) indexColumns(ctx context.Context, indexName string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA index_info(%q)", indexName)

	rows, err := c.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var seqno, cid int
		var name sql.NullString

		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, err
		}

		if name.Valid {
			columns = append(columns, name.String)
		}
	}

	return columns, rows.Err()
}

// sqliteConstraintName builds a deterministic name for an unnamed SQLite
// foreign-key constraint.
func sqliteConstraintName(table string, id int) string {
	return fmt.Sprintf("fk_%s_%d", table, id)
}
