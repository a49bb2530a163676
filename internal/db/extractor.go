package db

import (
	"context"
	"fmt"

	"github.com/lcampos/schemadoc/internal/schema"
)

// primaryIndexSentinel is the literal name some catalogs report for the
// implicit primary-key index. It is never emitted as a named index; primary
// keys are already captured through Column.PrimaryKey.
const primaryIndexSentinel = "PRIMARY"

// Extractor walks a database catalog through a CatalogReader and assembles
// the results into a schema.DatabaseModel. Extraction is strictly
// sequential: one schema at a time, one table at a time, one lookup at a
// time, all on the reader's single shared connection.
type Extractor struct {
	reader CatalogReader
}

// NewExtractor creates a new model extractor backed by the given reader.
func NewExtractor(reader CatalogReader) *Extractor {
	return &Extractor{reader: reader}
}

// Extract builds the full database model. If schemaFilter is non-empty,
// only the named schema is extracted.
//
// Any failure aborts the whole run: a partially-correct snapshot is worse
// than no snapshot, so no per-table error isolation is attempted.
func (e *Extractor) Extract(ctx context.Context, schemaFilter string) (*schema.DatabaseModel, error) {
	schemaNames, err := e.reader.Schemas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	model := schema.NewDatabaseModel()
	for _, schemaName := range schemaNames {
		if schemaFilter != "" && schemaName != schemaFilter {
			continue
		}

		schemaModel, err := e.extractSchema(ctx, schemaName)
		if err != nil {
			return nil, err
		}
		model.Schemas[schemaName] = schemaModel
	}

	return model, nil
}

// extractSchema extracts every table of one schema.
func (e *Extractor) extractSchema(ctx context.Context, schemaName string) (*schema.Schema, error) {
	tableNames, err := e.reader.Tables(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables of schema %q: %w", schemaName, err)
	}

	schemaModel := schema.NewSchema()
	for _, tableName := range tableNames {
		table, err := e.extractTable(ctx, schemaName, tableName)
		if err != nil {
			return nil, err
		}
		schemaModel.Tables[tableName] = table
	}

	return schemaModel, nil
}

// extractTable merges the column list, primary-key set, foreign-key map,
// index list and reverse-reference map of one table into a Table record.
//
// The primary-key and foreign-key lookups are best-effort inputs to column
// assembly and their errors propagate unwrapped; index and reverse-reference
// failures are wrapped into a CatalogError carrying schema and table.
func (e *Extractor) extractTable(ctx context.Context, schemaName, tableName string) (*schema.Table, error) {
	columns, err := e.reader.Columns(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}

	primaryKeys, err := e.reader.PrimaryKeys(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}

	foreignKeys, err := e.reader.ForeignKeys(ctx, schemaName, tableName)
	if err != nil {
		return nil, err
	}

	table := schema.NewTable()

	pkSet := make(map[string]bool, len(primaryKeys))
	for _, name := range primaryKeys {
		pkSet[name] = true
	}

	// Fold foreign-key rows by local column, last-write-wins. A column can
	// carry at most one outgoing reference in this model, so a composite
	// constraint collapses to whichever of its rows arrives last. This is an
	// intentional compatibility simplification, not a defect.
	fkByColumn := make(map[string]ForeignKeyRow, len(foreignKeys))
	for _, fk := range foreignKeys {
		fkByColumn[fk.Column] = fk
	}

	for _, row := range columns {
		column, err := schema.NewColumn(row.Name, row.Type, row.Nullable, row.Default)
		if err != nil {
			return nil, &CatalogError{Schema: schemaName, Table: tableName, Op: "column", Err: err}
		}
		column.PrimaryKey = pkSet[row.Name]
		if fk, ok := fkByColumn[row.Name]; ok {
			column.ForeignKey = &schema.ForeignKey{
				TargetTable:    fk.TargetTable,
				TargetColumn:   fk.TargetColumn,
				ConstraintName: fk.Constraint,
			}
		}
		table.Columns[row.Name] = column
	}

	indexes, err := e.reader.Indexes(ctx, schemaName, tableName)
	if err != nil {
		return nil, &CatalogError{Schema: schemaName, Table: tableName, Op: "index", Err: err}
	}
	for _, row := range indexes {
		if row.Name == primaryIndexSentinel {
			continue
		}
		index, err := schema.NewIndex(row.Name, row.Columns, row.Unique, row.Type)
		if err != nil {
			return nil, &CatalogError{Schema: schemaName, Table: tableName, Op: "index", Err: err}
		}
		table.Indexes[row.Name] = index
	}

	references, err := e.reader.ReferencedBy(ctx, schemaName, tableName)
	if err != nil {
		return nil, &CatalogError{Schema: schemaName, Table: tableName, Op: "reverse reference", Err: err}
	}
	// Keyed by referencing table, last-write-wins: a second constraint from
	// the same table overwrites the first. Preserved for compatibility.
	for _, row := range references {
		ref, err := schema.NewReferencedBy(row.Table, row.Columns, row.Constraint)
		if err != nil {
			return nil, &CatalogError{Schema: schemaName, Table: tableName, Op: "reverse reference", Err: err}
		}
		table.ReferencedBy[row.Table] = ref
	}

	return table, nil
}
