//go:build integration
// +build integration

package integration

import (
	"testing"

	"github.com/lcampos/schemadoc/internal/schema"
)

// findTable looks up a table in a given schema of the model.
func findTable(t *testing.T, m *schema.DatabaseModel, schemaName, tableName string) *schema.Table {
	t.Helper()

	s, ok := m.Schemas[schemaName]
	if !ok {
		t.Fatalf("Schema %s not found in model", schemaName)
	}
	table, ok := s.Tables[tableName]
	if !ok {
		t.Fatalf("Table %s not found in schema %s", tableName, schemaName)
	}
	return table
}

// verifyTablesExist checks that all expected tables are present in a schema
func verifyTablesExist(t *testing.T, m *schema.DatabaseModel, schemaName string, expectedTables []string) {
	t.Helper()

	s, ok := m.Schemas[schemaName]
	if !ok {
		t.Fatalf("Schema %s not found in model", schemaName)
	}

	for _, tableName := range expectedTables {
		if _, ok := s.Tables[tableName]; !ok {
			t.Errorf("Expected table %s not found in schema %s", tableName, schemaName)
		}
	}
}

// verifyPrimaryKey checks that exactly the expected columns carry the
// primary-key flag
func verifyPrimaryKey(t *testing.T, table *schema.Table, expectedPK []string) {
	t.Helper()

	pkSet := make(map[string]bool)
	for _, name := range expectedPK {
		pkSet[name] = true
	}

	for name, col := range table.Columns {
		if col.PrimaryKey != pkSet[name] {
			t.Errorf("Column %s: primary_key = %v, want %v", name, col.PrimaryKey, pkSet[name])
		}
	}
}

// verifyForeignKey checks that a column references the expected target
func verifyForeignKey(t *testing.T, table *schema.Table, columnName, targetTable, targetColumn string) {
	t.Helper()

	col, ok := table.Columns[columnName]
	if !ok {
		t.Fatalf("Column %s not found", columnName)
	}
	if col.ForeignKey == nil {
		t.Fatalf("Expected column %s to carry a foreign key", columnName)
	}
	if col.ForeignKey.TargetTable != targetTable || col.ForeignKey.TargetColumn != targetColumn {
		t.Errorf("Expected %s to reference %s.%s, got %s.%s",
			columnName, targetTable, targetColumn,
			col.ForeignKey.TargetTable, col.ForeignKey.TargetColumn)
	}
	if col.ForeignKey.ConstraintName == "" {
		t.Errorf("Expected a constraint name on the %s foreign key", columnName)
	}
}

// verifyNoPrimarySentinel checks that the implicit primary-key index never
// surfaces as a named index
func verifyNoPrimarySentinel(t *testing.T, table *schema.Table) {
	t.Helper()

	if _, ok := table.Indexes["PRIMARY"]; ok {
		t.Error("The PRIMARY sentinel index must not appear in the indexes mapping")
	}
}

// verifyIndex checks that an index exists with the expected columns and type
func verifyIndex(t *testing.T, table *schema.Table, indexName string, expectedColumns []string, unique bool) {
	t.Helper()

	idx, ok := table.Indexes[indexName]
	if !ok {
		t.Fatalf("Expected index %s not found", indexName)
	}
	if idx.Unique != unique {
		t.Errorf("Index %s: unique = %v, want %v", indexName, idx.Unique, unique)
	}
	if len(idx.Columns) != len(expectedColumns) {
		t.Fatalf("Expected index %s on %v, got %v", indexName, expectedColumns, idx.Columns)
	}
	for i, col := range expectedColumns {
		if idx.Columns[i] != col {
			t.Errorf("Expected index %s on %v, got %v", indexName, expectedColumns, idx.Columns)
			return
		}
	}
	if idx.Type == "" {
		t.Errorf("Expected a type label on index %s", indexName)
	}
}

// verifyReferencedBy checks an incoming reference keyed by referencing table
func verifyReferencedBy(t *testing.T, table *schema.Table, referencingTable string) {
	t.Helper()

	ref, ok := table.ReferencedBy[referencingTable]
	if !ok {
		t.Fatalf("Expected referenced_by entry for %s", referencingTable)
	}
	if ref.Table != referencingTable {
		t.Errorf("Expected referenced_by.table = %s, got %s", referencingTable, ref.Table)
	}
	if len(ref.Columns) == 0 {
		t.Errorf("Expected referencing columns for %s", referencingTable)
	}
}
