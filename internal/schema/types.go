package schema

import "fmt"

// DatabaseModel is the root of an extracted catalog snapshot, keyed by schema name.
type DatabaseModel struct {
	Schemas map[string]*Schema `json:"schemas"`
}

// Schema holds the tables of one database schema, keyed by table name.
type Schema struct {
	Tables map[string]*Table `json:"tables"`
}

// Table represents a database table.
//
// Description is reserved for future annotation and is never set by extraction.
// The maps are always initialized so an empty table serializes as empty objects
// rather than null.
type Table struct {
	Description  string                   `json:"description,omitempty"`
	Columns      map[string]*Column       `json:"columns"`
	Indexes      map[string]*Index        `json:"indexes"`
	ReferencedBy map[string]*ReferencedBy `json:"referenced_by"`
}

// Column represents a table column.
type Column struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Nullable   bool        `json:"nullable"`
	Default    *string     `json:"default,omitempty"`
	PrimaryKey bool        `json:"primary_key"`
	ForeignKey *ForeignKey `json:"foreign_key,omitempty"`
}

// ForeignKey describes the single outgoing reference from a column.
type ForeignKey struct {
	TargetTable    string `json:"target_table"`
	TargetColumn   string `json:"target_column"`
	ConstraintName string `json:"constraint_name"`
}

// Index represents a database index. Column order is significant for
// multi-column indexes. Type is the lower-cased access-method label.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
	Type    string   `json:"type,omitempty"`
}

// ReferencedBy describes an incoming reference: a foreign key declared on
// another table that points at this one.
type ReferencedBy struct {
	Table      string   `json:"table"`
	Columns    []string `json:"columns"`
	Constraint string   `json:"constraint"`
}

// NewDatabaseModel creates an empty database model.
func NewDatabaseModel() *DatabaseModel {
	return &DatabaseModel{Schemas: make(map[string]*Schema)}
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{Tables: make(map[string]*Table)}
}

// NewTable creates a table with initialized (empty) mappings.
func NewTable() *Table {
	return &Table{
		Columns:      make(map[string]*Column),
		Indexes:      make(map[string]*Index),
		ReferencedBy: make(map[string]*ReferencedBy),
	}
}

// NewColumn validates and creates a column from a catalog row.
// PrimaryKey and ForeignKey are set by the caller before the column is
// inserted into its table.
func NewColumn(name, colType string, nullable bool, defaultValue *string) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("column name must not be empty")
	}
	if colType == "" {
		return nil, fmt.Errorf("column %q has no type", name)
	}
	return &Column{
		Name:     name,
		Type:     colType,
		Nullable: nullable,
		Default:  defaultValue,
	}, nil
}

// NewIndex validates and creates an index from a catalog row.
func NewIndex(name string, columns []string, unique bool, indexType string) (*Index, error) {
	if name == "" {
		return nil, fmt.Errorf("index name must not be empty")
	}
	return &Index{
		Name:    name,
		Columns: columns,
		Unique:  unique,
		Type:    indexType,
	}, nil
}

// NewReferencedBy validates and creates an incoming-reference record.
func NewReferencedBy(table string, columns []string, constraint string) (*ReferencedBy, error) {
	if table == "" {
		return nil, fmt.Errorf("referencing table name must not be empty")
	}
	return &ReferencedBy{
		Table:      table,
		Columns:    columns,
		Constraint: constraint,
	}, nil
}
