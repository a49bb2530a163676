package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNewColumnValidation(t *testing.T) {
	tests := []struct {
		name    string
		colName string
		colType string
		wantErr bool
	}{
		{name: "valid column", colName: "id", colType: "integer", wantErr: false},
		{name: "empty name", colName: "", colType: "integer", wantErr: true},
		{name: "empty type", colName: "id", colType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColumn(tt.colName, tt.colType, false, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewColumn() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewIndexValidation(t *testing.T) {
	if _, err := NewIndex("", []string{"id"}, true, "btree"); err == nil {
		t.Error("Expected an error for an index without a name")
	}
	if _, err := NewIndex("orders_id_key", []string{"id"}, true, "btree"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewReferencedByValidation(t *testing.T) {
	if _, err := NewReferencedBy("", []string{"customer_id"}, "fk"); err == nil {
		t.Error("Expected an error for a reference without a table name")
	}
}

func TestJSONOmitsAbsentOptionalFields(t *testing.T) {
	col, err := NewColumn("id", "integer", false, nil)
	if err != nil {
		t.Fatalf("NewColumn failed: %v", err)
	}
	col.PrimaryKey = true

	table := NewTable()
	table.Columns["id"] = col

	model := NewDatabaseModel()
	model.Schemas["public"] = NewSchema()
	model.Schemas["public"].Tables["orders"] = table

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)

	// Absent optionals are omitted entirely, never emitted as null.
	for _, absent := range []string{"default", "foreign_key", "description", ": null"} {
		if strings.Contains(out, absent) {
			t.Errorf("Expected %q to be omitted from output:\n%s", absent, out)
		}
	}

	// Empty mappings still serialize as empty objects.
	if !strings.Contains(out, `"indexes": {}`) {
		t.Errorf("Expected empty indexes mapping as {}:\n%s", out)
	}
	if !strings.Contains(out, `"referenced_by": {}`) {
		t.Errorf("Expected empty referenced_by mapping as {}:\n%s", out)
	}

	// Required fields keep their attribute names verbatim.
	for _, required := range []string{`"name"`, `"type"`, `"nullable"`, `"primary_key"`} {
		if !strings.Contains(out, required) {
			t.Errorf("Expected %s in output:\n%s", required, out)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	def := "nextval('orders_id_seq'::regclass)"

	id, err := NewColumn("id", "integer", false, &def)
	if err != nil {
		t.Fatalf("NewColumn failed: %v", err)
	}
	id.PrimaryKey = true

	customerID, err := NewColumn("customer_id", "integer", false, nil)
	if err != nil {
		t.Fatalf("NewColumn failed: %v", err)
	}
	customerID.ForeignKey = &ForeignKey{
		TargetTable:    "customers",
		TargetColumn:   "id",
		ConstraintName: "orders_customer_id_fkey",
	}

	index, err := NewIndex("orders_customer_id_idx", []string{"customer_id"}, false, "btree")
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	ref, err := NewReferencedBy("order_items", []string{"order_id"}, "order_items_order_id_fkey")
	if err != nil {
		t.Fatalf("NewReferencedBy failed: %v", err)
	}

	table := NewTable()
	table.Columns["id"] = id
	table.Columns["customer_id"] = customerID
	table.Indexes["orders_customer_id_idx"] = index
	table.ReferencedBy["order_items"] = ref

	model := NewDatabaseModel()
	model.Schemas["public"] = NewSchema()
	model.Schemas["public"].Tables["orders"] = table

	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var restored DatabaseModel
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(model, &restored) {
		t.Errorf("Round trip changed the model.\noriginal: %+v\nrestored: %+v", model, &restored)
	}
}
