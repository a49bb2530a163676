//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/lcampos/schemadoc/internal/db"
)

func mysqlTestURL() string {
	if url := os.Getenv("MYSQL_TEST_URL"); url != "" {
		return url
	}
	return "testuser:testpassword@tcp(localhost:3306)/testdb"
}

func TestMySQLExtraction(t *testing.T) {
	ctx := context.Background()

	client, err := db.NewMySQLClient(ctx, mysqlTestURL())
	if err != nil {
		t.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer client.Close()

	extractor := db.NewExtractor(db.NewMySQLCatalog(client))

	model, err := extractor.Extract(ctx, "testdb")
	if err != nil {
		t.Fatalf("Failed to extract model: %v", err)
	}

	verifyTablesExist(t, model, "testdb", []string{"users", "products", "orders", "order_items"})

	users := findTable(t, model, "testdb", "users")
	verifyPrimaryKey(t, users, []string{"id"})

	// MySQL reports the implicit primary-key index literally as "PRIMARY";
	// it must be filtered from the named indexes.
	verifyNoPrimarySentinel(t, users)

	orders := findTable(t, model, "testdb", "orders")
	verifyForeignKey(t, orders, "user_id", "users", "id")
	verifyReferencedBy(t, users, "orders")
}

func TestMySQLIndexType(t *testing.T) {
	ctx := context.Background()

	client, err := db.NewMySQLClient(ctx, mysqlTestURL())
	if err != nil {
		t.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer client.Close()

	model, err := db.NewExtractor(db.NewMySQLCatalog(client)).Extract(ctx, "testdb")
	if err != nil {
		t.Fatalf("Failed to extract model: %v", err)
	}

	users := findTable(t, model, "testdb", "users")
	for name, idx := range users.Indexes {
		if idx.Type != "btree" {
			t.Errorf("Index %s: expected lower-cased btree type, got %q", name, idx.Type)
		}
	}
}
