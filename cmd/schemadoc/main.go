package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcampos/schemadoc"
	"github.com/lcampos/schemadoc/internal/config"
)

const defaultOutputFile = "tmp/schema_documentation.json"

var (
	dbURL      string
	mysqlURL   string
	sqlitePath string
	schemaName string
	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "schemadoc",
	Short: "Extract a database schema snapshot as JSON",
	Long: `Schemadoc introspects a relational database's catalog (schemas, tables,
columns, keys, indexes, reverse references) and writes a machine-readable
JSON snapshot for documentation and schema-diffing pipelines.

Connection parameters come from --db-url/--mysql-url/--sqlite, or from the
MY_DB_HOST, MY_DB_PORT, MY_DB_USER, MY_DB_PSW, MY_DB_DB_NAME and
MY_DB_SCHEMA_NAME environment variables (PostgreSQL only).`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Extract only this schema (default: all non-system schemas)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", defaultOutputFile, "Output file path")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	databaseURL, schemaFilter, err := resolveConnection(dbURL, mysqlURL, sqlitePath, schemaName)
	if err != nil {
		return err
	}

	opts := &schemadoc.Options{Schema: schemaFilter}
	if err := schemadoc.ExtractAndWrite(ctx, databaseURL, opts, outputFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "schema documentation written to %s\n", outputFile)
	return nil
}

// resolveConnection picks the database URL from the flags, falling back to
// the environment configuration for PostgreSQL. The schema filter from the
// --schema flag wins over MY_DB_SCHEMA_NAME.
func resolveConnection(dbURL, mysqlURL, sqlitePath, schemaFlag string) (databaseURL, schemaFilter string, err error) {
	urlCount := 0
	if dbURL != "" {
		urlCount++
	}
	if mysqlURL != "" {
		urlCount++
	}
	if sqlitePath != "" {
		urlCount++
	}
	if urlCount > 1 {
		return "", "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	switch {
	case sqlitePath != "":
		databaseURL = "sqlite://" + sqlitePath
	case mysqlURL != "":
		databaseURL = "mysql://" + mysqlURL
	case dbURL != "":
		databaseURL = dbURL
	default:
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return "", "", fmt.Errorf("no database flag given and environment configuration is incomplete: %w", err)
		}
		databaseURL = cfg.DatabaseURL()
		schemaFilter = cfg.SchemaFilter()
	}

	if schemaFlag != "" {
		schemaFilter = schemaFlag
	}

	return databaseURL, schemaFilter, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
