// Package config loads the database connection parameters from the
// environment. Every parameter is a plain string; the literal placeholder
// "NONE" marks a value the surrounding tooling left unset, so
// misconfiguration is diagnosed instead of silently attempted.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Unset is the placeholder the surrounding tooling uses for a missing value.
const Unset = "NONE"

// Config holds the environment-derived connection parameters.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// Load reads configuration from a .env file (if present) and environment
// variables. Unset variables keep the Unset placeholder.
func Load() *Config {
	// Load .env file if it exists (silently ignore if missing)
	_ = godotenv.Load()

	return &Config{
		Host:     getenv("MY_DB_HOST"),
		Port:     getenv("MY_DB_PORT"),
		User:     getenv("MY_DB_USER"),
		Password: getenv("MY_DB_PSW"),
		Database: getenv("MY_DB_DB_NAME"),
		Schema:   getenv("MY_DB_SCHEMA_NAME"),
	}
}

func getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return Unset
}

// IsSet reports whether a configuration value carries a real setting rather
// than the Unset placeholder.
func IsSet(v string) bool {
	return v != "" && v != Unset
}

// Validate checks that every connection parameter except the optional
// schema filter is set, naming the missing environment variables.
func (c *Config) Validate() error {
	var missing []string
	if !IsSet(c.Host) {
		missing = append(missing, "MY_DB_HOST")
	}
	if !IsSet(c.Port) {
		missing = append(missing, "MY_DB_PORT")
	}
	if !IsSet(c.User) {
		missing = append(missing, "MY_DB_USER")
	}
	if !IsSet(c.Password) {
		missing = append(missing, "MY_DB_PSW")
	}
	if !IsSet(c.Database) {
		missing = append(missing, "MY_DB_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DatabaseURL builds a PostgreSQL connection URL from the parameters.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

// SchemaFilter returns the target schema filter, or "" when every
// non-system schema should be extracted.
func (c *Config) SchemaFilter() string {
	if !IsSet(c.Schema) {
		return ""
	}
	return c.Schema
}
