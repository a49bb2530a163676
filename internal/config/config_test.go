package config

import (
	"strings"
	"testing"
)

func TestIsSet(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "localhost", want: true},
		{value: "NONE", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsSet(tt.value); got != tt.want {
				t.Errorf("IsSet(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadDefaultsToUnset(t *testing.T) {
	for _, key := range []string{"MY_DB_HOST", "MY_DB_PORT", "MY_DB_USER", "MY_DB_PSW", "MY_DB_DB_NAME", "MY_DB_SCHEMA_NAME"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Host != Unset || cfg.Schema != Unset {
		t.Errorf("Expected unset values to carry the %q placeholder, got %+v", Unset, cfg)
	}
}

func TestValidateNamesMissingVariables(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     Unset,
		User:     "docs",
		Password: Unset,
		Database: "inventory",
		Schema:   Unset,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected an error for missing variables")
	}
	for _, want := range []string{"MY_DB_PORT", "MY_DB_PSW"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %s in error, got %q", want, err.Error())
		}
	}
	if strings.Contains(err.Error(), "MY_DB_HOST") {
		t.Errorf("Did not expect MY_DB_HOST in error, got %q", err.Error())
	}
}

func TestValidateSchemaOptional(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     "5432",
		User:     "docs",
		Password: "secret",
		Database: "inventory",
		Schema:   Unset,
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected the schema filter to be optional, got %v", err)
	}
	if cfg.SchemaFilter() != "" {
		t.Errorf("Expected empty filter for unset schema, got %q", cfg.SchemaFilter())
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		Host:     "db.example.com",
		Port:     "5432",
		User:     "docs",
		Password: "p@ss/word",
		Database: "inventory",
	}

	url := cfg.DatabaseURL()
	if !strings.HasPrefix(url, "postgres://") {
		t.Errorf("Expected a postgres:// URL, got %q", url)
	}
	if !strings.Contains(url, "db.example.com:5432") {
		t.Errorf("Expected host and port in URL, got %q", url)
	}
	if !strings.HasSuffix(url, "/inventory") {
		t.Errorf("Expected database path in URL, got %q", url)
	}
	if strings.Contains(url, "p@ss/word") {
		t.Errorf("Expected the password to be URL-encoded, got %q", url)
	}
}
