package db

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalogErrorMessage(t *testing.T) {
	cause := errors.New("relation does not exist")
	err := &CatalogError{Schema: "sales", Table: "orders", Op: "index", Err: cause}

	msg := err.Error()
	for _, want := range []string{"sales", "orders", "index", "relation does not exist"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error message to contain %q, got %q", want, msg)
		}
	}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the underlying cause")
	}
}

func TestConnectionErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ConnectionError{Err: cause}

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the underlying cause")
	}
}
