// Package testutil provides test utilities and fixtures for unit and
// integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	yaml "go.yaml.in/yaml/v4"

	"github.com/schemalens/schemalens/parser"
)

// MustSchema decodes a YAML or JSON schema literal, failing the test on
// decode errors.
func MustSchema(t *testing.T, doc string) *parser.Schema {
	t.Helper()
	var s parser.Schema
	if err := yaml.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("decoding schema fixture: %v", err)
	}
	return &s
}

// MustParseFile parses a schema document from disk, failing the test on
// parse errors.
func MustParseFile(t *testing.T, path string) *parser.ParseResult {
	t.Helper()
	result, err := parser.New().Parse(path)
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return result
}

// WriteSchemaFile writes a schema document to a temp file and returns
// its path. The file is removed with the test's temp dir.
func WriteSchemaFile(t *testing.T, name, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing schema fixture: %v", err)
	}
	return path
}

// NewServiceConfigSchema builds the shared service-config document in Go
// literals: a root object with a required server property, a $ref to a
// definition, and a patternProperties rule.
func NewServiceConfigSchema() *parser.Schema {
	host := &parser.Schema{
		Type:        "string",
		Description: "Hostname to bind.",
		Examples:    []any{"localhost"},
	}
	port := &parser.Schema{Type: "integer", Default: 8080}

	server := &parser.Schema{
		Type:        "object",
		Description: "Network server settings.",
		Required:    []string{"host"},
	}
	server.Properties = &parser.SchemaMap{}
	server.Properties.Set("host", host)
	server.Properties.Set("port", port)

	pluginRule := &parser.Schema{Type: "object", Description: "Plugin settings keyed by name."}

	plugins := &parser.Schema{Type: "object"}
	plugins.PatternProperties = &parser.SchemaMap{}
	plugins.PatternProperties.Set("^[a-z-]+$", pluginRule)

	logger := &parser.Schema{Type: "object", Description: "Log output settings."}

	root := &parser.Schema{
		Title:    "Service Config",
		Type:     "object",
		Required: []string{"server"},
	}
	root.Properties = &parser.SchemaMap{}
	root.Properties.Set("server", server)
	root.Properties.Set("logging", &parser.Schema{Ref: "#/definitions/logger"})
	root.Properties.Set("plugins", plugins)
	root.Definitions = &parser.SchemaMap{}
	root.Definitions.Set("logger", logger)
	return root
}
