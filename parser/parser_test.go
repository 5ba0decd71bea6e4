package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/lenserrors"
)

const sampleSchemaYAML = `
$schema: https://json-schema.org/draft/2020-12/schema
type: object
description: Top-level application configuration
properties:
  name:
    type: string
  server:
    $ref: "#/definitions/server"
definitions:
  server:
    type: object
    properties:
      host: {type: string}
      port: {type: integer}
`

func writeTempSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParser_ParseYAMLFile(t *testing.T) {
	path := writeTempSchema(t, "config.yaml", sampleSchemaYAML)

	result, err := New().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	require.NotNil(t, result.Root)
	assert.Equal(t, []string{"name", "server"}, result.Root.Properties.Keys())
	assert.Equal(t, int64(len(sampleSchemaYAML)), result.SourceSize)
	assert.Positive(t, result.Stats.SchemaCount)
	assert.Equal(t, 1, result.Stats.RefCount)
	assert.Equal(t, 1, result.Stats.DefinitionCount)
}

func TestParser_ParseJSONFile(t *testing.T) {
	path := writeTempSchema(t, "config.json",
		`{"type": "object", "properties": {"id": {"type": "integer"}}}`)

	result, err := New().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, []string{"id"}, result.Root.Properties.Keys())
}

func TestParser_ParseBytesDetectsFormat(t *testing.T) {
	result, err := New().ParseBytes([]byte(`{"type": "string"}`))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)

	result, err = New().ParseBytes([]byte("type: string\n"))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
}

func TestParser_ParseReader(t *testing.T) {
	result, err := New().ParseReader(strings.NewReader(sampleSchemaYAML))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, []string{"name", "server"}, result.Root.Properties.Keys())
}

func TestParser_MissingFile(t *testing.T) {
	_, err := New().Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lenserrors.ErrParse))
}

func TestParser_InvalidDocument(t *testing.T) {
	_, err := New().ParseBytes([]byte("type: [unclosed"))
	require.Error(t, err)

	var parseErr *lenserrors.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParser_FileSizeLimit(t *testing.T) {
	p := New()
	p.MaxFileSize = 16

	_, err := p.ParseBytes([]byte(strings.Repeat("a: b\n", 100)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lenserrors.ErrResourceLimit))
}

func TestParser_UnsupportedFeatureWarnings(t *testing.T) {
	result, err := New().ParseBytes([]byte(`
type: object
properties:
  data:
    contentEncoding: base64
  choice:
    not: {type: string}
`))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "$.properties.data")
	assert.Contains(t, result.Warnings[0], "contentEncoding")
	assert.Contains(t, result.Warnings[1], "$.properties.choice")
	assert.Contains(t, result.Warnings[1], "not")
}

func TestCollectStats_Depth(t *testing.T) {
	result, err := New().ParseBytes([]byte(`
type: object
properties:
  a:
    type: object
    properties:
      b:
        type: array
        items: {type: string}
`))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.SchemaCount)
	assert.Equal(t, 2, result.Stats.PropertyCount)
	assert.Equal(t, 3, result.Stats.MaxNestingDepth)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{size: 0, want: "0 B"},
		{size: 512, want: "512 B"},
		{size: 2048, want: "2.0 KiB"},
		{size: 5 * 1024 * 1024, want: "5.0 MiB"},
		{size: -1, want: "-1 B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.size))
	}
}
