package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaTypes(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   []string
	}{
		{name: "single type", schema: `type: string`, want: []string{"string"}},
		{name: "type list", schema: `type: [string, "null"]`, want: []string{"string", "null"}},
		{name: "no type", schema: `description: untyped`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SchemaTypes(mustSchema(t, tt.schema)))
		})
	}

	t.Run("nil schema", func(t *testing.T) {
		assert.Nil(t, SchemaTypes(nil))
	})
}

func TestPrimaryType(t *testing.T) {
	assert.Equal(t, "string", PrimaryType(mustSchema(t, `type: [ "null", string ]`)))
	assert.Equal(t, "null", PrimaryType(mustSchema(t, `type: "null"`)))
	assert.Equal(t, "", PrimaryType(nil))
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{name: "scalar", schema: `type: string`, want: "string"},
		{name: "union", schema: `type: [string, number]`, want: "string | number"},
		{name: "array of scalar", schema: "type: array\nitems: {type: integer}", want: "array of integer"},
		{name: "array without items", schema: `type: array`, want: "array"},
		{name: "implied object", schema: "properties:\n  a: {type: string}", want: "object"},
		{name: "enum", schema: `enum: [a, b]`, want: "enum"},
		{name: "oneOf", schema: "oneOf:\n  - {type: string}", want: "oneOf"},
		{name: "reference", schema: `$ref: "#/definitions/x"`, want: "reference"},
		{name: "empty", schema: `description: nothing typed`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeLabel(mustSchema(t, tt.schema)))
		})
	}

	t.Run("nil schema", func(t *testing.T) {
		assert.Equal(t, "", TypeLabel(nil))
	})
}
