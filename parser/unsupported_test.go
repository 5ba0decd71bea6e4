package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedFeatures(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   []string
	}{
		{
			name:   "clean object schema",
			schema: "type: object\nproperties:\n  a: {type: string}",
			want:   nil,
		},
		{
			name:   "not",
			schema: "not: {type: string}",
			want:   []string{FeatureNot},
		},
		{
			name:   "conditional",
			schema: "if: {type: string}\nthen: {minLength: 1}",
			want:   []string{FeatureConditional},
		},
		{
			name:   "contains and propertyNames",
			schema: "contains: {type: string}\npropertyNames: {pattern: '^x'}",
			want:   []string{FeatureContains, FeaturePropertyNames},
		},
		{
			name:   "anyOf alone is fine",
			schema: "anyOf:\n  - {type: string}",
			want:   nil,
		},
		{
			name:   "anyOf mixed with properties",
			schema: "anyOf:\n  - {type: string}\nproperties:\n  a: {type: string}",
			want:   []string{FeatureAnyOfWithProperties},
		},
		{
			name:   "boolean additionalProperties is fine",
			schema: "additionalProperties: false",
			want:   nil,
		},
		{
			name:   "schema additionalProperties",
			schema: "additionalProperties: {type: string}",
			want:   []string{FeatureAdditionalPropsSchema},
		},
		{
			name:   "content keywords",
			schema: "contentEncoding: base64\ncontentMediaType: image/png",
			want:   []string{FeatureContentEncoding, FeatureContentMediaType},
		},
		{
			name:   "unevaluated keywords",
			schema: "unevaluatedProperties: false\nunevaluatedItems: false",
			want:   []string{FeatureUnevaluatedProps, FeatureUnevaluatedItems},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnsupportedFeatures(mustSchema(t, tt.schema)))
		})
	}

	t.Run("nil schema", func(t *testing.T) {
		assert.Nil(t, UnsupportedFeatures(nil))
	})
}
