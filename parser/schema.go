package parser

import (
	"go.yaml.in/yaml/v4"
)

// Schema represents a JSON Schema node.
// The model covers the vocabulary the outline engine consumes; keywords it
// does not understand are preserved in Extra so documents round-trip.
type Schema struct {
	// JSON Schema Core
	Ref       string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	SchemaURI string `yaml:"$schema,omitempty" json:"$schema,omitempty"`
	ID        string `yaml:"$id,omitempty" json:"$id,omitempty"`
	Comment   string `yaml:"$comment,omitempty" json:"$comment,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Type validation
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"` // string or []any
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const  any    `yaml:"const,omitempty" json:"const,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in old drafts, number in 2020-12
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       any     `yaml:"items,omitempty" json:"items,omitempty"` // *Schema, []*Schema (tuple form), or bool
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Contains    *Schema `yaml:"contains,omitempty" json:"contains,omitempty"`

	// Object validation
	Properties           *SchemaMap `yaml:"properties,omitempty" json:"properties,omitempty"`
	PatternProperties    *SchemaMap `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	AdditionalProperties any        `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	Required             []string   `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames        *Schema    `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"`
	MaxProperties        *int       `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int       `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Conditional schemas
	If   *Schema `yaml:"if,omitempty" json:"if,omitempty"`
	Then *Schema `yaml:"then,omitempty" json:"then,omitempty"`
	Else *Schema `yaml:"else,omitempty" json:"else,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// Definition containers
	Definitions *SchemaMap `yaml:"definitions,omitempty" json:"definitions,omitempty"`
	Defs        *SchemaMap `yaml:"$defs,omitempty" json:"$defs,omitempty"`

	// Content keywords (flagged as unsupported, preserved for round-trips)
	ContentEncoding  string `yaml:"contentEncoding,omitempty" json:"contentEncoding,omitempty"`
	ContentMediaType string `yaml:"contentMediaType,omitempty" json:"contentMediaType,omitempty"`

	// Draft 2020-12 evaluation keywords (flagged as unsupported)
	UnevaluatedProperties any `yaml:"unevaluatedProperties,omitempty" json:"unevaluatedProperties,omitempty"`
	UnevaluatedItems      any `yaml:"unevaluatedItems,omitempty" json:"unevaluatedItems,omitempty"`

	// Pattern provenance. Stamped by the outline extractor onto a copy of a
	// resolved node that originates from a patternProperties rule; never
	// part of the source document.
	PatternDerived bool   `yaml:"-" json:"patternDerived,omitempty"`
	OriginPattern  string `yaml:"-" json:"originPattern,omitempty"`

	// Extra captures keywords outside the modeled vocabulary
	Extra map[string]any `yaml:",inline" json:"-"`
}

// schemaAlias breaks UnmarshalYAML recursion while reusing struct tags.
type schemaAlias Schema

// UnmarshalYAML decodes a schema node, then re-decodes the keywords whose Go
// type is `any` but whose value may be a subschema (items,
// additionalProperties, unevaluated*) so they hold *Schema values instead of
// generic maps.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	// yaml v4 passes the DocumentNode wrapper when the Schema is the
	// top-level unmarshal target; unwrap it so the keyword scan below sees
	// the mapping node, as it does for nested schemas.
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	var a schemaAlias
	if err := node.Decode(&a); err != nil {
		return err
	}
	*s = Schema(a)

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "items":
			v, err := decodeSchemaOrBool(value, true)
			if err != nil {
				return err
			}
			s.Items = v
		case "additionalProperties", "unevaluatedProperties", "unevaluatedItems":
			v, err := decodeSchemaOrBool(value, false)
			if err != nil {
				return err
			}
			switch key {
			case "additionalProperties":
				s.AdditionalProperties = v
			case "unevaluatedProperties":
				s.UnevaluatedProperties = v
			case "unevaluatedItems":
				s.UnevaluatedItems = v
			}
		}
	}
	return nil
}

// decodeSchemaOrBool decodes a value that is either a subschema or a boolean.
// When allowTuple is set, a sequence decodes to []*Schema (pre-2020-12 tuple
// form of items).
func decodeSchemaOrBool(node *yaml.Node, allowTuple bool) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		var sub Schema
		if err := node.Decode(&sub); err != nil {
			return nil, err
		}
		return &sub, nil
	case yaml.SequenceNode:
		if allowTuple {
			var subs []*Schema
			if err := node.Decode(&subs); err != nil {
				return nil, err
			}
			return subs, nil
		}
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err == nil {
			return b, nil
		}
	}
	// Fall back to generic decoding for anything else.
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ItemsSchema returns the items keyword as a single subschema, or nil when
// items is absent, boolean, or in tuple form.
func (s *Schema) ItemsSchema() *Schema {
	if s == nil {
		return nil
	}
	if sub, ok := s.Items.(*Schema); ok {
		return sub
	}
	return nil
}

// AdditionalPropertiesSchema returns the additionalProperties keyword as a
// subschema, or nil when it is absent or boolean.
func (s *Schema) AdditionalPropertiesSchema() *Schema {
	if s == nil {
		return nil
	}
	if sub, ok := s.AdditionalProperties.(*Schema); ok {
		return sub
	}
	return nil
}

// IsRequired reports whether name appears in the schema's required list.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Clone returns a copy of the schema safe for the resolver to mutate.
// Collection fields the merge algorithms write into (properties,
// patternProperties, required, extra) are copied one level deep; subschema
// pointers are shared, matching the derived-node model where resolution
// produces new containers over the same immutable leaves.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Properties = s.Properties.Clone()
	out.PatternProperties = s.PatternProperties.Clone()
	if s.Required != nil {
		out.Required = make([]string, len(s.Required))
		copy(out.Required, s.Required)
	}
	if s.AllOf != nil {
		out.AllOf = make([]*Schema, len(s.AllOf))
		copy(out.AllOf, s.AllOf)
	}
	if s.Examples != nil {
		out.Examples = make([]any, len(s.Examples))
		copy(out.Examples, s.Examples)
	}
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}
