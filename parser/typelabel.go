package parser

import "strings"

// SchemaTypes returns the type(s) from a schema, handling both the string
// and array representations of the type keyword.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func SchemaTypes(s *Schema) []string {
	if s == nil {
		return nil
	}
	switch t := s.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// PrimaryType returns the first non-null type from a schema.
// Returns an empty string if the schema is nil or has no types.
func PrimaryType(s *Schema) string {
	types := SchemaTypes(s)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// TypeLabel computes a human-readable type string for a schema, the form
// shown next to a property in rendered documentation and matched against
// search queries.
//
// Examples: "string", "string | null", "array of integer", "object",
// "oneOf", "enum".
func TypeLabel(s *Schema) string {
	if s == nil {
		return ""
	}

	types := SchemaTypes(s)
	if len(types) == 1 && types[0] == "array" {
		if item := s.ItemsSchema(); item != nil {
			if inner := TypeLabel(item); inner != "" {
				return "array of " + inner
			}
		}
		return "array"
	}
	if len(types) > 0 {
		return strings.Join(types, " | ")
	}

	// No explicit type; fall back to what the shape implies.
	switch {
	case s.Properties.Len() > 0 || s.PatternProperties.Len() > 0:
		return "object"
	case len(s.Enum) > 0:
		return "enum"
	case s.Const != nil:
		return "const"
	case len(s.OneOf) > 0:
		return "oneOf"
	case len(s.AnyOf) > 0:
		return "anyOf"
	case len(s.AllOf) > 0:
		return "allOf"
	case s.Ref != "":
		return "reference"
	}
	return ""
}
