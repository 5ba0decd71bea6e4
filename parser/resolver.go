package parser

import (
	"strconv"
	"strings"
)

// Diagnostic records why a resolution step degraded instead of fully
// expanding. The resolver itself never fails; diagnostics exist so tests and
// warning surfaces can observe what the silent-degrade contract swallowed.
type Diagnostic struct {
	// Ref is the $ref string involved, if any
	Ref string
	// Message describes what went wrong
	Message string
}

// ResolveSchema expands a schema node's own composition one level: a
// root-relative $ref pointer is dereferenced and merged, and allOf entries
// are folded in (recursively for nested allOf and for chained references).
//
// The function is pure and total. It never mutates its arguments and never
// fails: an unresolvable reference degrades by returning the original node
// unchanged. There is no depth limit here; the traversal layers above bound
// indirect self-reference with their recursion guards.
//
// Merge semantics:
//
//   - $ref: the referenced target's fields form the base and the original
//     node's explicitly set fields (except $ref itself) win over them, so a
//     local description overrides the target's.
//   - allOf: entries are resolved then folded left to right. properties and
//     patternProperties are unioned with later entries overwriting same-named
//     keys; required lists are unioned and deduplicated; every other field is
//     kept from whichever entry set it first. allOf is removed from the output.
func ResolveSchema(node, root *Schema) *Schema {
	resolved, _ := ResolveSchemaDetail(node, root)
	return resolved
}

// ResolveSchemaDetail is ResolveSchema with the degrade diagnostics exposed.
func ResolveSchemaDetail(node, root *Schema) (*Schema, []Diagnostic) {
	return resolveDetail(node, root, nil)
}

// resolveDetail carries the set of $ref strings currently being expanded so
// that a reference chain looping back on itself degrades instead of
// recursing forever. This guards ref-to-ref cycles only; cycles through
// property nesting are the extractor's concern.
func resolveDetail(node, root *Schema, resolving map[string]bool) (*Schema, []Diagnostic) {
	if node == nil {
		return nil, nil
	}

	if node.Ref != "" {
		if resolving[node.Ref] {
			return node, []Diagnostic{{Ref: node.Ref, Message: "circular reference chain"}}
		}

		target, reason := walkPointer(root, node.Ref)
		if target == nil {
			return node, []Diagnostic{{Ref: node.Ref, Message: reason}}
		}

		if resolving == nil {
			resolving = make(map[string]bool)
		}
		resolving[node.Ref] = true
		defer delete(resolving, node.Ref)

		merged := overlayRef(node, target)
		if merged.Ref != "" {
			// The target was itself a reference; keep expanding the chain.
			return resolveDetail(merged, root, resolving)
		}
		if len(merged.AllOf) > 0 {
			return mergeAllOf(merged, root, resolving)
		}
		return merged, nil
	}

	if len(node.AllOf) > 0 {
		return mergeAllOf(node, root, resolving)
	}

	return node, nil
}

// overlayRef merges a referencing node with its pointer target: the target
// is the base, and every field the original node explicitly set (except
// $ref) is overlaid on top.
func overlayRef(orig, target *Schema) *Schema {
	out := target.Clone()
	overlaySet(out, orig)
	return out
}

// mergeAllOf folds a node's allOf entries into a single derived node.
// The node's own fields count as already set, so they win over entries for
// non-collection fields and seed the property unions.
func mergeAllOf(node, root *Schema, resolving map[string]bool) (*Schema, []Diagnostic) {
	out := node.Clone()
	out.AllOf = nil

	var diags []Diagnostic
	for _, entry := range node.AllOf {
		if entry == nil {
			continue
		}
		resolved, d := resolveDetail(entry, root, resolving)
		diags = append(diags, d...)
		if resolved == nil {
			continue
		}

		// properties and patternProperties: last writer wins per key.
		if resolved.Properties.Len() > 0 {
			if out.Properties == nil {
				out.Properties = NewSchemaMap()
			}
			for k, v := range resolved.Properties.All() {
				out.Properties.Set(k, v)
			}
		}
		if resolved.PatternProperties.Len() > 0 {
			if out.PatternProperties == nil {
				out.PatternProperties = NewSchemaMap()
			}
			for k, v := range resolved.PatternProperties.All() {
				out.PatternProperties.Set(k, v)
			}
		}

		// required: union, deduplicated.
		for _, r := range resolved.Required {
			if !out.IsRequired(r) {
				out.Required = append(out.Required, r)
			}
		}

		// everything else: first writer wins.
		fillMissing(out, resolved)
	}

	return out, diags
}

// overlaySet copies every explicitly set field of src onto dst, except $ref.
// Unset detection is zero-value based, so a bare `deprecated: false` cannot
// be distinguished from an absent keyword; this matches the weakly-typed
// source model.
func overlaySet(dst, src *Schema) {
	if src.SchemaURI != "" {
		dst.SchemaURI = src.SchemaURI
	}
	if src.ID != "" {
		dst.ID = src.ID
	}
	if src.Comment != "" {
		dst.Comment = src.Comment
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Default != nil {
		dst.Default = src.Default
	}
	if len(src.Examples) > 0 {
		dst.Examples = src.Examples
	}
	if src.Deprecated {
		dst.Deprecated = true
	}
	if src.Type != nil {
		dst.Type = src.Type
	}
	if len(src.Enum) > 0 {
		dst.Enum = src.Enum
	}
	if src.Const != nil {
		dst.Const = src.Const
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.MultipleOf != nil {
		dst.MultipleOf = src.MultipleOf
	}
	if src.Maximum != nil {
		dst.Maximum = src.Maximum
	}
	if src.ExclusiveMaximum != nil {
		dst.ExclusiveMaximum = src.ExclusiveMaximum
	}
	if src.Minimum != nil {
		dst.Minimum = src.Minimum
	}
	if src.ExclusiveMinimum != nil {
		dst.ExclusiveMinimum = src.ExclusiveMinimum
	}
	if src.MaxLength != nil {
		dst.MaxLength = src.MaxLength
	}
	if src.MinLength != nil {
		dst.MinLength = src.MinLength
	}
	if src.Pattern != "" {
		dst.Pattern = src.Pattern
	}
	if src.Items != nil {
		dst.Items = src.Items
	}
	if src.MaxItems != nil {
		dst.MaxItems = src.MaxItems
	}
	if src.MinItems != nil {
		dst.MinItems = src.MinItems
	}
	if src.UniqueItems {
		dst.UniqueItems = true
	}
	if src.Contains != nil {
		dst.Contains = src.Contains
	}
	if src.Properties.Len() > 0 {
		dst.Properties = src.Properties.Clone()
	}
	if src.PatternProperties.Len() > 0 {
		dst.PatternProperties = src.PatternProperties.Clone()
	}
	if src.AdditionalProperties != nil {
		dst.AdditionalProperties = src.AdditionalProperties
	}
	if len(src.Required) > 0 {
		dst.Required = append([]string(nil), src.Required...)
	}
	if src.PropertyNames != nil {
		dst.PropertyNames = src.PropertyNames
	}
	if src.MaxProperties != nil {
		dst.MaxProperties = src.MaxProperties
	}
	if src.MinProperties != nil {
		dst.MinProperties = src.MinProperties
	}
	if src.If != nil {
		dst.If = src.If
	}
	if src.Then != nil {
		dst.Then = src.Then
	}
	if src.Else != nil {
		dst.Else = src.Else
	}
	if len(src.AllOf) > 0 {
		dst.AllOf = append([]*Schema(nil), src.AllOf...)
	}
	if len(src.AnyOf) > 0 {
		dst.AnyOf = src.AnyOf
	}
	if len(src.OneOf) > 0 {
		dst.OneOf = src.OneOf
	}
	if src.Not != nil {
		dst.Not = src.Not
	}
	if src.Definitions.Len() > 0 {
		dst.Definitions = src.Definitions
	}
	if src.Defs.Len() > 0 {
		dst.Defs = src.Defs
	}
	if src.ContentEncoding != "" {
		dst.ContentEncoding = src.ContentEncoding
	}
	if src.ContentMediaType != "" {
		dst.ContentMediaType = src.ContentMediaType
	}
	if src.UnevaluatedProperties != nil {
		dst.UnevaluatedProperties = src.UnevaluatedProperties
	}
	if src.UnevaluatedItems != nil {
		dst.UnevaluatedItems = src.UnevaluatedItems
	}
	if src.PatternDerived {
		dst.PatternDerived = true
	}
	if src.OriginPattern != "" {
		dst.OriginPattern = src.OriginPattern
	}
	for k, v := range src.Extra {
		if dst.Extra == nil {
			dst.Extra = make(map[string]any, len(src.Extra))
		}
		dst.Extra[k] = v
	}
}

// fillMissing copies src's set fields onto dst only where dst has not set
// them. Collection fields with dedicated merge rules (properties,
// patternProperties, required, allOf) are skipped.
func fillMissing(dst, src *Schema) {
	if dst.SchemaURI == "" {
		dst.SchemaURI = src.SchemaURI
	}
	if dst.ID == "" {
		dst.ID = src.ID
	}
	if dst.Comment == "" {
		dst.Comment = src.Comment
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Default == nil {
		dst.Default = src.Default
	}
	if len(dst.Examples) == 0 {
		dst.Examples = src.Examples
	}
	if !dst.Deprecated {
		dst.Deprecated = src.Deprecated
	}
	if dst.Type == nil {
		dst.Type = src.Type
	}
	if len(dst.Enum) == 0 {
		dst.Enum = src.Enum
	}
	if dst.Const == nil {
		dst.Const = src.Const
	}
	if dst.Format == "" {
		dst.Format = src.Format
	}
	if dst.MultipleOf == nil {
		dst.MultipleOf = src.MultipleOf
	}
	if dst.Maximum == nil {
		dst.Maximum = src.Maximum
	}
	if dst.ExclusiveMaximum == nil {
		dst.ExclusiveMaximum = src.ExclusiveMaximum
	}
	if dst.Minimum == nil {
		dst.Minimum = src.Minimum
	}
	if dst.ExclusiveMinimum == nil {
		dst.ExclusiveMinimum = src.ExclusiveMinimum
	}
	if dst.MaxLength == nil {
		dst.MaxLength = src.MaxLength
	}
	if dst.MinLength == nil {
		dst.MinLength = src.MinLength
	}
	if dst.Pattern == "" {
		dst.Pattern = src.Pattern
	}
	if dst.Items == nil {
		dst.Items = src.Items
	}
	if dst.MaxItems == nil {
		dst.MaxItems = src.MaxItems
	}
	if dst.MinItems == nil {
		dst.MinItems = src.MinItems
	}
	if !dst.UniqueItems {
		dst.UniqueItems = src.UniqueItems
	}
	if dst.Contains == nil {
		dst.Contains = src.Contains
	}
	if dst.AdditionalProperties == nil {
		dst.AdditionalProperties = src.AdditionalProperties
	}
	if dst.PropertyNames == nil {
		dst.PropertyNames = src.PropertyNames
	}
	if dst.MaxProperties == nil {
		dst.MaxProperties = src.MaxProperties
	}
	if dst.MinProperties == nil {
		dst.MinProperties = src.MinProperties
	}
	if dst.If == nil {
		dst.If = src.If
	}
	if dst.Then == nil {
		dst.Then = src.Then
	}
	if dst.Else == nil {
		dst.Else = src.Else
	}
	if len(dst.AnyOf) == 0 {
		dst.AnyOf = src.AnyOf
	}
	if len(dst.OneOf) == 0 {
		dst.OneOf = src.OneOf
	}
	if dst.Not == nil {
		dst.Not = src.Not
	}
	if dst.Definitions.Len() == 0 && src.Definitions.Len() > 0 {
		dst.Definitions = src.Definitions
	}
	if dst.Defs.Len() == 0 && src.Defs.Len() > 0 {
		dst.Defs = src.Defs
	}
	if dst.ContentEncoding == "" {
		dst.ContentEncoding = src.ContentEncoding
	}
	if dst.ContentMediaType == "" {
		dst.ContentMediaType = src.ContentMediaType
	}
	if dst.UnevaluatedProperties == nil {
		dst.UnevaluatedProperties = src.UnevaluatedProperties
	}
	if dst.UnevaluatedItems == nil {
		dst.UnevaluatedItems = src.UnevaluatedItems
	}
	for k, v := range src.Extra {
		if dst.Extra == nil {
			dst.Extra = make(map[string]any, len(src.Extra))
		}
		if _, ok := dst.Extra[k]; !ok {
			dst.Extra[k] = v
		}
	}
}

// walkPointer dereferences a root-relative JSON pointer ("#/a/b/0") against
// the document root. It returns the target schema, or nil plus a reason when
// any segment is missing or lands on something that is not a schema.
func walkPointer(root *Schema, ref string) (*Schema, string) {
	if root == nil {
		return nil, "no root document"
	}
	if ref == "#" || ref == "#/" {
		return root, ""
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, "not a root-relative pointer"
	}

	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	var cursor any = root
	for _, raw := range segments {
		seg := unescapeJSONPointer(raw)
		switch c := cursor.(type) {
		case *Schema:
			next, ok := schemaChild(c, seg)
			if !ok {
				return nil, "missing segment: " + seg
			}
			cursor = next
		case *SchemaMap:
			next, ok := c.Get(seg)
			if !ok {
				return nil, "missing key: " + seg
			}
			cursor = next
		case []*Schema:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, "invalid index: " + seg
			}
			cursor = c[idx]
		default:
			return nil, "cannot traverse into segment: " + seg
		}
	}

	target, ok := cursor.(*Schema)
	if !ok || target == nil {
		return nil, "pointer target is not a schema"
	}
	return target, ""
}

// schemaChild indexes one pointer segment into a schema node.
func schemaChild(s *Schema, seg string) (any, bool) {
	switch seg {
	case "definitions":
		return s.Definitions, s.Definitions != nil
	case "$defs":
		return s.Defs, s.Defs != nil
	case "properties":
		return s.Properties, s.Properties != nil
	case "patternProperties":
		return s.PatternProperties, s.PatternProperties != nil
	case "items":
		switch items := s.Items.(type) {
		case *Schema:
			return items, true
		case []*Schema:
			return items, true
		}
		return nil, false
	case "additionalProperties":
		sub := s.AdditionalPropertiesSchema()
		return sub, sub != nil
	case "allOf":
		return s.AllOf, len(s.AllOf) > 0
	case "anyOf":
		return s.AnyOf, len(s.AnyOf) > 0
	case "oneOf":
		return s.OneOf, len(s.OneOf) > 0
	case "not":
		return s.Not, s.Not != nil
	case "if":
		return s.If, s.If != nil
	case "then":
		return s.Then, s.Then != nil
	case "else":
		return s.Else, s.Else != nil
	case "contains":
		return s.Contains, s.Contains != nil
	case "propertyNames":
		return s.PropertyNames, s.PropertyNames != nil
	}
	return nil, false
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
