// Package schemalens turns JSON Schema documents into flat, navigable
// property outlines for documentation tooling.
//
// schemalens takes an arbitrary (possibly self-referential) JSON Schema and
// derives the list of properties a documentation UI would display: regular
// properties, synthetic entries for patternProperties rules, and properties
// folded in through $ref and allOf composition. Traversal is guaranteed to
// terminate on cyclic or deeply nested schemas, and every property carries
// enough provenance (path, pattern origin, nesting depth) to support search,
// anchoring, and incremental expansion.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - parser: Parse JSON Schema documents (YAML or JSON) and resolve $ref /
//     allOf composition
//   - outline: Extract the flat property outline from a resolved schema
//   - search: Classify search hits against properties and their subtrees
//   - anchor: Convert between property paths and URL-fragment anchors,
//     and recover oneOf branch indexes from paths
//   - walker: Visit every schema node in a parsed document
//
// # Quick Start
//
// Parse a schema and extract its top-level properties:
//
//	import (
//		"github.com/schemalens/schemalens/outline"
//		"github.com/schemalens/schemalens/parser"
//	)
//
//	p := parser.New()
//	result, err := p.Parse("schema.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	props := outline.Extract(result.Root, nil, 0, result.Root, nil)
//	for _, prop := range props {
//		fmt.Printf("%s (%s)\n", prop.PathKey(), parser.TypeLabel(prop.Schema))
//	}
//
// Expand one level deeper by re-invoking Extract on a property:
//
//	children := outline.Extract(prop.Schema, prop.Path, prop.Depth+1,
//		result.Root, append(stack, prop.PathKey()))
//
// Classify a search hit:
//
//	import "github.com/schemalens/schemalens/search"
//
//	hit := search.Classify(prop, "timeout", result.Root)
//	if hit.Matches() {
//		// expand this property in the UI
//	}
//
// # Degrade-Gracefully Contract
//
// A documentation renderer must never crash on a pathological but realistic
// schema. Every malformed-input mode has a defined non-fatal fallback:
//
//   - Dangling $ref: the unresolved node is returned unchanged
//   - Reference cycles: the cyclic branch yields no children
//   - Excessive nesting: truncated at a hard depth ceiling
//   - Unsupported keywords (not, if/then/else, contains, propertyNames,
//     unevaluated*): reported as non-fatal warnings, extraction proceeds
//   - Malformed oneOf branch index in a path: defaults to branch 0
//
// Only genuine defects fail loud: passing a nil node where a schema is
// required, or a negative depth.
//
// # Command-Line Interface
//
// In addition to the library packages, schemalens provides a command-line
// interface:
//
//	# Print the property outline of a schema
//	schemalens outline schema.json
//
//	# Search a schema for matching properties
//	schemalens search timeout schema.json
//
//	# Dereference and expand a schema node
//	schemalens resolve --path server.tls schema.yaml
//
//	# Convert a property path to its anchor form and back
//	schemalens anchor --path 'sdk.(pattern-0).dependencies'
//
//	# Serve schemalens tools over the Model Context Protocol
//	schemalens mcp
//
// Install the CLI:
//
//	go install github.com/schemalens/schemalens/cmd/schemalens@latest
//
// # Additional Resources
//
//   - JSON Schema Specification: https://json-schema.org
//   - Go Package Documentation: https://pkg.go.dev/github.com/schemalens/schemalens
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in the
// repository for full details.
package schemalens
