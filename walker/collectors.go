package walker

import (
	"github.com/schemalens/schemalens/parser"
)

// SchemaInfo contains information about a collected schema.
type SchemaInfo struct {
	// Schema is the collected schema.
	Schema *parser.Schema

	// Name is the map key for named schemas (properties, pattern rules,
	// definitions). Empty for the root, array items, and composition
	// branches.
	Name string

	// JSONPath is the full JSON path to the schema.
	JSONPath string

	// IsDefinition is true when the schema sits under definitions or $defs.
	IsDefinition bool
}

// SchemaCollector holds schemas collected during a walk.
type SchemaCollector struct {
	// All contains all schemas in traversal order.
	All []*SchemaInfo

	// Definitions contains only schemas under definitions or $defs.
	Definitions []*SchemaInfo

	// Inline contains only inline schemas.
	Inline []*SchemaInfo

	// ByPath provides lookup by JSON path.
	ByPath map[string]*SchemaInfo

	// ByName provides lookup by name for named schemas.
	// If multiple schemas share a name, only the last one is stored.
	ByName map[string]*SchemaInfo
}

// CollectSchemas walks the document and collects all schemas.
func CollectSchemas(root *parser.Schema) (*SchemaCollector, error) {
	collector := &SchemaCollector{
		All:         make([]*SchemaInfo, 0),
		Definitions: make([]*SchemaInfo, 0),
		Inline:      make([]*SchemaInfo, 0),
		ByPath:      make(map[string]*SchemaInfo),
		ByName:      make(map[string]*SchemaInfo),
	}

	err := Walk(root,
		WithSchemaHandler(func(wc *WalkContext, schema *parser.Schema) Action {
			info := &SchemaInfo{
				Schema:       schema,
				Name:         wc.Name,
				JSONPath:     wc.JSONPath,
				IsDefinition: wc.IsDefinition,
			}

			collector.All = append(collector.All, info)
			collector.ByPath[wc.JSONPath] = info
			if wc.Name != "" {
				collector.ByName[wc.Name] = info
			}

			if wc.IsDefinition {
				collector.Definitions = append(collector.Definitions, info)
			} else {
				collector.Inline = append(collector.Inline, info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RefCollector holds $ref occurrences collected during a walk.
type RefCollector struct {
	// All contains every ref in traversal order.
	All []*RefInfo

	// ByTarget groups refs by their target pointer.
	ByTarget map[string][]*RefInfo
}

// CollectRefs walks the document and collects every $ref occurrence.
func CollectRefs(root *parser.Schema) (*RefCollector, error) {
	collector := &RefCollector{
		All:      make([]*RefInfo, 0),
		ByTarget: make(map[string][]*RefInfo),
	}

	err := Walk(root,
		WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
			collector.All = append(collector.All, ref)
			collector.ByTarget[ref.Ref] = append(collector.ByTarget[ref.Ref], ref)
			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// UnsupportedFinding records one unsupported keyword occurrence.
type UnsupportedFinding struct {
	// Feature is the unsupported feature name, see parser.UnsupportedFeatures.
	Feature string

	// JSONPath is where the feature was found.
	JSONPath string
}

// CollectUnsupported walks the document and reports every use of a schema
// feature the property outline cannot represent. Findings are non-fatal;
// extraction proceeds around them.
func CollectUnsupported(root *parser.Schema) ([]UnsupportedFinding, error) {
	var findings []UnsupportedFinding

	err := Walk(root,
		WithSchemaHandler(func(wc *WalkContext, schema *parser.Schema) Action {
			for _, feature := range parser.UnsupportedFeatures(schema) {
				findings = append(findings, UnsupportedFinding{
					Feature:  feature,
					JSONPath: wc.JSONPath,
				})
			}
			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return findings, nil
}
