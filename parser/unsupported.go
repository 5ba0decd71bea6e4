package parser

// Unsupported keyword names as reported by UnsupportedFeatures.
const (
	FeatureNot                   = "not"
	FeatureConditional           = "if/then/else"
	FeatureContains              = "contains"
	FeaturePropertyNames         = "propertyNames"
	FeatureAnyOfWithProperties   = "anyOf mixed with properties"
	FeatureAdditionalPropsSchema = "additionalProperties schema"
	FeatureContentEncoding       = "contentEncoding"
	FeatureContentMediaType      = "contentMediaType"
	FeatureUnevaluatedProps      = "unevaluatedProperties"
	FeatureUnevaluatedItems      = "unevaluatedItems"
)

// UnsupportedFeatures returns the names of schema keywords present on the
// node that the outline engine does not model beyond flagging them. The
// report is non-fatal: extraction proceeds on the rest of the node and the
// presentation layer renders these as warnings.
func UnsupportedFeatures(s *Schema) []string {
	if s == nil {
		return nil
	}

	var features []string
	if s.Not != nil {
		features = append(features, FeatureNot)
	}
	if s.If != nil || s.Then != nil || s.Else != nil {
		features = append(features, FeatureConditional)
	}
	if s.Contains != nil {
		features = append(features, FeatureContains)
	}
	if s.PropertyNames != nil {
		features = append(features, FeaturePropertyNames)
	}
	if len(s.AnyOf) > 0 && s.Properties.Len() > 0 {
		features = append(features, FeatureAnyOfWithProperties)
	}
	if s.AdditionalPropertiesSchema() != nil {
		features = append(features, FeatureAdditionalPropsSchema)
	}
	if s.ContentEncoding != "" {
		features = append(features, FeatureContentEncoding)
	}
	if s.ContentMediaType != "" {
		features = append(features, FeatureContentMediaType)
	}
	if s.UnevaluatedProperties != nil {
		features = append(features, FeatureUnevaluatedProps)
	}
	if s.UnevaluatedItems != nil {
		features = append(features, FeatureUnevaluatedItems)
	}
	return features
}
