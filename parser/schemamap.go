package parser

import (
	"bytes"
	"iter"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// SchemaMap is a name-to-schema mapping that preserves document order.
//
// JSON Schema semantics do not depend on property order, but the outline
// engine's contract does: properties are listed in source order, and the
// (pattern-N) path tokens for patternProperties rules are ordinals into the
// mapping's iteration order. A plain Go map would randomize both.
type SchemaMap struct {
	keys   []string
	values map[string]*Schema
}

// NewSchemaMap returns an empty SchemaMap.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{values: make(map[string]*Schema)}
}

// Len returns the number of entries. Safe on a nil map.
func (m *SchemaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the schema for key and whether it exists. Safe on a nil map.
func (m *SchemaMap) Get(key string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.values[key]
	return s, ok
}

// Set stores a schema under key. A new key is appended to the iteration
// order; an existing key keeps its original position.
func (m *SchemaMap) Set(key string, s *Schema) {
	if m.values == nil {
		m.values = make(map[string]*Schema)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = s
}

// Keys returns the keys in document order. The returned slice is a copy.
func (m *SchemaMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in document order.
func (m *SchemaMap) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of the map sharing the same schema pointers.
// Safe on a nil map, which clones to nil.
func (m *SchemaMap) Clone() *SchemaMap {
	if m == nil {
		return nil
	}
	out := &SchemaMap{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]*Schema, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// UnmarshalYAML decodes a YAML (or JSON) mapping, recording key order.
func (m *SchemaMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"schema map must be a mapping, got " + node.Tag}}
	}
	m.keys = nil
	m.values = make(map[string]*Schema, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var sub Schema
		if err := node.Content[i+1].Decode(&sub); err != nil {
			return err
		}
		m.Set(key, &sub)
	}
	return nil
}

// MarshalYAML encodes the map as a mapping node in document order.
func (m *SchemaMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// MarshalJSON encodes the map as a JSON object in document order.
func (m *SchemaMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, k := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			valData, err := json.Marshal(m.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valData)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
