package outline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "go.yaml.in/yaml/v4"

	"github.com/schemalens/schemalens/lenserrors"
	"github.com/schemalens/schemalens/parser"
)

func mustSchema(t *testing.T, src string) *parser.Schema {
	t.Helper()
	var s parser.Schema
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	return &s
}

func TestExtract_NamedProperties(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  name:
    type: string
    description: Human-readable name
  port:
    type: integer
  tags:
    type: array
    items: {type: string}
required: [name]
`)

	props := ExtractRoot(root)
	require.Len(t, props, 3)

	assert.Equal(t, "name", props[0].Name)
	assert.True(t, props[0].Required)
	assert.Equal(t, []string{"name"}, props[0].Path)
	assert.Equal(t, 0, props[0].Depth)
	assert.Equal(t, "Human-readable name", props[0].Schema.Description)

	assert.Equal(t, "port", props[1].Name)
	assert.False(t, props[1].Required)

	assert.Equal(t, "tags", props[2].Name)
	assert.Equal(t, "tags", props[2].PathKey())
}

func TestExtract_DocumentOrderPreserved(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  zebra: {type: string}
  apple: {type: string}
  mango: {type: string}
`)

	props := ExtractRoot(root)
	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, names)
}

func TestExtract_ResolvesRefBeforeListing(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  server:
    type: object
    properties:
      host: {type: string}
      port: {type: integer}
    required: [host]
properties:
  primary:
    $ref: "#/definitions/server"
`)

	props := ExtractRoot(root)
	require.Len(t, props, 1)
	primary := props[0]
	assert.Empty(t, primary.Schema.Ref, "descriptor schemas should be resolved")

	children := Extract(primary.Schema, primary.Path, primary.Depth+1, root, ExtendStack(nil, ""))
	require.Len(t, children, 2)
	assert.Equal(t, "host", children[0].Name)
	assert.True(t, children[0].Required)
	assert.Equal(t, []string{"primary", "host"}, children[0].Path)
	assert.Equal(t, 1, children[0].Depth)
}

func TestExtract_AllOfComposition(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  base:
    type: object
    properties:
      id: {type: string}
    required: [id]
properties:
  entry:
    allOf:
      - $ref: "#/definitions/base"
      - type: object
        properties:
          label: {type: string}
`)

	props := ExtractRoot(root)
	require.Len(t, props, 1)

	children := Extract(props[0].Schema, props[0].Path, 1, root, ExtendStack(nil, ""))
	require.Len(t, children, 2)
	assert.Equal(t, "id", children[0].Name)
	assert.True(t, children[0].Required)
	assert.Equal(t, "label", children[1].Name)
	assert.False(t, children[1].Required)
}

func TestExtract_PatternProperties(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  version: {type: string}
patternProperties:
  "^x-":
    type: string
    description: Extension field
  "^[a-z]+$":
    type: object
`)

	props := ExtractRoot(root)
	require.Len(t, props, 3)

	first := props[1]
	assert.Equal(t, PatternPlaceholder, first.Name)
	assert.False(t, first.Required, "pattern-derived descriptors are never required")
	assert.Equal(t, []string{"(pattern-0)"}, first.Path)
	require.NotNil(t, first.Schema)
	assert.True(t, first.Schema.PatternDerived)
	assert.Equal(t, "^x-", first.Schema.OriginPattern)
	assert.Equal(t, "Extension field", first.Schema.Description)
	assert.True(t, first.IsPattern())

	second := props[2]
	assert.Equal(t, []string{"(pattern-1)"}, second.Path)
	assert.Equal(t, "^[a-z]+$", second.Schema.OriginPattern)

	assert.False(t, props[0].IsPattern())
}

func TestExtract_PatternStampDoesNotMutateDocument(t *testing.T) {
	root := mustSchema(t, `
type: object
patternProperties:
  "^x-": {type: string}
`)

	_ = ExtractRoot(root)

	rule, ok := root.PatternProperties.Get("^x-")
	require.True(t, ok)
	assert.False(t, rule.PatternDerived, "stamping must happen on a clone")
	assert.Empty(t, rule.OriginPattern)
}

func TestExtract_PathsUniqueAcrossSiblings(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  alpha: {type: string}
  beta: {type: string}
patternProperties:
  "^a": {type: string}
  "^b": {type: string}
`)

	props := ExtractRoot(root)
	seen := make(map[string]bool)
	for _, p := range props {
		key := p.PathKey()
		assert.False(t, seen[key], "duplicate path key %q", key)
		seen[key] = true
	}
	assert.Len(t, seen, 4)
}

func TestExtract_StackGuardStopsRevisits(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  node: {type: object}
`)

	props := Extract(root, []string{"a", "b"}, 2, root, []string{"", "a", "a.b"})
	assert.Nil(t, props, "a path already on the stack must not re-expand")
}

func TestExtract_StackGuardSkipsPatternSlot(t *testing.T) {
	root := mustSchema(t, `
type: object
patternProperties:
  '^x-': {type: object}
`)

	props := Extract(root, []string{"a"}, 1, root, []string{"", "a.(pattern-0)"})
	assert.Empty(t, props, "a pattern slot already on the stack must not re-emit")
}

func TestExtract_StackGuardSkipsOnlyStackedPatternSlot(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  name: {type: string}
patternProperties:
  '^x-': {type: object}
  '^y-': {type: object}
`)

	props := Extract(root, []string{"a"}, 1, root, []string{"", "a.(pattern-0)"})
	require.Len(t, props, 2)
	assert.Equal(t, []string{"a", "name"}, props[0].Path)
	assert.Equal(t, []string{"a", "(pattern-1)"}, props[1].Path,
		"skipping a slot must not renumber later rules")
}

func TestExtract_DepthCeiling(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  leaf: {type: string}
`)

	assert.NotNil(t, Extract(root, nil, MaxDepth, root, nil))
	assert.Nil(t, Extract(root, nil, MaxDepth+1, root, nil))
}

func TestExtract_NilNodeReturnsNil(t *testing.T) {
	root := mustSchema(t, `type: object`)
	assert.Nil(t, Extract(nil, nil, 0, root, nil))
}

func TestExtract_RecursiveSchemaTerminates(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  tree:
    type: object
    properties:
      value: {type: string}
      children:
        type: array
        items:
          $ref: "#/definitions/tree"
      next:
        $ref: "#/definitions/tree"
properties:
  root:
    $ref: "#/definitions/tree"
`)

	var total int
	var walk func(node *parser.Schema, path []string, depth int, stack []string)
	walk = func(node *parser.Schema, path []string, depth int, stack []string) {
		children := Extract(node, path, depth, root, stack)
		total += len(children)
		childStack := ExtendStack(stack, strings.Join(path, "."))
		for _, c := range children {
			walk(c.Schema, c.Path, c.Depth+1, childStack)
		}
	}

	walk(root, nil, 0, nil)
	assert.Positive(t, total)
	assert.Less(t, total, 100000, "expansion of a recursive schema must be bounded")
}

func TestExtract_SiblingPathsDoNotAlias(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "config"
	root := mustSchema(t, `
type: object
properties:
  first: {type: string}
  second: {type: string}
`)

	props := Extract(root, base, 1, root, nil)
	require.Len(t, props, 2)
	assert.Equal(t, []string{"config", "first"}, props[0].Path)
	assert.Equal(t, []string{"config", "second"}, props[1].Path)

	props[0].Path[0] = "mutated"
	assert.Equal(t, "config", props[1].Path[0], "sibling paths must not share backing arrays")
	assert.Equal(t, "config", base[0])
}

func TestExtendStack_CopiesBase(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "a"

	first := ExtendStack(base, "b")
	second := ExtendStack(base, "c")

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"a", "c"}, second)
}

func TestPatternToken(t *testing.T) {
	assert.Equal(t, "(pattern-0)", PatternToken(0))
	assert.Equal(t, "(pattern-7)", PatternToken(7))
}

func TestValidate(t *testing.T) {
	node := mustSchema(t, `type: object`)

	assert.NoError(t, Validate(node, 0))
	assert.NoError(t, Validate(node, MaxDepth+5))

	err := Validate(nil, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lenserrors.ErrInput))
	var inputErr *lenserrors.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "node", inputErr.Argument)

	err = Validate(node, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lenserrors.ErrInput))
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "depth", inputErr.Argument)
}
