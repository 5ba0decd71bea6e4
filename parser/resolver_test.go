package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSchema_PlainNodePassesThrough(t *testing.T) {
	root := mustSchema(t, `type: object`)
	node := mustSchema(t, `type: string`)

	resolved := ResolveSchema(node, root)
	assert.Same(t, node, resolved, "a node without $ref or allOf should pass through unchanged")
}

func TestResolveSchema_LocalRef(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  server:
    type: object
    description: A server entry
    properties:
      host: {type: string}
      port: {type: integer}
    required: [host]
`)
	node := mustSchema(t, `$ref: "#/definitions/server"`)

	resolved := ResolveSchema(node, root)
	require.NotNil(t, resolved)
	assert.Empty(t, resolved.Ref, "resolved node should not carry the pointer")
	assert.Equal(t, "A server entry", resolved.Description)
	assert.Equal(t, []string{"host", "port"}, resolved.Properties.Keys())
	assert.True(t, resolved.IsRequired("host"))
}

func TestResolveSchema_LocalDescriptionWinsOverTarget(t *testing.T) {
	root := mustSchema(t, `
definitions:
  server:
    type: object
    description: Target description
`)

	t.Run("explicit local description wins", func(t *testing.T) {
		node := mustSchema(t, `
$ref: "#/definitions/server"
description: Local description
`)
		resolved := ResolveSchema(node, root)
		assert.Equal(t, "Local description", resolved.Description)
	})

	t.Run("falls back to target description", func(t *testing.T) {
		node := mustSchema(t, `$ref: "#/definitions/server"`)
		resolved := ResolveSchema(node, root)
		assert.Equal(t, "Target description", resolved.Description)
	})
}

func TestResolveSchema_MissingRefReturnsOriginal(t *testing.T) {
	root := mustSchema(t, `
definitions:
  present: {type: string}
`)
	node := mustSchema(t, `
$ref: "#/definitions/missing"
description: kept as-is
`)

	resolved, diags := ResolveSchemaDetail(node, root)
	assert.Same(t, node, resolved, "dangling $ref should degrade to the original node")
	require.Len(t, diags, 1)
	assert.Equal(t, "#/definitions/missing", diags[0].Ref)
}

func TestResolveSchema_RefThroughNonObjectReturnsOriginal(t *testing.T) {
	root := mustSchema(t, `
definitions:
  name: {type: string}
`)
	// "type" is not a traversable segment of the name schema.
	node := mustSchema(t, `$ref: "#/definitions/name/type/deeper"`)

	resolved := ResolveSchema(node, root)
	assert.Same(t, node, resolved)
}

func TestResolveSchema_ExternalRefReturnsOriginal(t *testing.T) {
	root := mustSchema(t, `type: object`)
	node := mustSchema(t, `$ref: "other.yaml#/definitions/server"`)

	resolved, diags := ResolveSchemaDetail(node, root)
	assert.Same(t, node, resolved, "non-root-relative pointers are not resolved")
	require.Len(t, diags, 1)
}

func TestResolveSchema_RefChain(t *testing.T) {
	root := mustSchema(t, `
definitions:
  alias:
    $ref: "#/definitions/real"
  real:
    type: integer
    description: the real one
`)
	node := mustSchema(t, `$ref: "#/definitions/alias"`)

	resolved := ResolveSchema(node, root)
	assert.Equal(t, "integer", resolved.Type)
	assert.Equal(t, "the real one", resolved.Description)
	assert.Empty(t, resolved.Ref)
}

func TestResolveSchema_CircularRefChainDegrades(t *testing.T) {
	root := mustSchema(t, `
definitions:
  a:
    $ref: "#/definitions/b"
  b:
    $ref: "#/definitions/a"
`)
	node := mustSchema(t, `$ref: "#/definitions/a"`)

	// Must terminate and hand back a node rather than recursing forever.
	resolved, diags := ResolveSchemaDetail(node, root)
	require.NotNil(t, resolved)
	assert.NotEmpty(t, diags)
}

func TestResolveSchema_RootPointer(t *testing.T) {
	root := mustSchema(t, `
type: object
description: the document root
`)
	node := mustSchema(t, `$ref: "#"`)

	resolved := ResolveSchema(node, root)
	assert.Equal(t, "the document root", resolved.Description)
}

func TestResolveSchema_PointerEscapes(t *testing.T) {
	root := mustSchema(t, `
definitions:
  "a/b":
    type: string
  "tilde~key":
    type: integer
`)

	slash := ResolveSchema(mustSchema(t, `$ref: "#/definitions/a~1b"`), root)
	assert.Equal(t, "string", slash.Type)

	tilde := ResolveSchema(mustSchema(t, `$ref: "#/definitions/tilde~0key"`), root)
	assert.Equal(t, "integer", tilde.Type)
}

func TestResolveSchema_PointerIntoCompositionList(t *testing.T) {
	root := mustSchema(t, `
definitions:
  choice:
    oneOf:
      - {type: string, description: first branch}
      - {type: integer, description: second branch}
`)
	node := mustSchema(t, `$ref: "#/definitions/choice/oneOf/1"`)

	resolved := ResolveSchema(node, root)
	assert.Equal(t, "integer", resolved.Type)
	assert.Equal(t, "second branch", resolved.Description)
}

func TestResolveSchema_AllOfLastPropertyWins(t *testing.T) {
	root := mustSchema(t, `type: object`)
	node := mustSchema(t, `
allOf:
  - properties:
      a: {type: string}
  - properties:
      a: {type: number}
`)

	resolved := ResolveSchema(node, root)
	assert.Empty(t, resolved.AllOf, "allOf should be removed from the merge output")
	a, ok := resolved.Properties.Get("a")
	require.True(t, ok)
	assert.Equal(t, "number", a.Type, "later allOf entries overwrite same-named properties")
}

func TestResolveSchema_AllOfMergesCollections(t *testing.T) {
	root := mustSchema(t, `type: object`)
	node := mustSchema(t, `
description: own description
allOf:
  - type: object
    description: first entry description
    properties:
      host: {type: string}
    required: [host]
  - properties:
      port: {type: integer}
    required: [host, port]
    title: entry title
`)

	resolved := ResolveSchema(node, root)
	assert.Equal(t, []string{"host", "port"}, resolved.Properties.Keys())
	assert.Equal(t, []string{"host", "port"}, resolved.Required, "required lists union and deduplicate")
	assert.Equal(t, "own description", resolved.Description, "the node's own fields win over entries")
	assert.Equal(t, "object", resolved.Type, "first entry to set a field wins")
	assert.Equal(t, "entry title", resolved.Title)
}

func TestResolveSchema_AllOfWithRefsAndNesting(t *testing.T) {
	root := mustSchema(t, `
definitions:
  base:
    type: object
    properties:
      id: {type: integer}
    required: [id]
  named:
    allOf:
      - $ref: "#/definitions/base"
      - properties:
          name: {type: string}
`)
	node := mustSchema(t, `$ref: "#/definitions/named"`)

	resolved := ResolveSchema(node, root)
	assert.Empty(t, resolved.AllOf)
	assert.Equal(t, []string{"id", "name"}, resolved.Properties.Keys())
	assert.True(t, resolved.IsRequired("id"))
}

func TestResolveSchema_PatternPropertiesMerge(t *testing.T) {
	root := mustSchema(t, `type: object`)
	node := mustSchema(t, `
allOf:
  - patternProperties:
      "^x-": {type: string}
  - patternProperties:
      "^x-": {type: number}
      "^y-": {type: boolean}
`)

	resolved := ResolveSchema(node, root)
	require.Equal(t, 2, resolved.PatternProperties.Len())
	x, _ := resolved.PatternProperties.Get("^x-")
	assert.Equal(t, "number", x.Type)
}

func TestResolveSchema_NeverMutatesInputs(t *testing.T) {
	root := mustSchema(t, `
definitions:
  base:
    type: object
    properties:
      id: {type: integer}
`)
	node := mustSchema(t, `
$ref: "#/definitions/base"
description: local
`)

	_ = ResolveSchema(node, root)

	base, _ := root.Definitions.Get("base")
	assert.Empty(t, base.Description, "resolution must not write into the root document")
	assert.Equal(t, "#/definitions/base", node.Ref, "resolution must not strip the original node")
}

func TestResolveSchema_NilNode(t *testing.T) {
	root := mustSchema(t, `type: object`)
	assert.Nil(t, ResolveSchema(nil, root))
}
