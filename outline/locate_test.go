package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locateFixture = `
type: object
definitions:
  endpoint:
    type: object
    properties:
      host: {type: string}
      port: {type: integer}
properties:
  primary:
    $ref: "#/definitions/endpoint"
  sdk:
    type: object
    patternProperties:
      "^[a-z]+$":
        type: object
        properties:
          dependencies:
            type: array
            items: {type: string}
  sink:
    oneOf:
      - type: string
      - type: object
        properties:
          target: {type: string}
`

func TestAt_EmptyPathReturnsRoot(t *testing.T) {
	root := mustSchema(t, locateFixture)
	node, ok := At(root, "")
	require.True(t, ok)
	assert.Same(t, root, node)
}

func TestAt_NestedProperty(t *testing.T) {
	root := mustSchema(t, locateFixture)

	node, ok := At(root, "primary.host")
	require.True(t, ok)
	assert.Equal(t, "string", node.Type)
}

func TestAt_PatternSegment(t *testing.T) {
	root := mustSchema(t, locateFixture)

	node, ok := At(root, "sdk.(pattern-0).dependencies")
	require.True(t, ok)
	assert.Equal(t, "array", node.Type)
}

func TestAt_OneOfBranch(t *testing.T) {
	root := mustSchema(t, locateFixture)

	node, ok := At(root, "sink.oneOf.1.target")
	require.True(t, ok)
	assert.Equal(t, "string", node.Type)

	_, ok = At(root, "sink.oneOf.9.target")
	assert.False(t, ok, "branch index out of range")
}

func TestAt_MissingSegment(t *testing.T) {
	root := mustSchema(t, locateFixture)

	_, ok := At(root, "primary.nonexistent")
	assert.False(t, ok)

	_, ok = At(root, "nope")
	assert.False(t, ok)
}

func TestAt_NilRoot(t *testing.T) {
	_, ok := At(nil, "anything")
	assert.False(t, ok)
}

func TestFlatten(t *testing.T) {
	root := mustSchema(t, `
type: object
properties:
  outer:
    type: object
    properties:
      inner: {type: string}
  leaf: {type: integer}
`)

	props := Flatten(root)
	var keys []string
	for _, p := range props {
		keys = append(keys, p.PathKey())
	}
	assert.Equal(t, []string{"outer", "outer.inner", "leaf"}, keys)
}

func TestFlatten_RecursiveSchemaBounded(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  node:
    type: object
    properties:
      next:
        $ref: "#/definitions/node"
properties:
  head:
    $ref: "#/definitions/node"
`)

	props := Flatten(root)
	assert.NotEmpty(t, props)
	assert.LessOrEqual(t, len(props), MaxDepth+2)
}

func TestPathDepth(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     int
	}{
		{"nil", nil, 0},
		{"single property", []string{"a"}, 1},
		{"plain chain", []string{"a", "b", "c"}, 3},
		{"branch pair is one hop", []string{"sink", "oneOf", "1", "target"}, 3},
		{"leading branch pair", []string{"oneOf", "0", "a"}, 2},
		{"oneOf without integer follower is a property hop", []string{"a", "oneOf", "x"}, 3},
		{"negative follower is a property hop", []string{"a", "oneOf", "-1"}, 3},
		{"pattern token", []string{"sdk", "(pattern-0)", "dependencies"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathDepth(tt.segments))
		})
	}
}

func TestAt_DeepBranchChainReachable(t *testing.T) {
	root := mustSchema(t, `
type: object
definitions:
  link:
    type: object
    properties:
      p:
        oneOf:
          - $ref: "#/definitions/link"
properties:
  p:
    oneOf:
      - $ref: "#/definitions/link"
`)

	// Five branch hops interleaved with five property hops: ten levels of
	// nesting spelled with fifteen path segments. Only hops may count
	// against the depth ceiling, not raw segments.
	path := "p.oneOf.0.p.oneOf.0.p.oneOf.0.p.oneOf.0.p.oneOf.0"
	node, ok := At(root, path)
	require.True(t, ok)
	assert.NotNil(t, node)
}
