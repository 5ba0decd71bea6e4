package walker

import (
	"context"
	"fmt"

	"github.com/schemalens/schemalens/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// SchemaHandler is called for every subschema, including the root.
type SchemaHandler func(wc *WalkContext, schema *parser.Schema) Action

// PropertyHandler is called for each named property schema. The property
// name is available as wc.Name.
type PropertyHandler func(wc *WalkContext, name string, schema *parser.Schema) Action

// PatternHandler is called for each patternProperties rule schema. The
// rule's regex source is available as wc.Name.
type PatternHandler func(wc *WalkContext, pattern string, schema *parser.Schema) Action

// DefinitionHandler is called for each schema under definitions or $defs.
type DefinitionHandler func(wc *WalkContext, name string, schema *parser.Schema) Action

// SchemaSkippedHandler is called when a schema is skipped during traversal.
// The reason is "depth" when the node exceeds the depth limit, or "cycle"
// when the node was already visited on this walk.
type SchemaSkippedHandler func(reason string, schema *parser.Schema, jsonPath string)

// Walker traverses schema documents and calls handlers for each node.
type Walker struct {
	onSchema        SchemaHandler
	onProperty      PropertyHandler
	onPattern       PatternHandler
	onDefinition    DefinitionHandler
	onRef           RefHandler
	onSchemaSkipped SchemaSkippedHandler

	maxDepth    int
	trackRefs   bool
	trackParent bool
	userCtx     context.Context

	filePath *string
	parsed   *parser.ParseResult

	visited map[*parser.Schema]bool
	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: 100,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithSchemaHandler sets the handler called for every subschema.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithPropertyHandler sets the handler called for named property schemas.
func WithPropertyHandler(fn PropertyHandler) Option {
	return func(w *Walker) { w.onProperty = fn }
}

// WithPatternHandler sets the handler called for patternProperties rule schemas.
func WithPatternHandler(fn PatternHandler) Option {
	return func(w *Walker) { w.onPattern = fn }
}

// WithDefinitionHandler sets the handler called for definitions and $defs entries.
func WithDefinitionHandler(fn DefinitionHandler) Option {
	return func(w *Walker) { w.onDefinition = fn }
}

// WithSchemaSkippedHandler sets the handler called when schemas are skipped
// due to the depth limit ("depth") or cycle detection ("cycle").
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}

// WithMaxDepth sets the maximum recursion depth for traversal.
// Default is 100. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses a parsed schema tree and calls registered handlers for
// each node.
func Walk(root *parser.Schema, opts ...Option) error {
	if root == nil {
		return fmt.Errorf("walker: nil schema root")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(root)
}

func (w *Walker) walk(root *parser.Schema) error {
	w.visited = make(map[*parser.Schema]bool)
	w.stopped = false

	state := &walkState{
		ctx:         w.userCtx,
		trackParent: w.trackParent,
	}
	return w.walkSchema(root, "$", 0, state)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
