package walker

import (
	"context"
	"fmt"

	"github.com/schemalens/schemalens/parser"
)

// WithFilePath specifies a schema file to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed result to walk.
func WithParsed(result *parser.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithUserContext sets the context for cancellation propagation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WithRefTracking enables tracking of $ref values during traversal.
// When enabled, WalkContext.CurrentRef is populated for nodes with refs.
func WithRefTracking() Option {
	return func(w *Walker) {
		w.trackRefs = true
	}
}

// WithRefHandler sets a handler called when a $ref is encountered.
// Implicitly enables ref tracking.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) {
		w.trackRefs = true
		w.onRef = fn
	}
}

// WithParentTracking enables tracking of parent nodes during traversal.
// When enabled, WalkContext.Parent provides access to ancestor nodes, and
// the ParentSchema, ParentDefinition, Ancestors, and Depth helpers become
// available.
//
// This adds some overhead (parent chain allocation), so only enable when
// needed.
func WithParentTracking() Option {
	return func(w *Walker) {
		w.trackParent = true
	}
}

// WalkWithOptions walks a schema document using functional options for
// input, handlers, and configuration. All options use the unified Option
// type.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("schema.yaml"),
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, s *parser.Schema) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	if w.parsed == nil && w.filePath == nil {
		return fmt.Errorf("walker: no input source specified: use WithFilePath or WithParsed")
	}
	if w.parsed != nil && w.filePath != nil {
		return fmt.Errorf("walker: multiple input sources specified: use only one")
	}

	var root *parser.Schema
	if w.parsed != nil {
		root = w.parsed.Root
	} else {
		p := parser.New()
		result, err := p.Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
		root = result.Root
	}
	if root == nil {
		return fmt.Errorf("walker: parsed document has no root schema")
	}

	return w.walk(root)
}
