package walker

import (
	"context"
	"sync"
)

// WalkContext provides contextual information about the current node being
// visited. It follows the http.Request pattern for context access.
type WalkContext struct {
	// JSONPath is the full JSON path to the current node.
	// Always populated. Example: "$.properties['server'].items[0]"
	JSONPath string

	// Keyword is the schema keyword the walker descended through to reach
	// this node. Empty at the root. Example: "properties", "oneOf", "items"
	Keyword string

	// Name is the map key for named items like properties, pattern rules,
	// and definitions. Empty for array items and the root.
	Name string

	// IsDefinition is true when the current node sits under a definitions
	// or $defs section.
	IsDefinition bool

	// CurrentRef is populated for nodes carrying a $ref when ref tracking
	// is enabled via WithRefTracking or WithRefHandler.
	CurrentRef *RefInfo

	// Parent is the immediate ancestor when parent tracking is enabled via
	// WithParentTracking. nil otherwise.
	Parent *ParentInfo

	ctx context.Context
}

// Context returns the context.Context for cancellation propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InDefinitionScope returns true if currently walking within definitions
// or $defs.
func (wc *WalkContext) InDefinitionScope() bool {
	return wc.IsDefinition
}

// walkState tracks context as we descend through the document.
// This is internal to the walker and used to build WalkContext instances.
type walkState struct {
	keyword      string
	name         string
	isDefinition bool
	ctx          context.Context
	parent       *ParentInfo
	trackParent  bool
}

var contextPool = sync.Pool{
	New: func() any { return &WalkContext{} },
}

// buildContext creates a WalkContext from the current walk state. Contexts
// are pooled; handlers must not retain them past their return.
func (s *walkState) buildContext(jsonPath string) *WalkContext {
	wc := contextPool.Get().(*WalkContext)
	*wc = WalkContext{
		JSONPath:     jsonPath,
		Keyword:      s.keyword,
		Name:         s.name,
		IsDefinition: s.isDefinition,
		Parent:       s.parent,
		ctx:          s.ctx,
	}
	return wc
}

func releaseContext(wc *WalkContext) {
	*wc = WalkContext{}
	contextPool.Put(wc)
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	return &walkState{
		keyword:      s.keyword,
		name:         s.name,
		isDefinition: s.isDefinition,
		ctx:          s.ctx,
		parent:       s.parent,
		trackParent:  s.trackParent,
	}
}
