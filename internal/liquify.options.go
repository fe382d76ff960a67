package internal

import (
	"go.uber.org/zap"
)

// SnippetSource provides the raw text of a named snippet. Implementations
// live outside the compiler core (in-memory, filesystem, database) and are
// injected through Options. The caller owns the returned text.
type SnippetSource interface {
	// Include returns the raw text of the named snippet, or an error
	// carrying the "Snippet does not exist" condition if the source has
	// no such name.
	Include(name string) (string, error)
}

// Bindings is the mutable variable environment threaded through rendering.
// The public Context type implements it.
type Bindings interface {
	// Get resolves a dot-notation path to a value
	Get(path string) (any, bool)
	// Set binds a value to a top-level key
	Set(key string, value any)
}

// TagParser compiles a self-contained tag ({% name args %}) into a node.
// It receives the directive's argument tokens and the shared options.
type TagParser func(tagName string, args []Token, opts *Options) (Node, error)

// BlockParser compiles a block tag ({% name args %}...{% endname %}) into a
// node. The body holds the elements between the opening and closing tags.
type BlockParser func(tagName string, args []Token, body []Element, opts *Options) (Node, error)

// FilterFunc transforms a value during output rendering.
// args holds the already-resolved filter arguments.
type FilterFunc func(input any, args []any) (any, error)

// Options is the shared compiler configuration: the tag, block, and filter
// registries plus the active snippet source. It is read-only during a
// compile or render pass; snippet recursion advances the depth on a copy so
// a shared Options value is never mutated.
type Options struct {
	Tags            map[string]TagParser
	Blocks          map[string]BlockParser
	Filters         map[string]FilterFunc
	Source          SnippetSource
	MaxIncludeDepth int // 0 = unlimited
	Logger          *zap.Logger

	includeDepth int
}

// NewOptions creates an empty compiler configuration
func NewOptions(logger *zap.Logger) *Options {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Options{
		Tags:            make(map[string]TagParser),
		Blocks:          make(map[string]BlockParser),
		Filters:         make(map[string]FilterFunc),
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		Logger:          logger,
	}
}

// IncludeDepth returns the current snippet recursion depth
func (o *Options) IncludeDepth() int {
	return o.includeDepth
}

// Descend returns a copy of the options with the include depth advanced by
// one. Registries and the source are shared by reference; only the depth
// counter differs, keeping the parent configuration untouched.
func (o *Options) Descend() *Options {
	descended := *o
	descended.includeDepth = o.includeDepth + 1
	return &descended
}

// DepthExceeded reports whether the current depth is past the limit
func (o *Options) DepthExceeded() bool {
	return o.MaxIncludeDepth > 0 && o.includeDepth >= o.MaxIncludeDepth
}
