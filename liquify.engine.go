package liquify

import (
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/itsatony/go-liquify/internal"
)

// FilterFunc transforms a value during output rendering, e.g.
// {{ name | upcase }}. args holds the already-resolved filter arguments.
type FilterFunc func(input any, args []any) (any, error)

// Tag is the extension point for custom self-contained tags
// ({% mytag arg1 arg2 %}). Implementations receive the directive's raw
// argument values and write straight into the shared output sink.
type Tag interface {
	// TagName returns the name this tag responds to
	TagName() string
	// Render writes the tag's output. ctx is the live render context:
	// reads see bindings set by earlier nodes, writes are visible to
	// later ones.
	Render(w io.Writer, ctx *Context, args []string) error
}

// Engine is the main entry point for the liquify templating system.
// It manages tag and filter registration, the snippet source, and template
// compilation. An Engine is safe for concurrent use once configured.
type Engine struct {
	opts   *internal.Options
	mu     sync.RWMutex // guards the registries in opts after construction
	config *engineConfig
	logger *zap.Logger
}

// New creates a new liquify Engine with the given options.
func New(options ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range options {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := internal.NewOptions(logger)
	internal.RegisterBuiltins(opts)
	internal.RegisterBuiltinFilters(opts)

	if config.source != nil {
		opts.Source = config.source
	}
	opts.MaxIncludeDepth = config.maxIncludeDepth

	e := &Engine{
		opts:   opts,
		config: config,
		logger: logger,
	}

	for _, tag := range config.pendingTags {
		if err := e.RegisterTag(tag); err != nil {
			return nil, err
		}
	}
	for _, pf := range config.pendingFilters {
		if err := e.RegisterFilter(pf.name, pf.fn); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(options ...Option) *Engine {
	engine, err := New(options...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse compiles a template source string and returns a Template.
// The returned Template can be rendered multiple times with different
// contexts. Snippet lookups happen now, at compile time: every
// {% include %} in the source (and, transitively, in the included
// snippets) is resolved and compiled into the result.
func (e *Engine) Parse(source string) (*Template, error) {
	elements, err := internal.Tokenize(source, e.logger)
	if err != nil {
		return nil, compileError(err)
	}

	e.mu.RLock()
	root, err := internal.Parse(elements, e.opts)
	e.mu.RUnlock()
	if err != nil {
		return nil, compileError(err)
	}

	e.logger.Debug(LogMsgTemplateParsed,
		zap.Int(LogFieldSource, len(source)),
		zap.Int(LogFieldElements, len(elements)))

	return newTemplate(source, root, e.logger), nil
}

// RenderString is a convenience method that parses and renders in one step.
// For templates that will be rendered multiple times, use Parse() instead.
func (e *Engine) RenderString(source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return StringValueEmpty, err
	}
	return tmpl.RenderString(NewContext(data))
}

// RegisterTag adds a custom tag to the engine.
// Returns an error if the name is empty or already taken by a built-in or
// an earlier registration.
func (e *Engine) RegisterTag(tag Tag) error {
	if tag == nil {
		return NewRegistrationError(ErrMsgNilTag)
	}
	name := tag.TagName()
	if name == StringValueEmpty {
		return NewRegistrationError(ErrMsgEmptyTagName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.opts.Tags[name]; exists {
		return NewTagExistsError(name)
	}
	if _, exists := e.opts.Blocks[name]; exists {
		return NewTagExistsError(name)
	}

	e.opts.Tags[name] = newTagAdapter(tag)
	e.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTag, name))
	return nil
}

// RegisterFilter adds a custom filter to the engine.
// Returns an error if the name is empty, the function is nil, or the name
// is already taken.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	if name == StringValueEmpty {
		return NewRegistrationError(ErrMsgEmptyFilterName)
	}
	if fn == nil {
		return NewRegistrationError(ErrMsgNilFilter)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.opts.Filters[name]; exists {
		return NewFilterExistsError(name)
	}

	e.opts.Filters[name] = internal.FilterFunc(fn)
	e.logger.Debug(LogMsgFilterRegistered, zap.String(LogFieldFilter, name))
	return nil
}

// compileError normalizes compilation failures. Trace-carrying errors and
// unexpected-token diagnostics pass through untouched so their message text
// (the include annotation chain, the expected token kind) stays intact;
// everything else is wrapped with position metadata.
func compileError(err error) error {
	var te *internal.TraceError
	if errors.As(err, &te) {
		return err
	}
	var ute *internal.UnexpectedTokenError
	if errors.As(err, &ute) {
		return err
	}
	return NewCompileError(ErrMsgParseFailed, errorPosition(err), err)
}

// errorPosition extracts the source position from lexer and parser errors
func errorPosition(err error) internal.Position {
	var le *internal.LexerError
	if errors.As(err, &le) {
		return le.Position
	}
	var pe *internal.ParserError
	if errors.As(err, &pe) {
		return pe.Position
	}
	var ute *internal.UnexpectedTokenError
	if errors.As(err, &ute) && ute.Found != nil {
		return ute.Found.Position
	}
	return internal.Position{}
}

// tagNode bridges a public Tag into the compiled AST. Arguments are
// captured as their token values at compile time and handed to the tag on
// every render.
type tagNode struct {
	tag  Tag
	args []string
	pos  internal.Position
}

// newTagAdapter wraps a public Tag as an internal tag parser.
func newTagAdapter(tag Tag) internal.TagParser {
	return func(tagName string, args []internal.Token, opts *internal.Options) (internal.Node, error) {
		values := make([]string, len(args))
		pos := internal.Position{Line: 1, Column: 1}
		if len(args) > 0 {
			pos = args[0].Position
		}
		for i, tok := range args {
			values[i] = tok.Value
		}
		return &tagNode{tag: tag, args: values, pos: pos}, nil
	}
}

// Type implements internal.Node
func (n *tagNode) Type() internal.NodeType {
	return internal.NodeTypeCustom
}

// Pos implements internal.Node
func (n *tagNode) Pos() internal.Position {
	return n.pos
}

// String implements internal.Node
func (n *tagNode) String() string {
	return internal.NodeTypeCustom.String() + ":" + n.tag.TagName()
}

// Render implements internal.Node by delegating to the wrapped Tag.
// Custom tags receive the live *Context; rendering a template through a
// foreign Bindings implementation would silently hide the caller's
// variables from the tag, so it fails instead.
func (n *tagNode) Render(w io.Writer, b internal.Bindings) error {
	ctx, ok := b.(*Context)
	if !ok {
		return NewTagRenderError(ErrMsgForeignBindings, n.tag.TagName())
	}
	return n.tag.Render(w, ctx, n.args)
}
