package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// ParseIncludeTag compiles an {% include 'name' %} directive. The snippet
// name may be given as a quoted string or a bare identifier; both forms
// resolve identically. The named snippet is looked up, tokenized, and parsed
// with the same compiler configuration as the enclosing template, so the
// include node owns a fully compiled partial before parsing returns.
func ParseIncludeTag(tagName string, args []Token, opts *Options) (Node, error) {
	var nameTok *Token
	if len(args) > 0 {
		nameTok = &args[0]
	}

	if nameTok == nil || (!nameTok.IsString() && !nameTok.IsIdentifier()) {
		return nil, NewUnexpectedTokenError(TokenKindString, nameTok)
	}
	name := nameTok.Value

	partial, err := parseSnippet(name, opts)
	if err != nil {
		return nil, TraceInclude(err, name)
	}

	return NewIncludeNode(name, partial, nameTok.Position), nil
}

// parseSnippet resolves a snippet name to a compiled node tree: source
// lookup, then the full tokenize and parse pipeline. A snippet containing
// further includes recurses here depth-first; the depth guard turns a
// self-including snippet into a diagnostic instead of stack exhaustion.
// No caching: every call performs a fresh lookup and compile.
func parseSnippet(name string, opts *Options) (*RootNode, error) {
	if opts.Source == nil {
		return nil, newIncludeError(ErrMsgNoSnippetSource, name)
	}
	if opts.DepthExceeded() {
		return nil, newIncludeError(ErrMsgIncludeDepthExceeded, name)
	}

	opts.Logger.Debug(LogMsgSnippetResolving,
		zap.String(LogFieldSnippet, name),
		zap.Int(LogFieldDepth, opts.IncludeDepth()))

	content, err := opts.Source.Include(name)
	if err != nil {
		return nil, err
	}

	elements, err := Tokenize(content, opts.Logger)
	if err != nil {
		return nil, err
	}

	root, err := Parse(elements, opts.Descend())
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug(LogMsgSnippetCompiled, zap.String(LogFieldSnippet, name))
	return root, nil
}

// IncludeError reports a failure specific to snippet resolution
type IncludeError struct {
	Message     string
	SnippetName string
}

func newIncludeError(message, name string) *IncludeError {
	return &IncludeError{
		Message:     message,
		SnippetName: name,
	}
}

// Error implements the error interface
func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.SnippetName)
}

// Include error message constants
const (
	ErrMsgNoSnippetSource      = "no snippet source configured"
	ErrMsgIncludeDepthExceeded = "maximum include depth exceeded"
)
