package liquify

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/itsatony/go-liquify/internal"
)

// Template is a compiled template ready for rendering. All snippet lookups
// have already happened at compile time; rendering touches no source.
// A Template is immutable and safe for concurrent rendering into separate
// sinks with separate contexts.
type Template struct {
	source string
	root   *internal.RootNode
	logger *zap.Logger
}

// newTemplate creates a compiled template
func newTemplate(source string, root *internal.RootNode, logger *zap.Logger) *Template {
	return &Template{
		source: source,
		root:   root,
		logger: logger,
	}
}

// Source returns the original template source text.
func (t *Template) Source() string {
	return t.source
}

// Render writes the template's output to w using ctx as the variable
// environment. Included snippets write into the same w and read and write
// the same ctx: a binding set before an include site is visible inside the
// included snippet, and vice versa.
//
// A nil ctx renders with an empty context.
func (t *Template) Render(w io.Writer, ctx *Context) error {
	if ctx == nil {
		ctx = NewContext(nil)
	}

	// Render errors pass through untouched: trace-carrying errors keep
	// their accumulated include annotations intact.
	return t.root.Render(w, ctx)
}

// RenderString renders the template and returns the output as a string.
func (t *Template) RenderString(ctx *Context) (string, error) {
	var sb strings.Builder
	if err := t.Render(&sb, ctx); err != nil {
		return StringValueEmpty, err
	}

	t.logger.Debug(LogMsgTemplateRendered,
		zap.Int(LogFieldOutput, sb.Len()))

	return sb.String(), nil
}
