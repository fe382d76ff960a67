package liquify

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource wraps a MemorySource and counts lookups per name
type countingSource struct {
	inner   *MemorySource
	lookups map[string]int
}

func newCountingSource(snippets map[string]string) *countingSource {
	return &countingSource{
		inner:   NewMemorySourceFromMap(snippets),
		lookups: make(map[string]int),
	}
}

func (s *countingSource) Include(name string) (string, error) {
	s.lookups[name]++
	return s.inner.Include(name)
}

// newTestEngine builds an engine over an in-memory snippet source
func newTestEngine(t *testing.T, snippets map[string]string, options ...Option) *Engine {
	t.Helper()
	options = append([]Option{WithIncludeSource(NewMemorySourceFromMap(snippets))}, options...)
	engine, err := New(options...)
	require.NoError(t, err)
	return engine
}

func TestEngine_RenderString(t *testing.T) {
	engine := MustNew()
	result, err := engine.RenderString("Hello, {{ user }}!", map[string]any{"user": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice!", result)
}

func TestEngine_Include_QuotedAndBareNames(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"example.liquid": "{{ num }}",
	})
	data := map[string]any{"num": 5}

	quoted, err := engine.RenderString(`{% include "example.liquid" %}`, data)
	require.NoError(t, err)
	bare, err := engine.RenderString("{% include example.liquid %}", data)
	require.NoError(t, err)

	assert.Equal(t, "5", quoted)
	assert.Equal(t, quoted, bare)
}

func TestEngine_Include_RendersSameAsSnippetText(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"example.liquid": "{{ 'whooo' }}{{ num }}",
	})
	data := map[string]any{"num": 5, "numTwo": 10}

	direct, err := engine.RenderString("{{ 'whooo' }}{{ num }}", data)
	require.NoError(t, err)
	included, err := engine.RenderString("{% include 'example.liquid' %}", data)
	require.NoError(t, err)

	assert.Equal(t, "whooo5", direct)
	assert.Equal(t, direct, included)
}

func TestEngine_Include_SnippetWithFilter(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"example.liquid": "{{ num | size }}",
	})

	result, err := engine.RenderString("{% include 'example.liquid' %}", map[string]any{"num": "abcd"})
	require.NoError(t, err)
	assert.Equal(t, "4", result)
}

func TestEngine_Include_SharesRenderContext(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"greeting": "Hello, {{ user }}!",
		"setter":   "{% assign token = 'abc' %}",
	})

	t.Run("reads bindings from the includer", func(t *testing.T) {
		result, err := engine.RenderString("{% assign user = 'Alice' %}{% include 'greeting' %}", nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello, Alice!", result)
	})

	t.Run("writes bindings visible after the include site", func(t *testing.T) {
		result, err := engine.RenderString("{% include 'setter' %}token={{ token }}", nil)
		require.NoError(t, err)
		assert.Equal(t, "token=abc", result)
	})

	t.Run("shares the caller's context object", func(t *testing.T) {
		tmpl, err := engine.Parse("{% include 'setter' %}")
		require.NoError(t, err)

		ctx := NewContext(nil)
		_, err = tmpl.RenderString(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", ctx.GetString("token"))
	})
}

func TestEngine_Include_SharesOutputSink(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"mid": "M",
	})
	tmpl, err := engine.Parse("a{% include 'mid' %}b")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, tmpl.Render(&sb, nil))
	assert.Equal(t, "aMb", sb.String())
}

func TestEngine_Include_EachDirectiveResolvesIndependently(t *testing.T) {
	source := newCountingSource(map[string]string{
		"example.liquid": "{{ num }}",
	})
	engine, err := New(WithIncludeSource(source))
	require.NoError(t, err)

	_, err = engine.Parse("{% include 'example.liquid' %}{% include 'example.liquid' %}")
	require.NoError(t, err)
	assert.Equal(t, 2, source.lookups["example.liquid"])
}

func TestEngine_Include_NestedSnippets(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"outer": "[{% include 'inner' %}]",
		"inner": "{{ num }}",
	})

	result, err := engine.RenderString("{% include 'outer' %}", map[string]any{"num": 5})
	require.NoError(t, err)
	assert.Equal(t, "[5]", result)
}

func TestEngine_Include_MalformedArgument(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name   string
		source string
	}{
		{name: "number argument", source: "{% include 42 %}"},
		{name: "missing argument", source: "{% include %}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := engine.Parse(tt.source)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Expected string")
			})
		})
	}
}

func TestEngine_Include_MissingSnippet(t *testing.T) {
	engine := newTestEngine(t, map[string]string{})

	_, err := engine.Parse("{% include 'missing' %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Snippet does not exist")
	assert.True(t, IsSnippetNotFound(err))
}

func TestEngine_Include_ErrorTrace(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"outer": "{% include 'inner' %}",
		"inner": "{% include 'missing' %}",
	})

	_, err := engine.Parse("{% include 'outer' %}")
	require.Error(t, err)

	trace := Trace(err)
	require.Len(t, trace, 3)
	assert.Equal(t, "{% include missing %}", trace[0])
	assert.Equal(t, "{% include inner %}", trace[1])
	assert.Equal(t, "{% include outer %}", trace[2])

	// Innermost site first in the rendered message too
	msg := err.Error()
	assert.Less(t, strings.Index(msg, "{% include missing %}"), strings.Index(msg, "{% include outer %}"))
	assert.True(t, IsSnippetNotFound(err))
}

func TestEngine_Include_NoSourceConfigured(t *testing.T) {
	engine := MustNew()
	_, err := engine.Parse("{% include 'x' %}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snippet source configured")
}

func TestEngine_Include_DepthGuard(t *testing.T) {
	t.Run("self-including snippet fails", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{
			"loop": "{% include 'loop' %}",
		}, WithMaxIncludeDepth(10))

		_, err := engine.Parse("{% include 'loop' %}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum include depth exceeded")
	})

	t.Run("mutually recursive snippets fail", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{
			"a": "{% include 'b' %}",
			"b": "{% include 'a' %}",
		}, WithMaxIncludeDepth(10))

		_, err := engine.Parse("{% include 'a' %}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum include depth exceeded")
	})
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := MustNew(WithFilter("shout", func(input any, args []any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s) + "!!!", nil
	}))

	result, err := engine.RenderString("{{ name | shout }}", map[string]any{"name": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "HI!!!", result)

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := engine.RegisterFilter("shout", func(input any, args []any) (any, error) {
			return input, nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFilterExists)
	})

	t.Run("builtin name is rejected", func(t *testing.T) {
		err := engine.RegisterFilter(FilterNameSize, func(input any, args []any) (any, error) {
			return input, nil
		})
		require.Error(t, err)
	})

	t.Run("nil filter is rejected", func(t *testing.T) {
		err := engine.RegisterFilter("other", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilFilter)
	})
}

// greetTag is a custom tag fixture
type greetTag struct{}

func (t *greetTag) TagName() string {
	return "greet"
}

func (t *greetTag) Render(w io.Writer, ctx *Context, args []string) error {
	name := ctx.GetString("fallback")
	if len(args) > 0 {
		name = args[0]
	}
	_, err := io.WriteString(w, "Hello, "+name+"!")
	return err
}

func TestEngine_RegisterTag(t *testing.T) {
	engine := MustNew(WithTag(&greetTag{}))

	t.Run("renders with argument", func(t *testing.T) {
		result, err := engine.RenderString(`{% greet "World" %}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", result)
	})

	t.Run("reads the render context", func(t *testing.T) {
		result, err := engine.RenderString("{% greet %}", map[string]any{"fallback": "ctx"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, ctx!", result)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := engine.RegisterTag(&greetTag{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTagExists)
	})

	t.Run("builtin name is rejected", func(t *testing.T) {
		_, err := New(WithTag(includeNameTag{}))
		require.Error(t, err)
	})
}

// stubBindings satisfies internal.Bindings without being a *Context
type stubBindings map[string]any

func (b stubBindings) Get(path string) (any, bool) {
	v, ok := b[path]
	return v, ok
}

func (b stubBindings) Set(key string, value any) {
	b[key] = value
}

func TestTagNode_RejectsForeignBindings(t *testing.T) {
	node := &tagNode{tag: &greetTag{}}

	var sb strings.Builder
	err := node.Render(&sb, stubBindings{"fallback": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgForeignBindings)
	assert.Empty(t, sb.String())
}

// includeNameTag collides with the builtin include tag
type includeNameTag struct{}

func (includeNameTag) TagName() string {
	return TagNameInclude
}

func (includeNameTag) Render(w io.Writer, ctx *Context, args []string) error {
	return nil
}

func TestEngine_ParseErrors(t *testing.T) {
	engine := MustNew()

	tests := []struct {
		name   string
		source string
	}{
		{name: "unterminated output", source: "{{ num"},
		{name: "unknown tag", source: "{% bogus %}"},
		{name: "unknown filter", source: "{{ num | bogus }}"},
		{name: "unclosed block", source: "{% if x %}y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Parse(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrMsgParseFailed)
		})
	}
}
