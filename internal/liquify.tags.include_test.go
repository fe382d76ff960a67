package internal

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSource serves snippets from a map and counts lookups per name
type stubSource struct {
	snippets map[string]string
	lookups  map[string]int
}

func newStubSource(snippets map[string]string) *stubSource {
	return &stubSource{
		snippets: snippets,
		lookups:  make(map[string]int),
	}
}

func (s *stubSource) Include(name string) (string, error) {
	s.lookups[name]++
	text, ok := s.snippets[name]
	if !ok {
		return "", &notFoundError{name: name}
	}
	return text, nil
}

// notFoundError mimics a source's missing-snippet condition
type notFoundError struct {
	name string
}

func (e *notFoundError) Error() string {
	return "Snippet does not exist: " + e.name
}

// sourceOptions returns builtin-equipped options over the given snippets
func sourceOptions(snippets map[string]string) (*Options, *stubSource) {
	opts := testOptions()
	source := newStubSource(snippets)
	opts.Source = source
	return opts, source
}

func TestIncludeTag_QuotedAndBareNamesResolveIdentically(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "double quoted", source: `{% include "example.liquid" %}`},
		{name: "single quoted", source: "{% include 'example.liquid' %}"},
		{name: "bare identifier", source: "{% include example.liquid %}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := sourceOptions(map[string]string{
				"example.liquid": "{{ num }}",
			})
			root := compile(t, tt.source, opts)
			got := renderToString(t, root, mapBindings{"num": 5})
			assert.Equal(t, "5", got)
		})
	}
}

func TestIncludeTag_RendersSameAsSnippetText(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"example.liquid": "{{ 'whooo' }}{{ num }}",
	})
	bindings := mapBindings{"num": 5, "numTwo": 10}

	direct := renderToString(t, compile(t, "{{ 'whooo' }}{{ num }}", opts), bindings)
	included := renderToString(t, compile(t, "{% include 'example.liquid' %}", opts), bindings)
	assert.Equal(t, direct, included)
}

func TestIncludeTag_SharesBindingsWithIncluder(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"greeting": "Hello, {{ user }}!",
	})
	root := compile(t, "{% assign user = 'Alice' %}{% include 'greeting' %}", opts)
	got := renderToString(t, root, mapBindings{})
	assert.Equal(t, "Hello, Alice!", got)
}

func TestIncludeTag_SnippetAssignVisibleAfterIncludeSite(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"setter": "{% assign x = 7 %}",
	})
	root := compile(t, "{% include 'setter' %}x={{ x }}", opts)
	got := renderToString(t, root, mapBindings{})
	assert.Equal(t, "x=7", got)
}

func TestIncludeTag_NestedIncludes(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"outer": "[{% include 'inner' %}]",
		"inner": "{{ num }}",
	})
	root := compile(t, "{% include 'outer' %}", opts)
	got := renderToString(t, root, mapBindings{"num": 5})
	assert.Equal(t, "[5]", got)
}

func TestIncludeTag_EachDirectiveResolvesIndependently(t *testing.T) {
	opts, source := sourceOptions(map[string]string{
		"example.liquid": "{{ num }}",
	})
	root := compile(t, "{% include 'example.liquid' %}{% include 'example.liquid' %}", opts)
	assert.Equal(t, 2, source.lookups["example.liquid"])

	got := renderToString(t, root, mapBindings{"num": 5})
	assert.Equal(t, "55", got)
}

func TestIncludeTag_MalformedArgument(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "number argument", source: "{% include 42 %}"},
		{name: "no argument", source: "{% include %}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := sourceOptions(nil)
			elements, err := Tokenize(tt.source, zap.NewNop())
			require.NoError(t, err)
			_, err = Parse(elements, opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Expected "+TokenKindString)

			var ute *UnexpectedTokenError
			require.ErrorAs(t, err, &ute)
			assert.Equal(t, TokenKindString, ute.Expected)
		})
	}
}

func TestIncludeTag_MissingSnippetFailsCompilation(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{})
	elements, err := Tokenize("{% include 'missing' %}", zap.NewNop())
	require.NoError(t, err)
	_, err = Parse(elements, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Snippet does not exist")
	assert.Contains(t, err.Error(), "{% include missing %}")
}

func TestIncludeTag_NoSourceConfigured(t *testing.T) {
	opts := testOptions()
	elements, err := Tokenize("{% include 'x' %}", zap.NewNop())
	require.NoError(t, err)
	_, err = Parse(elements, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNoSnippetSource)
}

func TestIncludeTag_TraceAccumulatesInnermostFirst(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"outer": "{% include 'inner' %}",
		"inner": "{% include 'missing' %}",
	})
	elements, err := Tokenize("{% include 'outer' %}", zap.NewNop())
	require.NoError(t, err)
	_, err = Parse(elements, opts)
	require.Error(t, err)

	var te *TraceError
	require.ErrorAs(t, err, &te)
	require.Len(t, te.Trace, 3)
	assert.Equal(t, "{% include missing %}", te.Trace[0])
	assert.Equal(t, "{% include inner %}", te.Trace[1])
	assert.Equal(t, "{% include outer %}", te.Trace[2])

	wantMsg := "Snippet does not exist: missing" +
		"\n  from: {% include missing %}" +
		"\n  from: {% include inner %}" +
		"\n  from: {% include outer %}"
	assert.Equal(t, wantMsg, err.Error())
}

func TestIncludeTag_DepthGuard(t *testing.T) {
	opts, _ := sourceOptions(map[string]string{
		"loop": "{% include 'loop' %}",
	})
	opts.MaxIncludeDepth = 10

	elements, err := Tokenize("{% include 'loop' %}", zap.NewNop())
	require.NoError(t, err)
	_, err = Parse(elements, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgIncludeDepthExceeded)
}

func TestIncludeTag_DepthGuardAllowsDeepChains(t *testing.T) {
	snippets := map[string]string{"s10": "deep"}
	for i := 0; i < 10; i++ {
		snippets[snippetName(i)] = "{% include '" + snippetName(i+1) + "' %}"
	}
	opts, _ := sourceOptions(snippets)
	opts.MaxIncludeDepth = 100

	root := compile(t, "{% include 's0' %}", opts)
	got := renderToString(t, root, mapBindings{})
	assert.Equal(t, "deep", got)
}

// snippetName builds the chained snippet names for the depth test
func snippetName(i int) string {
	return "s" + strconv.Itoa(i)
}
