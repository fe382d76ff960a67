// Package liquify provides a Liquid-style text templating system with
// compile-time snippet inclusion.
//
// Liquify uses the familiar {{ }} and {% %} delimiters:
//
//	Hello, {{ user }}!
//	{% include "header" %}
//
// # Basic Usage
//
// Create an engine and render templates:
//
//	engine := liquify.MustNew()
//	result, err := engine.RenderString("Hello, {{ user | upcase }}!", map[string]any{
//	    "user": "Alice",
//	})
//	// result: "Hello, ALICE!"
//
// # Snippet Inclusion
//
// The {% include %} tag splices a named snippet into the template at
// compile time. Snippet names are given as a quoted string or a bare
// identifier; both forms behave identically:
//
//	{% include "header" %}
//	{% include header %}
//
// Snippets come from an IncludeSource configured on the engine:
//
//	source := liquify.NewMemorySourceFromMap(map[string]string{
//	    "header": "== {{ title }} ==",
//	})
//	engine := liquify.MustNew(liquify.WithIncludeSource(source))
//	tmpl, err := engine.Parse(`{% include "header" %}body`)
//
// Included snippets share the surrounding template's output sink and
// render context. They may themselves include further snippets; each
// inclusion is resolved fresh from the source, and recursion is bounded
// by WithMaxIncludeDepth (default 100).
//
// When a snippet fails to compile or render, the error carries the chain
// of include sites it passed through, innermost first:
//
//	Snippet does not exist: missing
//	  from: {% include inner %}
//	  from: {% include outer %}
//
// # Built-in Tags
//
//	{% include name %}            compile-time snippet inclusion
//	{% assign x = value %}        bind a variable
//	{% if cond %}...{% else %}...{% endif %}
//	{% comment %}...{% endcomment %}
//	{% raw %}...{% endraw %}
//
// # Filters
//
// Output expressions accept a pipe-separated filter chain:
//
//	{{ user | downcase | append: "@example.com" }}
//
// Built-ins: size, upcase, downcase, capitalize, append, prepend,
// default, strip. Custom filters register via WithFilter or
// Engine.RegisterFilter.
//
// # Custom Tags
//
// Extend the engine with custom tag handlers by implementing the Tag
// interface:
//
//	type GreetTag struct{}
//
//	func (t *GreetTag) TagName() string { return "greet" }
//
//	func (t *GreetTag) Render(w io.Writer, ctx *liquify.Context, args []string) error {
//	    _, err := io.WriteString(w, "Hello, "+args[0]+"!")
//	    return err
//	}
//
//	engine := liquify.MustNew(liquify.WithTag(&GreetTag{}))
//	result, _ := engine.RenderString(`{% greet "World" %}`, nil)
package liquify
