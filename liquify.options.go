package liquify

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	source          IncludeSource
	maxIncludeDepth int
	logger          *zap.Logger
	pendingTags     []Tag
	pendingFilters  []pendingFilter
}

// pendingFilter defers filter registration until the engine exists, so
// WithFilter collisions surface as construction errors.
type pendingFilter struct {
	name string
	fn   FilterFunc
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		source:          nil,
		maxIncludeDepth: DefaultMaxIncludeDepth,
		logger:          nil,
	}
}

// WithIncludeSource sets the snippet source consulted by {% include %}.
// Without a source, any include directive fails at parse time.
func WithIncludeSource(source IncludeSource) Option {
	return func(c *engineConfig) {
		c.source = source
	}
}

// WithMaxIncludeDepth sets the maximum snippet recursion depth.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxIncludeDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxIncludeDepth = depth
	}
}

// WithLogger sets the logger for the engine.
// Default: no-op logger (no logging output)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTag registers a custom tag during engine construction.
// Construction fails if the tag collides with a built-in or an earlier
// WithTag option.
func WithTag(tag Tag) Option {
	return func(c *engineConfig) {
		c.pendingTags = append(c.pendingTags, tag)
	}
}

// WithFilter registers a custom filter during engine construction.
// Construction fails if the filter collides with a built-in or an earlier
// WithFilter option.
func WithFilter(name string, fn FilterFunc) Option {
	return func(c *engineConfig) {
		c.pendingFilters = append(c.pendingFilters, pendingFilter{name: name, fn: fn})
	}
}
