package liquify

import (
	"sync"
)

// MemorySource is an in-memory implementation of IncludeSource.
// It is primarily intended for testing and development.
// All snippets are lost when the process terminates.
type MemorySource struct {
	mu       sync.RWMutex
	snippets map[string]string
	closed   bool
}

// MemorySourceDriver is the driver for creating MemorySource instances.
type MemorySourceDriver struct{}

func init() {
	RegisterSourceDriver(SourceDriverMemory, &MemorySourceDriver{})
}

// Open creates a new MemorySource instance.
// The connection string is ignored for memory sources.
func (d *MemorySourceDriver) Open(connectionString string) (IncludeSource, error) {
	return NewMemorySource(), nil
}

// NewMemorySource creates a new empty in-memory snippet source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		snippets: make(map[string]string),
	}
}

// NewMemorySourceFromMap creates an in-memory snippet source pre-populated
// with the given snippets. The map is copied.
func NewMemorySourceFromMap(snippets map[string]string) *MemorySource {
	s := NewMemorySource()
	for name, text := range snippets {
		s.snippets[name] = text
	}
	return s
}

// Include returns the text of the named snippet.
func (s *MemorySource) Include(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return StringValueEmpty, NewSourceClosedError()
	}

	text, ok := s.snippets[name]
	if !ok {
		return StringValueEmpty, NewSnippetNotFoundError(name)
	}

	return text, nil
}

// Set stores a snippet under the given name, replacing any existing text.
func (s *MemorySource) Set(name, text string) error {
	if name == StringValueEmpty {
		return NewInvalidSnippetNameError(name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewSourceClosedError()
	}

	s.snippets[name] = text
	return nil
}

// Delete removes the named snippet.
func (s *MemorySource) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewSourceClosedError()
	}

	if _, ok := s.snippets[name]; !ok {
		return NewSnippetNotFoundError(name)
	}

	delete(s.snippets, name)
	return nil
}

// Names returns the names of all stored snippets.
func (s *MemorySource) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.snippets))
	for name := range s.snippets {
		names = append(names, name)
	}
	return names
}

// Close marks the source as closed. Subsequent lookups fail.
func (s *MemorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.snippets = nil
	return nil
}
