package liquify

import (
	"sync"
)

// IncludeSource is the abstract provider of snippet text, keyed by name.
// Implementations vary (in-memory, filesystem, database); the compiler only
// needs this single lookup capability. Implementations must be safe for
// concurrent use: a source is shared, read-only, across every compilation
// that uses the same engine.
type IncludeSource interface {
	// Include returns the raw text of the named snippet. A missing name
	// fails with the "Snippet does not exist" condition (see
	// IsSnippetNotFound); the caller owns the returned text.
	Include(name string) (string, error)
}

// SourceDriver is a factory for creating snippet sources.
// Drivers register themselves during init().
type SourceDriver interface {
	// Open creates a new source with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (IncludeSource, error)
}

// Source driver registry
var (
	sourceDriversMu sync.RWMutex
	sourceDrivers   = make(map[string]SourceDriver)
)

// RegisterSourceDriver registers a source driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterSourceDriver(name string, driver SourceDriver) {
	sourceDriversMu.Lock()
	defer sourceDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilSourceDriver)
	}
	if _, exists := sourceDrivers[name]; exists {
		panic(ErrMsgDriverRegistered + ": " + name)
	}
	sourceDrivers[name] = driver
}

// OpenSource opens a snippet source using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	source, err := liquify.OpenSource("memory", "")
//	source, err := liquify.OpenSource("filesystem", "/path/to/snippets")
func OpenSource(driverName, connectionString string) (IncludeSource, error) {
	sourceDriversMu.RLock()
	driver, ok := sourceDrivers[driverName]
	sourceDriversMu.RUnlock()

	if !ok {
		return nil, NewSourceDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListSourceDrivers returns the names of all registered source drivers
func ListSourceDrivers() []string {
	sourceDriversMu.RLock()
	defer sourceDriversMu.RUnlock()

	names := make([]string, 0, len(sourceDrivers))
	for name := range sourceDrivers {
		names = append(names, name)
	}
	return names
}
