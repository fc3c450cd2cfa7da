package hittest

import (
	"errors"
	"sort"
	"sync"
)

// Options configures source creation.
type Options struct {
	// Planes seeds plane-based sources with an initial environment.
	Planes []Plane
}

// SourceFactory creates a new Source with the given options.
// Implementations should validate options and return descriptive errors.
type SourceFactory func(opts Options) (Source, error)

// RegistryEntry represents a registered hit-test backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: platform runtime backends
	//   - 10: software simulation backends
	Priority int

	// Factory creates source instances.
	Factory SourceFactory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered hit-test backends.
//
// The registry enables platform bindings to register themselves without
// requiring changes to the core library.
//
// Example registration:
//
//	func init() {
//	    hittest.Register("openxr", 100, openxrFactory, openxrAvailable)
//	}
//
// Example usage:
//
//	src, err := hittest.NewSourceByName("planes", opts)
//	// or auto-select best available:
//	src, err := hittest.NewSource(opts)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewSource.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory SourceFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// NewSource creates a source using the best available backend.
// Returns an error if no backends are available.
func NewSource(opts Options) (Source, error) {
	return globalRegistry.NewSource(opts)
}

// NewSourceByName creates a source using a specific named backend.
func NewSourceByName(name string, opts Options) (Source, error) {
	return globalRegistry.NewSourceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory SourceFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// NewSource creates a source using the best available backend.
func (r *Registry) NewSource(opts Options) (Source, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		s, err := r.NewSourceByName(name, opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// NewSourceByName creates a source using a specific backend.
func (r *Registry) NewSourceByName(name string, opts Options) (Source, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first).
// If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no hit-test backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("hittest: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "hittest: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "hittest: backend unavailable: " + e.Name
}

// init registers the built-in plane-set backend.
func init() {
	Register("planes", 10, func(opts Options) (Source, error) {
		return NewPlaneSet(opts.Planes...), nil
	}, nil)
}
