package extract

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrProviderNotFound is returned when a provider is not registered.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderExists is returned when trying to register a duplicate provider.
	ErrProviderExists = errors.New("provider already exists")
)

// Registry manages extractor registration and lookup by provider name.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
	order      []string
}

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds e under e.Name().
func (r *Registry) Register(e Extractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := e.Name()
	if _, exists := r.extractors[name]; exists {
		return ErrProviderExists
	}

	r.extractors[name] = e
	r.order = append(r.order, name)
	return nil
}

// Get returns the extractor registered under name.
func (r *Registry) Get(name string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.extractors[name]
	if !exists {
		return nil, ErrProviderNotFound
	}
	return e, nil
}

// Default returns the first registered extractor that is available.
func (r *Registry) Default() (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if e := r.extractors[name]; e.Available() {
			return e, nil
		}
	}
	return nil, ErrProviderUnavailable
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Clone(r.order)
	slices.Sort(names)
	return names
}
