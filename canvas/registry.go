// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Factory creates a new Canvas with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Canvas, error)

// RegistryEntry represents a registered canvas backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates canvas instances.
	Factory Factory

	// Available reports if the backend can be opened right now.
	Available func() bool
}

// maxSuggestDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestDistance = 2

var globalRegistry = &Registry{}

// Registry manages registered canvas backends.
//
// Example registration:
//
//	func init() {
//	    canvas.Register("image", 10, newImageCanvas, nil)
//	}
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
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

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Open creates a canvas using the best available backend.
func Open(opts Options) (Canvas, error) {
	return globalRegistry.Open(opts)
}

// OpenByName creates a canvas using a specific named backend.
func OpenByName(name string, opts Options) (Canvas, error) {
	return globalRegistry.OpenByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
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

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// Open creates a canvas using the best available backend. Backends are
// tried in priority order; the error of the last failing one is returned.
func (r *Registry) Open(opts Options) (Canvas, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		c, err := r.OpenByName(name, opts)
		if err == nil {
			return c, nil
		}
		opts.WithDefaults().Logger.Debug("canvas: backend failed, trying next",
			"backend", name, "err", err)
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// OpenByName creates a canvas using a specific backend.
func (r *Registry) OpenByName(name string, opts Options) (Canvas, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	var suggestion string
	if !ok {
		suggestion = suggest(name, r.sortedNames(false))
	}
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name, Suggestion: suggestion}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts.WithDefaults())
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// suggest returns the registered name closest to name, or "" if none is
// close. Abbreviations ("term") are matched first, then typos.
func suggest(name string, names []string) string {
	if name == "" || len(names) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, n := range names {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no canvas backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("canvas: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string

	// Suggestion is the closest registered name, if any.
	Suggestion string
}

func (e *BackendNotFoundError) Error() string {
	msg := "canvas: backend not found: " + e.Name
	if e.Suggestion != "" {
		msg += " (did you mean " + e.Suggestion + "?)"
	}
	return msg
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "canvas: backend unavailable: " + e.Name
}
