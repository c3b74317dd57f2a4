package launcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Registry maps normalized script extensions to launch strategies. It is
// open for extension: callers can register additional strategies without
// touching the built-in dispatch.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Default returns a registry with the built-in strategies registered.
func Default() *Registry {
	r := NewRegistry()

	node := NewNodeStrategy("")
	for _, ext := range []string{".js", ".mjs", ".cjs"} {
		_ = r.Register(ext, node)
	}

	_ = r.Register(".py", NewInterpreterStrategy("python3"))
	_ = r.Register(".rb", NewInterpreterStrategy("ruby"))
	_ = r.Register(".sh", NewInterpreterStrategy("sh"))

	return r
}

// Register adds a strategy for the given extension (with or without the
// leading dot). Registering an extension twice is an error.
func (r *Registry) Register(ext string, strategy Strategy) error {
	key := normalizeExt(ext)
	if key == "" {
		return fmt.Errorf("extension cannot be empty")
	}
	if strategy == nil {
		return fmt.Errorf("strategy cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[key]; exists {
		return fmt.Errorf("extension %q already registered", key)
	}

	r.strategies[key] = strategy
	return nil
}

// Lookup selects the strategy for a script path by its extension. A path
// without an extension, or with an unregistered one, has no strategy; the
// caller must treat that as a fatal "don't know how to run this" condition.
func (r *Registry) Lookup(scriptPath string) (Strategy, bool) {
	key := normalizeExt(filepath.Ext(scriptPath))
	if key == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[key]
	return strategy, exists
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.strategies))
	for ext := range r.strategies {
		exts = append(exts, ext)
	}

	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
