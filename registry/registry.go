package registry

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// ── Registration types ───────────────────────────────────────────────────────

// Factory builds a module value. It runs at most once per path on the
// first successful Import; the result is cached for the process lifetime.
type Factory func(r *Registry) (any, error)

// loadState serializes first imports of a single path. The state lock is
// held while the factory runs, so unrelated paths never contend.
type loadState struct {
	mu sync.Mutex
}

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry is an idempotent module loader and cache. It implements
// module.Importer.
//
// It supports:
//   - Register / RegisterValue / Alias
//   - Import (cached, at-most-once factory execution per path)
//   - Finders (supply factories for unregistered paths)
//   - AfterImport callbacks
//   - optional debug tracing via charmbracelet/log
type Registry struct {
	mu sync.RWMutex

	// path → factory
	factories map[string]Factory

	// path → loaded module value
	modules map[string]any

	// alias → path (canonical key)
	aliases map[string]string

	// path → in-flight load serialization
	loading map[string]*loadState

	// consulted, in order, when a path has no factory
	finders []Finder

	// fired after each successful first import
	afterImport []func(path string, v any)

	logger *log.Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		modules:   make(map[string]any),
		aliases:   make(map[string]string),
		loading:   make(map[string]*loadState),
	}
}

// ── Registration ─────────────────────────────────────────────────────────────

// Register binds a factory to a module path. The factory does not run now;
// it runs on the first Import of the path.
func (r *Registry) Register(path string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(path)
	// A re-registration drops the loaded value so the new factory takes effect.
	delete(r.modules, key)
	r.factories[key] = f
}

// RegisterValue binds a pre-built module value to a path. No factory runs;
// Import returns the value directly.
func (r *Registry) RegisterValue(path string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(path)
	delete(r.factories, key)
	r.modules[key] = v
}

// Alias registers an alternative path for a module.
func (r *Registry) Alias(path, alias string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == alias {
		panic(fmt.Sprintf("registry: [%s] is aliased to itself", path))
	}
	r.aliases[alias] = r.canonical(path)
}

// ── Importing ────────────────────────────────────────────────────────────────

// Import resolves a module path to its value, running the registered factory
// on first use and caching the result. A factory failure is returned to the
// caller and is not cached: the next Import retries. Unknown paths consult
// finders before failing with *NotFoundError.
func (r *Registry) Import(path string) (any, error) {
	key := r.canonicalLocked(path)

	// Fast path — already loaded.
	r.mu.RLock()
	if v, ok := r.modules[key]; ok {
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	state := r.stateFor(key)
	state.mu.Lock()
	defer state.mu.Unlock()

	// Re-check under the path lock — another goroutine may have finished.
	r.mu.RLock()
	if v, ok := r.modules[key]; ok {
		r.mu.RUnlock()
		return v, nil
	}
	f, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		f, ok = r.find(key)
		if !ok {
			return nil, &NotFoundError{Path: path}
		}
		r.mu.Lock()
		r.factories[key] = f
		r.mu.Unlock()
	}

	v, err := f(r)
	if err != nil {
		return nil, fmt.Errorf("registry: import %q: %w", path, err)
	}

	r.mu.Lock()
	r.modules[key] = v
	cbs := r.afterImport
	logger := r.logger
	r.mu.Unlock()

	if logger != nil {
		logger.Debug("module imported", "path", key)
	}
	for _, cb := range cbs {
		cb(key, v)
	}
	return v, nil
}

// stateFor returns the per-path load serialization entry, creating it if
// needed.
func (r *Registry) stateFor(key string) *loadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.loading[key]
	if !ok {
		s = &loadState{}
		r.loading[key] = s
	}
	return s
}

// find consults finders in registration order.
func (r *Registry) find(key string) (Factory, bool) {
	r.mu.RLock()
	finders := r.finders
	r.mu.RUnlock()
	for _, fd := range finders {
		if f, ok := fd.Find(key); ok {
			return f, true
		}
	}
	return nil, false
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// Registered returns true if a factory or value is bound to the path.
func (r *Registry) Registered(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := r.canonical(path)
	_, hasFactory := r.factories[key]
	_, hasModule := r.modules[key]
	return hasFactory || hasModule
}

// Loaded returns true if the path has been imported at least once.
func (r *Registry) Loaded(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[r.canonical(path)]
	return ok
}

// Paths returns all registered module paths (loaded or not).
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories)+len(r.modules))
	for k := range r.factories {
		out = append(out, k)
	}
	for k := range r.modules {
		if _, already := r.factories[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// Forget removes all registrations for a path (factory + loaded value).
func (r *Registry) Forget(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(path)
	delete(r.factories, key)
	delete(r.modules, key)
	delete(r.loading, key)
}

// Flush resets the entire registry.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]Factory)
	r.modules = make(map[string]any)
	r.aliases = make(map[string]string)
	r.loading = make(map[string]*loadState)
	r.finders = nil
}

// canonical resolves an alias to its canonical path (caller holds mu).
func (r *Registry) canonical(path string) string {
	if target, ok := r.aliases[path]; ok {
		return target
	}
	return path
}

// canonicalLocked is canonical with its own read lock.
func (r *Registry) canonicalLocked(path string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canonical(path)
}

// ── Callbacks & tracing ──────────────────────────────────────────────────────

// AfterImport registers a callback fired after every successful first import.
func (r *Registry) AfterImport(cb func(path string, v any)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterImport = append(r.afterImport, cb)
}

// SetLogger attaches a logger for debug-level import traces. Passing nil
// disables tracing. Import failures are never logged — they surface to the
// caller.
func (r *Registry) SetLogger(logger *log.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// ── Errors ───────────────────────────────────────────────────────────────────

// NotFoundError reports an Import of a path with no registration and no
// finder claim.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: no module registered for %q", e.Path)
}
