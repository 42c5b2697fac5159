package registry

// ── Finder ───────────────────────────────────────────────────────────────────

// Finder supplies factories for module paths that were never explicitly
// registered — deferred bulk registration. Finders are consulted in
// registration order, only after a direct factory lookup misses, so an
// explicit Register always wins.
//
// The claimed factory is recorded as if it had been registered, then loaded;
// a finder is therefore asked about each path at most once per registration
// lifetime.
type Finder interface {
	// Find returns a factory for path and true, or false if this finder
	// does not claim the path.
	Find(path string) (Factory, bool)
}

// FinderFunc adapts a plain function to the Finder interface.
type FinderFunc func(path string) (Factory, bool)

func (f FinderFunc) Find(path string) (Factory, bool) { return f(path) }

// AddFinder appends a finder to the registry's lookup chain.
func (r *Registry) AddFinder(f Finder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finders = append(r.finders, f)
}

// PrefixFinder builds a finder that claims every path under a dotted prefix,
// delegating construction to build.
//
//	reg.AddFinder(registry.PrefixFinder("plugins", loadPlugin))
func PrefixFinder(prefix string, build func(path string) (any, error)) Finder {
	dotted := prefix + "."
	return FinderFunc(func(path string) (Factory, bool) {
		if len(path) <= len(dotted) || path[:len(dotted)] != dotted {
			return nil, false
		}
		return func(*Registry) (any, error) { return build(path) }, true
	})
}
