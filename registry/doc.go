// Package registry provides the standard module.Importer: a process-wide
// table mapping dotted module paths to factories, with at-most-once loading
// and a cache of loaded module values.
//
// # Lifecycle
//
//  1. Register: registry.Register("app.mail", factory)
//  2. (optional) Alias / AddFinder for deferred bulk registration
//  3. Import: first call runs the factory and caches the value
//  4. Every later Import returns the cached value without running anything
//
// # Registering
//
//	// Factory — built on first Import, cached afterwards
//	registry.Register("app.mail", func(r *registry.Registry) (any, error) {
//	    return module.Map{"NewMailer": NewMailer}, nil
//	})
//
//	// Pre-built value
//	registry.RegisterValue("app.version", "1.4.2")
//
//	// Alias
//	registry.Alias("app.mail", "app.mailer")
//
// # Importing
//
//	v, err := registry.Import("app.mail")
//
// Importing is idempotent: concurrent first imports of one path serialize on
// that path alone and the factory runs at most once. A failed factory is not
// cached — the next Import retries it. Distinct paths never contend.
//
// # Finders
//
// A Finder supplies factories for paths nobody registered explicitly. Finders
// are consulted in registration order only after a direct miss, so an explicit
// registration always wins:
//
//	reg.AddFinder(registry.FinderFunc(func(path string) (registry.Factory, bool) {
//	    if !strings.HasPrefix(path, "gen.") {
//	        return nil, false
//	    }
//	    return generatedModule(path), true
//	}))
//
// # Tracing
//
// SetLogger attaches a charmbracelet/log logger; successful imports are
// traced at debug level. Failures are returned to the caller, never logged.
package registry
