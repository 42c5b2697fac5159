// Package dispatch provides a table-driven loader for package entry points:
// a public name resolves to a real value on first access and is written into
// a namespace so later lookups bypass the loader entirely.
//
// # Usage
//
// A package advertises its public names in a static table, each entry
// naming the module that actually implements it:
//
//	var exports = map[string]any{}
//
//	var loader = dispatch.NewFunc(dispatch.Table{
//	    "NewMailer": {Package: "app", Target: "mail"},
//	    "mail":      {Package: "app", Target: dispatch.ModuleTarget},
//	}, dispatch.MapNamespace(exports), "app", nil)
//
// Resolve("NewMailer") imports "app.mail", reads its NewMailer attribute,
// caches it in exports, and returns it. The ModuleTarget sentinel means "the
// submodule itself is the result": Resolve("mail") imports "app.mail" and
// returns the module with no attribute lookup.
//
// The loader matches the host's fallback-hook shape — it is only consulted
// when a name is not already present in the namespace, so the cache write is
// what retires it. Failed resolutions never write into the namespace, and
// the loader never retries on its own.
//
// Concurrency: the namespace is written without a lock. Two goroutines
// racing on the first access of one name may both import and both write, but
// the importer is idempotent and both write the same value, so
// last-write-wins is accepted.
package dispatch
