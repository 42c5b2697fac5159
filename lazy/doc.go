// Package lazy provides proxy objects for deferred module imports: declare
// that you will eventually need a value reachable via a module path and an
// attribute chain, without importing anything until the value is genuinely
// used.
//
// # Proxies
//
//	mail := lazy.Import("app.mail", "NewMailer") // nothing imported yet
//	m, err := mail.Call(cfg)                     // imported and called here
//
// Attribute access walks deeper without importing:
//
//	osmod := lazy.Import("host.os")
//	join := osmod.Child("path").Child("Join")    // still nothing imported
//	v, err := join.Call("a", "b")                // resolves host.os, .path, .Join
//
// A proxy resolves at most once. Resolution is thread-safe: concurrent users
// of one proxy serialize on that proxy alone, the losers observe the
// winner's value, and the underlying import runs a single time. A failed
// resolution is not cached — the next use retries.
//
// # Use operations
//
// The operations that force resolution form a closed set: Resolve, Call,
// Index, Is, Bool, Equal, SetAttr, Names, String, the generic As, and gated
// attribute access. Everything else — construction, Child, non-gated Attr,
// Resolved, Describe — is side-effect free.
//
// # Introspection gate
//
// A fixed set of reserved names (documentation strings, identity markers and
// the like) is never proxied: accessing one through Attr resolves the proxy
// and returns the real attribute, because structural-inspection machinery
// expects concrete values there, not placeholders.
//
// # Typed handles
//
//	parse := lazy.For[func(string) (int, error)]("app.strconv", "Atoi")
//	f, err := parse.Get()
package lazy
