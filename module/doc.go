// Package module models the host module system that the lazy-import
// machinery defers to: something that can import a dotted path into a
// value, and a way to look attributes up on whatever that value is.
//
// # Importing
//
// Importer is the single collaborator contract. The import operation is
// treated as opaque, idempotent, and potentially failing:
//
//	type Importer interface {
//	    Import(path string) (any, error)
//	}
//
// The registry package provides the standard implementation; tests
// typically supply a counting ImporterFunc fake.
//
// # Namespaces and attribute lookup
//
// A module value can be anything. Attr applies the host lookup rule:
//
//	// Explicit protocol — a value that answers for itself
//	type Namespace interface {
//	    Attr(name string) (any, bool)
//	}
//
//	// Plain maps — the common shape for registered modules
//	mod := module.Map{"Join": strings.Join, "Sep": "/"}
//
//	// Anything else — reflection over methods and exported fields
//	v, err := module.Attr(time.Now(), "Unix")
//
// Lookup failures are reported as *AttrError so callers can tell "the
// attribute is missing" apart from other failures.
package module
