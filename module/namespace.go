package module

import "sort"

// ── Namespace protocol ───────────────────────────────────────────────────────

// Namespace is the explicit attribute protocol. A value implementing it
// answers attribute lookups directly, bypassing reflection.
type Namespace interface {
	// Attr returns the named attribute and whether it exists.
	Attr(name string) (any, bool)
}

// MutableNamespace extends Namespace with attribute assignment.
type MutableNamespace interface {
	Namespace

	// SetAttr assigns the named attribute, returning false if the
	// namespace rejects the name.
	SetAttr(name string, value any) bool
}

// Lister is optionally implemented by namespaces that can enumerate their
// attribute names. Names falls back to reflection when it is absent.
type Lister interface {
	AttrNames() []string
}

// ── Map ──────────────────────────────────────────────────────────────────────

// Map is the common module shape: a plain name→value mapping. It implements
// Namespace, MutableNamespace, and Lister.
//
//	registry.Register("app.mail", func(r *registry.Registry) (any, error) {
//	    return module.Map{
//	        "NewMailer": NewMailer,
//	        "__doc__":   "Outbound mail delivery.",
//	    }, nil
//	})
type Map map[string]any

func (m Map) Attr(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m Map) SetAttr(name string, value any) bool {
	m[name] = value
	return true
}

func (m Map) AttrNames() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
