package lazy

import "sort"

// ── Introspection gate ───────────────────────────────────────────────────────

// introspectionNames is the fixed set of reserved attribute names that force
// immediate resolution instead of child-proxy creation. Documentation,
// identity, and structural-typing machinery probe these names expecting
// concrete values; handing such machinery a placeholder breaks it in
// hard-to-diagnose ways.
var introspectionNames = map[string]struct{}{
	"__annotations__":    {},
	"__class__":          {},
	"__closure__":        {},
	"__code__":           {},
	"__defaults__":       {},
	"__dict__":           {},
	"__doc__":            {},
	"__func__":           {},
	"__globals__":        {},
	"__kwdefaults__":     {},
	"__module__":         {},
	"__name__":           {},
	"__qualname__":       {},
	"__self__":           {},
	"__signature__":      {},
	"__text_signature__": {},
	"__wrapped__":        {},
}

// IsIntrospectionName reports whether name is in the reserved introspection
// set. Membership testing alone has no resolution side effect.
func IsIntrospectionName(name string) bool {
	_, ok := introspectionNames[name]
	return ok
}

// IntrospectionNames returns a sorted copy of the reserved set.
func IntrospectionNames() []string {
	names := make([]string, 0, len(introspectionNames))
	for k := range introspectionNames {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
