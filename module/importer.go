package module

// ── Importer ─────────────────────────────────────────────────────────────────

// Importer is the host import mechanism: it maps a dotted module path to a
// module value. Implementations must be idempotent — importing the same path
// twice yields the same value — and may fail. The lazy-import machinery never
// retries, dedupes, or times out an Importer call on its own.
type Importer interface {
	Import(path string) (any, error)
}

// ImporterFunc adapts a plain function to the Importer interface.
//
//	imp := module.ImporterFunc(func(path string) (any, error) {
//	    return fixtures[path], nil
//	})
type ImporterFunc func(path string) (any, error)

func (f ImporterFunc) Import(path string) (any, error) { return f(path) }
