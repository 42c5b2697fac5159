package dispatch

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-lateimport/module"
	"github.com/km-arc/go-lateimport/registry"
)

// ── Table ────────────────────────────────────────────────────────────────────

// ModuleTarget is the reserved Target sentinel meaning "import
// package.name itself as the result" instead of "import package.target and
// read attribute name off it".
const ModuleTarget = "__module__"

// Entry names the module implementing one public name.
type Entry struct {
	// Package is the dotted package path prefix.
	Package string

	// Target is the submodule under Package holding the name, or
	// ModuleTarget to return the submodule named by the key itself.
	Target string
}

// Table is the static dispatch table: public name → implementing module.
type Table map[string]Entry

// ── Namespace capability ─────────────────────────────────────────────────────

// Namespace is the mutable store the loader caches resolved values into —
// typically the enclosing package's export table. The loader holds this as
// a capability; it does not own the store.
type Namespace interface {
	Store(name string, value any)
}

// MapNamespace adapts a plain map to the Namespace capability.
type MapNamespace map[string]any

func (m MapNamespace) Store(name string, value any) { m[name] = value }

// ── Loader ───────────────────────────────────────────────────────────────────

// Loader resolves public names through a dispatch table, caching results
// into its namespace.
type Loader struct {
	table      Table
	ns         Namespace
	moduleName string
	imp        module.Importer
}

// New creates a loader. moduleName is the advertising package's own dotted
// name, used in error messages. A nil importer falls back to the process
// default registry.
func New(table Table, ns Namespace, moduleName string, imp module.Importer) *Loader {
	if imp == nil {
		imp = registry.Default()
	}
	return &Loader{table: table, ns: ns, moduleName: moduleName, imp: imp}
}

// NewFunc creates a loader and returns its Resolve method — the shape the
// host's "attribute not found" fallback hook expects.
func NewFunc(table Table, ns Namespace, moduleName string, imp module.Importer) func(name string) (any, error) {
	return New(table, ns, moduleName, imp).Resolve
}

// Resolve maps a public name to its real value: one import, at most one
// attribute lookup, one namespace write. Failures surface immediately and
// write nothing.
func (l *Loader) Resolve(name string) (any, error) {
	entry, ok := l.table[name]
	if !ok {
		return nil, &LookupError{Kind: KindUnknownKey, Module: l.moduleName, Name: name}
	}

	if entry.Target == ModuleTarget {
		sub, err := l.imp.Import(entry.Package + "." + name)
		if err != nil {
			return nil, err
		}
		l.ns.Store(name, sub)
		return sub, nil
	}

	mod, err := l.imp.Import(entry.Package + "." + entry.Target)
	if err != nil {
		return nil, err
	}
	value, err := module.Attr(mod, name)
	if err != nil {
		return nil, &LookupError{
			Kind:   KindTargetAttrMissing,
			Module: l.moduleName,
			Name:   name,
			Target: entry.Package + "." + entry.Target,
			Cause:  err,
		}
	}
	l.ns.Store(name, value)
	return value, nil
}

// ── Errors ───────────────────────────────────────────────────────────────────

// LookupKind categorizes loader failures.
type LookupKind string

const (
	// KindUnknownKey indicates the dispatch table has no entry for the name.
	KindUnknownKey LookupKind = "UNKNOWN_KEY"

	// KindTargetAttrMissing indicates the target module lacks the expected
	// attribute.
	KindTargetAttrMissing LookupKind = "TARGET_ATTR_MISSING"
)

// LookupError reports a failed dispatch-table resolution.
type LookupError struct {
	Kind   LookupKind
	Module string // the advertising module's name
	Name   string // the public name requested
	Target string // the imported target module (KindTargetAttrMissing only)
	Cause  error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindUnknownKey:
		return fmt.Sprintf("dispatch: module %q has no attribute %q", e.Module, e.Name)
	case KindTargetAttrMissing:
		return fmt.Sprintf("dispatch: module %q has no attribute %q (exported by %q)",
			e.Target, e.Name, e.Module)
	}
	return fmt.Sprintf("dispatch: lookup of %q in %q failed", e.Name, e.Module)
}

func (e *LookupError) Unwrap() error { return e.Cause }

// IsUnknownKey returns true if err is a loader miss for a name absent from
// the dispatch table.
func IsUnknownKey(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.Kind == KindUnknownKey
}

// IsTargetAttrMissing returns true if err reports a target module lacking
// the expected attribute.
func IsTargetAttrMissing(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.Kind == KindTargetAttrMissing
}
