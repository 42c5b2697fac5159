package lazy

import (
	"fmt"

	"github.com/km-arc/go-lateimport/module"
)

// ── Generics helpers ─────────────────────────────────────────────────────────

// As resolves a proxy and type-asserts the result.
//
//	// Instead of: v, _ := p.Resolve(); f := v.(func(int) int)
//	// Write:      f, err := lazy.As[func(int) int](p)
func As[T any](p *Proxy) (T, error) {
	var zero T
	v, err := p.Resolve()
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("lateimport: %s resolved to %s, want %T",
			p.Path(), module.TypeName(v), zero)
	}
	return typed, nil
}

// MustAs is As but panics on failure. For program-level wiring where a miss
// is a bug, not a condition.
func MustAs[T any](p *Proxy) T {
	v, err := As[T](p)
	if err != nil {
		panic(err)
	}
	return v
}

// ── Typed handles ────────────────────────────────────────────────────────────

// Of is a typed handle around a proxy: the deferred import with the expected
// result type carried statically. The type is an ergonomic annotation, not a
// runtime constraint — it is checked at Get time.
type Of[T any] struct {
	p *Proxy
}

// For creates a typed handle resolving through the process default registry.
//
//	var atoi = lazy.For[func(string) (int, error)]("app.strconv", "Atoi")
func For[T any](path string, attrs ...string) Of[T] {
	return Of[T]{p: Import(path, attrs...)}
}

// ForWith is For with an explicit importer capability.
func ForWith[T any](imp module.Importer, path string, attrs ...string) Of[T] {
	return Of[T]{p: ImportWith(imp, path, attrs...)}
}

// Get resolves the handle and returns the typed value.
func (l Of[T]) Get() (T, error) { return As[T](l.p) }

// MustGet resolves the handle, panicking on failure.
func (l Of[T]) MustGet() T { return MustAs[T](l.p) }

// Resolved returns true if the underlying proxy has resolved.
func (l Of[T]) Resolved() bool { return l.p.Resolved() }

// Proxy exposes the untyped proxy underneath the handle.
func (l Of[T]) Proxy() *Proxy { return l.p }
