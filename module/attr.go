package module

import (
	"fmt"
	"reflect"
	"sort"
)

// ── Attribute lookup ─────────────────────────────────────────────────────────

// Attr looks up a named attribute on an arbitrary module value, applying the
// host lookup rule in order:
//
//  1. Namespace implementations answer directly.
//  2. Plain map[string]any values are indexed by key.
//  3. Reflection: a method with that name (value receiver, then pointer
//     receiver), then an exported struct field, dereferencing pointers.
//
// A missing attribute is reported as *AttrError.
func Attr(v any, name string) (any, error) {
	if ns, ok := v.(Namespace); ok {
		if got, ok := ns.Attr(name); ok {
			return got, nil
		}
		return nil, &AttrError{Value: v, Name: name}
	}
	if m, ok := v.(map[string]any); ok {
		if got, ok := m[name]; ok {
			return got, nil
		}
		return nil, &AttrError{Value: v, Name: name}
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, &AttrError{Value: v, Name: name}
	}

	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	// Pointer-receiver methods need an addressable value.
	if rv.Kind() != reflect.Pointer && rv.CanInterface() {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		if m := pv.MethodByName(name); m.IsValid() {
			return m.Interface(), nil
		}
	}

	elem := rv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, &AttrError{Value: v, Name: name}
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, &AttrError{Value: v, Name: name}
}

// SetAttr assigns a named attribute on a module value: MutableNamespace
// implementations, plain maps, then settable exported struct fields reached
// through a pointer.
func SetAttr(v any, name string, value any) error {
	if ns, ok := v.(MutableNamespace); ok {
		if ns.SetAttr(name, value) {
			return nil
		}
		return &AttrError{Value: v, Name: name}
	}
	if m, ok := v.(map[string]any); ok {
		m[name] = value
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return &AttrError{Value: v, Name: name}
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName(name)
		if f.IsValid() && f.CanSet() {
			nv := reflect.ValueOf(value)
			if !nv.IsValid() {
				f.Set(reflect.Zero(f.Type()))
				return nil
			}
			if nv.Type().AssignableTo(f.Type()) {
				f.Set(nv)
				return nil
			}
		}
	}
	return &AttrError{Value: v, Name: name}
}

// Names enumerates the attribute names of a module value: Lister
// implementations answer directly, maps list their keys, everything else is
// reflected (methods plus exported fields). Results are sorted.
func Names(v any) []string {
	if l, ok := v.(Lister); ok {
		return l.AttrNames()
	}
	if m, ok := v.(map[string]any); ok {
		names := make([]string, 0, len(m))
		for k := range m {
			names = append(names, k)
		}
		sort.Strings(names)
		return names
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	seen := map[string]bool{}
	collect := func(val reflect.Value) {
		t := val.Type()
		for i := 0; i < t.NumMethod(); i++ {
			seen[t.Method(i).Name] = true
		}
	}
	collect(rv)
	if rv.Kind() != reflect.Pointer {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		collect(pv)
	}
	elem := rv
	for elem.Kind() == reflect.Pointer && !elem.IsNil() {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		t := elem.Type()
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				seen[f.Name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TypeName returns a short display name for a module value's type, used in
// error messages.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// ── Errors ───────────────────────────────────────────────────────────────────

// AttrError reports a missing (or unassignable) attribute on a module value.
type AttrError struct {
	Value any    // the value that was probed
	Name  string // the attribute that is missing
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("module: %s has no attribute %q", TypeName(e.Value), e.Name)
}
