package lazy

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-lateimport/module"
)

// The use operations: every way a proxy's real value can be needed. Each one
// resolves, then delegates to the resolved value, propagating delegation
// errors unchanged.

// ── Call ─────────────────────────────────────────────────────────────────────

// Call resolves the proxy and invokes the resolved value as a function.
// A single non-error result is returned as-is; a trailing error result is
// split off and returned as the error; multiple remaining results come back
// as []any.
func (p *Proxy) Call(args ...any) (any, error) {
	v, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("lateimport: %s is not callable (%s)", p.Path(), module.TypeName(v))
	}
	t := fn.Type()
	if t.IsVariadic() {
		if len(args) < t.NumIn()-1 {
			return nil, fmt.Errorf("lateimport: %s takes at least %d arguments, got %d",
				p.Path(), t.NumIn()-1, len(args))
		}
	} else if len(args) != t.NumIn() {
		return nil, fmt.Errorf("lateimport: %s takes %d arguments, got %d",
			p.Path(), t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i)
		av := reflect.ValueOf(a)
		switch {
		case a == nil:
			in[i] = reflect.Zero(pt)
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("lateimport: %s argument %d: cannot use %s as %s",
				p.Path(), i, av.Type(), pt)
		}
	}

	out := fn.Call(in)
	return splitResults(out)
}

// paramType returns the declared type of argument i, unrolling variadics.
func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// splitResults maps reflect call results onto (any, error).
func splitResults(out []reflect.Value) (any, error) {
	if len(out) == 0 {
		return nil, nil
	}
	var callErr error
	if last := out[len(out)-1]; last.Type().Implements(errType) {
		if !last.IsNil() {
			callErr = last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	switch len(out) {
	case 0:
		return nil, callErr
	case 1:
		return out[0].Interface(), callErr
	}
	vals := make([]any, len(out))
	for i, o := range out {
		vals[i] = o.Interface()
	}
	return vals, callErr
}

// ── Index ────────────────────────────────────────────────────────────────────

// Index resolves the proxy and subscripts the resolved value: maps by key,
// slices/arrays/strings by integer index.
func (p *Proxy) Index(key any) (any, error) {
	v, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
			return nil, fmt.Errorf("lateimport: %s: invalid map key %v", p.Path(), key)
		}
		got := rv.MapIndex(kv)
		if !got.IsValid() {
			return nil, fmt.Errorf("lateimport: %s: key %v not present", p.Path(), key)
		}
		return got.Interface(), nil
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := intKey(key)
		if !ok {
			return nil, fmt.Errorf("lateimport: %s: index must be an integer, got %T", p.Path(), key)
		}
		if i < 0 || i >= rv.Len() {
			return nil, fmt.Errorf("lateimport: %s: index %d out of range [0:%d)", p.Path(), i, rv.Len())
		}
		return rv.Index(i).Interface(), nil
	}
	return nil, fmt.Errorf("lateimport: %s is not indexable (%s)", p.Path(), module.TypeName(v))
}

func intKey(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	case uint:
		return int(k), true
	case uint8:
		return int(k), true
	case uint16:
		return int(k), true
	case uint32:
		return int(k), true
	case uint64:
		return int(k), true
	}
	return 0, false
}

// ── Type test ────────────────────────────────────────────────────────────────

// Is resolves the proxy and reports whether the resolved value's dynamic
// type is assignable to target's type — the isinstance-style check. Pass a
// pointer to an interface to test against the interface:
//
//	p.Is((*io.Reader)(nil))
//
// Is returns false if resolution fails.
func (p *Proxy) Is(target any) bool {
	v, err := p.Resolve()
	if err != nil {
		return false
	}
	tt := reflect.TypeOf(target)
	if tt == nil {
		return v == nil
	}
	if tt.Kind() == reflect.Pointer && tt.Elem().Kind() == reflect.Interface {
		tt = tt.Elem()
	}
	vt := reflect.TypeOf(v)
	if vt == nil {
		return false
	}
	return vt.AssignableTo(tt)
}

// ── Truthiness ───────────────────────────────────────────────────────────────

// Bool resolves the proxy and reports the resolved value's truthiness:
// false for nil, zero values, and empty containers; true otherwise.
func (p *Proxy) Bool() (bool, error) {
	v, err := p.Resolve()
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len() > 0, nil
	}
	return !rv.IsZero(), nil
}

// ── Equality ─────────────────────────────────────────────────────────────────

// Equal resolves the proxy (and other, if it is also a proxy) and compares
// the values with reflect.DeepEqual.
func (p *Proxy) Equal(other any) (bool, error) {
	v, err := p.Resolve()
	if err != nil {
		return false, err
	}
	if op, ok := other.(*Proxy); ok {
		if other, err = op.Resolve(); err != nil {
			return false, err
		}
	}
	return reflect.DeepEqual(v, other), nil
}

// ── Assignment ───────────────────────────────────────────────────────────────

// SetAttr resolves the proxy and assigns an attribute on the resolved value.
func (p *Proxy) SetAttr(name string, value any) error {
	v, err := p.Resolve()
	if err != nil {
		return err
	}
	return module.SetAttr(v, name, value)
}

// ── Enumeration ──────────────────────────────────────────────────────────────

// Names resolves the proxy and lists the resolved value's attribute names.
func (p *Proxy) Names() ([]string, error) {
	v, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	return module.Names(v), nil
}

// ── Stringification ──────────────────────────────────────────────────────────

// String resolves the proxy and formats the resolved value. Stringification
// is a use operation, so it triggers the import; if resolution fails the
// failure is formatted instead (String cannot return an error — use Describe
// for a side-effect-free rendering).
func (p *Proxy) String() string {
	v, err := p.Resolve()
	if err != nil {
		return fmt.Sprintf("<lazy %q (failed: %v)>", p.Path(), err)
	}
	return fmt.Sprint(v)
}
