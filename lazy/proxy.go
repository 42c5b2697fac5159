package lazy

import (
	"fmt"

	"github.com/km-arc/go-lateimport/module"
	"github.com/km-arc/go-lateimport/registry"
)

// ── Proxy ────────────────────────────────────────────────────────────────────

// Proxy is a placeholder for a value reachable via a module path and an
// attribute chain. The path and chain are fixed at construction; the only
// mutable state is the private resolution cell, and it is written exactly
// once, on first successful use.
//
// Proxies are independent: a child holds a copy of its parent's chain, not a
// reference to the parent, and two proxies denoting the same path resolve
// separately (safe because importers are idempotent).
type Proxy struct {
	imp   module.Importer
	path  string
	chain []string
	cell  cell
}

// Import creates a root proxy for a module path, resolving through the
// process default registry. Nothing is imported now.
//
//	np := lazy.Import("vendor.numpy")
//	join := lazy.Import("host.os.path", "Join")
func Import(path string, attrs ...string) *Proxy {
	return ImportWith(registry.Default(), path, attrs...)
}

// ImportWith is Import with an explicit importer capability.
func ImportWith(imp module.Importer, path string, attrs ...string) *Proxy {
	chain := make([]string, len(attrs))
	copy(chain, attrs)
	return &Proxy{imp: imp, path: path, chain: chain}
}

// ModulePath returns the module path the proxy was constructed with.
func (p *Proxy) ModulePath() string { return p.path }

// Chain returns a copy of the attribute chain.
func (p *Proxy) Chain() []string {
	out := make([]string, len(p.chain))
	copy(out, p.chain)
	return out
}

// Path returns the full dotted path the proxy denotes, for display.
func (p *Proxy) Path() string {
	full := p.path
	for _, name := range p.chain {
		full += "." + name
	}
	return full
}

// ── Attribute access ─────────────────────────────────────────────────────────

// Child returns a new unresolved proxy for one more attribute step. It never
// imports, never fails, and never consults this proxy's cell.
func (p *Proxy) Child(name string) *Proxy {
	chain := make([]string, len(p.chain)+1)
	copy(chain, p.chain)
	chain[len(p.chain)] = name
	return &Proxy{imp: p.imp, path: p.path, chain: chain}
}

// Attr is the attribute-access operation. Reserved introspection names force
// resolution and return the real attribute off the resolved value; every
// other name returns a child proxy with zero side effects.
func (p *Proxy) Attr(name string) (any, error) {
	if !IsIntrospectionName(name) {
		return p.Child(name), nil
	}
	v, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	got, aerr := module.Attr(v, name)
	if aerr != nil {
		return nil, &ResolutionError{
			Kind:    KindAttrMissing,
			Path:    p.path,
			Chain:   append(p.Chain(), name),
			Missing: name,
			Cause:   aerr,
		}
	}
	return got, nil
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Resolve imports the module path and traverses the attribute chain,
// publishing the final value into the proxy's cell. For one proxy the
// import-and-traverse sequence executes at most once, however many
// goroutines call Resolve concurrently; a failure publishes nothing and the
// next call retries.
func (p *Proxy) Resolve() (any, error) {
	return p.cell.do(func() (any, error) {
		v, err := p.imp.Import(p.path)
		if err != nil {
			return nil, &ResolutionError{Kind: KindImportFailed, Path: p.path, Cause: err}
		}
		for i, name := range p.chain {
			v, err = module.Attr(v, name)
			if err != nil {
				chain := make([]string, i+1)
				copy(chain, p.chain[:i+1])
				return nil, &ResolutionError{
					Kind:    KindAttrMissing,
					Path:    p.path,
					Chain:   chain,
					Missing: name,
					Cause:   err,
				}
			}
		}
		return v, nil
	})
}

// Resolved returns true if this proxy has resolved. No side effects.
func (p *Proxy) Resolved() bool {
	_, ok := p.cell.get()
	return ok
}

// Describe returns a debug form of the proxy without resolving it.
//
//	<lazy "host.os.path.Join" (pending)>
func (p *Proxy) Describe() string {
	status := "pending"
	if p.Resolved() {
		status = "resolved"
	}
	return fmt.Sprintf("<lazy %q (%s)>", p.Path(), status)
}
