package lazy_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/km-arc/go-lateimport/lazy"
	"github.com/km-arc/go-lateimport/module"
)

// ── counting fake importer ───────────────────────────────────────────────────

// countingImporter records every Import call so tests can assert that
// nothing (or exactly one thing) was imported.
type countingImporter struct {
	mu       sync.Mutex
	calls    int
	modules  map[string]any
	failWith error
}

func (f *countingImporter) Import(path string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	mod, ok := f.modules[path]
	if !ok {
		return nil, errors.New("unknown module " + path)
	}
	return mod, nil
}

func (f *countingImporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func osImporter() *countingImporter {
	join := func(parts ...string) string { return strings.Join(parts, "/") }
	return &countingImporter{
		modules: map[string]any{
			"host.os": module.Map{
				"__name__": "host.os",
				"__doc__":  "operating system facilities",
				"path": module.Map{
					"Join": join,
					"Sep":  "/",
				},
			},
			"host.os.path": module.Map{
				"Join": join,
			},
		},
	}
}

// ── construction & attribute access ──────────────────────────────────────────

func TestImport_NotResolvedOnCreation(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	if p.Resolved() {
		t.Error("new proxy should not be resolved")
	}
	if imp.count() != 0 {
		t.Errorf("construction imported %d times, want 0", imp.count())
	}
}

func TestAttr_NonGatedReturnsChildProxy(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	got, err := p.Attr("path")
	if err != nil {
		t.Fatalf("Attr: %v", err)
	}
	child, ok := got.(*lazy.Proxy)
	if !ok {
		t.Fatalf("Attr returned %T, want *lazy.Proxy", got)
	}
	if child.Resolved() {
		t.Error("child proxy should not be resolved")
	}
	if child.Path() != "host.os.path" {
		t.Errorf("child path: got %q, want 'host.os.path'", child.Path())
	}
	if imp.count() != 0 {
		t.Errorf("attribute access imported %d times, want 0", imp.count())
	}
}

func TestChild_NoEagerImport(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	// Arbitrarily deep chaining must stay side-effect free.
	node := p
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		node = node.Child(name)
	}
	if imp.count() != 0 {
		t.Errorf("chaining imported %d times, want 0", imp.count())
	}
	if p.Resolved() || node.Resolved() {
		t.Error("no proxy in the chain should be resolved")
	}
}

func TestChild_DoesNotMutateParent(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	child := p.Child("path")
	if len(p.Chain()) != 0 {
		t.Errorf("parent chain mutated: %v", p.Chain())
	}
	if len(child.Chain()) != 1 || child.Chain()[0] != "path" {
		t.Errorf("child chain: got %v, want [path]", child.Chain())
	}
}

// ── resolution ───────────────────────────────────────────────────────────────

func TestResolve_Module(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	v, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := v.(module.Map); !ok {
		t.Errorf("resolved to %T, want module.Map", v)
	}
	if !p.Resolved() {
		t.Error("Resolved() should be true after Resolve")
	}
}

func TestResolve_ChainEquivalence(t *testing.T) {
	// host.os → path → Join must equal importing host.os and walking the
	// attributes by hand.
	imp := osImporter()
	join := lazy.ImportWith(imp, "host.os").Child("path").Child("Join")

	v, err := join.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	mod, _ := imp.modules["host.os"].(module.Map)
	path, _ := mod.Attr("path")
	want, _ := path.(module.Map).Attr("Join")

	got, ok := v.(func(...string) string)
	if !ok {
		t.Fatalf("resolved to %T, want func(...string) string", v)
	}
	if got("a", "b") != want.(func(...string) string)("a", "b") {
		t.Error("chained resolution did not reach the same function")
	}
}

func TestResolve_Cached(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	first, err := p.Resolve()
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := p.Resolve()
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if imp.count() != 1 {
		t.Errorf("import ran %d times, want 1", imp.count())
	}
	if f, s := first.(module.Map), second.(module.Map); f == nil || s == nil {
		t.Error("cached value changed shape between resolves")
	}
}

func TestResolve_IndependentNodesResolveIndependently(t *testing.T) {
	imp := osImporter()
	a := lazy.ImportWith(imp, "host.os")
	b := lazy.ImportWith(imp, "host.os")

	if _, err := a.Resolve(); err != nil {
		t.Fatalf("Resolve a: %v", err)
	}
	if _, err := b.Resolve(); err != nil {
		t.Fatalf("Resolve b: %v", err)
	}
	// Per-instance caching only — each node imports once itself.
	if imp.count() != 2 {
		t.Errorf("import ran %d times, want 2 (one per node)", imp.count())
	}
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestResolve_ImportFailed(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "no.such.module")

	_, err := p.Resolve()
	if err == nil {
		t.Fatal("Resolve of unknown module should fail")
	}
	if !lazy.IsImportFailed(err) {
		t.Errorf("error kind: got %v, want import failure", err)
	}
	if !strings.Contains(err.Error(), "no.such.module") {
		t.Errorf("error should name the module path: %v", err)
	}
	if p.Resolved() {
		t.Error("failed proxy must not report resolved")
	}
}

func TestResolve_AttrMissing(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os", "path", "NoSuchAttr")

	_, err := p.Resolve()
	if err == nil {
		t.Fatal("Resolve of missing attribute should fail")
	}
	if !lazy.IsAttrMissing(err) {
		t.Errorf("error kind: got %v, want missing attribute", err)
	}
	if !strings.Contains(err.Error(), "path.NoSuchAttr") {
		t.Errorf("error should carry the chain so far: %v", err)
	}

	var re *lazy.ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("error type: got %T", err)
	}
	if re.Missing != "NoSuchAttr" {
		t.Errorf("Missing: got %q, want 'NoSuchAttr'", re.Missing)
	}
}

func TestResolve_FailureIsNotSticky(t *testing.T) {
	// A failed resolution publishes nothing; the next use retries and can
	// succeed once the importer recovers.
	imp := osImporter()
	imp.failWith = errors.New("transient")
	p := lazy.ImportWith(imp, "host.os")

	if _, err := p.Resolve(); err == nil {
		t.Fatal("first Resolve should fail")
	}

	imp.mu.Lock()
	imp.failWith = nil
	imp.mu.Unlock()

	if _, err := p.Resolve(); err != nil {
		t.Fatalf("second Resolve should retry and succeed, got %v", err)
	}
	if !p.Resolved() {
		t.Error("proxy should be resolved after the retry")
	}
}

// ── introspection gate ───────────────────────────────────────────────────────

func TestAttr_IntrospectionNameResolvesImmediately(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	got, err := p.Attr("__name__")
	if err != nil {
		t.Fatalf("Attr(__name__): %v", err)
	}
	if _, isProxy := got.(*lazy.Proxy); isProxy {
		t.Fatal("gated access must return the real value, not a proxy")
	}
	if got != "host.os" {
		t.Errorf("__name__: got %v, want 'host.os'", got)
	}
	if !p.Resolved() {
		t.Error("gated access should fully resolve the node")
	}
	if imp.count() != 1 {
		t.Errorf("gated access imported %d times, want 1", imp.count())
	}
}

func TestAttr_IntrospectionNameMissing(t *testing.T) {
	imp := osImporter()
	// host.os.path has no __doc__
	p := lazy.ImportWith(imp, "host.os", "path")

	_, err := p.Attr("__doc__")
	if err == nil {
		t.Fatal("missing gated attribute should fail")
	}
	if !lazy.IsAttrMissing(err) {
		t.Errorf("error kind: got %v, want missing attribute", err)
	}
}

func TestIsIntrospectionName(t *testing.T) {
	if !lazy.IsIntrospectionName("__doc__") {
		t.Error("__doc__ should be gated")
	}
	if lazy.IsIntrospectionName("Join") {
		t.Error("Join should not be gated")
	}
	if lazy.IsIntrospectionName("__not_a_real_dunder__") {
		t.Error("unknown dunder should not be gated")
	}
}

func TestIntrospectionNames_SortedCopy(t *testing.T) {
	names := lazy.IntrospectionNames()
	if len(names) == 0 {
		t.Fatal("gate set should not be empty")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

// ── concurrency ──────────────────────────────────────────────────────────────

func TestResolve_ConcurrentImportsOnce(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	const workers = 20
	start := make(chan struct{})
	results := make([]any, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start // barrier: everyone resolves at once
			results[i], errs[i] = p.Resolve()
		}(i)
	}
	close(start)
	wg.Wait()

	if imp.count() != 1 {
		t.Errorf("import ran %d times under %d concurrent resolvers, want 1",
			imp.count(), workers)
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("resolver %d failed: %v", i, errs[i])
		}
		if _, ok := results[i].(module.Map); !ok {
			t.Fatalf("resolver %d observed %T, want module.Map", i, results[i])
		}
	}
}

func TestResolve_CachedValueVisibleFromOtherGoroutine(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os")

	if _, err := p.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.Resolve()
		done <- err
	}()
	if err := <-done; err != nil {
		t.Fatalf("cross-goroutine Resolve: %v", err)
	}
	if imp.count() != 1 {
		t.Errorf("import ran %d times, want 1", imp.count())
	}
}

// ── display ──────────────────────────────────────────────────────────────────

func TestDescribe_PendingAndResolved(t *testing.T) {
	imp := osImporter()
	p := lazy.ImportWith(imp, "host.os", "path")

	if d := p.Describe(); !strings.Contains(d, "pending") || !strings.Contains(d, "host.os.path") {
		t.Errorf("pending Describe: %q", d)
	}
	if imp.count() != 0 {
		t.Error("Describe must not resolve")
	}

	if _, err := p.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d := p.Describe(); !strings.Contains(d, "resolved") {
		t.Errorf("resolved Describe: %q", d)
	}
}
