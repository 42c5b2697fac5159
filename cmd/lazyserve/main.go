// Command lazyserve is a small demo server around the default module
// registry: it registers sample modules, exposes their loaded/pending state
// over HTTP, and forces lazy resolutions on request. Useful for poking at
// the toolkit's deferral behavior from the outside.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-lateimport/config"
	"github.com/km-arc/go-lateimport/dispatch"
	"github.com/km-arc/go-lateimport/lazy"
	"github.com/km-arc/go-lateimport/module"
	"github.com/km-arc/go-lateimport/registry"
)

func main() {
	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          cfg.App.Name,
	})
	if cfg.App.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if cfg.Trace {
		registry.SetLogger(logger)
	}

	registerDemoModules()

	// Package-style exports backed by a dispatch loader: the namespace map
	// is the cache, the loader is the fallback.
	exports := map[string]any{}
	resolve := dispatch.NewFunc(dispatch.Table{
		"Square": {Package: "demo", Target: "math"},
		"Upper":  {Package: "demo", Target: "text"},
		"math":   {Package: "demo", Target: dispatch.ModuleTarget},
		"text":   {Package: "demo", Target: dispatch.ModuleTarget},
	}, dispatch.MapNamespace(exports), "demo", nil)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	// GET /modules — registered paths and whether each has loaded yet.
	r.Get("/modules", func(w http.ResponseWriter, _ *http.Request) {
		reg := registry.Default()
		mods := []map[string]any{}
		for _, path := range reg.Paths() {
			mods = append(mods, map[string]any{
				"path":   path,
				"loaded": reg.Loaded(path),
			})
		}
		respond(w, http.StatusOK, map[string]any{"modules": mods})
	})

	// GET /modules/resolve?path=demo.math&attrs=Square — force a lazy
	// resolution of the given path and attribute chain.
	r.Get("/modules/resolve", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Query().Get("path")
		if path == "" {
			respond(w, http.StatusBadRequest, map[string]any{"error": "path is required"})
			return
		}
		var attrs []string
		if raw := req.URL.Query().Get("attrs"); raw != "" {
			attrs = strings.Split(raw, ".")
		}

		p := lazy.Import(path, attrs...)
		v, err := p.Resolve()
		if err != nil {
			respond(w, http.StatusNotFound, map[string]any{
				"proxy": p.Describe(),
				"error": err.Error(),
			})
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"proxy": p.Describe(),
			"type":  module.TypeName(v),
			"names": module.Names(v),
		})
	})

	// GET /exports/{name} — the namespace-first precedence rule: an
	// explicit entry wins, the dispatch loader is only the fallback.
	r.Get("/exports/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		v, cached := exports[name]
		if !cached {
			var err error
			if v, err = resolve(name); err != nil {
				respond(w, http.StatusNotFound, map[string]any{"error": err.Error()})
				return
			}
		}
		respond(w, http.StatusOK, map[string]any{
			"name":   name,
			"cached": cached,
			"type":   module.TypeName(v),
		})
	})

	addr := ":" + cfg.App.Port
	logger.Info("listening", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// registerDemoModules binds the sample modules. Factories run on first
// import only — watch the /modules endpoint flip loaded to true.
func registerDemoModules() {
	registry.Register("demo.math", func(*registry.Registry) (any, error) {
		return module.Map{
			"__doc__":  "Small arithmetic helpers.",
			"__name__": "demo.math",
			"Square":   func(x int) int { return x * x },
			"Cube":     func(x int) int { return x * x * x },
			"Pi":       3.141592653589793,
		}, nil
	})

	registry.Register("demo.text", func(*registry.Registry) (any, error) {
		return module.Map{
			"__doc__":  "Small text helpers.",
			"__name__": "demo.text",
			"Upper":    strings.ToUpper,
			"Reverse": func(s string) string {
				runes := []rune(s)
				for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
					runes[i], runes[j] = runes[j], runes[i]
				}
				return string(runes)
			},
		}, nil
	})

	registry.Alias("demo.text", "demo.strings")

	// Paths under demo.echo.* materialize on demand.
	registry.AddFinder(registry.PrefixFinder("demo.echo", func(path string) (any, error) {
		return module.Map{
			"__name__": path,
			"Value":    strings.TrimPrefix(path, "demo.echo."),
		}, nil
	}))
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
