package registry

import "github.com/charmbracelet/log"

// ── Default registry ─────────────────────────────────────────────────────────

// std is the process-wide registry, mirroring the host environment's single
// global import system. lazy.Import and dispatch loaders fall back to it
// when no explicit importer is supplied.
var std = New()

// Default returns the process-wide registry.
func Default() *Registry { return std }

// Register binds a factory in the default registry.
func Register(path string, f Factory) { std.Register(path, f) }

// RegisterValue binds a pre-built value in the default registry.
func RegisterValue(path string, v any) { std.RegisterValue(path, v) }

// Alias registers an alias in the default registry.
func Alias(path, alias string) { std.Alias(path, alias) }

// Import resolves a path through the default registry.
func Import(path string) (any, error) { return std.Import(path) }

// AddFinder appends a finder to the default registry.
func AddFinder(f Finder) { std.AddFinder(f) }

// SetLogger attaches a trace logger to the default registry.
func SetLogger(logger *log.Logger) { std.SetLogger(logger) }
