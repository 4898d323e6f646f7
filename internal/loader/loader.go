// Package loader implements the module loading and symbol resolution
// subsystem (spec.md §4.4): path resolution, on-demand lex+parse, cycle
// detection via a loading set, and an in-memory, process-wide module
// cache. It is the core the rest of this repository exists to support.
package loader

import (
	"context"
	"os"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/config"
	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/lexer"
	"github.com/hassan/mana/internal/manalog"
	"github.com/hassan/mana/internal/parser"
	"github.com/hassan/mana/internal/symtab"
)

// Options configures a Loader (spec.md §4.4.1).
type Options struct {
	SearchPaths []string
	ProjectRoot string
	StdLibRoot  string
	Sink        diag.Sink
}

// Loader resolves module paths and file imports, caches parsed modules and
// their export tables, and detects circular dependencies. A Loader is not
// safe for concurrent use; spec.md §5 specifies a single-threaded
// cooperative scheduling model with no parallel loads.
type Loader struct {
	SearchPaths []string
	ProjectRoot string
	StdLibRoot  string
	Sink        diag.Sink

	// SessionID distinguishes one Loader instance from another in logs; it
	// carries no semantic weight and is never compared for equality by the
	// loader itself.
	SessionID uuid.UUID

	cache      map[string]*LoadedModule
	fileIndex  map[string]string // absolute file path -> module name
	loadingSet map[string]bool
}

// New constructs a Loader from explicit options. Environment-derived
// defaults (the standard-library root) are snapshotted by the caller, at
// config.Resolve time, per spec.md §9 "environment-derived configuration".
func New(opts Options) *Loader {
	return &Loader{
		SearchPaths: opts.SearchPaths,
		ProjectRoot: opts.ProjectRoot,
		StdLibRoot:  opts.StdLibRoot,
		Sink:        opts.Sink,
		SessionID:   uuid.New(),
		cache:       make(map[string]*LoadedModule),
		fileIndex:   make(map[string]string),
		loadingSet:  make(map[string]bool),
	}
}

// FromConfig constructs a Loader from a resolved manifest.
func FromConfig(r config.Resolved, sink diag.Sink) *Loader {
	return New(Options{
		SearchPaths: r.SearchPaths,
		ProjectRoot: r.ProjectRoot,
		StdLibRoot:  r.StdLibRoot,
		Sink:        sink,
	})
}

func (l *Loader) report(err *diag.Error) {
	if l.Sink != nil {
		l.Sink.Report(err)
	}
}

// LoadModule resolves a dotted module path and loads it, following
// spec.md §4.4.4's numbered protocol. fromFile, when non-empty, is the
// absolute path of the file doing the importing, used to give sibling
// imports priority (§4.4.2 step 5).
func (l *Loader) LoadModule(ctx context.Context, path string, fromFile string) (*LoadedModule, error) {
	logger := manalog.FromContext(ctx).WithValues("module_path", path)

	if mod, ok := l.cache[path]; ok {
		return mod, nil
	}
	if l.loadingSet[path] {
		err := diag.CircularDependency(path)
		l.report(err)
		return nil, err
	}

	absPath, resolveErr := l.resolveModulePath(path, fromFile)
	if resolveErr != nil {
		l.report(resolveErr)
		return nil, resolveErr
	}

	return l.loadAt(ctx, path, absPath, logger)
}

// LoadFile loads a module from an absolute or relative file path directly,
// deriving its module name from the path (spec.md §4.4.4, load_file).
func (l *Loader) LoadFile(ctx context.Context, path string) (*LoadedModule, error) {
	absPath, err := absOrReport(path)
	if err != nil {
		l.report(err)
		return nil, err
	}

	name := ModuleNameForFile(absPath)
	logger := manalog.FromContext(ctx).WithValues("module_path", name)

	if mod, ok := l.cache[name]; ok {
		return mod, nil
	}
	if l.loadingSet[name] {
		cycleErr := diag.CircularDependency(name)
		l.report(cycleErr)
		return nil, cycleErr
	}

	return l.loadAt(ctx, name, absPath, logger)
}

func absOrReport(path string) (string, *diag.Error) {
	if abs, ok := existingAbs(path); ok {
		return abs, nil
	}
	return "", diag.CannotOpenFile(path)
}

// loadAt performs steps 4-9 of §4.4.4, shared by LoadModule and LoadFile
// once a module's identity (name, absolute file path) is known.
func (l *Loader) loadAt(ctx context.Context, name, absPath string, logger logr.Logger) (*LoadedModule, error) {
	l.loadingSet[name] = true
	defer delete(l.loadingSet, name)

	source, err := os.ReadFile(absPath)
	if err != nil {
		diagErr := diag.CannotOpenFile(absPath)
		l.report(diagErr)
		return nil, diagErr
	}

	lex := lexer.New(string(source), absPath)
	p := parser.New(lex)
	astMod, parseErrors := p.ParseModule(name, absPath)
	if len(parseErrors) > 0 {
		diagErr := diag.FailedToParse(absPath)
		l.report(diagErr)
		return nil, diagErr
	}

	deps, err := l.resolveDependencies(ctx, astMod, absPath)
	if err != nil {
		return nil, err
	}

	exports := symtab.RegisterExports(astMod, l.Sink)

	mod := &LoadedModule{
		Name:         name,
		FilePath:     absPath,
		AST:          astMod,
		Exports:      exports,
		Dependencies: deps,
	}
	l.cache[name] = mod
	l.fileIndex[absPath] = name

	logger.Info("module loaded", "file", absPath, "exports", len(exports.GetAllExports()))
	return mod, nil
}

// resolveDependencies walks a freshly parsed module's top-level use/import
// declarations and loads each one, recursively, while name is still in the
// loading set — this is what makes a transitive dependency back to an
// in-progress module surface as a cycle (spec.md §4.4.5). A failure in any
// dependency fails this module's own load; no partial AST is retained for
// either side (spec.md §4.4.5, §4.4.7).
func (l *Loader) resolveDependencies(ctx context.Context, mod *ast.Module, fromFile string) ([]string, error) {
	var deps []string
	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *ast.ImportDecl:
			if d.IsFileImport {
				absPath, resolveErr := l.resolveFileImport(d.Path, fromFile)
				if resolveErr != nil {
					l.report(resolveErr)
					return nil, resolveErr
				}
				dep, err := l.LoadFile(ctx, absPath)
				if err != nil {
					return nil, err
				}
				deps = append(deps, dep.Name)
				continue
			}
			dep, err := l.LoadModule(ctx, d.Name, fromFile)
			if err != nil {
				return nil, err
			}
			deps = append(deps, dep.Name)

		case *ast.UseDecl:
			dep, err := l.LoadModule(ctx, d.ModulePath, fromFile)
			if err != nil {
				return nil, err
			}
			deps = append(deps, dep.Name)
		}
	}
	return deps, nil
}

// GetModule returns the cached module for a previously loaded path.
func (l *Loader) GetModule(path string) (*LoadedModule, bool) {
	mod, ok := l.cache[path]
	return mod, ok
}

// GetModuleByPath looks a module up by its absolute file path, restoring
// the original's reverse file_path -> name mapping as a public operation
// (SPEC_FULL, grounded in original_source/frontend/ModuleLoader.h
// get_module_by_path).
func (l *Loader) GetModuleByPath(absPath string) (*LoadedModule, bool) {
	abs, ok := existingAbs(absPath)
	if !ok {
		return nil, false
	}
	name, ok := l.fileIndex[abs]
	if !ok {
		return nil, false
	}
	return l.GetModule(name)
}

// GetExport performs a single hash lookup for a directly exported name,
// falling back to lazily resolving name against path's unresolved
// re-exports (spec.md §4.4.6: re-exports are use-declarations resolved on
// lookup, never eagerly materialized).
func (l *Loader) GetExport(path, name string) (*symtab.Symbol, bool) {
	return l.getExport(path, name, make(map[string]bool))
}

func (l *Loader) getExport(path, name string, visiting map[string]bool) (*symtab.Symbol, bool) {
	mod, ok := l.GetModule(path)
	if !ok {
		return nil, false
	}
	if sym, ok := mod.Exports.GetExport(name); ok {
		return sym, true
	}

	if visiting[path] {
		return nil, false
	}
	visiting[path] = true

	for _, re := range mod.Exports.Reexports() {
		if re.Glob {
			if sym, ok := l.getExport(re.ModulePath, name, visiting); ok {
				return sym, true
			}
			continue
		}
		if re.LocalName == name {
			if sym, ok := l.getExport(re.ModulePath, re.ImportedName, visiting); ok {
				return sym, true
			}
		}
	}
	return nil, false
}

// GetAllExports returns a module's directly registered exports (not its
// unresolved re-exports) in source order.
func (l *Loader) GetAllExports(path string) ([]*symtab.Symbol, bool) {
	mod, ok := l.GetModule(path)
	if !ok {
		return nil, false
	}
	return mod.Exports.GetAllExports(), true
}

// Modules returns every module currently in the cache, in unspecified
// order; callers requiring determinism must sort.
func (l *Loader) Modules() []*LoadedModule {
	out := make([]*LoadedModule, 0, len(l.cache))
	for _, mod := range l.cache {
		out = append(out, mod)
	}
	return out
}

// ClearCache drops every cached module and resets the loading set. Existing
// *LoadedModule references held by callers remain valid as read-only
// snapshots; they simply stop being reachable through this Loader.
func (l *Loader) ClearCache() {
	l.cache = make(map[string]*LoadedModule)
	l.fileIndex = make(map[string]string)
	l.loadingSet = make(map[string]bool)
}
