// Package engine orchestrates the build pipeline (walk, extract, resolve,
// persist) and tracks the loaded stores that queries run against.
package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"codegraph/internal/cache"
	"codegraph/internal/graph"
	"codegraph/internal/query"
	"codegraph/internal/resolver"
	"codegraph/internal/scanner"
	"codegraph/util"
)

// Engine holds one loaded store per project path. Exactly one project is
// "current" at a time; the query operations, which take no project
// argument, run against it.
type Engine struct {
	cache       *cache.Cache
	maxFileSize int64

	mu      sync.Mutex
	stores  map[string]*graph.Store
	current string
}

// New creates an engine backed by the given cache.
func New(c *cache.Cache) *Engine {
	return &Engine{
		cache:       c,
		maxFileSize: scanner.MaxFileSize(),
		stores:      make(map[string]*graph.Store),
	}
}

// BuildResult summarizes an analyze or load operation.
type BuildResult struct {
	ProjectPath string   `json:"project_path"`
	Nodes       int      `json:"nodes"`
	Edges       int      `json:"edges"`
	Files       int      `json:"files"`
	Skipped     []string `json:"skipped,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	FromCache   bool     `json:"from_cache"`
}

// Analyze builds (or reuses) the graph for projectPath. Without force, an
// already-loaded store or a cache entry is reused as-is; note the cache
// is keyed by path only, so a reused entry may predate source edits.
// With force, the store is rebuilt from scratch and the cache entry
// overwritten. An empty projectPath defaults to the enclosing git root.
func (e *Engine) Analyze(ctx context.Context, projectPath string, force bool) (*BuildResult, error) {
	abs, err := e.resolveProjectPath(projectPath)
	if err != nil {
		return nil, err
	}

	if !force {
		e.mu.Lock()
		st, loaded := e.stores[abs]
		if loaded {
			e.current = abs
		}
		e.mu.Unlock()
		if loaded {
			return summarize(st, true), nil
		}

		st, found, err := e.cache.Load(abs)
		if err != nil {
			log.Printf("Warning: ignoring unreadable cache entry for %s: %v", abs, err)
		} else if found {
			e.setCurrent(abs, st)
			return summarize(st, true), nil
		}
	}

	files, err := scanner.Walk(abs, e.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to walk project: %w", err)
	}

	var facts []*scanner.FileFacts
	var skipped, errs []string
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(filepath.Join(abs, rel))
		if err != nil {
			skipped = append(skipped, rel)
			errs = append(errs, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		f, err := scanner.Extract(content, rel)
		if err != nil {
			skipped = append(skipped, rel)
			errs = append(errs, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		facts = append(facts, f)
	}

	res := resolver.Build(abs, facts)
	if err := e.cache.Save(res.Store); err != nil {
		log.Printf("Warning: failed to persist graph for %s: %v", abs, err)
	}
	e.setCurrent(abs, res.Store)

	result := summarize(res.Store, false)
	result.Skipped = skipped
	result.Errors = errs
	return result, nil
}

// LoadCached loads a previously persisted graph without rebuilding.
// found is false when no entry exists for the path.
func (e *Engine) LoadCached(projectPath string) (res *BuildResult, found bool, err error) {
	abs, err := e.resolveProjectPath(projectPath)
	if err != nil {
		return nil, false, err
	}

	st, found, err := e.cache.Load(abs)
	if err != nil || !found {
		return nil, found, err
	}
	e.setCurrent(abs, st)
	return summarize(st, true), true, nil
}

// ClearCache removes the entry for projectPath, or every entry when
// projectPath is empty. removed reports how many entries were deleted;
// zero is not an error.
func (e *Engine) ClearCache(projectPath string) (removed int, err error) {
	if projectPath == "" {
		return e.cache.DeleteAll()
	}
	abs, err := e.resolveProjectPath(projectPath)
	if err != nil {
		return 0, err
	}
	ok, err := e.cache.Delete(abs)
	if err != nil {
		return 0, err
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

// ListCached summarizes every cache entry.
func (e *Engine) ListCached() ([]cache.Summary, error) {
	return e.cache.List()
}

// Query returns a query engine over the current store, or false when no
// project has been analyzed or loaded yet.
func (e *Engine) Query() (*query.Engine, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.stores[e.current]
	if !ok {
		return nil, false
	}
	return query.New(st), true
}

func (e *Engine) setCurrent(abs string, st *graph.Store) {
	e.mu.Lock()
	e.stores[abs] = st
	e.current = abs
	e.mu.Unlock()
}

func (e *Engine) resolveProjectPath(projectPath string) (string, error) {
	if projectPath == "" {
		root, err := util.FindGitRoot("")
		if err != nil {
			return "", fmt.Errorf("failed to determine project root: %w", err)
		}
		projectPath = root
	}
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return "", fmt.Errorf("invalid project path %q: %w", projectPath, err)
	}
	return abs, nil
}

func summarize(st *graph.Store, fromCache bool) *BuildResult {
	return &BuildResult{
		ProjectPath: st.Metadata().ProjectPath,
		Nodes:       st.NodeCount(),
		Edges:       st.EdgeCount(),
		Files:       st.FileCount(),
		FromCache:   fromCache,
	}
}
