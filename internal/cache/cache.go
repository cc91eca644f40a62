// Package cache persists graph stores as self-contained JSON documents in
// a cache directory, one entry per project path hash.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codegraph/internal/graph"
	"codegraph/util"
)

// Document is the durable form of a graph store.
type Document struct {
	Metadata    graph.Metadata `json:"metadata"`
	ProjectHash string         `json:"project_hash"`
	Nodes       []*graph.Node  `json:"nodes"`
	Edges       []graph.Edge   `json:"edges"`
	FileIndex   []FileEntry    `json:"file_index"`
}

// FileEntry maps one file to the ids of the nodes it declares.
type FileEntry struct {
	File    string   `json:"file"`
	NodeIDs []string `json:"node_ids"`
}

// Summary describes a cache entry without reconstructing its store.
type Summary struct {
	ProjectPath string    `json:"project_path"`
	ProjectHash string    `json:"project_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Nodes       int       `json:"nodes"`
	Edges       int       `json:"edges"`
	Files       int       `json:"files"`
}

// Cache reads and writes graph documents under a single directory.
type Cache struct {
	dir string
}

// New creates a Cache rooted at the default cache directory.
func New() (*Cache, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// NewAt creates a Cache rooted at an explicit directory.
func NewAt(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) entryPath(projectPath string) string {
	return filepath.Join(c.dir, util.ProjectHash(projectPath)+".json")
}

// Save serializes the store, overwriting any prior entry for the same
// project path. The store's update timestamp is refreshed first.
func (c *Cache) Save(store *graph.Store) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	store.Touch()
	meta := store.Metadata()

	doc := Document{
		Metadata:    meta,
		ProjectHash: util.ProjectHash(meta.ProjectPath),
		Nodes:       store.Nodes(),
		Edges:       store.Edges(),
	}
	for _, file := range store.Files() {
		doc.FileIndex = append(doc.FileIndex, FileEntry{
			File:    file,
			NodeIDs: store.FileNodeIDs(file),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}
	if err := os.WriteFile(c.entryPath(meta.ProjectPath), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Load reconstructs the store cached for projectPath. A missing entry is
// not an error: found is false and err is nil. A malformed entry is a
// load failure the caller should treat as a rebuild signal.
func (c *Cache) Load(projectPath string) (store *graph.Store, found bool, err error) {
	data, err := os.ReadFile(c.entryPath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry for %s: %w", projectPath, err)
	}

	store = graph.NewStore(doc.Metadata.ProjectPath)
	store.SetMetadata(doc.Metadata)
	for _, n := range doc.Nodes {
		store.AddNode(n)
	}
	for _, e := range doc.Edges {
		store.AddEdge(e.From, e.To, e.Type)
	}
	return store, true, nil
}

// Delete removes the entry for projectPath. Removing a nonexistent entry
// is not an error; removed reports whether anything was deleted.
func (c *Cache) Delete(projectPath string) (removed bool, err error) {
	err = os.Remove(c.entryPath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return true, nil
}

// DeleteAll removes every cache entry, returning how many were removed.
func (c *Cache) DeleteAll() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// List summarizes every cache entry. Malformed entries are skipped rather
// than failing the whole listing.
func (c *Cache) List() ([]Summary, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache dir: %w", err)
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			continue
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			ProjectPath: doc.Metadata.ProjectPath,
			ProjectHash: doc.ProjectHash,
			CreatedAt:   doc.Metadata.CreatedAt,
			UpdatedAt:   doc.Metadata.UpdatedAt,
			Nodes:       len(doc.Nodes),
			Edges:       len(doc.Edges),
			Files:       len(doc.FileIndex),
		})
	}
	return summaries, nil
}
