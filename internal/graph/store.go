package graph

import (
	"sort"
	"strings"
	"time"
)

// Direction selects which edges Connections follows.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// Metadata describes a store as a whole.
type Metadata struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProjectPath string    `json:"project_path"`
}

// Store holds the nodes and edges of one project's code graph along with
// the indexes needed to answer queries: a forward edge map, a reverse edge
// map, and a per-file node index. It is a pure data structure; callers
// own synchronization (a store is populated once, then read-only).
type Store struct {
	meta    Metadata
	nodes   map[string]*Node
	order   []string // node ids in insertion order, for deterministic scans
	forward map[string][]Edge
	reverse map[string][]Edge
	files   map[string][]string // file -> node ids

	edgeCount int
}

// NewStore creates an empty store for the given project root.
func NewStore(projectPath string) *Store {
	now := time.Now().UTC()
	return &Store{
		meta: Metadata{
			CreatedAt:   now,
			UpdatedAt:   now,
			ProjectPath: projectPath,
		},
		nodes:   make(map[string]*Node),
		forward: make(map[string][]Edge),
		reverse: make(map[string][]Edge),
		files:   make(map[string][]string),
	}
}

// Metadata returns the store-level metadata.
func (s *Store) Metadata() Metadata {
	return s.meta
}

// SetMetadata replaces the store-level metadata. Used when reconstructing
// a store from its persisted form.
func (s *Store) SetMetadata(meta Metadata) {
	s.meta = meta
}

// Touch updates the store's update timestamp.
func (s *Store) Touch() {
	s.meta.UpdatedAt = time.Now().UTC()
}

// AddNode inserts or overwrites the node at n.ID. A duplicate id is not an
// error; the last write wins and the file index keeps a single entry.
func (s *Store) AddNode(n *Node) {
	if _, exists := s.nodes[n.ID]; !exists {
		s.order = append(s.order, n.ID)
		s.files[n.File] = append(s.files[n.File], n.ID)
	}
	s.nodes[n.ID] = n
	if _, ok := s.forward[n.ID]; !ok {
		s.forward[n.ID] = []Edge{}
	}
	if _, ok := s.reverse[n.ID]; !ok {
		s.reverse[n.ID] = []Edge{}
	}
}

// AddEdge records a directed edge in both the forward and reverse indexes.
// It does not validate that either endpoint exists and does not
// deduplicate; each call site or import occurrence gets its own edge.
func (s *Store) AddEdge(from, to, edgeType string) {
	e := Edge{From: from, To: to, Type: edgeType}
	s.forward[from] = append(s.forward[from], e)
	s.reverse[to] = append(s.reverse[to], e)
	s.edgeCount++
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (s *Store) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes in the store.
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges in the store.
func (s *Store) EdgeCount() int {
	return s.edgeCount
}

// Edges returns every edge, grouped by source id in sorted order so the
// result is deterministic.
func (s *Store) Edges() []Edge {
	keys := make([]string, 0, len(s.forward))
	for k := range s.forward {
		if len(s.forward[k]) == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var edges []Edge
	for _, k := range keys {
		edges = append(edges, s.forward[k]...)
	}
	return edges
}

// Files returns every indexed file path in sorted order.
func (s *Store) Files() []string {
	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FileCount returns the number of files that declare at least one node.
func (s *Store) FileCount() int {
	return len(s.files)
}

// FileNodeIDs returns the node ids declared in a file, in insertion order.
func (s *Store) FileNodeIDs(file string) []string {
	return s.files[file]
}

// FileNodes returns the nodes declared in a file, in insertion order.
func (s *Store) FileNodes(file string) []*Node {
	ids := s.files[file]
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Connection is one edge reached during traversal, flattened with the
// node data of both endpoints. Endpoint data is nil for synthetic
// import-site and call-site ids.
type Connection struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Type     string `json:"type"`
	FromNode *Node  `json:"from_node,omitempty"`
	ToNode   *Node  `json:"to_node,omitempty"`
}

// Connections traverses edges starting at id, following outgoing edges
// when direction is outgoing or both and incoming edges when direction is
// incoming or both, up to depth hops. Each node is expanded at most once,
// which bounds the work and makes cycles terminate. depth counts hops: a
// depth of 0 visits the start node and returns no edges.
func (s *Store) Connections(id string, direction Direction, depth int) []Connection {
	visited := make(map[string]bool)
	var out []Connection
	s.collect(id, direction, depth, visited, &out)
	return out
}

func (s *Store) collect(id string, direction Direction, depth int, visited map[string]bool, out *[]Connection) {
	if visited[id] {
		return
	}
	visited[id] = true
	if depth <= 0 {
		return
	}

	if direction == DirectionOutgoing || direction == DirectionBoth {
		for _, e := range s.forward[id] {
			*out = append(*out, s.connection(e))
			s.collect(e.To, direction, depth-1, visited, out)
		}
	}
	if direction == DirectionIncoming || direction == DirectionBoth {
		for _, e := range s.reverse[id] {
			*out = append(*out, s.connection(e))
			s.collect(e.From, direction, depth-1, visited, out)
		}
	}
}

func (s *Store) connection(e Edge) Connection {
	return Connection{
		From:     e.From,
		To:       e.To,
		Type:     e.Type,
		FromNode: s.nodes[e.From],
		ToNode:   s.nodes[e.To],
	}
}

// SearchResult pairs a matched node with its relevance score.
type SearchResult struct {
	Node  *Node `json:"node"`
	Score int   `json:"score"`
}

// Search matches query case-insensitively as a substring of the node name
// (score 2) or the file path (score 1). kind, when non-empty, filters to
// an exact kind. Results are sorted by descending score; ties keep
// insertion order.
func (s *Store) Search(query, kind string) []SearchResult {
	q := strings.ToLower(query)
	var results []SearchResult
	for _, id := range s.order {
		n := s.nodes[id]
		if kind != "" && n.Kind != kind {
			continue
		}
		var score int
		switch {
		case strings.Contains(strings.ToLower(n.Name), q):
			score = 2
		case strings.Contains(strings.ToLower(n.File), q):
			score = 1
		default:
			continue
		}
		results = append(results, SearchResult{Node: n, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
