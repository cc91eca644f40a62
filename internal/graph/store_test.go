package graph

import (
	"testing"
)

func fn(file, name string, line int) *Node {
	return &Node{
		ID:       NodeID(file, name, line),
		Name:     name,
		Kind:     KindFunction,
		File:     file,
		Line:     line,
		Function: &FunctionInfo{},
	}
}

func TestAddNodeOverwrite(t *testing.T) {
	s := NewStore("/p")

	first := fn("a.js", "foo", 1)
	s.AddNode(first)

	second := fn("a.js", "foo", 1)
	second.Function.Params = 3
	s.AddNode(second)

	if s.NodeCount() != 1 {
		t.Fatalf("expected 1 node after overwrite, got %d", s.NodeCount())
	}
	if ids := s.FileNodeIDs("a.js"); len(ids) != 1 {
		t.Errorf("expected single file index entry, got %d", len(ids))
	}
	n, ok := s.Node(first.ID)
	if !ok {
		t.Fatal("node not found after overwrite")
	}
	if n.Function.Params != 3 {
		t.Errorf("expected last write to win, got params=%d", n.Function.Params)
	}
}

func TestAddEdgeUpdatesBothIndexes(t *testing.T) {
	s := NewStore("/p")
	a := fn("a.js", "a", 1)
	b := fn("b.js", "b", 1)
	s.AddNode(a)
	s.AddNode(b)
	s.AddEdge(a.ID, b.ID, EdgeCalls)

	out := s.Connections(a.ID, DirectionOutgoing, 1)
	if len(out) != 1 || out[0].To != b.ID {
		t.Fatalf("expected one outgoing connection to %s, got %v", b.ID, out)
	}
	in := s.Connections(b.ID, DirectionIncoming, 1)
	if len(in) != 1 || in[0].From != a.ID {
		t.Fatalf("expected one incoming connection from %s, got %v", a.ID, in)
	}
	if out[0].FromNode == nil || out[0].ToNode == nil {
		t.Error("expected endpoint node data to be populated")
	}
}

func TestEdgesAreNotDeduplicated(t *testing.T) {
	s := NewStore("/p")
	a := fn("a.js", "a", 1)
	b := fn("b.js", "b", 1)
	s.AddNode(a)
	s.AddNode(b)
	s.AddEdge(a.ID, b.ID, EdgeCalls)
	s.AddEdge(a.ID, b.ID, EdgeCalls)

	if s.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", s.EdgeCount())
	}
	if out := s.Connections(a.ID, DirectionOutgoing, 1); len(out) != 2 {
		t.Errorf("expected both edges in traversal, got %d", len(out))
	}
}

func TestConnectionsDepthBound(t *testing.T) {
	s := NewStore("/p")
	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		n := fn(name+".js", name, 1)
		s.AddNode(n)
		ids = append(ids, n.ID)
	}
	for i := 0; i < 3; i++ {
		s.AddEdge(ids[i], ids[i+1], EdgeCalls)
	}

	tests := []struct {
		depth int
		want  int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		got := s.Connections(ids[0], DirectionOutgoing, tt.depth)
		if len(got) != tt.want {
			t.Errorf("depth %d: expected %d connections, got %d", tt.depth, tt.want, len(got))
		}
	}
}

func TestConnectionsCycleTerminates(t *testing.T) {
	s := NewStore("/p")
	a := fn("a.js", "a", 1)
	b := fn("b.js", "b", 1)
	s.AddNode(a)
	s.AddNode(b)
	s.AddEdge(a.ID, b.ID, EdgeCalls)
	s.AddEdge(b.ID, a.ID, EdgeCalls)

	got := s.Connections(a.ID, DirectionOutgoing, 100)
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 connections in a 2-cycle, got %d", len(got))
	}
}

func TestConnectionsExtendsCycle(t *testing.T) {
	// A malformed extends cycle must still terminate.
	s := NewStore("/p")
	a := &Node{ID: NodeID("a.js", "A", 1), Name: "A", Kind: KindClass, File: "a.js", Line: 1, Class: &ClassInfo{Superclass: "B"}}
	b := &Node{ID: NodeID("b.js", "B", 1), Name: "B", Kind: KindClass, File: "b.js", Line: 1, Class: &ClassInfo{Superclass: "A"}}
	s.AddNode(a)
	s.AddNode(b)
	s.AddEdge(a.ID, b.ID, EdgeExtends)
	s.AddEdge(b.ID, a.ID, EdgeExtends)

	got := s.Connections(a.ID, DirectionBoth, 50)
	if len(got) == 0 {
		t.Fatal("expected connections from cyclic graph")
	}
}

func TestConnectionsDirectionBoth(t *testing.T) {
	s := NewStore("/p")
	a := fn("a.js", "a", 1)
	b := fn("b.js", "b", 1)
	c := fn("c.js", "c", 1)
	s.AddNode(a)
	s.AddNode(b)
	s.AddNode(c)
	s.AddEdge(a.ID, b.ID, EdgeCalls)
	s.AddEdge(c.ID, a.ID, EdgeCalls)

	got := s.Connections(a.ID, DirectionBoth, 1)
	if len(got) != 2 {
		t.Fatalf("expected both directions at depth 1, got %d connections", len(got))
	}

	if out := s.Connections(a.ID, DirectionOutgoing, 1); len(out) != 1 {
		t.Errorf("expected 1 outgoing connection, got %d", len(out))
	}
	if in := s.Connections(a.ID, DirectionIncoming, 1); len(in) != 1 {
		t.Errorf("expected 1 incoming connection, got %d", len(in))
	}
}

func TestSearchScoring(t *testing.T) {
	s := NewStore("/p")
	byPath := fn("src/foo/helpers.js", "unrelated", 1)
	byName := fn("src/other.js", "fooBar", 1)
	s.AddNode(byPath)
	s.AddNode(byName)

	results := s.Search("foo", "")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Node.ID != byName.ID || results[0].Score != 2 {
		t.Errorf("expected name match first with score 2, got %s score %d", results[0].Node.Name, results[0].Score)
	}
	if results[1].Node.ID != byPath.ID || results[1].Score != 1 {
		t.Errorf("expected path match second with score 1, got %s score %d", results[1].Node.Name, results[1].Score)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := NewStore("/p")
	s.AddNode(fn("a.js", "FetchData", 1))

	if results := s.Search("fetchdata", ""); len(results) != 1 {
		t.Errorf("expected case-insensitive match, got %d results", len(results))
	}
	if results := s.Search("FETCH", ""); len(results) != 1 {
		t.Errorf("expected case-insensitive partial match, got %d results", len(results))
	}
}

func TestSearchKindFilter(t *testing.T) {
	s := NewStore("/p")
	s.AddNode(fn("a.js", "thing", 1))
	s.AddNode(&Node{ID: NodeID("b.js", "thing", 2), Name: "thing", Kind: KindClass, File: "b.js", Line: 2, Class: &ClassInfo{}})

	results := s.Search("thing", KindClass)
	if len(results) != 1 {
		t.Fatalf("expected 1 class result, got %d", len(results))
	}
	if results[0].Node.Kind != KindClass {
		t.Errorf("expected class kind, got %s", results[0].Node.Kind)
	}
}

func TestFileNodesInsertionOrder(t *testing.T) {
	s := NewStore("/p")
	second := fn("a.js", "second", 5)
	first := fn("a.js", "first", 1)
	s.AddNode(second)
	s.AddNode(first)

	nodes := s.FileNodes("a.js")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].ID != second.ID {
		t.Errorf("expected insertion order preserved, got %s first", nodes[0].Name)
	}
}

func TestSyntheticSourceNotInNodeSet(t *testing.T) {
	s := NewStore("/p")
	target := fn("a.js", "foo", 1)
	s.AddNode(target)
	site := CallSiteID("b.js", 3)
	s.AddEdge(site, target.ID, EdgeCalls)

	if _, ok := s.Node(site); ok {
		t.Error("call-site id must not appear in the node map")
	}
	in := s.Connections(target.ID, DirectionIncoming, 1)
	if len(in) != 1 {
		t.Fatalf("expected 1 incoming connection, got %d", len(in))
	}
	if in[0].FromNode != nil {
		t.Error("expected nil node data for synthetic source")
	}
	if in[0].ToNode == nil {
		t.Error("expected node data for real target")
	}
}
