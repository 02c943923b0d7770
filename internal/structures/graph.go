package structures

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoscope/internal/trace"
)

// Graph is a traced undirected graph with visited/frontier marking, the
// working structure for traversal algorithms.
type Graph struct {
	adj      [][]int
	edges    []trace.Edge
	visited  []bool
	frontier []bool
	tr       *trace.Tracer
}

func NewGraph(n int, edges [][2]int) *Graph {
	g := &Graph{
		adj:      make([][]int, n),
		visited:  make([]bool, n),
		frontier: make([]bool, n),
	}
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			continue
		}
		g.adj[u] = append(g.adj[u], v)
		g.adj[v] = append(g.adj[v], u)
		g.edges = append(g.edges, trace.Edge{From: u, To: v})
	}
	for _, nbrs := range g.adj {
		slices.Sort(nbrs)
	}
	g.tr = trace.NewTracer(g)
	return g
}

func (g *Graph) Tracer() *trace.Tracer { return g.tr }

func (g *Graph) Snapshot() trace.Snapshot {
	vertices := make([]trace.Vertex, len(g.adj))
	for i := range g.adj {
		vertices[i] = trace.Vertex{ID: i, Visited: g.visited[i], Frontier: g.frontier[i]}
	}
	return trace.Snapshot{
		Kind:     trace.KindGraph,
		Vertices: vertices,
		Edges:    slices.Clone(g.edges),
	}
}

func (g *Graph) Order() int             { return len(g.adj) }
func (g *Graph) Neighbors(v int) []int  { return g.adj[v] }
func (g *Graph) IsVisited(v int) bool   { return g.visited[v] }
func (g *Graph) InFrontier(v int) bool  { return g.frontier[v] }

// Enqueue marks v as discovered but not yet visited.
func (g *Graph) Enqueue(v int) error {
	g.frontier[v] = true
	return g.tr.Record(trace.OpEnqueue, []int{v},
		fmt.Sprintf("add vertex %d to frontier", v))
}

// Visit moves v from the frontier to the visited set.
func (g *Graph) Visit(v int) error {
	g.frontier[v] = false
	g.visited[v] = true
	return g.tr.Record(trace.OpVisit, []int{v},
		fmt.Sprintf("visit vertex %d", v))
}

func (g *Graph) Done(msg string) error {
	return g.tr.Record(trace.OpDone, nil, msg)
}
