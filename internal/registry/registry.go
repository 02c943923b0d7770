package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/algoscope/internal/algorithms"
	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
)

type Family string

const (
	FamilySorting   Family = "sorting"
	FamilySearching Family = "searching"
	FamilyGraph     Family = "graph"
	FamilyTree      Family = "tree"
	FamilyHash      Family = "hash"
)

// Input is the literal an algorithm runs against. Fields beyond Values
// matter only to some families.
type Input struct {
	Values    []int    `json:"values"`
	Target    int      `json:"target,omitempty"`
	Edges     [][2]int `json:"edges,omitempty"`
	Vertices  int      `json:"vertices,omitempty"`
	Start     int      `json:"start,omitempty"`
	StepLimit int      `json:"-"`
}

// Runner executes one algorithm under the tracer and returns the finalized
// trace. On a captured failure the trace is still finalized and returned
// alongside the error.
type Runner func(ctx context.Context, in Input) (*trace.Trace, error)

type Descriptor struct {
	Name       string
	Family     Family
	Summary    string
	Complexity string
	Run        Runner
}

// Registry is an immutable name -> descriptor table built at startup and
// passed explicitly to its consumers.
type Registry struct {
	byName map[string]Descriptor
}

func New() *Registry {
	r := &Registry{byName: make(map[string]Descriptor)}

	r.add(Descriptor{"bubble_sort", FamilySorting, "adjacent swaps until ordered", "O(n^2)", sortRunner(algorithms.BubbleSort)})
	r.add(Descriptor{"insertion_sort", FamilySorting, "grow a sorted prefix", "O(n^2)", sortRunner(algorithms.InsertionSort)})
	r.add(Descriptor{"selection_sort", FamilySorting, "repeatedly select the minimum", "O(n^2)", sortRunner(algorithms.SelectionSort)})
	r.add(Descriptor{"quick_sort", FamilySorting, "partition around a pivot", "O(n log n)", sortRunner(algorithms.QuickSort)})
	r.add(Descriptor{"merge_sort", FamilySorting, "merge sorted halves", "O(n log n)", sortRunner(algorithms.MergeSort)})
	r.add(Descriptor{"heap_sort", FamilySorting, "sift a binary heap", "O(n log n)", sortRunner(algorithms.HeapSort)})

	r.add(Descriptor{"linear_search", FamilySearching, "scan left to right", "O(n)", searchRunner(algorithms.LinearSearch)})
	r.add(Descriptor{"binary_search", FamilySearching, "halve a sorted range", "O(log n)", searchRunner(algorithms.BinarySearch)})

	r.add(Descriptor{"bfs", FamilyGraph, "breadth-first traversal", "O(V+E)", graphRunner(algorithms.BFS)})
	r.add(Descriptor{"dfs", FamilyGraph, "depth-first traversal", "O(V+E)", graphRunner(algorithms.DFS)})

	r.add(Descriptor{"bst", FamilyTree, "binary search tree build and search", "O(n log n)", treeRunner(false)})
	r.add(Descriptor{"avl", FamilyTree, "self-balancing tree build and search", "O(n log n)", treeRunner(true)})

	r.add(Descriptor{"hash_table", FamilyHash, "chaining hash table build and lookup", "O(n)", hashRunner()})

	return r
}

func (r *Registry) add(d Descriptor) { r.byName[d.Name] = d }

func (r *Registry) Get(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("unknown algorithm: %s", name)
	}
	return d, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.byName))
	for _, name := range r.Names() {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *Registry) Family(f Family) []Descriptor {
	var out []Descriptor
	for _, d := range r.Descriptors() {
		if d.Family == f {
			out = append(out, d)
		}
	}
	return out
}

func sortRunner(body func(context.Context, *structures.Array) error) Runner {
	return func(ctx context.Context, in Input) (*trace.Trace, error) {
		a := structures.NewArray(in.Values)
		a.Tracer().SetLimit(in.StepLimit)
		a.Tracer().Begin()
		runErr := body(ctx, a)
		return finish(a.Tracer(), runErr)
	}
}

func searchRunner(body func(context.Context, *structures.Array, int) (int, error)) Runner {
	return func(ctx context.Context, in Input) (*trace.Trace, error) {
		a := structures.NewArray(in.Values)
		a.Tracer().SetLimit(in.StepLimit)
		a.Tracer().Begin()
		_, runErr := body(ctx, a, in.Target)
		return finish(a.Tracer(), runErr)
	}
}

func graphRunner(body func(context.Context, *structures.Graph, int) error) Runner {
	return func(ctx context.Context, in Input) (*trace.Trace, error) {
		n := in.Vertices
		for _, e := range in.Edges {
			n = max(n, max(e[0], e[1])+1)
		}
		g := structures.NewGraph(n, in.Edges)
		g.Tracer().SetLimit(in.StepLimit)
		g.Tracer().Begin()
		runErr := body(ctx, g, in.Start)
		return finish(g.Tracer(), runErr)
	}
}

func treeRunner(avl bool) Runner {
	return func(ctx context.Context, in Input) (*trace.Trace, error) {
		t := structures.NewTree(avl)
		t.Tracer().SetLimit(in.StepLimit)
		t.Tracer().Begin()
		runErr := algorithms.BuildTree(ctx, t, in.Values, in.Target)
		return finish(t.Tracer(), runErr)
	}
}

func hashRunner() Runner {
	return func(ctx context.Context, in Input) (*trace.Trace, error) {
		h := structures.NewHashTable(0)
		h.Tracer().SetLimit(in.StepLimit)
		h.Tracer().Begin()
		runErr := algorithms.BuildHashTable(ctx, h, in.Values, in.Target)
		return finish(h.Tracer(), runErr)
	}
}

// finish finalizes the trace whether or not the run succeeded, so a
// captured failure still yields a replayable trace.
func finish(tr *trace.Tracer, runErr error) (*trace.Trace, error) {
	done, err := tr.Finish()
	if err != nil {
		return nil, err
	}
	return done, runErr
}
