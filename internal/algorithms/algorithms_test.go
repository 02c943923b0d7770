package algorithms

import (
	"context"
	"slices"
	"testing"

	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
)

func runSort(t *testing.T, body func(context.Context, *structures.Array) error, values []int) *trace.Trace {
	t.Helper()
	a := structures.NewArray(values)
	a.Tracer().Begin()
	if err := body(context.Background(), a); err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	done, err := a.Tracer().Finish()
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	return done
}

func TestSortsProduceSortedSnapshot(t *testing.T) {
	input := []int{5, 2, 9, 1, 7, 3}
	want := []int{1, 2, 3, 5, 7, 9}

	sorts := []struct {
		name string
		body func(context.Context, *structures.Array) error
	}{
		{"bubble", BubbleSort},
		{"insertion", InsertionSort},
		{"selection", SelectionSort},
		{"quick", QuickSort},
		{"merge", MergeSort},
		{"heap", HeapSort},
	}

	for _, tt := range sorts {
		t.Run(tt.name, func(t *testing.T) {
			done := runSort(t, tt.body, input)
			got := done.Final().Snap.Array
			if !slices.Equal(got, want) {
				t.Errorf("expected %v, got %v", want, got)
			}
			if done.Len() < 2 {
				t.Errorf("expected more than the initial step, got %d", done.Len())
			}
		})
	}
}

func TestBubbleSortSwapCount(t *testing.T) {
	// 14 adjacent out-of-order pairs in this input
	done := runSort(t, BubbleSort, []int{64, 34, 25, 12, 22, 11, 90})

	final := done.Final()
	want := []int{11, 12, 22, 25, 34, 64, 90}
	if !slices.Equal(final.Snap.Array, want) {
		t.Errorf("expected %v, got %v", want, final.Snap.Array)
	}
	if final.Counters.Swaps != 14 {
		t.Errorf("expected 14 swaps, got %d", final.Counters.Swaps)
	}
}

func TestSortEmptyAndSingle(t *testing.T) {
	for _, input := range [][]int{{}, {42}} {
		done := runSort(t, BubbleSort, input)
		if done.Len() < 1 {
			t.Errorf("trace for %v shorter than one step", input)
		}
		if !slices.Equal(done.Final().Snap.Array, input) {
			t.Errorf("input %v changed to %v", input, done.Final().Snap.Array)
		}
	}
}

func TestBinarySearch(t *testing.T) {
	tests := []struct {
		values []int
		target int
		want   int
	}{
		{[]int{1, 3, 5, 7, 9, 11}, 7, 3},
		{[]int{1, 3, 5, 7, 9, 11}, 1, 0},
		{[]int{1, 3, 5, 7, 9, 11}, 11, 5},
		{[]int{1, 3, 5, 7, 9, 11}, 4, -1},
		{[]int{}, 4, -1},
	}

	for _, tt := range tests {
		a := structures.NewArray(tt.values)
		a.Tracer().Begin()
		got, err := BinarySearch(context.Background(), a, tt.target)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("BinarySearch(%v, %d) = %d, want %d", tt.values, tt.target, got, tt.want)
		}
		done, _ := a.Tracer().Finish()
		if done.Len() < 1 {
			t.Error("search on empty input still must trace at least one step")
		}
	}
}

func TestLinearSearch(t *testing.T) {
	a := structures.NewArray([]int{4, 8, 15, 16, 23, 42})
	a.Tracer().Begin()
	got, err := LinearSearch(context.Background(), a, 16)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected index 3, got %d", got)
	}
	done, _ := a.Tracer().Finish()
	if done.FinalCounters().Comparisons != 4 {
		t.Errorf("expected 4 comparisons, got %d", done.FinalCounters().Comparisons)
	}
}

func TestBFSVisitsComponent(t *testing.T) {
	g := structures.NewGraph(6, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}})
	g.Tracer().Begin()
	if err := BFS(context.Background(), g, 0); err != nil {
		t.Fatalf("bfs failed: %v", err)
	}
	done, _ := g.Tracer().Finish()

	snap := done.Final().Snap
	for v := 0; v < 5; v++ {
		if !snap.Vertices[v].Visited {
			t.Errorf("vertex %d not visited", v)
		}
	}
	if snap.Vertices[5].Visited {
		t.Error("disconnected vertex 5 should stay unvisited")
	}
}

func TestDFSVisitsComponent(t *testing.T) {
	g := structures.NewGraph(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	g.Tracer().Begin()
	if err := DFS(context.Background(), g, 0); err != nil {
		t.Fatalf("dfs failed: %v", err)
	}
	done, _ := g.Tracer().Finish()

	visits := 0
	for _, step := range done.Steps() {
		if step.Op == trace.OpVisit {
			visits++
		}
	}
	if visits != 4 {
		t.Errorf("expected 4 visits, got %d", visits)
	}
}

func TestSortCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := structures.NewArray([]int{9, 8, 7, 6, 5})
	a.Tracer().Begin()
	if err := BubbleSort(ctx, a); err == nil {
		t.Error("expected context error")
	}
}
