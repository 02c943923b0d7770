package registry

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/san-kum/algoscope/internal/trace"
)

func TestRegistryLookup(t *testing.T) {
	r := New()

	d, err := r.Get("bubble_sort")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if d.Family != FamilySorting {
		t.Errorf("expected sorting family, got %s", d.Family)
	}

	if _, err := r.Get("bogo_sort"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	names := New().Names()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if len(names) < 10 {
		t.Errorf("expected at least 10 algorithms, got %d", len(names))
	}
}

func TestEveryRunnerProducesFinalizedTrace(t *testing.T) {
	r := New()
	in := Input{
		Values: []int{5, 2, 8, 1, 9},
		Target: 8,
		Edges:  [][2]int{{0, 1}, {1, 2}, {2, 3}},
		Start:  0,
	}

	for _, d := range r.Descriptors() {
		t.Run(d.Name, func(t *testing.T) {
			done, err := d.Run(context.Background(), in)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if !done.Finalized() {
				t.Error("trace not finalized")
			}
			if done.Len() < 1 {
				t.Error("trace shorter than one step")
			}
			first, _ := done.At(0)
			if first.Op != trace.OpStart {
				t.Errorf("first step is %s, want start", first.Op)
			}
		})
	}
}

func TestRunnerStepLimitReturnsPartialTrace(t *testing.T) {
	r := New()
	d, _ := r.Get("bubble_sort")

	done, err := d.Run(context.Background(), Input{
		Values:    []int{9, 8, 7, 6, 5, 4, 3, 2, 1},
		StepLimit: 5,
	})
	if !errors.Is(err, trace.ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
	if done == nil || done.Len() != 5 {
		t.Fatalf("expected a finalized 5-step partial trace, got %v", done)
	}
	if !done.Finalized() {
		t.Error("partial trace not finalized")
	}
}

func TestBatchRunsConcurrently(t *testing.T) {
	r := New()
	in := Input{Values: []int{5, 2, 8, 1, 9}}

	results, err := NewBatch(r, "bubble_sort", "quick_sort", "merge_sort").
		Run(context.Background(), in)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Name != "bubble_sort" || results[2].Name != "merge_sort" {
		t.Errorf("results out of argument order: %v, %v", results[0].Name, results[2].Name)
	}
	want := []int{1, 2, 5, 8, 9}
	for _, res := range results {
		if !slices.Equal(res.Trace.Final().Snap.Array, want) {
			t.Errorf("%s final state %v, want %v", res.Name, res.Trace.Final().Snap.Array, want)
		}
	}
}

func TestBatchUnknownNameAborts(t *testing.T) {
	_, err := NewBatch(New(), "bubble_sort", "bogo_sort").
		Run(context.Background(), Input{Values: []int{2, 1}})
	if err == nil {
		t.Fatal("expected error for unknown algorithm in batch")
	}
}

func TestFamilyFilter(t *testing.T) {
	r := New()
	sorts := r.Family(FamilySorting)
	if len(sorts) != 6 {
		t.Errorf("expected 6 sorting algorithms, got %d", len(sorts))
	}
	for _, d := range sorts {
		if d.Family != FamilySorting {
			t.Errorf("%s has family %s", d.Name, d.Family)
		}
	}
}
