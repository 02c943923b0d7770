package structures

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoscope/internal/trace"
)

// Array is a traced integer array. Every elementary operation records one
// step; mutation happens here, the tracer only observes.
type Array struct {
	data []int
	tr   *trace.Tracer
}

func NewArray(values []int) *Array {
	a := &Array{data: slices.Clone(values)}
	a.tr = trace.NewTracer(a)
	return a
}

func (a *Array) Tracer() *trace.Tracer { return a.tr }

func (a *Array) Snapshot() trace.Snapshot {
	return trace.Snapshot{Kind: trace.KindArray, Array: slices.Clone(a.data)}
}

func (a *Array) Len() int        { return len(a.data) }
func (a *Array) Get(i int) int   { return a.data[i] }
func (a *Array) Values() []int   { return slices.Clone(a.data) }

// Less records a comparison of a[i] and a[j].
func (a *Array) Less(i, j int) (bool, error) {
	err := a.tr.Record(trace.OpCompare, []int{i, j},
		fmt.Sprintf("compare a[%d]=%d with a[%d]=%d", i, a.data[i], j, a.data[j]))
	return a.data[i] < a.data[j], err
}

// Greater records a comparison of a[i] and a[j].
func (a *Array) Greater(i, j int) (bool, error) {
	err := a.tr.Record(trace.OpCompare, []int{i, j},
		fmt.Sprintf("compare a[%d]=%d with a[%d]=%d", i, a.data[i], j, a.data[j]))
	return a.data[i] > a.data[j], err
}

// CompareTo records a comparison of a[i] against an external value and
// returns its sign: -1, 0 or 1.
func (a *Array) CompareTo(i, v int) (int, error) {
	err := a.tr.Record(trace.OpCompare, []int{i},
		fmt.Sprintf("compare a[%d]=%d with %d", i, a.data[i], v))
	switch {
	case a.data[i] < v:
		return -1, err
	case a.data[i] > v:
		return 1, err
	}
	return 0, err
}

func (a *Array) Swap(i, j int) error {
	a.data[i], a.data[j] = a.data[j], a.data[i]
	return a.tr.Record(trace.OpSwap, []int{i, j},
		fmt.Sprintf("swap a[%d] and a[%d]", i, j))
}

// Set overwrites a[i], recorded as a shift (merge and insertion moves).
func (a *Array) Set(i, v int) error {
	a.data[i] = v
	return a.tr.Record(trace.OpShift, []int{i},
		fmt.Sprintf("place %d at index %d", v, i))
}

// Observe records a step without mutating, for events that are not a
// direct index-to-index operation (value comparisons in a merge, found
// markers in a search, completion).
func (a *Array) Observe(op trace.Op, highlights []int, format string, args ...any) error {
	return a.tr.Record(op, highlights, fmt.Sprintf(format, args...))
}

func (a *Array) Done(msg string) error {
	return a.tr.Record(trace.OpDone, nil, msg)
}
