package algorithms

import (
	"context"

	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
)

// Sorting bodies. Each expresses its logic purely through the traced
// array's elementary operations, so the tracer sees every compare, swap
// and shift without the body knowing it is being watched.

func BubbleSort(ctx context.Context, a *structures.Array) error {
	n := a.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			greater, err := a.Greater(j, j+1)
			if err != nil {
				return err
			}
			if greater {
				if err := a.Swap(j, j+1); err != nil {
					return err
				}
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return a.Done("array sorted")
}

func InsertionSort(ctx context.Context, a *structures.Array) error {
	for i := 1; i < a.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := i; j > 0; j-- {
			greater, err := a.Greater(j-1, j)
			if err != nil {
				return err
			}
			if !greater {
				break
			}
			if err := a.Swap(j-1, j); err != nil {
				return err
			}
		}
	}
	return a.Done("array sorted")
}

func SelectionSort(ctx context.Context, a *structures.Array) error {
	n := a.Len()
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		minIdx := i
		for j := i + 1; j < n; j++ {
			greater, err := a.Greater(minIdx, j)
			if err != nil {
				return err
			}
			if greater {
				minIdx = j
			}
		}
		if minIdx != i {
			if err := a.Swap(i, minIdx); err != nil {
				return err
			}
		}
	}
	return a.Done("array sorted")
}

func QuickSort(ctx context.Context, a *structures.Array) error {
	if err := quicksort(ctx, a, 0, a.Len()-1); err != nil {
		return err
	}
	return a.Done("array sorted")
}

func quicksort(ctx context.Context, a *structures.Array, lo, hi int) error {
	if lo >= hi {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Lomuto partition, last element as pivot.
	p := lo
	for j := lo; j < hi; j++ {
		less, err := a.Less(j, hi)
		if err != nil {
			return err
		}
		if less {
			if j != p {
				if err := a.Swap(p, j); err != nil {
					return err
				}
			}
			p++
		}
	}
	if p != hi {
		if err := a.Swap(p, hi); err != nil {
			return err
		}
	}

	if err := quicksort(ctx, a, lo, p-1); err != nil {
		return err
	}
	return quicksort(ctx, a, p+1, hi)
}

func MergeSort(ctx context.Context, a *structures.Array) error {
	if err := mergesort(ctx, a, 0, a.Len()-1); err != nil {
		return err
	}
	return a.Done("array sorted")
}

func mergesort(ctx context.Context, a *structures.Array, lo, hi int) error {
	if lo >= hi {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	mid := (lo + hi) / 2
	if err := mergesort(ctx, a, lo, mid); err != nil {
		return err
	}
	if err := mergesort(ctx, a, mid+1, hi); err != nil {
		return err
	}

	values := a.Values()
	left := values[lo : mid+1]
	right := values[mid+1 : hi+1]

	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if err := a.Observe(trace.OpCompare, []int{lo + i, mid + 1 + j},
			"compare %d with %d", left[i], right[j]); err != nil {
			return err
		}
		if left[i] <= right[j] {
			if err := a.Set(k, left[i]); err != nil {
				return err
			}
			i++
		} else {
			if err := a.Set(k, right[j]); err != nil {
				return err
			}
			j++
		}
		k++
	}
	for ; i < len(left); i++ {
		if err := a.Set(k, left[i]); err != nil {
			return err
		}
		k++
	}
	for ; j < len(right); j++ {
		if err := a.Set(k, right[j]); err != nil {
			return err
		}
		k++
	}
	return nil
}

func HeapSort(ctx context.Context, a *structures.Array) error {
	n := a.Len()
	for i := n/2 - 1; i >= 0; i-- {
		if err := siftDown(ctx, a, i, n); err != nil {
			return err
		}
	}
	for end := n - 1; end > 0; end-- {
		if err := a.Swap(0, end); err != nil {
			return err
		}
		if err := siftDown(ctx, a, 0, end); err != nil {
			return err
		}
	}
	return a.Done("array sorted")
}

func siftDown(ctx context.Context, a *structures.Array, root, end int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		child := 2*root + 1
		if child >= end {
			return nil
		}
		if child+1 < end {
			less, err := a.Less(child, child+1)
			if err != nil {
				return err
			}
			if less {
				child++
			}
		}
		less, err := a.Less(root, child)
		if err != nil {
			return err
		}
		if !less {
			return nil
		}
		if err := a.Swap(root, child); err != nil {
			return err
		}
		root = child
	}
}
