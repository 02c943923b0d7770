package algorithms

import (
	"context"

	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
)

// LinearSearch scans left to right. Returns the index of target or -1.
func LinearSearch(ctx context.Context, a *structures.Array, target int) (int, error) {
	for i := 0; i < a.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		sign, err := a.CompareTo(i, target)
		if err != nil {
			return -1, err
		}
		if sign == 0 {
			return i, a.Observe(trace.OpDone, []int{i}, "found %d at index %d", target, i)
		}
	}
	return -1, a.Done("target not found")
}

// BinarySearch assumes a sorted array. Returns the index of target or -1.
func BinarySearch(ctx context.Context, a *structures.Array, target int) (int, error) {
	lo, hi := 0, a.Len()-1
	for lo <= hi {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		mid := (lo + hi) / 2
		sign, err := a.CompareTo(mid, target)
		if err != nil {
			return -1, err
		}
		switch sign {
		case 0:
			return mid, a.Observe(trace.OpDone, []int{mid}, "found %d at index %d", target, mid)
		case 1:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return -1, a.Done("target not found")
}
