package algorithms

import (
	"context"

	"github.com/san-kum/algoscope/internal/structures"
)

// BuildTree inserts values in order, then searches for target.
func BuildTree(ctx context.Context, t *structures.Tree, values []int, target int) error {
	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Insert(v); err != nil {
			return err
		}
	}
	_, err := t.Search(target)
	return err
}

// BuildHashTable inserts keys in order, then looks up target.
func BuildHashTable(ctx context.Context, h *structures.HashTable, keys []int, target int) error {
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.Insert(k); err != nil {
			return err
		}
	}
	_, err := h.Lookup(target)
	return err
}
