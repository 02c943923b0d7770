package structures

import (
	"fmt"

	"github.com/san-kum/algoscope/internal/trace"
)

const (
	hashLoadFactor  = 0.75
	minHashCapacity = 4
)

// HashTable is a traced chaining hash table. Inserting past the load
// factor doubles the bucket array and rehashes, recorded as a resize.
type HashTable struct {
	buckets [][]int
	items   int
	tr      *trace.Tracer
}

func NewHashTable(capacity int) *HashTable {
	if capacity < minHashCapacity {
		capacity = minHashCapacity
	}
	h := &HashTable{buckets: make([][]int, capacity)}
	h.tr = trace.NewTracer(h)
	return h
}

func (h *HashTable) Tracer() *trace.Tracer { return h.tr }

func (h *HashTable) Snapshot() trace.Snapshot {
	buckets := make([][]int, len(h.buckets))
	for i, b := range h.buckets {
		if len(b) == 0 {
			continue
		}
		buckets[i] = make([]int, len(b))
		copy(buckets[i], b)
	}
	return trace.Snapshot{Kind: trace.KindHash, Buckets: buckets, Items: h.items}
}

func (h *HashTable) Items() int   { return h.items }
func (h *HashTable) Capacity() int { return len(h.buckets) }

func (h *HashTable) bucket(key int) int {
	b := key % len(h.buckets)
	if b < 0 {
		b += len(h.buckets)
	}
	return b
}

func (h *HashTable) Insert(key int) error {
	b := h.bucket(key)
	if err := h.tr.Record(trace.OpProbe, []int{b},
		fmt.Sprintf("probe bucket %d for key %d", b, key)); err != nil {
		return err
	}

	for _, existing := range h.buckets[b] {
		if existing == key {
			return h.tr.Record(trace.OpDone, []int{b},
				fmt.Sprintf("key %d already present", key))
		}
	}

	h.buckets[b] = append(h.buckets[b], key)
	h.items++
	if err := h.tr.Record(trace.OpInsert, []int{b},
		fmt.Sprintf("insert key %d into bucket %d", key, b)); err != nil {
		return err
	}

	if float64(h.items)/float64(len(h.buckets)) > hashLoadFactor {
		return h.resize()
	}
	return nil
}

func (h *HashTable) Lookup(key int) (bool, error) {
	b := h.bucket(key)
	if err := h.tr.Record(trace.OpProbe, []int{b},
		fmt.Sprintf("probe bucket %d for key %d", b, key)); err != nil {
		return false, err
	}
	for _, existing := range h.buckets[b] {
		if err := h.tr.Record(trace.OpCompare, []int{b},
			fmt.Sprintf("compare key %d with %d", key, existing)); err != nil {
			return false, err
		}
		if existing == key {
			err := h.tr.Record(trace.OpDone, []int{b}, fmt.Sprintf("found key %d", key))
			return true, err
		}
	}
	err := h.tr.Record(trace.OpDone, nil, fmt.Sprintf("key %d not present", key))
	return false, err
}

func (h *HashTable) resize() error {
	old := h.buckets
	h.buckets = make([][]int, len(old)*2)
	for _, b := range old {
		for _, key := range b {
			nb := h.bucket(key)
			h.buckets[nb] = append(h.buckets[nb], key)
		}
	}
	return h.tr.Record(trace.OpResize, nil,
		fmt.Sprintf("resize to %d buckets", len(h.buckets)))
}
