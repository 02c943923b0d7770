package structures

import (
	"fmt"

	"github.com/san-kum/algoscope/internal/trace"
)

// Tree is a traced binary search tree. Nodes live in a flat slice and are
// addressed by id so snapshots serialize without pointer chasing. With avl
// enabled, inserts rebalance and record rotations.
type Tree struct {
	nodes []treeNode
	root  int
	avl   bool
	tr    *trace.Tracer
}

type treeNode struct {
	value  int
	left   int
	right  int
	height int
}

func NewTree(avl bool) *Tree {
	t := &Tree{root: -1, avl: avl}
	t.tr = trace.NewTracer(t)
	return t
}

func (t *Tree) Tracer() *trace.Tracer { return t.tr }

func (t *Tree) Snapshot() trace.Snapshot {
	nodes := make([]trace.TreeNode, len(t.nodes))
	for i, n := range t.nodes {
		nodes[i] = trace.TreeNode{ID: i, Value: n.value, Left: n.left, Right: n.right}
	}
	return trace.Snapshot{Kind: trace.KindTree, Nodes: nodes, Root: t.root}
}

func (t *Tree) Size() int { return len(t.nodes) }

func (t *Tree) Insert(v int) error {
	if t.root == -1 {
		t.root = t.newNode(v)
		return t.tr.Record(trace.OpInsert, []int{t.root},
			fmt.Sprintf("insert %d as root", v))
	}
	root, err := t.insert(t.root, v)
	t.root = root
	return err
}

func (t *Tree) insert(id, v int) (int, error) {
	if err := t.tr.Record(trace.OpCompare, []int{id},
		fmt.Sprintf("compare %d with node value %d", v, t.nodes[id].value)); err != nil {
		return id, err
	}

	if v < t.nodes[id].value {
		if t.nodes[id].left == -1 {
			nid := t.newNode(v)
			t.nodes[id].left = nid
			if err := t.tr.Record(trace.OpInsert, []int{nid},
				fmt.Sprintf("insert %d as left child of %d", v, t.nodes[id].value)); err != nil {
				return id, err
			}
		} else {
			child, err := t.insert(t.nodes[id].left, v)
			t.nodes[id].left = child
			if err != nil {
				return id, err
			}
		}
	} else {
		// duplicates go right
		if t.nodes[id].right == -1 {
			nid := t.newNode(v)
			t.nodes[id].right = nid
			if err := t.tr.Record(trace.OpInsert, []int{nid},
				fmt.Sprintf("insert %d as right child of %d", v, t.nodes[id].value)); err != nil {
				return id, err
			}
		} else {
			child, err := t.insert(t.nodes[id].right, v)
			t.nodes[id].right = child
			if err != nil {
				return id, err
			}
		}
	}

	if !t.avl {
		return id, nil
	}
	t.updateHeight(id)
	return t.rebalance(id)
}

func (t *Tree) Search(v int) (bool, error) {
	id := t.root
	for id != -1 {
		if err := t.tr.Record(trace.OpCompare, []int{id},
			fmt.Sprintf("compare %d with node value %d", v, t.nodes[id].value)); err != nil {
			return false, err
		}
		switch {
		case v == t.nodes[id].value:
			err := t.tr.Record(trace.OpDone, []int{id}, fmt.Sprintf("found %d", v))
			return true, err
		case v < t.nodes[id].value:
			id = t.nodes[id].left
		default:
			id = t.nodes[id].right
		}
	}
	err := t.tr.Record(trace.OpDone, nil, fmt.Sprintf("%d not in tree", v))
	return false, err
}

func (t *Tree) newNode(v int) int {
	t.nodes = append(t.nodes, treeNode{value: v, left: -1, right: -1, height: 1})
	return len(t.nodes) - 1
}

func (t *Tree) height(id int) int {
	if id == -1 {
		return 0
	}
	return t.nodes[id].height
}

func (t *Tree) updateHeight(id int) {
	t.nodes[id].height = 1 + max(t.height(t.nodes[id].left), t.height(t.nodes[id].right))
}

func (t *Tree) balanceFactor(id int) int {
	return t.height(t.nodes[id].left) - t.height(t.nodes[id].right)
}

func (t *Tree) rebalance(id int) (int, error) {
	bf := t.balanceFactor(id)

	switch {
	case bf > 1:
		if t.balanceFactor(t.nodes[id].left) < 0 {
			child, err := t.rotateLeft(t.nodes[id].left)
			t.nodes[id].left = child
			if err != nil {
				return id, err
			}
		}
		return t.rotateRight(id)
	case bf < -1:
		if t.balanceFactor(t.nodes[id].right) > 0 {
			child, err := t.rotateRight(t.nodes[id].right)
			t.nodes[id].right = child
			if err != nil {
				return id, err
			}
		}
		return t.rotateLeft(id)
	}
	return id, nil
}

func (t *Tree) rotateLeft(id int) (int, error) {
	pivot := t.nodes[id].right
	t.nodes[id].right = t.nodes[pivot].left
	t.nodes[pivot].left = id
	t.updateHeight(id)
	t.updateHeight(pivot)
	err := t.tr.Record(trace.OpRotate, []int{id, pivot},
		fmt.Sprintf("rotate left around node value %d", t.nodes[id].value))
	return pivot, err
}

func (t *Tree) rotateRight(id int) (int, error) {
	pivot := t.nodes[id].left
	t.nodes[id].left = t.nodes[pivot].right
	t.nodes[pivot].right = id
	t.updateHeight(id)
	t.updateHeight(pivot)
	err := t.tr.Record(trace.OpRotate, []int{id, pivot},
		fmt.Sprintf("rotate right around node value %d", t.nodes[id].value))
	return pivot, err
}
