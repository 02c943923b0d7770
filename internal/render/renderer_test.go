package render

import (
	"strings"
	"testing"

	"github.com/san-kum/algoscope/internal/trace"
)

func litCount(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(10, 4)
	c.Set(0, 0)
	c.Set(19, 15)
	c.Set(-1, 2)  // ignored
	c.Set(20, 40) // out of bounds, ignored

	if litCount(c) != 2 {
		t.Errorf("expected 2 lit cells, got %d", litCount(c))
	}
	if lines := strings.Count(c.String(), "\n"); lines != 4 {
		t.Errorf("expected 4 lines, got %d", lines)
	}

	c.Clear()
	if litCount(c) != 0 {
		t.Errorf("expected empty canvas after clear, got %d lit", litCount(c))
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawLine(0, 0, 39, 39)
	if litCount(c) == 0 {
		t.Error("diagonal line lit nothing")
	}
}

func arrayStep(values, highlights []int) trace.Step {
	return trace.Step{
		Snap:       trace.Snapshot{Kind: trace.KindArray, Array: values},
		Highlights: highlights,
		Op:         trace.OpCompare,
	}
}

func TestFrameDeterministic(t *testing.T) {
	r := NewCanvasRenderer(40, 12)
	step := arrayStep([]int{5, 3, 8, 1}, []int{0, 2})

	a, err := r.Frame(step)
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	b, err := r.Frame(step)
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if a.String() != b.String() {
		t.Error("same step rendered differently")
	}
}

func TestFrameHighlightChangesOutput(t *testing.T) {
	r := NewCanvasRenderer(40, 12)

	plain, _ := r.Frame(arrayStep([]int{5, 3, 8, 1}, nil))
	marked, _ := r.Frame(arrayStep([]int{5, 3, 8, 1}, []int{1}))
	if plain.String() == marked.String() {
		t.Error("highlight left the frame unchanged")
	}
}

func TestFrameAllKinds(t *testing.T) {
	r := NewCanvasRenderer(40, 12)

	steps := []trace.Step{
		arrayStep([]int{4, 2, 7}, nil),
		{Snap: trace.Snapshot{
			Kind: trace.KindTree,
			Root: 0,
			Nodes: []trace.TreeNode{
				{ID: 0, Value: 5, Left: 1, Right: 2},
				{ID: 1, Value: 2, Left: -1, Right: -1},
				{ID: 2, Value: 8, Left: -1, Right: -1},
			},
		}},
		{Snap: trace.Snapshot{
			Kind:     trace.KindGraph,
			Vertices: []trace.Vertex{{ID: 0, Visited: true}, {ID: 1, Frontier: true}, {ID: 2}},
			Edges:    []trace.Edge{{From: 0, To: 1}, {From: 1, To: 2}},
		}},
		{Snap: trace.Snapshot{
			Kind:    trace.KindHash,
			Buckets: [][]int{{4}, nil, {2, 6}, nil},
			Items:   3,
		}},
	}

	for _, step := range steps {
		c, err := r.Frame(step)
		if err != nil {
			t.Fatalf("frame failed for kind %s: %v", step.Snap.Kind, err)
		}
		if litCount(c) == 0 {
			t.Errorf("kind %s rendered an empty frame", step.Snap.Kind)
		}
	}
}

func TestFrameEmptySnapshot(t *testing.T) {
	r := NewCanvasRenderer(40, 12)
	c, err := r.Frame(arrayStep(nil, nil))
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if litCount(c) != 0 {
		t.Error("empty array lit pixels")
	}
}
