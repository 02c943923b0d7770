package trace

import "slices"

// Kind discriminates the snapshot payload carried by a Step.
type Kind int

const (
	KindArray Kind = iota
	KindTree
	KindGraph
	KindHash
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindTree:
		return "tree"
	case KindGraph:
		return "graph"
	case KindHash:
		return "hash"
	}
	return "unknown"
}

// Op is the elementary operation a Step records.
type Op int

const (
	OpStart Op = iota
	OpCompare
	OpSwap
	OpShift
	OpVisit
	OpEnqueue
	OpInsert
	OpDelete
	OpRotate
	OpResize
	OpProbe
	OpDone
)

var opNames = [...]string{
	"start", "compare", "swap", "shift", "visit", "enqueue",
	"insert", "delete", "rotate", "resize", "probe", "done",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Counters are running totals valid as of the step that carries them.
// They never decrease across a trace.
type Counters struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Touches     int `json:"touches"`
}

type TreeNode struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Left  int `json:"left"`
	Right int `json:"right"`
}

type Vertex struct {
	ID       int  `json:"id"`
	Visited  bool `json:"visited"`
	Frontier bool `json:"frontier"`
}

type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Snapshot is a tagged variant over structure kind. Exactly the payload
// fields for its Kind are populated; the rest stay zero so traces of any
// kind serialize uniformly.
type Snapshot struct {
	Kind     Kind       `json:"kind"`
	Array    []int      `json:"array,omitempty"`
	Nodes    []TreeNode `json:"nodes,omitempty"`
	Root     int        `json:"root"`
	Vertices []Vertex   `json:"vertices,omitempty"`
	Edges    []Edge     `json:"edges,omitempty"`
	Buckets  [][]int    `json:"buckets,omitempty"`
	Items    int        `json:"items,omitempty"`
}

func (s Snapshot) Equal(o Snapshot) bool {
	if s.Kind != o.Kind || s.Root != o.Root || s.Items != o.Items {
		return false
	}
	if !slices.Equal(s.Array, o.Array) ||
		!slices.Equal(s.Nodes, o.Nodes) ||
		!slices.Equal(s.Vertices, o.Vertices) ||
		!slices.Equal(s.Edges, o.Edges) {
		return false
	}
	return slices.EqualFunc(s.Buckets, o.Buckets, slices.Equal)
}

// Step is one recorded instant of an algorithm run. Steps are immutable
// once appended to a trace.
type Step struct {
	Index      int      `json:"index"`
	Snap       Snapshot `json:"snapshot"`
	Highlights []int    `json:"highlights,omitempty"`
	Op         Op       `json:"op"`
	Counters   Counters `json:"counters"`
	Annotation string   `json:"annotation,omitempty"`
}

// Equal reports structural equality, the relation the tester diffs with.
func (s Step) Equal(o Step) bool {
	return s.Index == o.Index &&
		s.Op == o.Op &&
		s.Counters == o.Counters &&
		s.Annotation == o.Annotation &&
		slices.Equal(s.Highlights, o.Highlights) &&
		s.Snap.Equal(o.Snap)
}
