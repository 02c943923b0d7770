package trace

import (
	"fmt"
	"slices"
)

// Snapshotter is the working structure side of the tracer contract: each
// call returns a fresh copy of the current state.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Tracer observes a working structure and appends one Step per elementary
// operation. It never mutates the structure itself.
type Tracer struct {
	src   Snapshotter
	cur   *Trace
	count Counters
	limit int
}

func NewTracer(src Snapshotter) *Tracer {
	return &Tracer{src: src}
}

// SetLimit caps the number of steps a trace may record. Zero means no cap.
// The cap is the containment mechanism for runaway submitted code.
func (tr *Tracer) SetLimit(n int) { tr.limit = n }

func (tr *Tracer) Active() bool { return tr.cur != nil }

// Begin opens a new trace and records the initial state, so no trace is
// ever shorter than one step.
func (tr *Tracer) Begin() *Trace {
	tr.cur = &Trace{}
	tr.count = Counters{}
	_ = tr.Record(OpStart, nil, "initial state")
	return tr.cur
}

func (tr *Tracer) Record(op Op, highlights []int, annotation string) error {
	if tr.cur == nil {
		return ErrTracerNotActive
	}
	if tr.limit > 0 && len(tr.cur.steps) >= tr.limit {
		return fmt.Errorf("%w (%d steps)", ErrStepLimit, tr.limit)
	}
	switch op {
	case OpCompare:
		tr.count.Comparisons++
	case OpSwap:
		tr.count.Swaps++
	}
	tr.count.Touches++
	return tr.cur.append(Step{
		Index:      len(tr.cur.steps),
		Snap:       tr.src.Snapshot(),
		Highlights: slices.Clone(highlights),
		Op:         op,
		Counters:   tr.count,
		Annotation: annotation,
	})
}

// Finish finalizes the active trace and returns it. The tracer goes
// inactive; further Records fail with ErrTracerNotActive.
func (tr *Tracer) Finish() (*Trace, error) {
	if tr.cur == nil {
		return nil, ErrTracerNotActive
	}
	t := tr.cur
	t.finalized = true
	tr.cur = nil
	return t, nil
}
