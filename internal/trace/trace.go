package trace

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrTracerNotActive = errors.New("tracer: no active trace")
	ErrTraceFinalized  = errors.New("trace: finalized")
	ErrIndexOutOfRange = errors.New("trace: index out of range")
	ErrStepLimit       = errors.New("tracer: step limit exceeded")
)

// Trace is the ordered step sequence of one algorithm run. It is append-only
// while its tracer is active and read-only after Finish.
type Trace struct {
	steps     []Step
	finalized bool
}

func (t *Trace) Len() int { return len(t.steps) }

func (t *Trace) Finalized() bool { return t.finalized }

func (t *Trace) At(i int) (Step, error) {
	if i < 0 || i >= len(t.steps) {
		return Step{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(t.steps))
	}
	return t.steps[i], nil
}

// Slice returns the steps in [a, b), clamped to bounds. The returned slice
// is a view; callers must not modify it.
func (t *Trace) Slice(a, b int) []Step {
	a = max(a, 0)
	b = min(b, len(t.steps))
	if a >= b {
		return nil
	}
	return t.steps[a:b]
}

// Steps returns the full step sequence as a read-only view.
func (t *Trace) Steps() []Step { return t.steps }

func (t *Trace) Final() Step {
	if len(t.steps) == 0 {
		return Step{}
	}
	return t.steps[len(t.steps)-1]
}

func (t *Trace) FinalCounters() Counters { return t.Final().Counters }

func (t *Trace) append(s Step) error {
	if t.finalized {
		return ErrTraceFinalized
	}
	t.steps = append(t.steps, s)
	return nil
}

type traceWire struct {
	Steps []Step `json:"steps"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceWire{Steps: t.steps})
}

// UnmarshalJSON restores a persisted trace. Loaded traces are always
// finalized; only a live tracer may append.
func (t *Trace) UnmarshalJSON(data []byte) error {
	var w traceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.steps = w.Steps
	t.finalized = true
	return nil
}
