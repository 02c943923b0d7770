package tester

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/algoscope/internal/registry"
	"github.com/san-kum/algoscope/internal/trace"
)

const (
	// DefaultTimeout bounds a submission's wall clock.
	DefaultTimeout = 5 * time.Second
	// DefaultStepLimit bounds a submission's trace; a runaway loop hits
	// the tracer's cap long before the clock.
	DefaultStepLimit = 100000
)

// Submission is externally supplied algorithm code to vet against a
// registered reference. The implementation runs inside a containment
// boundary: panics are captured, the context carries a deadline, and the
// tracer enforces a step cap.
type Submission struct {
	Reference string          // name of the reference algorithm
	Impl      registry.Runner // the learner's implementation
	Input     registry.Input
	Timeout   time.Duration
	StepLimit int
}

// Report is the verdict on one submission.
type Report struct {
	Success    bool   // the submission executed without fault
	Correct    bool   // its trace ends in the reference's final state
	Fault      string // captured fault message when Success is false
	Divergence int    // first step index disagreeing with the reference, -1 if none
	Trace      *trace.Trace
	Reference  *trace.Trace
}

type Tester struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Tester {
	return &Tester{reg: reg}
}

func (t *Tester) Run(sub Submission) Report {
	if sub.Timeout <= 0 {
		sub.Timeout = DefaultTimeout
	}
	if sub.StepLimit <= 0 {
		sub.StepLimit = DefaultStepLimit
	}

	ref, err := t.reg.Get(sub.Reference)
	if err != nil {
		return Report{Fault: err.Error(), Divergence: -1}
	}

	in := sub.Input
	in.StepLimit = sub.StepLimit

	refTrace, err := ref.Run(context.Background(), in)
	if err != nil {
		return Report{Fault: fmt.Sprintf("reference run failed: %v", err), Divergence: -1}
	}

	subTrace, fault := t.contain(sub.Impl, in, sub.Timeout)
	if fault != "" {
		return Report{
			Fault:      fault,
			Divergence: -1,
			Trace:      subTrace,
			Reference:  refTrace,
		}
	}

	div := divergence(refTrace, subTrace)
	return Report{
		Success:    true,
		Correct:    refTrace.Final().Snap.Equal(subTrace.Final().Snap),
		Divergence: div,
		Trace:      subTrace,
		Reference:  refTrace,
	}
}

type runResult struct {
	tr  *trace.Trace
	err error
}

// contain executes untrusted code: the run happens on its own goroutine
// with panic recovery and a deadline. On timeout the goroutine is
// abandoned; the step cap stops it from recording further.
func (t *Tester) contain(impl registry.Runner, in registry.Input, timeout time.Duration) (*trace.Trace, string) {
	if impl == nil {
		return nil, "no implementation supplied"
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan runResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		tr, err := impl(ctx, in)
		done <- runResult{tr: tr, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return res.tr, res.err.Error()
		}
		if res.tr == nil || res.tr.Len() == 0 {
			return nil, "implementation produced no trace"
		}
		return res.tr, ""
	case <-ctx.Done():
		return nil, fmt.Sprintf("time budget of %v exceeded", timeout)
	}
}

// divergence finds the first index where the two traces' snapshots
// disagree. Equal prefixes of unequal length diverge where the shorter
// one ends. Returns -1 for fully matching traces.
func divergence(ref, sub *trace.Trace) int {
	n := min(ref.Len(), sub.Len())
	for i := 0; i < n; i++ {
		r, _ := ref.At(i)
		s, _ := sub.At(i)
		if !r.Snap.Equal(s.Snap) {
			return i
		}
	}
	if ref.Len() != sub.Len() {
		return n
	}
	return -1
}
