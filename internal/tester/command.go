package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/san-kum/algoscope/internal/registry"
	"github.com/san-kum/algoscope/internal/trace"
)

// CommandRunner adapts an external executable into a submission Runner.
// The input literal goes to the process as JSON on stdin; the process must
// print the full trace JSON on stdout. The containment context kills the
// process on timeout, and the step cap is checked against the returned
// trace since an external process cannot share the tracer.
func CommandRunner(name string, args ...string) registry.Runner {
	return func(ctx context.Context, in registry.Input) (*trace.Trace, error) {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}

		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdin = bytes.NewReader(payload)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("submission command failed: %w: %s", err, stderr.String())
		}

		var tr trace.Trace
		if err := json.Unmarshal(stdout.Bytes(), &tr); err != nil {
			return nil, fmt.Errorf("submission output is not a trace: %w", err)
		}
		if in.StepLimit > 0 && tr.Len() > in.StepLimit {
			return &tr, fmt.Errorf("%w (%d steps)", trace.ErrStepLimit, in.StepLimit)
		}
		return &tr, nil
	}
}
