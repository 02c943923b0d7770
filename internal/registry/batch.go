package registry

import (
	"context"
	"sync"

	"github.com/san-kum/algoscope/internal/trace"
)

type BatchResult struct {
	Name  string
	Trace *trace.Trace
}

// Batch traces several algorithms concurrently against one input. The
// structures clone the input, so the runs share nothing but the literal.
type Batch struct {
	reg   *Registry
	names []string
}

func NewBatch(reg *Registry, names ...string) *Batch {
	return &Batch{reg: reg, names: names}
}

// Run returns one result per name, in argument order. The first runner
// error aborts the batch.
func (b *Batch) Run(ctx context.Context, in Input) ([]BatchResult, error) {
	results := make([]BatchResult, len(b.names))
	errs := make([]error, len(b.names))

	var wg sync.WaitGroup
	for i, name := range b.names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			d, err := b.reg.Get(name)
			if err != nil {
				errs[idx] = err
				return
			}
			tr, err := d.Run(ctx, in)
			results[idx] = BatchResult{Name: name, Trace: tr}
			errs[idx] = err
		}(i, name)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
