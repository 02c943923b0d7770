package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

type Format string

const (
	FormatSVG   Format = "svg"   // single frame
	FormatHTML  Format = "html"  // multi-page document, one page per step
	FormatGIF   Format = "gif"   // animation, one frame per step
	FormatLive  Format = "live"  // self-contained interactive page
	FormatChart Format = "chart" // counter growth chart
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

type Options struct {
	Title      string
	FrameIndex int     // svg: which step to render
	Speed      float64 // steps per second; sets the animation frame delay
	Scale      float64 // svg/gif dot scale
	Theme      string  // svg/gif palette: dark (default) or light
}

// StepError reports which step's rendering aborted an export.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("export: rendering step %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Export serializes a finalized trace to dest. The artifact appears
// atomically: content is written to a temp file and renamed into place, so
// a failed export leaves nothing behind.
func Export(tr *trace.Trace, r render.Renderer, format Format, dest string, opts Options) error {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Scale <= 0 {
		opts.Scale = 4
	}

	switch format {
	case FormatSVG:
		return exportSVG(tr, r, dest, opts)
	case FormatHTML:
		return exportHTML(tr, r, dest, opts)
	case FormatGIF:
		return exportGIF(tr, r, dest, opts)
	case FormatLive:
		return exportLive(tr, dest, opts)
	case FormatChart:
		return exportChart(tr, dest, opts)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func writeAtomic(dest string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".algoscope-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// frames renders every step in index order, failing with the offending
// step's index.
func frames(tr *trace.Trace, r render.Renderer) ([]*render.Canvas, error) {
	out := make([]*render.Canvas, 0, tr.Len())
	for i, step := range tr.Steps() {
		c, err := r.Frame(step)
		if err != nil {
			return nil, &StepError{Index: i, Err: err}
		}
		out = append(out, c)
	}
	return out, nil
}
