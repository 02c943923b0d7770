package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveStepTrace(t *testing.T) *trace.Trace {
	t.Helper()
	a := structures.NewArray([]int{3, 1, 4, 1, 5})
	a.Tracer().Begin()
	for i := 0; i < 4; i++ {
		require.NoError(t, a.Observe(trace.OpVisit, []int{i}, "step %d", i))
	}
	done, err := a.Tracer().Finish()
	require.NoError(t, err)
	require.Equal(t, 5, done.Len())
	return done
}

type failingRenderer struct {
	failAt int
}

func (f *failingRenderer) Frame(step trace.Step) (*render.Canvas, error) {
	if step.Index == f.failAt {
		return nil, fmt.Errorf("no frame for you")
	}
	return render.NewCanvas(10, 4), nil
}

func TestExportUnsupportedFormat(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "out.xyz")

	err := Export(tr, render.NewCanvasRenderer(20, 8), Format("xyz"), dest, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, dest)
}

func TestExportSVGSingleFrame(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "frame.svg")

	require.NoError(t, Export(tr, render.NewCanvasRenderer(20, 8), FormatSVG, dest, Options{FrameIndex: 2}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportSVGFrameOutOfRange(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "frame.svg")

	err := Export(tr, render.NewCanvasRenderer(20, 8), FormatSVG, dest, Options{FrameIndex: 99})
	assert.ErrorIs(t, err, trace.ErrIndexOutOfRange)
	assert.NoFileExists(t, dest)
}

func TestExportHTMLOnePagePerStep(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "doc.html")

	require.NoError(t, Export(tr, render.NewCanvasRenderer(20, 8), FormatHTML, dest, Options{Title: "bubble"}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	html := string(data)
	assert.Equal(t, 5, strings.Count(html, "<section>"))
	for i := 0; i < 5; i++ {
		assert.Contains(t, html, fmt.Sprintf("Step %d", i))
	}
}

func TestExportAbortsOnRenderFailure(t *testing.T) {
	tr := fiveStepTrace(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "doc.html")

	err := Export(tr, &failingRenderer{failAt: 3}, FormatHTML, dest, Options{})
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr), "expected StepError, got %v", err)
	assert.Equal(t, 3, stepErr.Index)

	// no partial artifact and no leftover temp files
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportGIFOneFramePerStep(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "run.gif")

	require.NoError(t, Export(tr, render.NewCanvasRenderer(20, 8), FormatGIF, dest, Options{Speed: 2, Scale: 1}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data[:6]))
	// one graphic control extension per frame
	assert.Equal(t, 5, strings.Count(string(data), "\x21\xf9\x04"))
}

func TestExportLiveEmbedsTrace(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "live.html")

	require.NoError(t, Export(tr, nil, FormatLive, dest, Options{Title: "live", Speed: 4}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `"steps"`)
	assert.Contains(t, html, "player.toggle()")
}

func TestExportLiveRendersEveryKind(t *testing.T) {
	g := structures.NewGraph(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	g.Tracer().Begin()
	require.NoError(t, g.Enqueue(0))
	require.NoError(t, g.Visit(0))
	require.NoError(t, g.Enqueue(1))
	tr, err := g.Tracer().Finish()
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "live.html")
	require.NoError(t, Export(tr, nil, FormatLive, dest, Options{Title: "bfs", Speed: 2}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	html := string(data)

	// the embedded payload carries the graph snapshot fields
	assert.Contains(t, html, `"vertices"`)
	assert.Contains(t, html, `"frontier"`)

	// the player dispatches on snapshot kind instead of assuming arrays
	assert.Contains(t, html, "snap.kind")
	for _, fn := range []string{"drawArray", "drawTree", "drawGraph", "drawHash"} {
		assert.Contains(t, html, fn)
	}
}

func TestExportChart(t *testing.T) {
	tr := fiveStepTrace(t)
	dest := filepath.Join(t.TempDir(), "chart.html")

	require.NoError(t, Export(tr, nil, FormatChart, dest, Options{Title: "counters"}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
}
