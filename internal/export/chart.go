package export

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/algoscope/internal/trace"
)

// exportChart writes an HTML page charting counter growth across the
// trace, for eyeballing where an algorithm spends its work.
func exportChart(tr *trace.Trace, dest string, options Options) error {
	steps := tr.Steps()

	labels := make([]string, len(steps))
	comparisons := make([]opts.LineData, len(steps))
	swaps := make([]opts.LineData, len(steps))
	touches := make([]opts.LineData, len(steps))
	for i, step := range steps {
		labels[i] = strconv.Itoa(step.Index)
		comparisons[i] = opts.LineData{Value: step.Counters.Comparisons}
		swaps[i] = opts.LineData{Value: step.Counters.Swaps}
		touches[i] = opts.LineData{Value: step.Counters.Touches}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    options.Title,
			Subtitle: "operation counters per step",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("comparisons", comparisons,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	line.AddSeries("swaps", swaps,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	line.AddSeries("touches", touches,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return writeAtomic(dest, func(w io.Writer) error {
		return line.Render(w)
	})
}
