package export

import (
	"html/template"
	"io"

	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

var pagesTmpl = template.Must(template.New("pages").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 2em; }
section { page-break-after: always; margin-bottom: 3em; }
h2 { color: #6f6; }
.annotation { color: #aaa; }
.counters { color: #fc6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Pages}}<section>
<h2>Step {{.Index}} &middot; {{.Op}}</h2>
{{.SVG}}
<p class="annotation">{{.Annotation}}</p>
<p class="counters">comparisons: {{.Counters.Comparisons}} &middot; swaps: {{.Counters.Swaps}} &middot; touches: {{.Counters.Touches}}</p>
</section>
{{end}}</body>
</html>
`))

type htmlPage struct {
	Index      int
	Op         string
	SVG        template.HTML
	Annotation string
	Counters   trace.Counters
}

// exportHTML writes a multi-page document with one page per step, in
// index order.
func exportHTML(tr *trace.Trace, r render.Renderer, dest string, opts Options) error {
	pages := make([]htmlPage, 0, tr.Len())
	for i, step := range tr.Steps() {
		canvas, err := r.Frame(step)
		if err != nil {
			return &StepError{Index: i, Err: err}
		}
		pages = append(pages, htmlPage{
			Index:      step.Index,
			Op:         step.Op.String(),
			SVG:        template.HTML(svgBody(canvas, opts.Scale, opts.Theme)),
			Annotation: step.Annotation,
			Counters:   step.Counters,
		})
	}

	return writeAtomic(dest, func(w io.Writer) error {
		return pagesTmpl.Execute(w, struct {
			Title string
			Pages []htmlPage
		}{Title: opts.Title, Pages: pages})
	})
}
