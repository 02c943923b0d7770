package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

// Braille dot-to-bit mapping, same layout the canvas uses.
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type palette struct {
	bg string
	fg string
}

func themePalette(theme string) palette {
	if theme == "light" {
		return palette{bg: "#ffffff", fg: "#1a7f37"}
	}
	return palette{bg: "#0a0a0a", fg: "#00ff00"}
}

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *render.Canvas, scale float64, theme string) string {
	if canvas == nil {
		return ""
	}
	pal := themePalette(theme)

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, pal.bg, pal.fg))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// svgBody returns the SVG without the XML prolog, for inlining into HTML.
func svgBody(canvas *render.Canvas, scale float64, theme string) string {
	s := CanvasToSVG(canvas, scale, theme)
	if i := strings.Index(s, "<svg"); i > 0 {
		return s[i:]
	}
	return s
}

func exportSVG(tr *trace.Trace, r render.Renderer, dest string, opts Options) error {
	step, err := tr.At(opts.FrameIndex)
	if err != nil {
		return err
	}
	canvas, err := r.Frame(step)
	if err != nil {
		return &StepError{Index: opts.FrameIndex, Err: err}
	}
	return writeAtomic(dest, func(w io.Writer) error {
		_, werr := io.WriteString(w, CanvasToSVG(canvas, opts.Scale, opts.Theme))
		return werr
	})
}
