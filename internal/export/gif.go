package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

func gifPalette(theme string) color.Palette {
	if theme == "light" {
		return color.Palette{
			color.RGBA{0xff, 0xff, 0xff, 0xff},
			color.RGBA{0x1a, 0x7f, 0x37, 0xff},
		}
	}
	return color.Palette{
		color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
		color.RGBA{0x00, 0xff, 0x00, 0xff},
	}
}

// canvasImage rasterizes a braille canvas, one square per sub-pixel.
func canvasImage(c *render.Canvas, scale int, pal color.Palette) *image.Paletted {
	w := c.Width * 2 * scale
	h := c.Height * 4 * scale
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					x0 := (col*2 + dx) * scale
					y0 := (row*4 + dy) * scale
					for py := 0; py < scale; py++ {
						for px := 0; px < scale; px++ {
							img.SetColorIndex(x0+px, y0+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

// exportGIF writes one frame per step. The inter-frame delay comes from
// the playback speed: 1/speed seconds per step, in centiseconds, floor 1.
func exportGIF(tr *trace.Trace, r render.Renderer, dest string, opts Options) error {
	delay := int(100.0 / opts.Speed)
	if delay < 1 {
		delay = 1
	}
	scale := int(opts.Scale)
	if scale < 1 {
		scale = 1
	}

	pal := gifPalette(opts.Theme)
	anim := &gif.GIF{}
	for i, step := range tr.Steps() {
		canvas, err := r.Frame(step)
		if err != nil {
			return &StepError{Index: i, Err: err}
		}
		anim.Image = append(anim.Image, canvasImage(canvas, scale, pal))
		anim.Delay = append(anim.Delay, delay)
	}
	return writeAtomic(dest, func(w io.Writer) error {
		return gif.EncodeAll(w, anim)
	})
}
