package render

import (
	"fmt"
	"math"

	"github.com/san-kum/algoscope/internal/trace"
)

// Renderer turns one step into a drawable frame. Implementations must be
// deterministic: the same step always yields the same frame, so exports
// are reproducible.
type Renderer interface {
	Frame(step trace.Step) (*Canvas, error)
}

// markerZone reserves sub-pixel rows at the canvas bottom for highlight
// marks under array bars.
const markerZone = 6

// CanvasRenderer draws steps of any structure kind onto a braille canvas.
type CanvasRenderer struct {
	width  int
	height int
}

func NewCanvasRenderer(width, height int) *CanvasRenderer {
	if width <= 0 {
		width = 60
	}
	if height <= 0 {
		height = 16
	}
	return &CanvasRenderer{width: width, height: height}
}

func (r *CanvasRenderer) Frame(step trace.Step) (*Canvas, error) {
	c := NewCanvas(r.width, r.height)
	switch step.Snap.Kind {
	case trace.KindArray:
		r.drawArray(c, step)
	case trace.KindTree:
		r.drawTree(c, step)
	case trace.KindGraph:
		r.drawGraph(c, step)
	case trace.KindHash:
		r.drawHash(c, step)
	default:
		return nil, fmt.Errorf("render: unknown structure kind %d", step.Snap.Kind)
	}
	return c, nil
}

func (r *CanvasRenderer) drawArray(c *Canvas, step trace.Step) {
	values := step.Snap.Array
	if len(values) == 0 {
		return
	}

	subW := r.width * 2
	subH := r.height * 4
	plotH := subH - markerZone

	maxVal := 1
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	slot := subW / len(values)
	if slot < 1 {
		slot = 1
	}
	barW := slot - 1
	if barW < 1 {
		barW = 1
	}

	highlighted := make(map[int]bool, len(step.Highlights))
	for _, h := range step.Highlights {
		highlighted[h] = true
	}

	for i, v := range values {
		h := int(float64(v) / float64(maxVal) * float64(plotH-1))
		if v > 0 && h < 1 {
			h = 1
		}
		x := i * slot
		c.FillRect(x, plotH-h, barW, h)
		if highlighted[i] {
			c.FillRect(x, subH-3, barW, 2)
		}
	}
}

func (r *CanvasRenderer) drawTree(c *Canvas, step trace.Step) {
	nodes := step.Snap.Nodes
	if len(nodes) == 0 || step.Snap.Root < 0 {
		return
	}

	subW := r.width * 2
	subH := r.height * 4

	// in-order rank for x, depth for y
	xs := make(map[int]int, len(nodes))
	depths := make(map[int]int, len(nodes))
	rank := 0
	maxDepth := 0
	var walk func(id, depth int)
	walk = func(id, depth int) {
		if id < 0 || id >= len(nodes) {
			return
		}
		walk(nodes[id].Left, depth+1)
		xs[id] = rank
		rank++
		depths[id] = depth
		if depth > maxDepth {
			maxDepth = depth
		}
		walk(nodes[id].Right, depth+1)
	}
	walk(step.Snap.Root, 0)

	px := func(id int) int {
		if rank <= 1 {
			return subW / 2
		}
		return 2 + xs[id]*(subW-4)/(rank-1)
	}
	py := func(id int) int {
		if maxDepth == 0 {
			return subH / 2
		}
		return 3 + depths[id]*(subH-8)/maxDepth
	}

	highlighted := make(map[int]bool, len(step.Highlights))
	for _, h := range step.Highlights {
		highlighted[h] = true
	}

	var draw func(id int)
	draw = func(id int) {
		if id < 0 || id >= len(nodes) {
			return
		}
		if l := nodes[id].Left; l >= 0 {
			c.DrawLine(px(id), py(id), px(l), py(l))
			draw(l)
		}
		if rt := nodes[id].Right; rt >= 0 {
			c.DrawLine(px(id), py(id), px(rt), py(rt))
			draw(rt)
		}
		c.FillRect(px(id)-1, py(id)-1, 3, 3)
		if highlighted[id] {
			c.DrawCircle(px(id), py(id), 3)
		}
	}
	draw(step.Snap.Root)
}

func (r *CanvasRenderer) drawGraph(c *Canvas, step trace.Step) {
	vertices := step.Snap.Vertices
	if len(vertices) == 0 {
		return
	}

	subW := r.width * 2
	subH := r.height * 4
	cx := subW / 2
	cy := subH / 2
	radius := min(subW, subH)/2 - 4

	px := make([]int, len(vertices))
	py := make([]int, len(vertices))
	for i := range vertices {
		angle := 2 * math.Pi * float64(i) / float64(len(vertices))
		px[i] = cx + int(float64(radius)*math.Cos(angle))
		py[i] = cy + int(float64(radius)*math.Sin(angle)/2) // terminal cells are tall
	}

	for _, e := range step.Snap.Edges {
		if e.From < len(vertices) && e.To < len(vertices) {
			c.DrawLine(px[e.From], py[e.From], px[e.To], py[e.To])
		}
	}

	highlighted := make(map[int]bool, len(step.Highlights))
	for _, h := range step.Highlights {
		highlighted[h] = true
	}

	for i, v := range vertices {
		switch {
		case v.Visited:
			c.FillRect(px[i]-1, py[i]-1, 3, 3)
		case v.Frontier:
			c.FillRect(px[i], py[i]-1, 2, 2)
		default:
			c.Set(px[i], py[i])
		}
		if highlighted[i] {
			c.DrawCircle(px[i], py[i], 3)
		}
	}
}

func (r *CanvasRenderer) drawHash(c *Canvas, step trace.Step) {
	buckets := step.Snap.Buckets
	if len(buckets) == 0 {
		return
	}

	subW := r.width * 2
	subH := r.height * 4

	slot := subW / len(buckets)
	if slot < 2 {
		slot = 2
	}

	highlighted := make(map[int]bool, len(step.Highlights))
	for _, h := range step.Highlights {
		highlighted[h] = true
	}

	for i, b := range buckets {
		x := i * slot
		// baseline marks the bucket even when empty
		c.FillRect(x, subH-2, slot-1, 1)
		for j := range b {
			y := subH - 5 - j*3
			if y < 0 {
				break
			}
			c.FillRect(x, y, slot-1, 2)
		}
		if highlighted[i] {
			c.FillRect(x, 0, slot-1, 2)
		}
	}
}
