package raster

import "math"

// DrawTriangle scan-converts one triangle given in screen space.
//
// The vertices are ordered by Y into top, middle and bottom. The long edge
// top→bottom is walked for the whole height while the short edges
// top→middle and middle→bottom cover the upper and lower halves. Which edge
// is left or right is decided per span, so both windings work.
//
// Zero-height halves are skipped; a triangle with all three vertices on one
// row draws nothing.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 Vertex) {
	top, mid, bot := sortByY(v0, v1, v2)

	long, ok := newEdge(top, bot, r.opts.Hyp)
	if !ok {
		return
	}
	if upper, ok := newEdge(top, mid, r.opts.Hyp); ok {
		r.walk(&long, &upper, mid.Y)
	}
	if lower, ok := newEdge(mid, bot, r.opts.Hyp); ok {
		r.walk(&long, &lower, bot.Y)
	}
}

// walk fills the spans between two edges that sit on the same row, one row
// at a time, until the row reaches stop. Rows above the image are jumped
// over and the walk ends at the bottom of the image.
func (r *Rasterizer) walk(long, short *edge, stop float64) {
	if y := long.cur.Y; y < 0 {
		n := math.Min(-y, math.Ceil(stop-y))
		if n > 0 {
			long.jump(n)
			short.jump(n)
		}
	}
	h := float64(r.fb.Height)
	for long.cur.Y < stop && long.cur.Y < h {
		r.fillSpan(long.cur, short.cur)
		long.advance()
		short.advance()
	}
}

// sortByY orders three vertices by ascending Y with a compare-swap pass.
// Ties keep their input order.
func sortByY(a, b, c Vertex) (Vertex, Vertex, Vertex) {
	if a.Y > b.Y {
		a, b = b, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if a.Y > b.Y {
		a, b = b, a
	}
	return a, b, c
}
