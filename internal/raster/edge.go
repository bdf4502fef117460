package raster

import "math"

// edge is an incremental walker along one triangle edge. step advances one
// scanline (step.Y == 1); cur is the sample on the current scanline.
type edge struct {
	step Vertex
	cur  Vertex
}

// newEdge sets up the DDA for the edge a→b. The endpoints are swapped if
// needed so that a is on top. cur starts on the first integer row at or
// below a.Y. With hyp, color channels are premultiplied by W first.
//
// ok is false for a horizontal edge: it covers no scanline and has no
// defined slope.
func newEdge(a, b Vertex, hyp bool) (e edge, ok bool) {
	if a.Y > b.Y {
		a, b = b, a
	}
	dy := b.Y - a.Y
	if !(dy > 0) || math.IsInf(dy, 0) {
		return edge{}, false
	}
	if hyp {
		a = a.premultiplied()
		b = b.premultiplied()
	}

	e.step = Vertex{
		X: (b.X - a.X) / dy,
		Y: 1,
		Z: (b.Z - a.Z) / dy,
		W: (b.W - a.W) / dy,
		R: (b.R - a.R) / dy,
		G: (b.G - a.G) / dy,
		B: (b.B - a.B) / dy,
		A: (b.A - a.A) / dy,
	}
	row := math.Ceil(a.Y)
	e.cur = a.add(e.step.scale(row - a.Y))
	e.cur.Y = row
	return e, true
}

// advance moves the sample down one scanline.
func (e *edge) advance() {
	e.cur = e.cur.add(e.step)
}

// jump moves the sample down n whole scanlines at once.
func (e *edge) jump(n float64) {
	y := e.cur.Y + n
	e.cur = e.cur.add(e.step.scale(n))
	e.cur.Y = y
}
