package raster

import "math"

// fillSpan walks one scanline between two edge samples that share the same
// row. The samples may arrive in either x order. Pixels are sampled at
// integer columns from ceil(left.X) up to but excluding right.X.
//
// This is the hot path: no allocation, no per-pixel branches beyond the
// bounds and depth tests.
func (r *Rasterizer) fillSpan(a, b Vertex) {
	if a == b {
		return
	}
	if a.X > b.X {
		a, b = b, a
	}
	dx := b.X - a.X
	if !(dx > 0) || math.IsInf(dx, 0) {
		return
	}

	fb := r.fb
	y := a.Y
	if !(y >= 0 && y < float64(fb.Height)) {
		return
	}
	iy := int(y)

	zs := (b.Z - a.Z) / dx
	ws := (b.W - a.W) / dx
	rs := (b.R - a.R) / dx
	gs := (b.G - a.G) / dx
	bs := (b.B - a.B) / dx
	as := (b.A - a.A) / dx

	x := math.Ceil(a.X)
	e := x - a.X
	// Columns left of the image are skipped in one jump.
	if x < 0 {
		e -= x
		x = 0
	}
	z := a.Z + e*zs
	w := a.W + e*ws
	cr := a.R + e*rs
	cg := a.G + e*gs
	cb := a.B + e*bs
	ca := a.A + e*as

	end := b.X
	if width := float64(fb.Width); end > width {
		end = width
	}

	for ; x < end; x++ {
		ix := int(x)
		if r.depth == nil || r.depth.testAndSet(ix, iy, z) {
			r.writePixel((iy*fb.Width+ix)*4, w, cr, cg, cb, ca)
		}
		z += zs
		w += ws
		cr += rs
		cg += gs
		cb += bs
		ca += as
	}
}

// writePixel resolves the interpolated color and stores it at byte offset i.
func (r *Rasterizer) writePixel(i int, w, cr, cg, cb, ca float64) {
	if r.opts.Hyp {
		cr /= w
		cg /= w
		cb /= w
		ca /= w
	}
	if r.opts.SRGB {
		cr = LinearToSRGB(cr)
		cg = LinearToSRGB(cg)
		cb = LinearToSRGB(cb)
		ca = LinearToSRGB(ca)
	}
	pix := r.fb.Color[i : i+4 : i+4]
	pix[0] = to8(cr)
	pix[1] = to8(cg)
	pix[2] = to8(cb)
	pix[3] = to8(ca)
}
