package raster

// Vertex is the bundle of interpolable per-vertex values. X and Y are
// screen coordinates, Z is normalized depth, W holds 1/w_clip, and R, G, B, A
// are color channels (linear light unless converted on write).
type Vertex struct {
	X, Y, Z, W float64
	R, G, B, A float64
}

// add returns v + d, component-wise.
func (v Vertex) add(d Vertex) Vertex {
	return Vertex{
		X: v.X + d.X, Y: v.Y + d.Y, Z: v.Z + d.Z, W: v.W + d.W,
		R: v.R + d.R, G: v.G + d.G, B: v.B + d.B, A: v.A + d.A,
	}
}

// scale returns v * s, component-wise.
func (v Vertex) scale(s float64) Vertex {
	return Vertex{
		X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s,
		R: v.R * s, G: v.G * s, B: v.B * s, A: v.A * s,
	}
}

// premultiplied returns v with its color channels multiplied by W, so that
// they interpolate linearly in screen space.
func (v Vertex) premultiplied() Vertex {
	v.R *= v.W
	v.G *= v.W
	v.B *= v.W
	v.A *= v.W
	return v
}
