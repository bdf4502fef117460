package raster

// Options are the pipeline flags. They are fixed before the first draw and
// never change during a run.
type Options struct {
	SRGB  bool // encode linear color to sRGB on write
	Depth bool // z-buffer test, smaller z wins
	Hyp   bool // perspective-correct interpolation; implies SRGB and Depth
}

// Normalize resolves implied flags.
func (o Options) Normalize() Options {
	if o.Hyp {
		o.SRGB = true
		o.Depth = true
	}
	return o
}

// Rasterizer scan-converts triangles into a FrameBuffer. It owns the depth
// buffer when depth testing is enabled. Not safe for concurrent use.
type Rasterizer struct {
	fb    *FrameBuffer
	depth *DepthBuffer
	opts  Options
}

// NewRasterizer binds a frame buffer and pipeline options. A depth buffer of
// the same size is allocated when the options ask for depth testing.
func NewRasterizer(fb *FrameBuffer, opts Options) *Rasterizer {
	opts = opts.Normalize()
	r := &Rasterizer{fb: fb, opts: opts}
	if opts.Depth {
		r.depth = NewDepthBuffer(fb.Width, fb.Height)
	}
	return r
}

// Options returns the normalized pipeline flags.
func (r *Rasterizer) Options() Options { return r.opts }

// FrameBuffer returns the render target.
func (r *Rasterizer) FrameBuffer() *FrameBuffer { return r.fb }

// DepthBuffer returns the depth grid, or nil when depth testing is off.
func (r *Rasterizer) DepthBuffer() *DepthBuffer { return r.depth }
