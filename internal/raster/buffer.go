package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the rendering target as a flat RGBA slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4, zeroed (transparent black)
}

// NewFrameBuffer allocates a zeroed color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Pixel returns the RGBA bytes stored at (x, y).
func (fb *FrameBuffer) Pixel(x, y int) [4]uint8 {
	i := (y*fb.Width + x) * 4
	return [4]uint8{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

// Image wraps the color buffer in an NRGBA image without copying.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// DepthBuffer is a contiguous per-pixel depth grid indexed by y*Width+x.
// Every entry starts at +Inf and only ever decreases.
type DepthBuffer struct {
	Width  int
	Height int
	Z      []float64
}

// NewDepthBuffer allocates a w×h depth grid cleared to +Inf.
func NewDepthBuffer(w, h int) *DepthBuffer {
	z := make([]float64, w*h)
	for i := range z {
		z[i] = math.Inf(1)
	}
	return &DepthBuffer{Width: w, Height: h, Z: z}
}

// At returns the stored depth at (x, y).
func (db *DepthBuffer) At(x, y int) float64 {
	return db.Z[y*db.Width+x]
}

// testAndSet stores z at (x, y) if it is strictly closer than the current
// value and reports whether it did.
func (db *DepthBuffer) testAndSet(x, y int, z float64) bool {
	i := y*db.Width + x
	if !(z < db.Z[i]) {
		return false
	}
	db.Z[i] = z
	return true
}
