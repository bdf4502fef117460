package postprocess

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DiffResult summarizes a pixel comparison.
type DiffResult struct {
	Total      int
	Mismatched int
	MaxDelta   uint8        // largest channel difference seen
	Image      *image.NRGBA // dimmed copy of the first image, mismatches in red
}

var mismatch = color.NRGBA{255, 0, 0, 255}

// Diff compares two images of equal size channel by channel. A pixel
// mismatches when any channel differs by more than tolerance.
func Diff(a, b *image.NRGBA, tolerance uint8) (DiffResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return DiffResult{}, fmt.Errorf("postprocess: size mismatch %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	w, h := ab.Dx(), ab.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Copy(out, image.Point{}, a, ab, draw.Src, nil)

	res := DiffResult{Total: w * h, Image: out}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ia := a.PixOffset(ab.Min.X+x, ab.Min.Y+y)
			ib := b.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			var worst uint8
			for c := 0; c < 4; c++ {
				if d := absDiff(a.Pix[ia+c], b.Pix[ib+c]); d > worst {
					worst = d
				}
			}
			if worst > res.MaxDelta {
				res.MaxDelta = worst
			}

			o := out.PixOffset(x, y)
			if worst > tolerance {
				res.Mismatched++
				out.SetNRGBA(x, y, mismatch)
				continue
			}
			// Dim matching pixels so mismatches stand out.
			out.Pix[o] /= 3
			out.Pix[o+1] /= 3
			out.Pix[o+2] /= 3
			out.Pix[o+3] = 255
		}
	}
	return res, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
