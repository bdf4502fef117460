// Package imageio loads and saves images by file extension.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an image file format known to this package.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
	JPEG Format = "jpeg"
)

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	case ".tga":
		return TGA, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("imageio: unknown extension %q", filepath.Ext(path))
}

// WithFormat swaps the extension of path for the one of f.
func WithFormat(path string, f Format) string {
	ext := "." + string(f)
	if f == JPEG {
		ext = ".jpg"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Encode writes img to w in format f. Only PNG and WebP can be written.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("imageio: cannot encode %s", f)
}

// Save encodes img to path, choosing the encoder from the extension.
// A partially written file is removed on failure.
func Save(path string, img image.Image) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	if f != PNG && f != WebP {
		return fmt.Errorf("imageio: cannot encode %s: %s", f, path)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("imageio: close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(out)
	if err := Encode(bw, img, f); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	return nil
}

// Decode reads an image in format f and returns it as NRGBA.
func Decode(r io.Reader, f Format) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case PNG:
		img, err = png.Decode(r)
	case WebP:
		// Our own encoder sets the VP8X alpha flag on lossless images.
		img, err = nativewebp.DecodeIgnoreAlphaFlag(r)
	case TGA:
		img, err = tga.Decode(r)
	case JPEG:
		img, err = jpeg.Decode(r)
	default:
		return nil, fmt.Errorf("imageio: cannot decode %s", f)
	}
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// Load reads the image at path, choosing the decoder from the extension.
func Load(path string) (*image.NRGBA, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}
	defer in.Close()

	img, err := Decode(bufio.NewReader(in), f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return img, nil
}

// ToNRGBA converts any image to NRGBA with bounds rebased at the origin.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha: draw is exact.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
