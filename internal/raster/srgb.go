package raster

import "math"

// LinearToSRGB applies the sRGB transfer function to a linear-light value.
func LinearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// to8 scales a [0,1] channel to a byte, truncating. The channel is narrowed
// to float32 first so that values within float64 rounding error of 1.0
// (such as LinearToSRGB(1)) still store as 255. Out-of-range values
// saturate instead of wrapping.
func to8(c float64) uint8 {
	v := float32(c) * 255
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
