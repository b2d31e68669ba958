// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/gg"

// DropShadow returns the shadow cast by shape: its alpha channel, offset by
// (dx, dy), blurred with sigma and colorized with color.
// The shadow is returned on its own so callers can place it under any
// layer.
func DropShadow(shape *Image, dx, dy int, sigma float64, color gg.RGBA) *Image {
	w, h := shape.Width, shape.Height

	alpha := make([]float32, w*h)
	extractAlpha(shape, alpha, dx, dy)
	if sigma > 0 {
		blurred := make([]float32, w*h)
		blurAlphaChannel(alpha, blurred, w, h, sigma)
		alpha = blurred
	}

	cr, cg, cb, ca := float32(color.R), float32(color.G), float32(color.B), float32(color.A)
	dst := NewImage(w, h)
	for i, a := range alpha {
		a = clamp01(a) * ca
		o := i * 4
		dst.Pix[o+0] = cr * a
		dst.Pix[o+1] = cg * a
		dst.Pix[o+2] = cb * a
		dst.Pix[o+3] = a
	}
	return dst
}

// extractAlpha copies the alpha channel of src into alpha, shifted by
// (offsetX, offsetY).
func extractAlpha(src *Image, alpha []float32, offsetX, offsetY int) {
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			alpha[y*src.Width+x] = src.At(x-offsetX, y-offsetY).A
		}
	}
}

// blurAlphaChannel applies a Gaussian blur to a single-channel buffer.
func blurAlphaChannel(src, dst []float32, width, height int, sigma float64) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2

	temp := make([]float32, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= width {
					continue
				}
				sum += src[y*width+kx] * weight
			}
			temp[y*width+x] = sum
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= height {
					continue
				}
				sum += temp[ky*width+x] * weight
			}
			dst[y*width+x] = sum
		}
	}
}
