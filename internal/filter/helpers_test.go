// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/gg"

// Test helper functions shared across filter tests.

// solidImage creates an image filled with the given straight-alpha color.
func solidImage(w, h int, c gg.RGBA) *Image {
	im := NewImage(w, h)
	im.Fill(PixelFromRGBA(c))
	return im
}

// straight converts a premultiplied pixel to a straight-alpha gg color.
func straight(p Pixel) gg.RGBA {
	if p.A <= 0 {
		return gg.RGBA{}
	}
	return gg.RGBA{R: float64(p.R / p.A), G: float64(p.G / p.A), B: float64(p.B / p.A), A: float64(p.A)}
}

// pixelApproxEqual compares two pixels with tolerance.
func pixelApproxEqual(a, b Pixel, tolerance float32) bool {
	return absf32(a.R-b.R) < tolerance &&
		absf32(a.G-b.G) < tolerance &&
		absf32(a.B-b.B) < tolerance &&
		absf32(a.A-b.A) < tolerance
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
