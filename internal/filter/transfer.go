// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "math"

// TransferFunc maps a channel value in [0, 1] to a new value.
type TransferFunc func(float32) float32

// TableTransfer returns the piecewise-linear transfer function through the
// evenly spaced values of table. An empty table is the identity.
func TableTransfer(table []float64) TransferFunc {
	n := len(table)
	if n == 0 {
		return func(c float32) float32 { return c }
	}
	if n == 1 {
		v := float32(table[0])
		return func(float32) float32 { return v }
	}
	segments := float64(n - 1)
	return func(c float32) float32 {
		pos := float64(clamp01(c)) * segments
		k := int(math.Floor(pos))
		if k >= n-1 {
			return float32(table[n-1])
		}
		frac := pos - float64(k)
		return float32(table[k] + frac*(table[k+1]-table[k]))
	}
}

// DiscreteTransfer returns the step transfer function over table. An empty
// table is the identity.
func DiscreteTransfer(table []float64) TransferFunc {
	n := len(table)
	if n == 0 {
		return func(c float32) float32 { return c }
	}
	return func(c float32) float32 {
		k := int(math.Floor(float64(clamp01(c)) * float64(n)))
		if k >= n {
			k = n - 1
		}
		return float32(table[k])
	}
}

// TransferAlpha applies f to the alpha channel of src and returns a new
// image. Unpremultiplied color is preserved.
func TransferAlpha(src *Image, f TransferFunc) *Image {
	dst := NewImage(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		var r, g, b float32
		if a > 0 {
			r = src.Pix[i+0] / a
			g = src.Pix[i+1] / a
			b = src.Pix[i+2] / a
		}
		na := clamp01(f(a))
		dst.Pix[i+0] = r * na
		dst.Pix[i+1] = g * na
		dst.Pix[i+2] = b * na
		dst.Pix[i+3] = na
	}
	return dst
}
