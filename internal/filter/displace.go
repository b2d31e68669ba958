// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "math"

// RowRunner calls fn over the rows [0, height), split into bands that may
// run concurrently. Bands never overlap.
type RowRunner func(height int, fn func(y0, y1 int))

// Serial is the RowRunner that runs every row on the calling goroutine.
func Serial(height int, fn func(y0, y1 int)) {
	if height > 0 {
		fn(0, height)
	}
}

// Displace moves the pixels of src by the vector field in dmap:
//
//	P'(x,y) = P(x + scale*(X(x,y) - 0.5), y + scale*(Y(x,y) - 0.5))
//
// where X and Y are the unpremultiplied xChannel and yChannel values of
// dmap (0=R, 1=G, 2=B, 3=A). dmap is sampled proportionally when its size
// differs from src. Samples that land outside src are transparent.
func Displace(src, dmap *Image, scale float64, xChannel, yChannel int) *Image {
	return DisplaceWith(Serial, src, dmap, scale, xChannel, yChannel)
}

// DisplaceWith is like Displace but processes rows through run.
func DisplaceWith(run RowRunner, src, dmap *Image, scale float64, xChannel, yChannel int) *Image {
	dst := NewImage(src.Width, src.Height)
	if dmap.Width == 0 || dmap.Height == 0 {
		return dst
	}
	xChannel &= 3
	yChannel &= 3

	sx := float64(dmap.Width) / float64(max(src.Width, 1))
	sy := float64(dmap.Height) / float64(max(src.Height, 1))

	run(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			my := min(int(float64(y)*sy), dmap.Height-1)
			for x := 0; x < src.Width; x++ {
				mx := min(int(float64(x)*sx), dmap.Width-1)
				mi := (my*dmap.Width + mx) * 4

				xv := channelValue(dmap.Pix[mi:mi+4], xChannel)
				yv := channelValue(dmap.Pix[mi:mi+4], yChannel)

				srcX := int(math.Floor(float64(x) + scale*(float64(xv)-0.5) + 0.5))
				srcY := int(math.Floor(float64(y) + scale*(float64(yv)-0.5) + 0.5))
				dst.Set(x, y, src.At(srcX, srcY))
			}
		}
	})
	return dst
}

// channelValue returns an unpremultiplied channel of a premultiplied pixel.
func channelValue(px []float32, ch int) float32 {
	a := px[3]
	if ch == 3 {
		return a
	}
	if a <= 0 {
		return 0
	}
	return px[ch] / a
}

// Offset shifts src by (dx, dy) whole pixels.
func Offset(src *Image, dx, dy int) *Image {
	if dx == 0 && dy == 0 {
		return src.Clone()
	}
	dst := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.Set(x, y, src.At(x-dx, y-dy))
		}
	}
	return dst
}
