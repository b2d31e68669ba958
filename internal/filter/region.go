// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "image"

// Crop copies the pixels of src inside r into a new image the size of r.
// Pixels of r outside src repeat the nearest edge pixel when clampEdges is
// set and are transparent otherwise.
func Crop(src *Image, r image.Rectangle, clampEdges bool) *Image {
	dst := NewImage(r.Dx(), r.Dy())
	if src.Width == 0 || src.Height == 0 {
		return dst
	}
	for y := 0; y < dst.Height; y++ {
		sy := r.Min.Y + y
		if clampEdges {
			sy = min(max(sy, 0), src.Height-1)
		}
		for x := 0; x < dst.Width; x++ {
			sx := r.Min.X + x
			if clampEdges {
				sx = min(max(sx, 0), src.Width-1)
			}
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

// Paste copies src into dst with its top-left corner at (x, y), replacing
// the destination pixels. Parts outside dst are dropped.
func Paste(dst, src *Image, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dst.Set(x+sx, dy, src.At(sx, sy))
		}
	}
}

// OverAt composites src over dst in place with src's top-left corner at
// (x, y).
func OverAt(dst, src *Image, x, y int) {
	BlendAt(dst, src, x, y, BlendNormal, 1)
}

// BlendAt blends src onto dst in place with src's top-left corner at
// (x, y). See Blend for the formula.
func BlendAt(dst, src *Image, x, y int, mode BlendMode, opacity float32) {
	opacity = clamp01(opacity)
	if opacity == 0 {
		return
	}
	fn := blendFunc(mode)
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.Width {
				continue
			}
			s := src.At(sx, sy)
			if s.A <= 0 {
				continue
			}
			s.R *= opacity
			s.G *= opacity
			s.B *= opacity
			s.A *= opacity
			i := (dy*dst.Width + dx) * 4
			b := Pixel{dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3]}
			o := separableBlend(s, b, fn)
			dst.Pix[i+0] = o.R
			dst.Pix[i+1] = o.G
			dst.Pix[i+2] = o.B
			dst.Pix[i+3] = o.A
		}
	}
}

// Out keeps src where mask is transparent: src * (1 - mask.alpha).
func Out(src, mask *Image) *Image {
	dst := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			k := 1 - mask.At(x, y).A
			i := (y*src.Width + x) * 4
			dst.Pix[i+0] = src.Pix[i+0] * k
			dst.Pix[i+1] = src.Pix[i+1] * k
			dst.Pix[i+2] = src.Pix[i+2] * k
			dst.Pix[i+3] = src.Pix[i+3] * k
		}
	}
	return dst
}
