// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

// BlendMode is a separable blend mode from W3C Compositing and Blending
// Level 1.
type BlendMode uint8

// BlendMode constants.
const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendOverlay
)

// In keeps src where mask is opaque: src * mask.alpha.
func In(src, mask *Image) *Image {
	dst := NewImage(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			ma := mask.At(x, y).A
			i := (y*src.Width + x) * 4
			dst.Pix[i+0] = src.Pix[i+0] * ma
			dst.Pix[i+1] = src.Pix[i+1] * ma
			dst.Pix[i+2] = src.Pix[i+2] * ma
			dst.Pix[i+3] = src.Pix[i+3] * ma
		}
	}
	return dst
}

// Over composites src over dst and returns a new image the size of dst.
func Over(src, dst *Image) *Image {
	out := NewImage(dst.Width, dst.Height)
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			s := src.At(x, y)
			i := (y*dst.Width + x) * 4
			inv := 1 - s.A
			out.Pix[i+0] = s.R + dst.Pix[i+0]*inv
			out.Pix[i+1] = s.G + dst.Pix[i+1]*inv
			out.Pix[i+2] = s.B + dst.Pix[i+2]*inv
			out.Pix[i+3] = s.A + dst.Pix[i+3]*inv
		}
	}
	return out
}

// Blend blends src onto backdrop with mode and returns a new image the size
// of backdrop. opacity scales src before blending.
//
// The result follows
//
//	co = cs*(1 - ab) + cb*(1 - as) + as*ab*B(Cb, Cs)
//	ao = as + ab - as*ab
//
// with B evaluated on unpremultiplied values.
func Blend(src, backdrop *Image, mode BlendMode, opacity float32) *Image {
	out := NewImage(backdrop.Width, backdrop.Height)
	opacity = clamp01(opacity)
	fn := blendFunc(mode)

	for y := 0; y < backdrop.Height; y++ {
		for x := 0; x < backdrop.Width; x++ {
			s := src.At(x, y)
			s.R *= opacity
			s.G *= opacity
			s.B *= opacity
			s.A *= opacity

			i := (y*backdrop.Width + x) * 4
			b := Pixel{backdrop.Pix[i], backdrop.Pix[i+1], backdrop.Pix[i+2], backdrop.Pix[i+3]}

			o := separableBlend(s, b, fn)
			out.Pix[i+0] = o.R
			out.Pix[i+1] = o.G
			out.Pix[i+2] = o.B
			out.Pix[i+3] = o.A
		}
	}
	return out
}

// separableBlend blends premultiplied s onto premultiplied b.
func separableBlend(s, b Pixel, fn func(cb, cs float32) float32) Pixel {
	as, ab := s.A, b.A
	if as <= 0 {
		return b
	}
	if ab <= 0 {
		return s
	}
	both := as * ab
	ch := func(cs, cb float32) float32 {
		return cs*(1-ab) + cb*(1-as) + both*fn(cb/ab, cs/as)
	}
	return Pixel{
		R: ch(s.R, b.R),
		G: ch(s.G, b.G),
		B: ch(s.B, b.B),
		A: as + ab - both,
	}
}

func blendFunc(mode BlendMode) func(cb, cs float32) float32 {
	switch mode {
	case BlendScreen:
		return blendScreen
	case BlendOverlay:
		return blendOverlay
	default:
		return blendNormal
	}
}

func blendNormal(_, cs float32) float32 {
	return cs
}

// blendScreen: B(Cb, Cs) = Cb + Cs - Cb*Cs.
func blendScreen(cb, cs float32) float32 {
	return cb + cs - cb*cs
}

// blendOverlay is HardLight with swapped operands.
func blendOverlay(cb, cs float32) float32 {
	if cb <= 0.5 {
		return cs * 2 * cb
	}
	return blendScreen(cs, 2*cb-1)
}
