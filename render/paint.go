// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/internal/filter"
)

// roundedMask rasterizes a white rounded rectangle r with corner radius
// radius into a transparent w×h mask.
func roundedMask(w, h int, r image.Rectangle, radius float64) (*filter.Image, error) {
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	dc.SetRGBA(1, 1, 1, 1)
	if radius > 0 {
		dc.DrawRoundedRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), radius)
	} else {
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	}
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("render: filling mask: %w", err)
	}
	return filter.FromImage(dc.Image()), nil
}

// colorize returns mask's coverage filled with the straight-alpha color c.
func colorize(mask *filter.Image, c gg.RGBA) *filter.Image {
	p := filter.PixelFromRGBA(c)
	out := filter.NewImage(mask.Width, mask.Height)
	for i := 0; i < len(mask.Pix); i += 4 {
		a := mask.Pix[i+3]
		out.Pix[i+0] = p.R * a
		out.Pix[i+1] = p.G * a
		out.Pix[i+2] = p.B * a
		out.Pix[i+3] = p.A * a
	}
	return out
}

// edgeMask paints the radial edge mask over a w×h image. The gradient is
// centered on box and reaches its last stop at the box's half extents;
// past that it stays opaque.
func edgeMask(w, h int, box image.Rectangle, innerStop float64) *filter.Image {
	brush := gg.NewRadialGradientBrush(0.5, 0.5, 0, 0.5).
		AddColorStop(0, gg.RGBA{}).
		AddColorStop(innerStop/100, gg.RGBA{}).
		AddColorStop(1, gg.White)

	out := filter.NewImage(w, h)
	bw := float64(max(box.Dx(), 1))
	bh := float64(max(box.Dy(), 1))
	for y := 0; y < h; y++ {
		v := (float64(y-box.Min.Y) + 0.5) / bh
		for x := 0; x < w; x++ {
			u := (float64(x-box.Min.X) + 0.5) / bw
			out.Set(x, y, filter.PixelFromRGBA(brush.ColorAt(u, v)))
		}
	}
	return out
}

// gradientLine returns the end points of a CSS linear-gradient line at
// angleDeg for a w×h box: it passes through the center and is long enough
// that the corners land on the 0% and 100% stops.
func gradientLine(angleDeg, w, h float64) (x0, y0, x1, y1 float64) {
	rad := angleDeg * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// highlightRing paints layer as a ring of width layer.BorderWidth along
// the inside of a w×h rounded rectangle.
func highlightRing(layer glass.HighlightLayer, w, h int, radius float64) (*filter.Image, error) {
	outer, err := roundedMask(w, h, image.Rect(0, 0, w, h), radius)
	if err != nil {
		return nil, err
	}

	bw := layer.BorderWidth
	inner := filter.NewImage(w, h)
	if iw, ih := float64(w)-2*bw, float64(h)-2*bw; iw > 0 && ih > 0 {
		dc := gg.NewContext(w, h)
		dc.SetRGBA(1, 1, 1, 1)
		dc.DrawRoundedRectangle(bw, bw, iw, ih, math.Max(0, radius-bw))
		err := dc.Fill()
		inner = filter.FromImage(dc.Image())
		_ = dc.Close()
		if err != nil {
			return nil, fmt.Errorf("render: filling ring: %w", err)
		}
	}
	ring := filter.Out(outer, inner)

	x0, y0, x1, y1 := gradientLine(layer.AngleDeg, float64(w), float64(h))
	brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, s := range layer.Stops() {
		brush.AddColorStop(s.Offset, gg.RGBA{R: 1, G: 1, B: 1, A: s.Alpha})
	}

	out := filter.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := ring.At(x, y).A
			if a <= 0 {
				continue
			}
			p := filter.PixelFromRGBA(brush.ColorAt(float64(x)+0.5, float64(y)+0.5))
			out.Set(x, y, filter.Pixel{R: p.R * a, G: p.G * a, B: p.B * a, A: p.A * a})
		}
	}
	return out, nil
}

// backdrop blurs and saturates src the way a CSS backdrop-filter of
// blur(blurPx) saturate(saturatePercent%) does.
func backdrop(src *filter.Image, blurPx, saturatePercent float64) *filter.Image {
	out := src
	if sigma := filter.CSSBlurSigma(blurPx); sigma > 0 {
		out = filter.Blur(src, sigma, sigma)
	}
	if saturatePercent != 100 {
		m := filter.SaturationMatrix(saturatePercent / 100)
		out = filter.ApplyMatrix(out, &m)
	}
	return out
}

func layerBlend(b glass.LayerBlend) filter.BlendMode {
	switch b {
	case glass.LayerBlendScreen:
		return filter.BlendScreen
	case glass.LayerBlendOverlay:
		return filter.BlendOverlay
	default:
		return filter.BlendNormal
	}
}
