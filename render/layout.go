// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/filtergraph"
	"github.com/gogpu/glass/internal/filter"
)

// Placement is where a surface lands on the target for one frame.
type Placement struct {
	// Box is the layout box after the displayed elastic transform.
	Box image.Rectangle

	// Radius is the corner radius, scaled with the box and clamped to half
	// its shorter side.
	Radius float64
}

// Place computes the placement of the surface described by d. The
// transform scales the box around its center and then translates it.
func Place(d *glass.RenderDescriptor) Placement {
	g, t := d.Geometry, d.Transform
	w := g.Width * t.ScaleX
	h := g.Height * t.ScaleY
	if !(w > 0 && h > 0) {
		return Placement{}
	}
	cx := g.CenterX + t.TranslateX
	cy := g.CenterY + t.TranslateY

	x0 := int(math.Round(cx - w/2))
	y0 := int(math.Round(cy - h/2))
	pw := max(1, int(math.Round(w)))
	ph := max(1, int(math.Round(h)))

	radius := d.CornerRadius * math.Min(t.ScaleX, t.ScaleY)
	radius = math.Max(0, math.Min(radius, float64(min(pw, ph))/2))
	return Placement{
		Box:    image.Rect(x0, y0, x0+pw, y0+ph),
		Radius: radius,
	}
}

// shadowMargin is how far the box shadow reaches past the box.
func shadowMargin(s glass.BoxShadow) int {
	blur := filter.KernelSize(filter.ShadowBlurSigma(s.BlurPx)) / 2
	return blur + int(math.Ceil(math.Max(math.Abs(s.OffsetX), math.Abs(s.OffsetY))))
}

// backdropMargin is how much backdrop around the box the blur and the
// displacement read.
func backdropMargin(d *glass.RenderDescriptor) int {
	m := filter.KernelSize(filter.CSSBlurSigma(d.Backdrop.BlurPx)) / 2
	if d.Graph != nil {
		r, g, b := filtergraph.ChannelScales(d.Graph.Params)
		reach := math.Max(math.Abs(r), math.Max(math.Abs(g), math.Abs(b))) / 2
		m += int(math.Ceil(reach))
	}
	return m + 1
}

// Extent returns the target area a surface can touch, including its
// shadow.
func Extent(d *glass.RenderDescriptor) image.Rectangle {
	p := Place(d)
	if p.Box.Empty() {
		return image.Rectangle{}
	}
	return p.Box.Inset(-shadowMargin(d.Style.BoxShadow))
}
