// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// LayerBlend is the blend mode of a presentation layer.
type LayerBlend uint8

// LayerBlend constants.
const (
	LayerBlendNormal LayerBlend = iota
	LayerBlendScreen
	LayerBlendOverlay
)

// String returns the CSS mix-blend-mode keyword.
func (b LayerBlend) String() string {
	switch b {
	case LayerBlendScreen:
		return "screen"
	case LayerBlendOverlay:
		return "overlay"
	default:
		return "normal"
	}
}

// Backdrop blur floors in pixels.
const (
	BackdropBlurBase      = 4.0
	BackdropBlurOverLight = 12.0

	// BlurAmountScale converts EffectConfig.BlurAmount to pixels.
	BlurAmountScale = 32.0
)

// Backdrop holds the blur and saturation applied to whatever is behind the
// surface. These apply even when the substrate cannot run the filter graph.
type Backdrop struct {
	BlurPx          float64
	SaturatePercent float64
}

// BackdropFor derives the backdrop parameters of cfg.
func BackdropFor(cfg EffectConfig) Backdrop {
	base := BackdropBlurBase
	if cfg.OverLight {
		base = BackdropBlurOverLight
	}
	return Backdrop{
		BlurPx:          base + cfg.BlurAmount*BlurAmountScale,
		SaturatePercent: cfg.Saturation,
	}
}

// CSS renders b as a backdrop-filter value.
func (b Backdrop) CSS() string {
	return "blur(" + num(b.BlurPx) + "px) saturate(" + num(b.SaturatePercent) + "%)"
}

// BoxShadow is an outer drop shadow.
type BoxShadow struct {
	OffsetX float64
	OffsetY float64
	BlurPx  float64
	Color   gg.RGBA
}

// BoxShadowFor returns the drop shadow for a surface over a light or dark
// background.
func BoxShadowFor(overLight bool) BoxShadow {
	if overLight {
		return BoxShadow{OffsetY: 16, BlurPx: 70, Color: gg.RGBA{A: 0.75}}
	}
	return BoxShadow{OffsetY: 12, BlurPx: 40, Color: gg.RGBA{A: 0.25}}
}

// CSS renders s as a box-shadow value.
func (s BoxShadow) CSS() string {
	return num(s.OffsetX) + "px " + num(s.OffsetY) + "px " + num(s.BlurPx) + "px " + cssColor(s.Color)
}

// Highlight ring constants.
const (
	// HighlightBorderWidth is the width of the highlight rings in pixels.
	HighlightBorderWidth = 1.5

	// MaxPointerOffset bounds the normalized pointer offset, in percent of
	// the surface size.
	MaxPointerOffset = 100.0
)

// HighlightStop is one stop of a highlight gradient. Offset is in [0,1];
// the color is white with the given alpha.
type HighlightStop struct {
	Offset float64
	Alpha  float64
}

// HighlightLayer is a thin border ring filled with a white linear gradient
// that turns with the pointer.
type HighlightLayer struct {
	// AngleDeg is the CSS gradient angle: 0 points up, 90 points right.
	AngleDeg float64

	// InnerStop and OuterStop are the positions of the two opaque stops in
	// percent.
	InnerStop float64
	OuterStop float64

	// InnerAlpha and OuterAlpha are the alphas at those stops.
	InnerAlpha float64
	OuterAlpha float64

	Blend   LayerBlend
	Opacity float64

	// BorderWidth is the ring width in pixels.
	BorderWidth float64
}

// highlightBase holds the alpha bases of one layer. Each alpha grows with
// the horizontal pointer offset.
type highlightBase struct {
	inner, outer float64
	blend        LayerBlend
	opacity      float64
}

var highlightBases = [2]highlightBase{
	{inner: 0.12, outer: 0.4, blend: LayerBlendScreen, opacity: 0.2},
	{inner: 0.32, outer: 0.6, blend: LayerBlendOverlay, opacity: 1},
}

// Highlights derives the two highlight layers from a normalized pointer
// offset. The first layer is the faint screen-blended sheen, the second
// the stronger overlay.
func Highlights(offsetX, offsetY float64) [2]HighlightLayer {
	ox := clampOffset(offsetX)
	oy := clampOffset(offsetY)
	angle := 135 + ox*1.2
	inner := math.Max(10, 33+oy*0.3)
	outer := math.Min(90, 66+oy*0.4)

	var layers [2]HighlightLayer
	for i, b := range highlightBases {
		layers[i] = HighlightLayer{
			AngleDeg:    angle,
			InnerStop:   inner,
			OuterStop:   outer,
			InnerAlpha:  b.inner + math.Abs(ox)*0.008,
			OuterAlpha:  b.outer + math.Abs(ox)*0.012,
			Blend:       b.blend,
			Opacity:     b.opacity,
			BorderWidth: HighlightBorderWidth,
		}
	}
	return layers
}

// Stops returns the four gradient stops, transparent at both ends.
func (l HighlightLayer) Stops() [4]HighlightStop {
	return [4]HighlightStop{
		{Offset: 0, Alpha: 0},
		{Offset: l.InnerStop / 100, Alpha: l.InnerAlpha},
		{Offset: l.OuterStop / 100, Alpha: l.OuterAlpha},
		{Offset: 1, Alpha: 0},
	}
}

// CSS renders the layer's gradient as a linear-gradient value.
func (l HighlightLayer) CSS() string {
	var b strings.Builder
	b.WriteString("linear-gradient(")
	b.WriteString(num(l.AngleDeg))
	b.WriteString("deg")
	percents := [4]float64{0, l.InnerStop, l.OuterStop, 100}
	for i, s := range l.Stops() {
		b.WriteString(", ")
		b.WriteString(cssColor(gg.RGBA{R: 1, G: 1, B: 1, A: s.Alpha}))
		b.WriteByte(' ')
		b.WriteString(num(percents[i]))
		b.WriteByte('%')
	}
	b.WriteByte(')')
	return b.String()
}

// TintLayer is a flat black layer that darkens a surface over light
// backgrounds.
type TintLayer struct {
	Blend   LayerBlend
	Opacity float64
}

// TintsFor returns the darkening layers for an over-light surface, or nil.
func TintsFor(overLight bool) []TintLayer {
	if !overLight {
		return nil
	}
	return []TintLayer{
		{Blend: LayerBlendNormal, Opacity: 0.2},
		{Blend: LayerBlendOverlay, Opacity: 1},
	}
}

// PointerOffset returns the pointer position relative to the surface
// center in percent of the surface size, clamped to ±MaxPointerOffset.
// It is zero when the pointer is absent or the surface is empty.
func PointerOffset(p PointerState, g Geometry) (x, y float64) {
	if !p.Present || g.Empty() {
		return 0, 0
	}
	x = clampOffset((p.GlobalX - g.CenterX) / g.Width * 100)
	y = clampOffset((p.GlobalY - g.CenterY) / g.Height * 100)
	return x, y
}

// Style is the flat style descriptor handed to a substrate.
type Style struct {
	BackdropBlurPx  float64
	SaturatePercent float64
	BorderRadiusPx  float64

	// Transform is the displayed elastic transform as a CSS transform.
	Transform string

	BoxShadow BoxShadow
	Padding   string
}

// BackdropFilter renders the backdrop-filter value of s.
func (s Style) BackdropFilter() string {
	return Backdrop{BlurPx: s.BackdropBlurPx, SaturatePercent: s.SaturatePercent}.CSS()
}

func clampOffset(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-MaxPointerOffset, math.Min(MaxPointerOffset, v))
}

func cssColor(c gg.RGBA) string {
	return "rgba(" + strconv.Itoa(channel255(c.R)) + ", " + strconv.Itoa(channel255(c.G)) + ", " +
		strconv.Itoa(channel255(c.B)) + ", " + num(c.A) + ")"
}

func channel255(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
