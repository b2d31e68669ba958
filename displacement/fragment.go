// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import "math"

// Vec2 is a two-component vector.
type Vec2 struct {
	X, Y float64
}

// Fragment maps a normalized surface coordinate uv in [0,1]² to a
// displacement offset in [-1,1]². Offsets outside the range are clamped
// when encoded.
//
// pointer is the pointer position in the same normalized space; hasPointer
// is false when no pointer is present. Fragments that ignore the pointer may
// ignore both.
//
// A Fragment must be deterministic: the same inputs must yield the same
// offset.
type Fragment func(uv, pointer Vec2, hasPointer bool) Vec2

// LiquidGlass is the default shader fragment. It bends sampling toward the
// center inside a soft rounded-rectangle rim.
func LiquidGlass(uv, _ Vec2, _ bool) Vec2 {
	ix := uv.X - 0.5
	iy := uv.Y - 0.5
	d := roundedRectSDF(ix, iy, 0.3, 0.2, 0.6)
	k := smoothStep(0, 1, smoothStep(0.8, 0, d-0.15))
	// ix*k - ix is at most 0.5 in magnitude.
	return Vec2{X: 2 * ix * (k - 1), Y: 2 * iy * (k - 1)}
}

// standardPattern bends outward along a rounded rim; built-in patterns are
// sampled with a negative scale.
func standardPattern(uv, _ Vec2, _ bool) Vec2 {
	ix := uv.X - 0.5
	iy := uv.Y - 0.5
	d := roundedRectSDF(ix, iy, 0.35, 0.35, 0.2)
	rim := smoothStep(-0.18, 0, d)
	return Vec2{X: 2 * ix * rim, Y: 2 * iy * rim}
}

// polarPattern bends radially with a slight tangential twist.
func polarPattern(uv, _ Vec2, _ bool) Vec2 {
	ix := uv.X - 0.5
	iy := uv.Y - 0.5
	r := math.Hypot(ix, iy)
	if r == 0 {
		return Vec2{}
	}
	k := smoothStep(0.1, 0.5, r)
	nx, ny := ix/r, iy/r
	return Vec2{
		X: k * (nx - 0.25*ny),
		Y: k * (ny + 0.25*nx),
	}
}

// prominentPattern has a wider and stronger rim than standardPattern.
func prominentPattern(uv, _ Vec2, _ bool) Vec2 {
	ix := uv.X - 0.5
	iy := uv.Y - 0.5
	d := roundedRectSDF(ix, iy, 0.3, 0.3, 0.25)
	rim := smoothStep(-0.3, 0.05, d)
	return Vec2{X: 3 * ix * rim, Y: 3 * iy * rim}
}

// roundedRectSDF is the signed distance from (x, y) to a rounded rectangle
// centered at the origin with half extents (w, h) and corner radius r.
func roundedRectSDF(x, y, w, h, r float64) float64 {
	qx := math.Abs(x) - w + r
	qy := math.Abs(y) - h + r
	return math.Min(math.Max(qx, qy), 0) + math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) - r
}

// smoothStep is the Hermite step between edges a and b. a may exceed b.
func smoothStep(a, b, t float64) float64 {
	t = clamp((t-a)/(b-a), 0, 1)
	return t * t * (3 - 2*t)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
