// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package elastic computes the pointer-driven elastic transform of a glass
// surface.
//
// The transform stretches the surface toward a nearby pointer and nudges it
// in the pointer's direction. Influence fades linearly to zero over a fixed
// activation zone measured from the surface edge, so a pointer that is far
// away leaves the surface untouched.
//
// Compute is a pure function. Callers recompute it on every pointer move and
// every geometry change; the result is never cached across frames.
package elastic

import (
	"math"
	"strconv"
)

const (
	// ActivationZone is the distance from the surface edge beyond which the
	// pointer has no effect.
	ActivationZone = 200.0

	// StretchDistance is the center distance at which the stretch saturates.
	StretchDistance = 300.0

	// MinScale is the lower bound of both scale factors.
	MinScale = 0.8

	// TranslateFactor scales the pointer delta into a translation.
	TranslateFactor = 0.1

	majorStretch = 0.3
	minorStretch = 0.15
)

// Point is a position in the container's coordinate space.
type Point struct {
	X, Y float64
}

// Transform is a scale followed by a translation, applied around the
// surface center.
type Transform struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// Identity returns the transform that leaves the surface unchanged.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether t has unit scale and zero translation.
func (t Transform) IsIdentity() bool {
	return t.ScaleX == 1 && t.ScaleY == 1 && t.TranslateX == 0 && t.TranslateY == 0
}

// EdgeDistance returns the Euclidean distance from the delta (dx, dy),
// measured from the surface center, to the nearest point of an axis-aligned
// box with the given half extents. Points inside the box are at distance 0.
func EdgeDistance(dx, dy, halfW, halfH float64) float64 {
	ex := math.Max(0, math.Abs(dx)-halfW)
	ey := math.Max(0, math.Abs(dy)-halfH)
	return math.Hypot(ex, ey)
}

// Fade maps an edge distance to the influence factor in [0, 1].
// It is 1 on the surface, falls linearly, and is exactly 0 from
// ActivationZone outward.
func Fade(edgeDistance float64) float64 {
	if math.IsNaN(edgeDistance) || edgeDistance >= ActivationZone {
		return 0
	}
	if edgeDistance <= 0 {
		return 1
	}
	return 1 - edgeDistance/ActivationZone
}

// Input bundles the arguments of Compute.
type Input struct {
	Pointer    Point
	HasPointer bool
	Center     Point
	HalfWidth  float64
	HalfHeight float64
	Elasticity float64
}

// Result is a transform together with the fade factor it was computed with.
type Result struct {
	Transform Transform
	Fade      float64
}

// Compute returns the elastic transform for a pointer relative to a surface.
//
// The fade factor is computed once and shared by the stretch and the
// translation terms.
func Compute(in Input) Result {
	if !in.HasPointer || math.IsNaN(in.Pointer.X) || math.IsNaN(in.Pointer.Y) {
		return Result{Transform: Identity()}
	}

	dx := in.Pointer.X - in.Center.X
	dy := in.Pointer.Y - in.Center.Y

	fade := Fade(EdgeDistance(dx, dy, in.HalfWidth, in.HalfHeight))
	if fade == 0 {
		return Result{Transform: Identity()}
	}

	centerDistance := math.Hypot(dx, dy)
	if centerDistance == 0 {
		return Result{Transform: Identity(), Fade: fade}
	}

	nx := dx / centerDistance
	ny := dy / centerDistance

	stretch := math.Min(centerDistance/StretchDistance, 1) * in.Elasticity * fade

	scaleX := 1 + math.Abs(nx)*stretch*majorStretch - math.Abs(ny)*stretch*minorStretch
	scaleY := 1 + math.Abs(ny)*stretch*majorStretch - math.Abs(nx)*stretch*minorStretch

	return Result{
		Transform: Transform{
			ScaleX:     math.Max(MinScale, scaleX),
			ScaleY:     math.Max(MinScale, scaleY),
			TranslateX: dx * in.Elasticity * TranslateFactor * fade,
			TranslateY: dy * in.Elasticity * TranslateFactor * fade,
		},
		Fade: fade,
	}
}

// CSS renders t as a CSS transform for a surface positioned with its
// top-left corner at the container's 50%/50% point.
func (t Transform) CSS() string {
	s := "translate(calc(-50% + " + formatNum(t.TranslateX) + "px), calc(-50% + " +
		formatNum(t.TranslateY) + "px)) "
	if t.ScaleX == 1 && t.ScaleY == 1 {
		return s + "scale(1)"
	}
	return s + "scaleX(" + formatNum(t.ScaleX) + ") scaleY(" + formatNum(t.ScaleY) + ")"
}

// Lerp interpolates each component between t and u.
func (t Transform) Lerp(u Transform, k float64) Transform {
	return Transform{
		ScaleX:     t.ScaleX + (u.ScaleX-t.ScaleX)*k,
		ScaleY:     t.ScaleY + (u.ScaleY-t.ScaleY)*k,
		TranslateX: t.TranslateX + (u.TranslateX-t.TranslateX)*k,
		TranslateY: t.TranslateY + (u.TranslateY-t.TranslateY)*k,
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
