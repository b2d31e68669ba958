// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"github.com/gogpu/glass/displacement"
	"github.com/gogpu/glass/elastic"
	"github.com/gogpu/glass/filtergraph"
)

// RenderDescriptor is everything a substrate needs to draw one glass
// surface for one frame. It is a snapshot; the controller builds a new
// descriptor every frame and never mutates a returned one.
type RenderDescriptor struct {
	// Graph is the per-pixel filter graph. It is always built.
	Graph *filtergraph.Graph

	// FilterEnabled reports whether the substrate declared support for
	// per-pixel filters. When false, Graph is informational only and the
	// substrate applies just the backdrop and layers.
	FilterEnabled bool

	// Map is the displacement map referenced by Graph. It stays valid
	// until the controller replaces it in a later frame.
	Map *displacement.Map

	// Transform is the displayed transform, eased toward Target.
	Transform elastic.Transform

	// Target is the transform computed from the latest pointer sample.
	Target elastic.Transform

	// Fade is the pointer influence in [0,1] Target was computed with.
	Fade float64

	Backdrop   Backdrop
	Highlights [2]HighlightLayer

	// Tints are the darkening layers of an over-light surface, drawn
	// beneath the glass.
	Tints []TintLayer

	Style Style

	CornerRadius float64
	Padding      string

	// Pointer offset from the center in percent of the surface size.
	PointerOffsetX float64
	PointerOffsetY float64

	Hovered bool
	Active  bool

	// Geometry is the snapshot the frame was computed against.
	Geometry Geometry

	// Config is the configuration the frame was computed from.
	Config EffectConfig
}

// Settled reports whether the displayed transform has reached its target.
func (d *RenderDescriptor) Settled() bool {
	return d.Transform == d.Target
}
