// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filtergraph builds the declarative image-filter graph behind the
// liquid glass effect.
//
// A Graph is pure data: an ordered list of stages, each naming its inputs
// and its result. The graph is meant to be translated by a rendering layer,
// for example into an SVG <filter> element (see Graph.WriteSVG) or evaluated
// on rasters by package render. Nothing in this package touches pixels.
package filtergraph

import (
	"fmt"

	"github.com/gogpu/glass/displacement"
)

// SourceGraphic is the implicit input holding the unfiltered content.
const SourceGraphic = "SourceGraphic"

// Stage result names, in the order Build emits them.
const (
	ResultDisplacementMap = "DISPLACEMENT_MAP"
	ResultEdgeMask        = "EDGE_MASK"
	ResultCenterOriginal  = "CENTER_ORIGINAL"
	ResultRedDisplaced    = "RED_DISPLACED"
	ResultRedChannel      = "RED_CHANNEL"
	ResultGreenDisplaced  = "GREEN_DISPLACED"
	ResultGreenChannel    = "GREEN_CHANNEL"
	ResultBlueDisplaced   = "BLUE_DISPLACED"
	ResultBlueChannel     = "BLUE_CHANNEL"
	ResultGBCombined      = "GB_COMBINED"
	ResultRGBCombined     = "RGB_COMBINED"
	ResultBlurred         = "ABERRATED_BLURRED"
	ResultEdgeAberration  = "EDGE_ABERRATION"
	ResultInvertedMask    = "INVERTED_MASK"
	ResultCenterClean     = "CENTER_CLEAN"
	ResultOutput          = "OUTPUT"
)

// Op identifies the primitive a stage applies.
type Op uint8

// Op constants. Each maps onto one SVG filter primitive.
const (
	OpImage Op = iota
	OpRadialMask
	OpOffset
	OpDisplacement
	OpColorMatrix
	OpBlend
	OpGaussianBlur
	OpComposite
	OpComponentTransfer
)

var opNames = [...]string{
	OpImage:             "Image",
	OpRadialMask:        "RadialMask",
	OpOffset:            "Offset",
	OpDisplacement:      "Displacement",
	OpColorMatrix:       "ColorMatrix",
	OpBlend:             "Blend",
	OpGaussianBlur:      "GaussianBlur",
	OpComposite:         "Composite",
	OpComponentTransfer: "ComponentTransfer",
}

// String returns a readable name for the op.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Channel selects a color channel.
type Channel uint8

// Channel constants.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// String returns the single-letter channel name used by SVG.
func (c Channel) String() string {
	return [...]string{"R", "G", "B", "A"}[c&3]
}

// BlendMode is a separable blend mode.
type BlendMode uint8

// BlendMode constants.
const (
	BlendNormal BlendMode = iota
	BlendScreen
)

// String returns the SVG name of the mode.
func (m BlendMode) String() string {
	if m == BlendScreen {
		return "screen"
	}
	return "normal"
}

// CompositeOp is a Porter-Duff operator.
type CompositeOp uint8

// CompositeOp constants.
const (
	CompositeOver CompositeOp = iota
	CompositeIn
)

// String returns the SVG name of the operator.
func (c CompositeOp) String() string {
	if c == CompositeIn {
		return "in"
	}
	return "over"
}

// TransferKind is the kind of a component transfer function.
type TransferKind uint8

// TransferKind constants.
const (
	TransferTable TransferKind = iota
	TransferDiscrete
)

// String returns the SVG name of the transfer kind.
func (k TransferKind) String() string {
	if k == TransferDiscrete {
		return "discrete"
	}
	return "table"
}

// Stage is one primitive of the graph. Only the parameter fields relevant to
// Op are set.
type Stage struct {
	Op     Op
	Result string
	In     string
	In2    string

	// OpOffset.
	DX, DY float64

	// OpDisplacement.
	Scale    float64
	XChannel Channel
	YChannel Channel

	// OpColorMatrix: 4x5 row-major matrix on unpremultiplied [0,1] values.
	Matrix *[20]float64

	// OpBlend.
	Blend BlendMode

	// OpGaussianBlur.
	StdDeviation float64

	// OpComposite.
	Composite CompositeOp

	// OpComponentTransfer, applied to the alpha channel.
	Transfer      TransferKind
	TransferTable []float64

	// OpRadialMask: the radius, in percent of the surface half extent, up
	// to which the mask stays transparent.
	InnerStop float64
}

// Region is the filter region relative to the surface bounding box, in
// percent.
type Region struct {
	X, Y, Width, Height float64
}

// DefaultRegion extends 35% past the surface on each side so displaced
// pixels near the edge are not clipped.
var DefaultRegion = Region{X: -35, Y: -35, Width: 170, Height: 170}

// Size is the surface size in pixels.
type Size struct {
	Width, Height float64
}

// Graph is an ordered, validated-by-construction filter description.
type Graph struct {
	Stages []Stage
	Region Region
	Size   Size

	// Map is the displacement field the OpImage stage refers to.
	Map *displacement.Map

	// Params echoes the inputs the graph was built from.
	Params Params
}

// Stage returns the stage producing result, or false if there is none.
func (g *Graph) Stage(result string) (Stage, bool) {
	for _, s := range g.Stages {
		if s.Result == result {
			return s, true
		}
	}
	return Stage{}, false
}

// Output returns the name of the final result.
func (g *Graph) Output() string {
	if len(g.Stages) == 0 {
		return SourceGraphic
	}
	return g.Stages[len(g.Stages)-1].Result
}

// Validate checks that every stage reads only SourceGraphic or the result
// of an earlier stage, and that result names are unique.
func (g *Graph) Validate() error {
	seen := map[string]bool{SourceGraphic: true}
	for i, s := range g.Stages {
		if s.Result == "" {
			return fmt.Errorf("filtergraph: stage %d (%v) has no result name", i, s.Op)
		}
		for _, in := range [...]string{s.In, s.In2} {
			if in != "" && !seen[in] {
				return fmt.Errorf("filtergraph: stage %q reads %q before it is produced", s.Result, in)
			}
		}
		if seen[s.Result] {
			return fmt.Errorf("filtergraph: duplicate result %q", s.Result)
		}
		seen[s.Result] = true
	}
	return nil
}
