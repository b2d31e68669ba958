// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filtergraph

import (
	"fmt"
	"math"

	"github.com/gogpu/glass/displacement"
)

// Params are the effect parameters the graph depends on.
type Params struct {
	// DisplacementScale is the effective scale, already halved by the
	// caller for over-light surfaces.
	DisplacementScale float64

	// AberrationIntensity controls channel separation, edge band width
	// and blur.
	AberrationIntensity float64

	// Shader selects the sign convention of generated maps. Built-in
	// patterns are sampled with a negative scale.
	Shader bool
}

// Channel mask matrices keep one color channel plus alpha.
var (
	redMask = [20]float64{
		1, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
	greenMask = [20]float64{
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
	blueMask = [20]float64{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
)

// ChannelMask returns the color matrix that isolates ch. It returns nil for
// ChannelA.
func ChannelMask(ch Channel) *[20]float64 {
	var m [20]float64
	switch ch {
	case ChannelR:
		m = redMask
	case ChannelG:
		m = greenMask
	case ChannelB:
		m = blueMask
	default:
		return nil
	}
	return &m
}

// ChannelScales returns the displacement scale applied to the red, green
// and blue channels.
func ChannelScales(p Params) (r, g, b float64) {
	sign := -1.0
	if p.Shader {
		sign = 1
	}
	s, a := p.DisplacementScale, p.AberrationIntensity
	return s * sign, s * (sign - 0.05*a), s * (sign - 0.10*a)
}

// EdgeMaskThreshold returns the radius, in percent, inside which the edge
// mask is transparent.
func EdgeMaskThreshold(aberration float64) float64 {
	return math.Max(30, 80-2*aberration)
}

// BlurStdDeviation returns the blur applied to the aberrated image.
func BlurStdDeviation(aberration float64) float64 {
	return math.Max(0.1, 0.5-0.1*aberration)
}

// Build assembles the filter graph for p, sampling m over a surface of the
// given size. It has no side effects.
//
// m must be a resolved map; Build panics if it is nil.
func Build(p Params, m *displacement.Map, size Size) *Graph {
	if m == nil {
		panic("filtergraph: Build called with nil displacement map")
	}

	rs, gs, bs := ChannelScales(p)
	a := p.AberrationIntensity

	stages := make([]Stage, 0, 16)
	stages = append(stages,
		Stage{Op: OpImage, Result: ResultDisplacementMap},
		Stage{Op: OpRadialMask, Result: ResultEdgeMask, InnerStop: EdgeMaskThreshold(a)},
		Stage{Op: OpOffset, Result: ResultCenterOriginal, In: SourceGraphic},
	)

	channels := [...]struct {
		ch        Channel
		scale     float64
		displaced string
		result    string
	}{
		{ChannelR, rs, ResultRedDisplaced, ResultRedChannel},
		{ChannelG, gs, ResultGreenDisplaced, ResultGreenChannel},
		{ChannelB, bs, ResultBlueDisplaced, ResultBlueChannel},
	}
	for _, c := range channels {
		stages = append(stages,
			Stage{
				Op:       OpDisplacement,
				Result:   c.displaced,
				In:       SourceGraphic,
				In2:      ResultDisplacementMap,
				Scale:    c.scale,
				XChannel: ChannelR,
				YChannel: ChannelB,
			},
			Stage{
				Op:     OpColorMatrix,
				Result: c.result,
				In:     c.displaced,
				Matrix: ChannelMask(c.ch),
			},
		)
	}

	stages = append(stages,
		Stage{Op: OpBlend, Result: ResultGBCombined, In: ResultGreenChannel, In2: ResultBlueChannel, Blend: BlendScreen},
		Stage{Op: OpBlend, Result: ResultRGBCombined, In: ResultRedChannel, In2: ResultGBCombined, Blend: BlendScreen},
		Stage{Op: OpGaussianBlur, Result: ResultBlurred, In: ResultRGBCombined, StdDeviation: BlurStdDeviation(a)},
		Stage{Op: OpComposite, Result: ResultEdgeAberration, In: ResultBlurred, In2: ResultEdgeMask, Composite: CompositeIn},
		Stage{
			Op:            OpComponentTransfer,
			Result:        ResultInvertedMask,
			In:            ResultEdgeMask,
			Transfer:      TransferTable,
			TransferTable: []float64{1, 0},
		},
		Stage{Op: OpComposite, Result: ResultCenterClean, In: ResultCenterOriginal, In2: ResultInvertedMask, Composite: CompositeIn},
		Stage{Op: OpComposite, Result: ResultOutput, In: ResultEdgeAberration, In2: ResultCenterClean, Composite: CompositeOver},
	)

	return &Graph{
		Stages: stages,
		Region: DefaultRegion,
		Size:   size,
		Map:    m,
		Params: p,
	}
}

// String summarizes the graph for logs.
func (g *Graph) String() string {
	return fmt.Sprintf("filtergraph(%d stages, %gx%g, scale=%g, aberration=%g)",
		len(g.Stages), g.Size.Width, g.Size.Height, g.Params.DisplacementScale, g.Params.AberrationIntensity)
}
