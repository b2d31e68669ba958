// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/glass/filtergraph"
	"github.com/gogpu/glass/internal/filter"
)

// neutralMap is the displacement value that moves nothing.
var neutralMap = filter.Pixel{R: 0.5, G: 0.5, B: 0.5, A: 1}

// Evaluate runs g on source and returns the graph output. The whole source
// is treated as the surface box.
func (r *SoftwareRenderer) Evaluate(g *filtergraph.Graph, source image.Image) (*image.RGBA, error) {
	if g == nil {
		return nil, fmt.Errorf("render: evaluate: nil graph")
	}
	src := filter.FromImage(source)
	out, err := r.evaluate(g, src, src.Bounds())
	if err != nil {
		return nil, err
	}
	return out.ToRGBA(), nil
}

// evaluate runs g on src. box is the surface box inside src; the
// displacement map and edge mask are laid out over it, and src around it
// is the margin displaced pixels are read from. The result has src's size.
func (r *SoftwareRenderer) evaluate(g *filtergraph.Graph, src *filter.Image, box image.Rectangle) (*filter.Image, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if box.Empty() {
		return nil, fmt.Errorf("render: evaluate: empty surface box %v", box)
	}
	r.maps.purge()

	results := map[string]*filter.Image{filtergraph.SourceGraphic: src}
	input := func(s filtergraph.Stage, name string) (*filter.Image, error) {
		im, ok := results[name]
		if !ok {
			return nil, fmt.Errorf("%w: stage %q reads %q", ErrMissingInput, s.Result, name)
		}
		return im, nil
	}

	for _, s := range g.Stages {
		var out *filter.Image
		switch s.Op {
		case filtergraph.OpImage:
			if g.Map == nil {
				return nil, fmt.Errorf("%w: stage %q has no displacement map", ErrMissingInput, s.Result)
			}
			fitted, err := r.maps.fitted(g.Map, box.Dx(), box.Dy())
			if err != nil {
				return nil, fmt.Errorf("render: fitting displacement map: %w", err)
			}
			out = filter.NewImage(src.Width, src.Height)
			out.Fill(neutralMap)
			filter.Paste(out, fitted, box.Min.X, box.Min.Y)

		case filtergraph.OpRadialMask:
			out = edgeMask(src.Width, src.Height, box, s.InnerStop)

		default:
			in, err := input(s, s.In)
			if err != nil {
				return nil, err
			}
			out, err = r.apply(s, in, func(name string) (*filter.Image, error) { return input(s, name) })
			if err != nil {
				return nil, err
			}
		}
		results[s.Result] = out
	}
	return results[g.Output()], nil
}

// apply evaluates a stage that reads at least one input.
func (r *SoftwareRenderer) apply(s filtergraph.Stage, in *filter.Image, input func(string) (*filter.Image, error)) (*filter.Image, error) {
	switch s.Op {
	case filtergraph.OpOffset:
		return filter.Offset(in, int(math.Round(s.DX)), int(math.Round(s.DY))), nil

	case filtergraph.OpDisplacement:
		dmap, err := input(s.In2)
		if err != nil {
			return nil, err
		}
		return filter.DisplaceWith(r.rows(), in, dmap, s.Scale, int(s.XChannel), int(s.YChannel)), nil

	case filtergraph.OpColorMatrix:
		if s.Matrix == nil {
			return in.Clone(), nil
		}
		m := filter.Matrix(*s.Matrix)
		return filter.ApplyMatrix(in, &m), nil

	case filtergraph.OpBlend:
		backdrop, err := input(s.In2)
		if err != nil {
			return nil, err
		}
		mode := filter.BlendNormal
		if s.Blend == filtergraph.BlendScreen {
			mode = filter.BlendScreen
		}
		return filter.Blend(in, backdrop, mode, 1), nil

	case filtergraph.OpGaussianBlur:
		return filter.Blur(in, s.StdDeviation, s.StdDeviation), nil

	case filtergraph.OpComposite:
		other, err := input(s.In2)
		if err != nil {
			return nil, err
		}
		if s.Composite == filtergraph.CompositeIn {
			return filter.In(in, other), nil
		}
		return filter.Over(in, other), nil

	case filtergraph.OpComponentTransfer:
		f := filter.TableTransfer(s.TransferTable)
		if s.Transfer == filtergraph.TransferDiscrete {
			f = filter.DiscreteTransfer(s.TransferTable)
		}
		return filter.TransferAlpha(in, f), nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOp, s.Op)
	}
}
