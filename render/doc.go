// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is a CPU rendering substrate for glass surfaces.
//
// It consumes the RenderDescriptor produced by a glass.Controller and draws
// the surface onto a raster: drop shadow, over-light tints, the blurred and
// saturated backdrop, the per-pixel filter graph and the two highlight
// rings. The engine itself never touches pixels; this package exists so the
// effect can be previewed, tested end to end and exported from the command
// line.
//
// # Pipeline
//
// For each surface in a Scene, SoftwareRenderer:
//
//  1. places the surface's layout box, scaled and translated by the
//     displayed elastic transform;
//  2. paints the over-light tint layers;
//  3. takes the backdrop under the box, with a margin so the blur and the
//     displacement have content to sample, then draws the box shadow
//     outside the box;
//  4. blurs and saturates that backdrop and evaluates the filter graph on
//     it, if both the renderer and the descriptor enable filters;
//  5. clips the result to the rounded rectangle;
//  6. blends the highlight rings: screen for the sheen, overlay for the
//     stronger layer.
//
// Partial redraws restore the dirty area from the scene background and
// redraw only the surfaces that reach it. WithWorkers spreads displacement
// and target conversion over a worker pool; the output is identical.
//
// Shapes and gradients are rasterized with github.com/gogpu/gg; pixel
// kernels live in internal/filter.
//
// # Usage
//
//	target := render.NewPixmapTarget(800, 600)
//	scene := render.NewScene(background)
//	scene.Add(desc) // from glass.Controller.Frame
//
//	r := render.NewSoftwareRenderer()
//	if err := r.Render(target, scene); err != nil {
//		log.Fatal(err)
//	}
//	png.Encode(w, target.Image())
//
// Graphs can also be evaluated on their own:
//
//	out, err := r.Evaluate(desc.Graph, source)
//
// Thread Safety: renderers are not safe for concurrent use.
package render
