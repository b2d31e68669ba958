// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glass is a procedural "liquid glass" effect engine.
//
// # Overview
//
// A glass surface refracts and chromatically aberrates whatever sits behind
// it and stretches elastically toward a nearby pointer. The engine does not
// draw anything itself. Per frame it produces a RenderDescriptor holding:
//   - a declarative filter graph (package filtergraph) describing the
//     per-channel displacement, blur and edge masking
//   - the elastic transform computed from the pointer (package elastic)
//   - backdrop blur/saturate parameters, box shadow and two border
//     highlight layers
//
// The descriptor can be translated to SVG and CSS, or evaluated on rasters
// by package render.
//
// # Quick Start
//
//	cfg := glass.DefaultConfig().With(glass.MustPreset("button"))
//	c, err := glass.NewController(cfg,
//	    glass.WithCapabilities(glass.Capabilities{PerPixelFilters: true}))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	c.SetGeometry(glass.GeometryFromRect(100, 100, 270, 69))
//	c.PointerMove(400, 130) // from any goroutine
//	desc, err := c.Frame(16 * time.Millisecond)
//
// # Displacement maps
//
// The standard, polar and prominent modes use shared built-in maps. Shader
// mode evaluates a displacement.Fragment over the surface size and
// regenerates whenever the size changes. Generation runs inside Frame and
// falls back to the last valid map, or the standard pattern, on failure.
//
// # Concurrency
//
// A Controller belongs to the host's event loop. Only PointerMove and
// ClearPointer may be called from other goroutines; move events are
// coalesced so each Frame consumes at most the latest sample.
//
// # Logging
//
// glass is silent by default. Use SetLogger or WithLogger to enable slog
// output.
package glass
