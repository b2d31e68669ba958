// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/glass"
)

// Errors returned by renderers.
var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilScene is returned when Render is called without a scene.
	ErrNilScene = errors.New("render: nil scene")

	// ErrTargetSize is returned when a target's pixel buffer is smaller than
	// its reported dimensions.
	ErrTargetSize = errors.New("render: target pixel buffer too small")

	// ErrMissingInput is returned when a graph stage reads a result that
	// was never produced.
	ErrMissingInput = errors.New("render: missing stage input")

	// ErrUnsupportedOp is returned for graph stages the renderer cannot
	// evaluate.
	ErrUnsupportedOp = errors.New("render: unsupported filter op")
)

// Renderer draws glass scenes to a render target.
//
// Renderers are stateless between Render calls apart from caches, so the
// same renderer can be used with different targets and scenes.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, scene); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer interface {
	// Render composites the scene's surfaces over its background and
	// writes the result to the target. Only the scene's dirty regions are
	// redrawn unless it needs a full redraw. Render clears the scene's
	// damage on success.
	Render(target RenderTarget, scene *Scene) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers this is a no-op as operations are synchronous.
	Flush() error
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities. The result is meant to be passed to
// glass.WithCapabilities so controllers only request per-pixel filters
// the renderer can run.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() glass.Capabilities
}
