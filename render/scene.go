// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"github.com/gogpu/glass"
)

// DirtyRect represents a region that needs redraw.
// Used for damage tracking to enable efficient partial redraws.
type DirtyRect struct {
	X, Y, Width, Height float64
}

// DirtyRectFrom converts an integer rectangle to a DirtyRect.
func DirtyRectFrom(r image.Rectangle) DirtyRect {
	return DirtyRect{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

// Bounds returns the smallest integer rectangle covering r.
func (r DirtyRect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
}

// maxDirtyRects is the threshold after which we switch to full redraw.
// When more than this many rects accumulate, it's more efficient to redraw everything.
const maxDirtyRects = 16

// Scene is a retained set of glass surfaces over a background image.
//
// Surfaces are drawn in insertion order, each sampling everything beneath
// it, so a later surface refracts the earlier ones. The scene tracks
// damage: replacing a surface invalidates the area it covered and the
// area it now covers, and renderers redraw only the union.
//
// Example:
//
//	scene := render.NewScene(background)
//	i := scene.Add(ctrl.Descriptor())
//	for range frames {
//		desc, _ := ctrl.Frame(dt)
//		scene.Replace(i, desc)
//		renderer.Render(target, scene)
//	}
type Scene struct {
	background image.Image
	surfaces   []*glass.RenderDescriptor

	// Damage tracking for efficient partial redraws
	dirtyRects []DirtyRect
	fullRedraw bool
}

// NewScene creates a scene over background. A nil background leaves the
// target's current contents as the backdrop and disables partial redraws.
// A new scene needs a full redraw.
func NewScene(background image.Image) *Scene {
	return &Scene{
		background: background,
		surfaces:   make([]*glass.RenderDescriptor, 0, 4),
		fullRedraw: true,
	}
}

// SetBackground replaces the background and invalidates the whole scene.
func (s *Scene) SetBackground(background image.Image) {
	s.background = background
	s.InvalidateAll()
}

// Background returns the scene background, or nil.
func (s *Scene) Background() image.Image {
	return s.background
}

// Add appends a surface and returns its index. Nil descriptors are
// ignored and yield -1.
func (s *Scene) Add(d *glass.RenderDescriptor) int {
	if d == nil {
		return -1
	}
	s.surfaces = append(s.surfaces, d)
	s.invalidateSurface(d)
	return len(s.surfaces) - 1
}

// Replace swaps the surface at index i for d, invalidating both the old
// and the new extent. It reports whether i was valid.
func (s *Scene) Replace(i int, d *glass.RenderDescriptor) bool {
	if i < 0 || i >= len(s.surfaces) || d == nil {
		return false
	}
	s.invalidateSurface(s.surfaces[i])
	s.surfaces[i] = d
	s.invalidateSurface(d)
	return true
}

// Remove deletes the surface at index i. Later surfaces shift down by one.
func (s *Scene) Remove(i int) bool {
	if i < 0 || i >= len(s.surfaces) {
		return false
	}
	s.invalidateSurface(s.surfaces[i])
	s.surfaces = append(s.surfaces[:i], s.surfaces[i+1:]...)
	return true
}

// Surfaces returns the surfaces in drawing order.
// The returned slice should not be modified by the caller.
func (s *Scene) Surfaces() []*glass.RenderDescriptor {
	return s.surfaces
}

// Len returns the number of surfaces.
func (s *Scene) Len() int {
	return len(s.surfaces)
}

// IsEmpty returns true if the scene has no surfaces.
func (s *Scene) IsEmpty() bool {
	return len(s.surfaces) == 0
}

// Reset removes all surfaces, keeping the background, and marks the scene
// for a full redraw.
func (s *Scene) Reset() {
	clear(s.surfaces)
	s.surfaces = s.surfaces[:0]
	s.InvalidateAll()
}

func (s *Scene) invalidateSurface(d *glass.RenderDescriptor) {
	if r := Extent(d); !r.Empty() {
		s.Invalidate(DirtyRectFrom(r))
	}
}

// Invalidate marks a rectangular region as needing redraw.
// If the accumulated dirty rects exceed maxDirtyRects, the scene switches
// to full redraw mode for efficiency.
func (s *Scene) Invalidate(rect DirtyRect) {
	if s.fullRedraw {
		return // Already in full redraw mode
	}

	// Validate rect has positive dimensions
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}

	s.dirtyRects = append(s.dirtyRects, rect)

	// If too many rects, switch to full redraw
	if len(s.dirtyRects) > maxDirtyRects {
		s.fullRedraw = true
		s.dirtyRects = s.dirtyRects[:0]
	}
}

// InvalidateAll marks the entire scene as needing redraw.
func (s *Scene) InvalidateAll() {
	s.fullRedraw = true
	s.dirtyRects = s.dirtyRects[:0]
}

// DirtyRects returns the accumulated dirty rectangles.
// Returns nil if the scene needs a full redraw (check NeedsFullRedraw first).
// The returned slice should not be modified by the caller.
func (s *Scene) DirtyRects() []DirtyRect {
	if s.fullRedraw {
		return nil
	}
	return s.dirtyRects
}

// DirtyBounds returns the union of the dirty rectangles.
func (s *Scene) DirtyBounds() image.Rectangle {
	var u image.Rectangle
	for _, r := range s.DirtyRects() {
		u = u.Union(r.Bounds())
	}
	return u
}

// ClearDirty resets the dirty state after rendering.
func (s *Scene) ClearDirty() {
	s.dirtyRects = s.dirtyRects[:0]
	s.fullRedraw = false
}

// NeedsFullRedraw returns true if the scene should be fully redrawn.
func (s *Scene) NeedsFullRedraw() bool {
	return s.fullRedraw
}

// HasDirtyRegions returns true if there are any dirty regions to redraw.
// This includes both individual rects and full redraw state.
func (s *Scene) HasDirtyRegions() bool {
	return s.fullRedraw || len(s.dirtyRects) > 0
}
