// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glass

import (
	"math"
	"sync/atomic"
)

// Geometry is the surface's bounding box in its container's coordinate
// space, reduced to size and center.
type Geometry struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// GeometryFromRect builds a Geometry from a top-left anchored rectangle.
func GeometryFromRect(left, top, width, height float64) Geometry {
	return Geometry{
		Width:   width,
		Height:  height,
		CenterX: left + width/2,
		CenterY: top + height/2,
	}
}

// Left returns the x coordinate of the left edge.
func (g Geometry) Left() float64 { return g.CenterX - g.Width/2 }

// Top returns the y coordinate of the top edge.
func (g Geometry) Top() float64 { return g.CenterY - g.Height/2 }

// PixelSize returns the size rounded to whole pixels, at least 1x1 for a
// non-empty surface.
func (g Geometry) PixelSize() (width, height int) {
	return pixelLen(g.Width), pixelLen(g.Height)
}

// Empty reports whether the surface has no area.
func (g Geometry) Empty() bool {
	return !(g.Width > 0 && g.Height > 0)
}

func pixelLen(v float64) int {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return max(1, int(math.Round(v)))
}

// PointerState is the pointer as seen by one surface.
type PointerState struct {
	// GlobalX and GlobalY are the last pointer position in container
	// coordinates. Only meaningful when Present is set.
	GlobalX float64
	GlobalY float64

	// Present is set once a move has been observed and cleared by
	// ClearPointer.
	Present bool

	// Hovered and Active are presentation flags; they do not affect the
	// transform.
	Hovered bool
	Active  bool
}

// pointerSample is one coalesced move event.
type pointerSample struct {
	x, y float64
	// clear marks a ClearPointer request.
	clear bool
}

// pointerSlot keeps only the latest pointer sample. Writers overwrite the
// slot; the frame loop takes it at most once.
type pointerSlot struct {
	latest   atomic.Pointer[pointerSample]
	received atomic.Uint64
}

// store publishes s, replacing any sample not yet taken.
func (p *pointerSlot) store(s *pointerSample) {
	p.latest.Store(s)
	p.received.Add(1)
}

// take removes and returns the pending sample, or nil.
func (p *pointerSlot) take() *pointerSample {
	return p.latest.Swap(nil)
}
