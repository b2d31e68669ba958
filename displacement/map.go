// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"image"
	"math"
	"sync/atomic"
)

// SourceKind tells whether a map is a shared built-in or owned by its
// creator.
type SourceKind uint8

// SourceKind constants.
const (
	// SourceBuiltin maps are shared, immutable and never released.
	SourceBuiltin SourceKind = iota

	// SourceGenerated maps are produced from a fragment and owned by the
	// caller that requested them.
	SourceGenerated
)

// String returns the kind name.
func (k SourceKind) String() string {
	if k == SourceGenerated {
		return "generated"
	}
	return "builtin"
}

// Pattern identifies a built-in displacement pattern.
type Pattern uint8

// Pattern constants.
const (
	PatternNone Pattern = iota
	PatternStandard
	PatternPolar
	PatternProminent
)

// generationCounter numbers generated maps process-wide, so a generation
// number identifies one raster.
var generationCounter atomic.Uint64

// Map is a displacement field stored as an image. The red channel holds the
// horizontal offset and the green and blue channels hold the vertical
// offset, each mapped from [-1,1] to [0,255].
//
// Built-in maps must not be modified. A generated map is owned by the
// caller of Provider.Resolve, which must call Release when the map is
// replaced or no longer needed.
type Map struct {
	Width  int
	Height int

	// Source tells whether the map is built-in or generated.
	Source SourceKind

	// Pattern is the built-in pattern, or PatternNone for generated maps.
	Pattern Pattern

	// Generation is a process-unique number for generated maps and 0 for
	// built-ins.
	Generation uint64

	img      *image.NRGBA
	released bool
}

// Image returns the map raster, or nil once the map has been released.
func (m *Map) Image() *image.NRGBA {
	if m == nil || m.released {
		return nil
	}
	return m.img
}

// Release frees the raster of a generated map. It is a no-op for built-in
// maps and safe to call more than once.
func (m *Map) Release() {
	if m == nil || m.Source != SourceGenerated || m.released {
		return
	}
	m.released = true
	m.img = nil
}

// Released reports whether Release has freed the map.
func (m *Map) Released() bool {
	return m != nil && m.released
}

// Builtin reports whether m is a shared built-in pattern.
func (m *Map) Builtin() bool {
	return m != nil && m.Source == SourceBuiltin
}

// OffsetAt decodes the offset stored at pixel (x, y). Coordinates outside
// the map and released maps yield a zero offset.
func (m *Map) OffsetAt(x, y int) Vec2 {
	img := m.Image()
	if img == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return Vec2{}
	}
	i := img.PixOffset(x, y)
	return Vec2{
		X: decodeChannel(img.Pix[i+0]),
		Y: decodeChannel(img.Pix[i+1]),
	}
}

// Key identifies the raster content of a map, for caches keyed by map.
type Key struct {
	Source     SourceKind
	Pattern    Pattern
	Generation uint64
}

// Key returns the identity of the map's raster.
func (m *Map) Key() Key {
	return Key{Source: m.Source, Pattern: m.Pattern, Generation: m.Generation}
}

func encodeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		v = 0
	}
	v = clamp(v, -1, 1)
	return uint8(clamp((v*0.5+0.5)*255+0.5, 0, 255))
}

func decodeChannel(c uint8) float64 {
	return float64(c)/255*2 - 1
}
