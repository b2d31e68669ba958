// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"context"
	"fmt"
	"image"
)

// GenerationError reports a failure while evaluating a fragment.
type GenerationError struct {
	Width, Height int
	// X and Y locate the texel being evaluated when the fragment failed.
	X, Y int
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("displacement: generating %dx%d map failed at (%d, %d): %v",
		e.Width, e.Height, e.X, e.Y, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator evaluates a fragment over a fixed grid and encodes the result
// into an image. A Generator holds a working raster between calls to
// Generate; Destroy frees it.
type Generator struct {
	width    int
	height   int
	fragment Fragment
	raster   *image.NRGBA
}

// NewGenerator creates a generator for a width×height grid.
func NewGenerator(width, height int, fragment Fragment) (*Generator, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if fragment == nil {
		return nil, ErrMissingFragment
	}
	return &Generator{width: width, height: height, fragment: fragment}, nil
}

// Size returns the grid size.
func (g *Generator) Size() (int, int) {
	return g.width, g.height
}

// Generate evaluates the fragment at uv = (x/width, y/height) for every
// texel and returns the encoded raster. The returned image is owned by the
// caller; the generator does not reuse it.
//
// pointer is forwarded to the fragment in normalized coordinates; pass nil
// when no pointer is present. Cancellation is checked between rows.
func (g *Generator) Generate(ctx context.Context, pointer *Vec2) (img *image.NRGBA, err error) {
	if g.fragment == nil {
		return nil, fmt.Errorf("displacement: generator used after Destroy")
	}

	var p Vec2
	hasPointer := pointer != nil
	if hasPointer {
		p = *pointer
	}

	g.raster = image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	out := g.raster

	x, y := 0, 0
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = &GenerationError{Width: g.width, Height: g.height, X: x, Y: y, Err: fmt.Errorf("fragment panicked: %v", r)}
		}
	}()

	w := float64(g.width)
	h := float64(g.height)
	for y = 0; y < g.height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := out.Pix[y*out.Stride : y*out.Stride+g.width*4]
		for x = 0; x < g.width; x++ {
			o := g.fragment(Vec2{X: float64(x) / w, Y: float64(y) / h}, p, hasPointer)
			i := x * 4
			row[i+0] = encodeChannel(o.X)
			yc := encodeChannel(o.Y)
			row[i+1] = yc
			row[i+2] = yc
			row[i+3] = 0xff
		}
	}

	g.raster = nil
	return out, nil
}

// Destroy releases the generator's working state. The generator cannot be
// used afterwards.
func (g *Generator) Destroy() {
	g.raster = nil
	g.fragment = nil
}
