// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/glass"
)

// uniform returns a w×h image filled with c.
func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// stripes returns a w×h image of vertical black and white stripes, period
// pixels wide.
func stripes(w, h, period int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x/period)%2 == 0 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// testSurface returns the first-frame descriptor of a controller for cfg
// placed at g.
func testSurface(t *testing.T, cfg glass.EffectConfig, g glass.Geometry, opts ...glass.ControllerOption) *glass.RenderDescriptor {
	t.Helper()
	c, err := glass.NewController(cfg, opts...)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if err := c.SetGeometry(g); err != nil {
		t.Fatalf("SetGeometry() error = %v", err)
	}
	d, err := c.Frame(0)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	return d
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
