// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RenderTarget defines where rendering output goes.
//
// Targets expose their pixels as RGBA8 rows. The software renderer reads the
// current contents as the backdrop of the first surface and writes the
// composited result back.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Pixels returns direct access to pixel data, 4 bytes per pixel in
	// R, G, B, A order, alpha premultiplied.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	renderer.Render(target, scene)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new transparent render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapTargetFromImage wraps img without copying. Rendering writes
// straight into it.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

func (t *PixmapTarget) Width() int     { return t.img.Bounds().Dx() }
func (t *PixmapTarget) Height() int    { return t.img.Bounds().Dy() }
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }
func (t *PixmapTarget) Stride() int    { return t.img.Stride }

// Image returns the underlying image. It shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Snapshot returns a copy of the current contents.
func (t *PixmapTarget) Snapshot() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, t.Width(), t.Height()))
	draw.Copy(out, image.Point{}, t.img, t.img.Bounds(), draw.Src, nil)
	return out
}

// Clear fills the target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage copies img onto the target at the origin, clipped to the
// target.
func (t *PixmapTarget) DrawImage(img image.Image) {
	draw.Draw(t.img, t.img.Bounds(), img, img.Bounds().Min, draw.Src)
}

func (t *PixmapTarget) SetPixel(x, y int, c color.Color) { t.img.Set(x, y, c) }
func (t *PixmapTarget) GetPixel(x, y int) color.Color    { return t.img.At(x, y) }

// Resize changes the target size, scaling the current contents to fit so
// glass over a resized window keeps something to refract until the next
// full redraw.
func (t *PixmapTarget) Resize(width, height int) {
	old := t.img
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if !old.Bounds().Empty() {
		draw.ApproxBiLinear.Scale(t.img, t.img.Bounds(), old, old.Bounds(), draw.Src, nil)
	}
}

// FitBackground scales img to cover width×height, keeping its aspect
// ratio and cropping the overflow evenly on both sides.
func FitBackground(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Empty() || width <= 0 || height <= 0 {
		return dst
	}

	// Source rectangle with the destination aspect ratio.
	src := b
	if b.Dx()*height > b.Dy()*width {
		w := b.Dy() * width / height
		src.Min.X += (b.Dx() - w) / 2
		src.Max.X = src.Min.X + w
	} else {
		h := b.Dx() * height / width
		src.Min.Y += (b.Dy() - h) / 2
		src.Max.Y = src.Min.Y + h
	}
	if src.Dx() == width && src.Dy() == height {
		draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

var _ RenderTarget = (*PixmapTarget)(nil)
