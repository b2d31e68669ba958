// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Pixel is a premultiplied RGBA value.
type Pixel struct {
	R, G, B, A float32
}

// PixelFromRGBA premultiplies a straight-alpha gg color.
func PixelFromRGBA(c gg.RGBA) Pixel {
	a := float32(c.A)
	return Pixel{R: float32(c.R) * a, G: float32(c.G) * a, B: float32(c.B) * a, A: a}
}

// Image is a float32 premultiplied RGBA raster.
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

// NewImage creates a transparent image.
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{Width: width, Height: height, Pix: make([]float32, width*height*4)}
}

// FromImage converts any image to a float image.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	im := NewImage(b.Dx(), b.Dy())
	if src, ok := img.(*image.RGBA); ok {
		for y := 0; y < im.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < im.Width*4; x++ {
				im.Pix[y*im.Width*4+x] = float32(row[x]) / 255
			}
		}
		return im
	}
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*im.Width + x) * 4
			im.Pix[i+0] = float32(r) / 0xffff
			im.Pix[i+1] = float32(g) / 0xffff
			im.Pix[i+2] = float32(bl) / 0xffff
			im.Pix[i+3] = float32(a) / 0xffff
		}
	}
	return im
}

// ToRGBA converts the image to 8-bit premultiplied RGBA.
func (im *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for i, v := range im.Pix {
		dst.Pix[i] = clampUint8(v * 255)
	}
	return dst
}

// At returns the pixel at (x, y), or transparent outside the image.
func (im *Image) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= im.Width || y >= im.Height {
		return Pixel{}
	}
	i := (y*im.Width + x) * 4
	return Pixel{im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]}
}

// Set writes the pixel at (x, y). Writes outside the image are ignored.
func (im *Image) Set(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= im.Width || y >= im.Height {
		return
	}
	i := (y*im.Width + x) * 4
	im.Pix[i+0] = p.R
	im.Pix[i+1] = p.G
	im.Pix[i+2] = p.B
	im.Pix[i+3] = p.A
}

// Fill sets every pixel to p.
func (im *Image) Fill(p Pixel) {
	for i := 0; i < len(im.Pix); i += 4 {
		im.Pix[i+0] = p.R
		im.Pix[i+1] = p.G
		im.Pix[i+2] = p.B
		im.Pix[i+3] = p.A
	}
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	c := &Image{Width: im.Width, Height: im.Height, Pix: make([]float32, len(im.Pix))}
	copy(c.Pix, im.Pix)
	return c
}

// Bounds returns the image rectangle.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width, im.Height)
}

// RGBAAt returns the 8-bit color at (x, y).
func (im *Image) RGBAAt(x, y int) color.RGBA {
	p := im.At(x, y)
	return color.RGBA{R: clampUint8(p.R * 255), G: clampUint8(p.G * 255), B: clampUint8(p.B * 255), A: clampUint8(p.A * 255)}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
