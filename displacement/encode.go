// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package displacement

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// EncodePNG writes the map raster as a PNG image.
func EncodePNG(w io.Writer, m *Map) error {
	img := m.Image()
	if img == nil {
		return ErrReleased
	}
	return png.Encode(w, img)
}

// DataURL returns the map as a base64 PNG data URL, the form an SVG
// feImage element can reference directly.
func DataURL(m *Map) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, m); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FitSlice scales the map raster to width×height, preserving its aspect
// ratio and cropping the overflow symmetrically. This matches
// preserveAspectRatio="xMidYMid slice" on an SVG image.
func FitSlice(m *Map, width, height int) (*image.NRGBA, error) {
	src := m.Image()
	if src == nil {
		return nil, ErrReleased
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if m.Width == width && m.Height == height {
		copy(dst.Pix, src.Pix)
		return dst, nil
	}

	sr := sliceRect(m.Width, m.Height, width, height)
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
	return dst, nil
}

// sliceRect returns the centered region of a srcW×srcH image that covers a
// dstW×dstH target at uniform scale.
func sliceRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	scale := math.Max(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w := int(math.Round(float64(dstW) / scale))
	h := int(math.Round(float64(dstH) / scale))
	w = max(1, min(w, srcW))
	h = max(1, min(h, srcH))
	x0 := (srcW - w) / 2
	y0 := (srcH - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}
